package events

import "time"

const FineRecordedTopic = "fleet.fine.recorded.v1"

type FineRecordedEvent struct {
	EventType       string    `json:"event_type"`
	FineID          string    `json:"fine_id"`
	EmployeeID      string    `json:"employee_id"`
	PayrollPeriodID string    `json:"payroll_period_id"`
	FineCost        int64     `json:"fine_cost"`
	FineDate        time.Time `json:"fine_date"`
	OccurredAt      time.Time `json:"occurred_at"`
}
