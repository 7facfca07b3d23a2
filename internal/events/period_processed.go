package events

import "time"

const PayrollPeriodProcessedTopic = "fleet.payroll.period.processed.v1"

type PayrollPeriodProcessedEvent struct {
	EventType       string    `json:"event_type"`
	PayrollPeriodID string    `json:"payroll_period_id"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	EmployeeCount   int       `json:"employee_count"`
	TotalNetPay     int64     `json:"total_net_pay"`
	OccurredAt      time.Time `json:"occurred_at"`
}
