package period

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen      = "open"
	StatusProcessed = "processed"
)

// PayrollPeriod is the calendar-month window fines and payments are booked
// against. Exactly one row exists per (year, month); rows are created lazily
// the first time anything touches that month.
type PayrollPeriod struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year       int       `gorm:"not null;uniqueIndex:uq_period_year_month"`
	Month      int       `gorm:"not null;uniqueIndex:uq_period_year_month"` // 1-12
	PeriodName string    `gorm:"type:varchar(40);not null"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`

	// One-way transition: open -> processed.
	Status      string     `gorm:"type:varchar(20);not null;default:'open';index"`
	ProcessedAt *time.Time
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthBounds returns the first and last instant of the month containing t,
// in UTC.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Microsecond)
	return start, end
}

// PeriodNameFor renders the display string, e.g. "November 2025".
func PeriodNameFor(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
