package fine

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayStatusUnpaid = "unpaid"
	PayStatusPaid   = "paid"
)

// Fine is a monetary penalty charged against an employee, with its own
// partial-payment ledger. fine_cost is the original amount and is treated as
// immutable once payments exist; paid_amount only ever grows.
//
// Fines never touch Employee.Salary. Net pay is derived at read time as
// original salary minus the sum of fine costs in the period.
type Fine struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CarID      uuid.UUID  `gorm:"type:uuid;not null;column:car_id"` // references trucks; legacy column name
	DeliveryID *uuid.UUID `gorm:"type:uuid"`

	FineType    string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	FineDate    time.Time `gorm:"not null;index"`

	FineCost        int64  `gorm:"not null"`
	PaidAmount      int64  `gorm:"not null;default:0"`
	RemainingAmount int64  `gorm:"not null"`
	PayStatus       string `gorm:"type:varchar(20);not null;default:'unpaid';index"`

	// Period whose month contains FineDate. Set on create; backfilled by the
	// month-end closer for legacy rows that predate lazy period creation.
	PayrollPeriodID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment is a single settlement against one fine's remaining balance.
// Rows are immutable once written; corrections go through fine deletion.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FineID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollPeriodID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount          int64     `gorm:"not null"`
	PaymentDate     time.Time `gorm:"not null"`
	Notes           string    `gorm:"type:text"`

	// Recording principal. Nil for callers without a user account.
	CreatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

// Recompute rederives the balance fields from fine_cost and paid_amount.
// Call after any mutation of either figure.
func (f *Fine) Recompute() {
	f.RemainingAmount = f.FineCost - f.PaidAmount
	if f.RemainingAmount < 0 {
		f.RemainingAmount = 0
	}
	if f.RemainingAmount <= 0 {
		f.PayStatus = PayStatusPaid
	} else {
		f.PayStatus = PayStatusUnpaid
	}
}
