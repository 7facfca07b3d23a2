package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecordStatusPending   = "pending"
	RecordStatusProcessed = "processed"
)

// PayrollRecord is the frozen month-end figure for one employee in one
// period: base salary, total fines charged in the window, and the derived
// net. Upserts key on (period, employee) so reprocessing a racing close
// cannot double-write.
type PayrollRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollPeriodID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_record_period_employee"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_record_period_employee"`

	OriginalSalary int64  `gorm:"not null"`
	TotalFines     int64  `gorm:"not null;default:0"`
	NetSalary      int64  `gorm:"not null"`
	Status         string `gorm:"type:varchar(20);not null;default:'pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayableEmployee is the slice of the employees table the closer needs.
type PayableEmployee struct {
	ID       uuid.UUID
	FullName string
	Role     string
	Salary   int64
}

func (PayableEmployee) TableName() string {
	return "employees"
}
