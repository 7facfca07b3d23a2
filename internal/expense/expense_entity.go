package expense

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TruckID     *uuid.UUID `gorm:"type:uuid;index"` // null for company-level expenses
	ExpenseType string     `gorm:"type:varchar(40);not null;index"`
	Amount      int64      `gorm:"type:bigint;not null"`
	ExpenseDate time.Time  `gorm:"type:date;not null;index"`
	Description string     `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
