package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleDriver  = "driver"
	RoleTurnboy = "turnboy"
	RoleAdmin   = "admin"
	RoleViews   = "views"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(120);not null"`
	Phone    string    `gorm:"type:varchar(30)"`
	Role     string    `gorm:"type:varchar(20);not null;index"`
	Status   string    `gorm:"type:varchar(20);not null;default:'active';index"`

	// Salary is the base pay in whole shillings. It never changes because of
	// fines; net pay is always derived at read time.
	Salary int64 `gorm:"type:bigint;not null;default:0"`

	// At most one active employee per truck, enforced at assignment time.
	TruckID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
