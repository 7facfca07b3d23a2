package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"type:varchar(120);not null"`
	Email      string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_user_email"`
	Password   string     `gorm:"type:varchar(255);not null"` // bcrypt hash
	Role       string     `gorm:"type:varchar(20);not null"`
	EmployeeID *uuid.UUID `gorm:"type:uuid"` // linked staff record, null for office accounts
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
