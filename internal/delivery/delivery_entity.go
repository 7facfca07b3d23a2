package delivery

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

type Delivery struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TruckID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	TurnboyID    *uuid.UUID `gorm:"type:uuid"`
	DeliveryDate time.Time  `gorm:"type:date;not null;index"`
	Origin       string     `gorm:"type:varchar(120)"`
	Destination  string     `gorm:"type:varchar(120);not null"`
	CargoDesc    string     `gorm:"type:text"`
	Income       int64      `gorm:"type:bigint;not null;default:0"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
