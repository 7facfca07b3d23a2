package truck

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

type Truck struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlateNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_truck_plate"`
	Model       string    `gorm:"type:varchar(60)"`
	CapacityKG  int64     `gorm:"type:bigint;not null;default:0"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
