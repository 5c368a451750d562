package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Staff is a barber or other professional that can be booked and can be
// responsible for comanda line items (commission attribution).
// Status: "active" | "inactive"
type Staff struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Role string    `gorm:"type:varchar(30);not null;default:'barber'"`
	// CommissionRate is a percentage (e.g. 40.00 = 40%)
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
