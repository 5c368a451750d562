package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is the identity record for a person receiving services.
// Clients are created on demand during booking when no case-insensitive
// name match exists; the pipeline only references them, never deletes.
type Client struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Phone    string    `gorm:"not null"`
	Email    *string
	Birthday *time.Time
	// TotalSpent and LastVisit are maintained inside the settlement
	// transaction — they are never written from anywhere else.
	TotalSpent decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LastVisit  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
