package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a product. Created
// automatically on settlement and on manual adjustments.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null"` // "settlement" | "manual_adjustment"
	Quantity  int       `gorm:"not null"` // positive = in, negative = out
	Reason    string
	// ReferenceID links to the comanda that caused the movement, if any
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *CatalogItem `gorm:"foreignKey:ProductID"`
}
