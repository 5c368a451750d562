package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog item kinds.
const (
	KindService = "service"
	KindProduct = "product"
)

// CatalogItem is a sellable entry: a service (has a duration, no stock) or
// a product (has stock, no duration). Price and name are snapshotted into
// ComandaItem when added to a comanda, so later catalog edits never alter
// an open or closed comanda.
type CatalogItem struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind  string          `gorm:"type:varchar(10);not null;index"`
	Name  string          `gorm:"index;not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// DurationMin is set for services only
	DurationMin *int
	// Stock / MinStock apply to products only
	Stock     int  `gorm:"not null;default:0"`
	MinStock  int  `gorm:"not null;default:3"`
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
