package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comanda statuses. A comanda is mutable only while open; "paid" and
// "cancelled" are terminal.
const (
	ComandaOpen      = "open"
	ComandaPaid      = "paid"
	ComandaCancelled = "cancelled"
)

// Comanda origins.
const (
	OriginScheduled = "scheduled"
	OriginWalkIn    = "walk_in"
)

// Comanda is the accumulating order tied to a client visit. It is the sole
// unit of settlement — never split or merged. Origin distinguishes comandas
// opened by a booking (AppointmentID set) from ad-hoc walk-ins.
type Comanda struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	// StaffID is the default responsible professional for new line items
	StaffID  *uuid.UUID      `gorm:"type:uuid"`
	Origin   string          `gorm:"type:varchar(10);not null"`
	Discount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status   string          `gorm:"type:varchar(20);not null;default:'open';index"`
	// PaymentMethod and ClosedAt are stamped by settlement
	PaymentMethod *string `gorm:"type:varchar(20)"`
	ClosedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items       []ComandaItem `gorm:"foreignKey:ComandaID"`
	Client      *Client       `gorm:"foreignKey:ClientID"`
	Appointment *Appointment  `gorm:"foreignKey:AppointmentID"`
}

// Open reports whether the comanda still accepts mutations.
func (c *Comanda) Open() bool { return c.Status == ComandaOpen }

// RecomputeTotals rebuilds Subtotal and Total from the current item set.
// Total is clamped at zero — a discount can never make it negative.
func (c *Comanda) RecomputeTotals() {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.Subtotal = subtotal
	total := subtotal.Sub(c.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	c.Total = total
}

// ComandaItem is one priced, quantified line on a comanda. Name and
// UnitPrice are snapshots taken when the item was added — immune to later
// catalog changes. Each line carries its own responsible staff for
// commission splitting, independent of the comanda's default staff.
type ComandaItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind               string          `gorm:"type:varchar(10);not null"`
	CatalogItemID      uuid.UUID       `gorm:"type:uuid;not null"`
	Name               string          `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity           int             `gorm:"not null;default:1"`
	ResponsibleStaffID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt          time.Time
}
