package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is an immutable entry in the financial ledger.
// Exactly one income entry is created per settled comanda, never modified
// afterward — corrections are new entries.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method      string          `gorm:"type:varchar(20);not null"`
	Description string          `gorm:"not null"`
	// ComandaID links the entry to the settled comanda when applicable
	ComandaID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Date      time.Time  `gorm:"not null;index"`
	CreatedAt time.Time
}
