package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OpenComandaRequest opens a walk-in comanda (no appointment).
type OpenComandaRequest struct {
	ClientID string  `json:"client_id" validate:"required,uuid"`
	StaffID  *string `json:"staff_id"  validate:"omitempty,uuid"`
}

// AddItemRequest adds one line to an open comanda. ResponsibleStaffID is
// required unless the server runs with DEFAULT_RESPONSIBLE_STAFF enabled,
// in which case the comanda's default staff is used when absent.
type AddItemRequest struct {
	CatalogItemID      string  `json:"catalog_item_id"      validate:"required,uuid"`
	Quantity           int     `json:"quantity"             validate:"required,min=1"`
	ResponsibleStaffID *string `json:"responsible_staff_id" validate:"omitempty,uuid"`
}

type SetDiscountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"min=0"`
}

type ReassignResponsibleRequest struct {
	StaffID string `json:"staff_id" validate:"required,uuid"`
}

type SettleRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash debit credit pix transfer"`
}

// ComandaFilter is bound from the query string of GET /v1/comandas.
type ComandaFilter struct {
	Date   string `form:"date"`                 // YYYY-MM-DD; empty = today
	Status string `form:"status,default=open"`  // open | paid | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComandaItemResponse struct {
	ID                 string          `json:"id"`
	Kind               string          `json:"kind"`
	CatalogItemID      string          `json:"catalog_item_id"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	ResponsibleStaffID string          `json:"responsible_staff_id"`
}

type ComandaResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id"`
	AppointmentID *string               `json:"appointment_id"`
	StaffID       *string               `json:"staff_id"`
	Origin        string                `json:"origin"`
	Items         []ComandaItemResponse `json:"items"`
	Discount      decimal.Decimal       `json:"discount"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	PaymentMethod *string               `json:"payment_method"`
	CreatedAt     string                `json:"created_at"`
	ClosedAt      *string               `json:"closed_at"`
}

type ComandaListResponse struct {
	Data  []ComandaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// SettleResponse pairs the paid comanda with its ledger entry.
type SettleResponse struct {
	Comanda     ComandaResponse     `json:"comanda"`
	Transaction TransactionResponse `json:"transaction"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description"`
	ComandaID   *string         `json:"comanda_id"`
	Date        string          `json:"date"`
}

// TransactionFilter is bound from the query string of GET /v1/transactions.
type TransactionFilter struct {
	Date string `form:"date"` // YYYY-MM-DD; empty = today
	Type string `form:"type,default=all"`
}
