package dto

import "github.com/shopspring/decimal"

// CatalogFilter is bound from the query string of GET /v1/catalog.
type CatalogFilter struct {
	Kind   string `form:"kind"`   // service | product | empty = all
	Name   string `form:"name"`   // ILIKE substring match
	Active string `form:"active"` // "false" = inactive, "all", default active
	Page   int    `form:"page,default=1"  validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateCatalogItemRequest struct {
	Kind  string          `json:"kind"  validate:"required,oneof=service product"`
	Name  string          `json:"name"  validate:"required,min=2"`
	Price decimal.Decimal `json:"price" validate:"required"`
	// DurationMin is required for services, ignored for products
	DurationMin *int `json:"duration_min" validate:"omitempty,min=5"`
	Stock       int  `json:"stock"        validate:"min=0"`
	MinStock    int  `json:"min_stock"    validate:"min=0"`
}

type UpdateCatalogItemRequest struct {
	Name        string          `json:"name"  validate:"required,min=2"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	DurationMin *int            `json:"duration_min" validate:"omitempty,min=5"`
	MinStock    int             `json:"min_stock"    validate:"min=0"`
	Active      bool            `json:"active"`
}

type AdjustStockRequest struct {
	// Delta is positive for restock, negative for manual write-off
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type CatalogItemResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	DurationMin *int            `json:"duration_min,omitempty"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Active      bool            `json:"active"`
}

type CatalogListResponse struct {
	Data  []CatalogItemResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// StockAlertResponse flags a product at or below its reorder threshold.
type StockAlertResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// StaffResponse mirrors model.Staff for API consumers.
type StaffResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         string          `json:"status"`
}
