package dto

import "github.com/shopspring/decimal"

// CreateBookingRequest is the body of POST /v1/bookings.
// Either client_id or client_name (with client_phone) must be present:
// free-text names are reserved for the explicit new-client path and require
// a phone number.
type CreateBookingRequest struct {
	ClientID    *string `json:"client_id"    validate:"omitempty,uuid"`
	ClientName  string  `json:"client_name"  validate:"omitempty,min=2"`
	ClientPhone string  `json:"client_phone" validate:"omitempty,min=8"`
	ServiceID   string  `json:"service_id"   validate:"required,uuid"`
	StaffID     string  `json:"staff_id"     validate:"required,uuid"`
	// StartTime in RFC 3339
	StartTime string `json:"start_time" validate:"required"`
}

type BookingResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Comanda     ComandaResponse     `json:"comanda"`
}

type AppointmentResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	StaffID   string `json:"staff_id"`
	ServiceID string `json:"service_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// AgendaFilter is bound from the query string of GET /v1/agenda.
type AgendaFilter struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
}

// ClientResponse mirrors model.Client for API consumers.
type ClientResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      *string         `json:"email"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	LastVisit  *string         `json:"last_visit"`
}

type CreateClientRequest struct {
	Name     string  `json:"name"     validate:"required,min=2"`
	Phone    string  `json:"phone"    validate:"required,min=8"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Birthday *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
}

// ClientFilter is bound from the query string of GET /v1/clients.
type ClientFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"  validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
