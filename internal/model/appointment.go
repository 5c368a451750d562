package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment places a service on the per-staff time grid. EndTime is
// derived from the service duration at creation; StartTime is the anchor
// for grid placement. A staff member's confirmed appointments never
// overlap — the booking transaction rejects conflicts.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null"`
	StartTime time.Time `gorm:"not null;index"`
	EndTime   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'confirmed'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client  *Client      `gorm:"foreignKey:ClientID"`
	Staff   *Staff       `gorm:"foreignKey:StaffID"`
	Service *CatalogItem `gorm:"foreignKey:ServiceID"`
}
