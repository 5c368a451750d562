package repository

import (
	"context"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListByDate(ctx context.Context, day time.Time) ([]model.Appointment, error)
	// LockAgendaTx takes a per-staff advisory lock held until the
	// transaction ends. Under READ COMMITTED two racing bookings would
	// each see zero conflicts; the lock serializes them so the second
	// one sees the first one's committed insert.
	LockAgendaTx(tx *gorm.DB, staffID uuid.UUID) error
	// CountConflicts counts confirmed/pending appointments for staff whose
	// [start_time, end_time) interval intersects [start, end). Callers
	// must hold the staff's agenda lock in the same transaction.
	CountConflicts(tx *gorm.DB, staffID uuid.UUID, start, end time.Time) (int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type appointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository { return &appointmentRepo{db: db} }

func (r *appointmentRepo) DB() *gorm.DB { return r.db }

func (r *appointmentRepo) CreateTx(tx *gorm.DB, a *model.Appointment) error {
	return tx.Create(a).Error
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).Preload("Client").Preload("Service").First(&a, id).Error
	return &a, err
}

func (r *appointmentRepo) ListByDate(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ? AND status <> ?", dayStart, dayEnd, model.AppointmentCancelled).
		Order("start_time ASC").
		Preload("Client").Preload("Service").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) LockAgendaTx(tx *gorm.DB, staffID uuid.UUID) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", staffID.String()).Error
}

func (r *appointmentRepo) CountConflicts(tx *gorm.DB, staffID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := tx.Model(&model.Appointment{}).
		Where("staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, []string{model.AppointmentConfirmed, model.AppointmentPending}, end, start).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Appointment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *appointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).Where("id = ?", id).Update("status", status).Error
}
