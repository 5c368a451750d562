package repository

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	ListActive(ctx context.Context) ([]model.Staff, error)
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *staffRepo) ListActive(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Where("status = 'active'").Order("name ASC").Find(&staff).Error
	return staff, err
}
