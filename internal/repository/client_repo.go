package repository

import (
	"context"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClientRepository defines the data access contract for clients.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	CreateTx(tx *gorm.DB, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// FindByName performs a case-insensitive exact match
	FindByName(ctx context.Context, name string) (*model.Client, error)
	List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error)
	// RecordVisitTx adds amount to total_spent and stamps last_visit.
	// Called inside the settlement transaction only.
	RecordVisitTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) CreateTx(tx *gorm.DB, c *model.Client) error {
	return tx.Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clientRepo) FindByName(ctx context.Context, name string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	return &c, err
}

func (r *clientRepo) List(ctx context.Context, filter dto.ClientFilter) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Client{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&clients).Error
	return clients, total, err
}

func (r *clientRepo) RecordVisitTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	return tx.Model(&model.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_spent": gorm.Expr("total_spent + ?", amount),
		"last_visit":  at,
	}).Error
}
