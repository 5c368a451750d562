package repository

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComandaRepository interface {
	CreateTx(tx *gorm.DB, c *model.Comanda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	List(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error)

	// Item mutations — callers wrap these with UpdateTotalsTx in one tx so
	// the totals invariant holds after every persisted mutation.
	AddItemTx(tx *gorm.DB, item *model.ComandaItem) error
	DeleteItemTx(tx *gorm.DB, comandaID, itemID uuid.UUID) (int64, error)
	UpdateItemResponsibleTx(tx *gorm.DB, comandaID, itemID, staffID uuid.UUID) (int64, error)
	UpdateTotalsTx(tx *gorm.DB, id uuid.UUID, subtotal, discount, total decimal.Decimal) error

	// ReplaceItemsTx deletes the persisted item set and re-inserts the
	// given one. Settlement rewrites the full set on every attempt —
	// last full edit wins.
	ReplaceItemsTx(tx *gorm.DB, comandaID uuid.UUID, items []model.ComandaItem) error
	// MarkPaidTx flips status open→paid guarded by the current status.
	// Returns rows affected: 0 means another settlement won the race.
	MarkPaidTx(tx *gorm.DB, id uuid.UUID, c *model.Comanda) (int64, error)
	// MarkCancelled flips status open→cancelled with the same guard, so a
	// settlement committing between the caller's read and this update
	// cannot be overwritten. Returns rows affected.
	MarkCancelled(ctx context.Context, id uuid.UUID) (int64, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) DB() *gorm.DB { return r.db }

func (r *comandaRepo) CreateTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Create(c).Error
}

func (r *comandaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).Preload("Items").First(&c, id).Error
	return &c, err
}

func (r *comandaRepo) List(ctx context.Context, filter dto.ComandaFilter) ([]model.Comanda, int64, error) {
	var comandas []model.Comanda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comanda{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&comandas).Error
	return comandas, total, err
}

func (r *comandaRepo) AddItemTx(tx *gorm.DB, item *model.ComandaItem) error {
	return tx.Create(item).Error
}

func (r *comandaRepo) DeleteItemTx(tx *gorm.DB, comandaID, itemID uuid.UUID) (int64, error) {
	res := tx.Where("id = ? AND comanda_id = ?", itemID, comandaID).Delete(&model.ComandaItem{})
	return res.RowsAffected, res.Error
}

func (r *comandaRepo) UpdateItemResponsibleTx(tx *gorm.DB, comandaID, itemID, staffID uuid.UUID) (int64, error) {
	res := tx.Model(&model.ComandaItem{}).
		Where("id = ? AND comanda_id = ?", itemID, comandaID).
		Update("responsible_staff_id", staffID)
	return res.RowsAffected, res.Error
}

func (r *comandaRepo) UpdateTotalsTx(tx *gorm.DB, id uuid.UUID, subtotal, discount, total decimal.Decimal) error {
	return tx.Model(&model.Comanda{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subtotal": subtotal,
		"discount": discount,
		"total":    total,
	}).Error
}

func (r *comandaRepo) ReplaceItemsTx(tx *gorm.DB, comandaID uuid.UUID, items []model.ComandaItem) error {
	if err := tx.Where("comanda_id = ?", comandaID).Delete(&model.ComandaItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ComandaID = comandaID
	}
	return tx.Create(&items).Error
}

func (r *comandaRepo) MarkPaidTx(tx *gorm.DB, id uuid.UUID, c *model.Comanda) (int64, error) {
	res := tx.Model(&model.Comanda{}).
		Where("id = ? AND status = ?", id, model.ComandaOpen).
		Updates(map[string]interface{}{
			"status":         model.ComandaPaid,
			"subtotal":       c.Subtotal,
			"discount":       c.Discount,
			"total":          c.Total,
			"payment_method": c.PaymentMethod,
			"closed_at":      c.ClosedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *comandaRepo) MarkCancelled(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Comanda{}).
		Where("id = ? AND status = ?", id, model.ComandaOpen).
		Update("status", model.ComandaCancelled)
	return res.RowsAffected, res.Error
}
