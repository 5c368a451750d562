package repository

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(ctx context.Context, item *model.CatalogItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]model.CatalogItem, int64, error)
	Update(ctx context.Context, item *model.CatalogItem) error
	// AdjustStock moves stock outside any settlement (manual restock /
	// write-off). Guarded so stock never goes negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	// DecrementStockTx is called inside the settlement transaction only.
	// Fails (0 rows) when the decrement would drive stock negative.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
	LowStock(ctx context.Context) ([]model.CatalogItem, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) Create(ctx context.Context, item *model.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	var item model.CatalogItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *catalogRepo) List(ctx context.Context, filter dto.CatalogFilter) ([]model.CatalogItem, int64, error) {
	var items []model.CatalogItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CatalogItem{})

	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *catalogRepo) Update(ctx context.Context, item *model.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *catalogRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.CatalogItem{}).
		Where("id = ? AND kind = 'product' AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *catalogRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.CatalogItem{}).
		Where("id = ? AND kind = 'product' AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *catalogRepo) LowStock(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := r.db.WithContext(ctx).
		Where("kind = 'product' AND active = true AND stock <= min_stock").
		Order("stock ASC").
		Find(&items).Error
	return items, err
}
