package repository

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository writes immutable ledger entries. There is no
// Update or Delete on purpose — corrections are new entries.
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	FindByComandaID(ctx context.Context, comandaID uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByComandaID(ctx context.Context, comandaID uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Where("comanda_id = ?", comandaID).First(&t).Error
	return &t, err
}

func (r *transactionRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.Type != "" && filter.Type != "all" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Date != "" {
		q = q.Where("DATE(date) = ?", filter.Date)
	} else {
		q = q.Where("DATE(date) = CURRENT_DATE")
	}

	var txs []model.Transaction
	err := q.Order("date DESC").Find(&txs).Error
	return txs, err
}
