package service

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"

	"github.com/google/uuid"
)

// InventoryService covers the reorder workflow: manual stock adjustments
// with an audit trail, and the low-stock alert list.
type InventoryService interface {
	AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.CatalogItemResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)
}

type inventoryService struct {
	catalog   repository.CatalogRepository
	movements repository.StockMovementRepository
}

func NewInventoryService(catalog repository.CatalogRepository, movements repository.StockMovementRepository) InventoryService {
	return &inventoryService{catalog: catalog, movements: movements}
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.CatalogItemResponse, error) {
	item, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "product %s not found", productID)
	}
	if item.Kind != model.KindProduct {
		return nil, apierror.Ef(apierror.KindValidation, "%s is a service and has no stock", item.Name)
	}
	if item.Stock+req.Delta < 0 {
		return nil, apierror.Ef(apierror.KindConflict, "adjustment would drive stock of %s below zero", item.Name)
	}

	if err := s.catalog.AdjustStock(ctx, productID, req.Delta); err != nil {
		return nil, err
	}
	if err := s.movements.Create(ctx, &model.StockMovement{
		ProductID: productID,
		Type:      "manual_adjustment",
		Quantity:  req.Delta,
		Reason:    req.Reason,
	}); err != nil {
		return nil, &apierror.Error{
			Kind:      apierror.KindDependency,
			Msg:       "stock adjusted but the movement record could not be written",
			EntityIDs: map[string]string{"product_id": productID.String()},
			Err:       err,
		}
	}

	item.Stock += req.Delta
	return catalogItemToResponse(item), nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	items, err := s.catalog.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID: item.ID.String(),
			Name:      item.Name,
			Stock:     item.Stock,
			MinStock:  item.MinStock,
		})
	}
	return alerts, nil
}
