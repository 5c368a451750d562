package service

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"

	"github.com/google/uuid"
)

type CatalogService interface {
	Create(ctx context.Context, req dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	List(ctx context.Context, filter dto.CatalogFilter) (*dto.CatalogListResponse, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if req.Kind == model.KindService && req.DurationMin == nil {
		return nil, &apierror.Error{
			Kind:   apierror.KindValidation,
			Msg:    "services require a duration",
			Fields: map[string]string{"duration_min": "required"},
		}
	}

	item := model.CatalogItem{
		Kind:     req.Kind,
		Name:     req.Name,
		Price:    req.Price,
		MinStock: req.MinStock,
		Active:   true,
	}
	if req.Kind == model.KindService {
		item.DurationMin = req.DurationMin
	} else {
		item.Stock = req.Stock
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return catalogItemToResponse(&item), nil
}

// Update edits catalog fields. Price changes apply to future comanda lines
// only — existing lines keep their snapshot. Stock is not editable here;
// use the inventory adjustment endpoint so every change leaves a movement.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "catalog item %s not found", id)
	}

	item.Name = req.Name
	item.Price = req.Price
	item.MinStock = req.MinStock
	item.Active = req.Active
	if item.Kind == model.KindService && req.DurationMin != nil {
		item.DurationMin = req.DurationMin
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return catalogItemToResponse(item), nil
}

func (s *catalogService) List(ctx context.Context, filter dto.CatalogFilter) (*dto.CatalogListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *catalogItemToResponse(&items[i]))
	}
	return &dto.CatalogListResponse{
		Data:  out,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
