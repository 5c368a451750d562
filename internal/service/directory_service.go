package service

import (
	"context"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"
)

// ─── Clients ─────────────────────────────────────────────────────────────────

type ClientService interface {
	Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	List(ctx context.Context, filter dto.ClientFilter) ([]dto.ClientResponse, int64, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client := model.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if req.Birthday != nil {
		bd, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, apierror.E(apierror.KindValidation, "birthday must be YYYY-MM-DD")
		}
		client.Birthday = &bd
	}
	if err := s.repo.Create(ctx, &client); err != nil {
		return nil, apierror.Wrap(apierror.KindInternal, "creating client failed", err)
	}
	return clientToResponse(&client), nil
}

func (s *clientService) List(ctx context.Context, filter dto.ClientFilter) ([]dto.ClientResponse, int64, error) {
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apierror.Wrap(apierror.KindInternal, "listing clients failed", err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, *clientToResponse(&clients[i]))
	}
	return out, total, nil
}

// ─── Staff ───────────────────────────────────────────────────────────────────

type StaffService interface {
	ListActive(ctx context.Context) ([]dto.StaffResponse, error)
}

type staffService struct {
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) ListActive(ctx context.Context) ([]dto.StaffResponse, error) {
	staff, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindInternal, "listing staff failed", err)
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for _, m := range staff {
		out = append(out, dto.StaffResponse{
			ID:             m.ID.String(),
			Name:           m.Name,
			Role:           m.Role,
			CommissionRate: m.CommissionRate,
			Status:         m.Status,
		})
	}
	return out, nil
}
