package service

import (
	"context"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/config"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComandaService maintains the accumulating order while it is open.
// Every mutation re-derives subtotal/total and persists them in the same
// transaction as the item change, so the stored totals always satisfy
// total = max(0, subtotal - discount).
type ComandaService interface {
	Open(ctx context.Context, req dto.OpenComandaRequest) (*dto.ComandaResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error)
	List(ctx context.Context, filter dto.ComandaFilter) (*dto.ComandaListResponse, error)
	AddItem(ctx context.Context, id uuid.UUID, req dto.AddItemRequest) (*dto.ComandaResponse, error)
	RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*dto.ComandaResponse, error)
	SetDiscount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*dto.ComandaResponse, error)
	ReassignResponsible(ctx context.Context, id, itemID, staffID uuid.UUID) (*dto.ComandaResponse, error)
}

type comandaService struct {
	repo    repository.ComandaRepository
	catalog repository.CatalogRepository
	clients repository.ClientRepository
	staff   repository.StaffRepository
	cfg     *config.Config
}

func NewComandaService(
	repo repository.ComandaRepository,
	catalog repository.CatalogRepository,
	clients repository.ClientRepository,
	staff repository.StaffRepository,
	cfg *config.Config,
) ComandaService {
	return &comandaService{repo: repo, catalog: catalog, clients: clients, staff: staff, cfg: cfg}
}

// Open creates an ad-hoc walk-in comanda with no appointment attached.
func (s *comandaService) Open(ctx context.Context, req dto.OpenComandaRequest) (*dto.ComandaResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "client_id is not a valid uuid")
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "client %s not found", req.ClientID)
	}

	comanda := model.Comanda{
		ClientID: clientID,
		Origin:   model.OriginWalkIn,
		Status:   model.ComandaOpen,
	}
	if req.StaffID != nil {
		staffID, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, apierror.E(apierror.KindValidation, "staff_id is not a valid uuid")
		}
		professional, err := s.staff.FindByID(ctx, staffID)
		if err != nil || professional.Status != "active" {
			return nil, apierror.Ef(apierror.KindNotFound, "staff %s not found or inactive", *req.StaffID)
		}
		comanda.StaffID = &staffID
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, &comanda)
	}); err != nil {
		return nil, err
	}
	return comandaToResponse(&comanda), nil
}

func (s *comandaService) Get(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "comanda %s not found", id)
	}
	return comandaToResponse(comanda), nil
}

func (s *comandaService) List(ctx context.Context, filter dto.ComandaFilter) (*dto.ComandaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	comandas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		items = append(items, *comandaToResponse(&comandas[i]))
	}
	return &dto.ComandaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// AddItem appends one line, snapshotting the catalog item's current price
// and name. The snapshot is the system's isolation guarantee: later catalog
// edits never touch this line.
func (s *comandaService) AddItem(ctx context.Context, id uuid.UUID, req dto.AddItemRequest) (*dto.ComandaResponse, error) {
	comanda, err := s.mutableComanda(ctx, id)
	if err != nil {
		return nil, err
	}

	catalogID, err := uuid.Parse(req.CatalogItemID)
	if err != nil {
		return nil, apierror.E(apierror.KindValidation, "catalog_item_id is not a valid uuid")
	}
	item, err := s.catalog.FindByID(ctx, catalogID)
	if err != nil || !item.Active {
		return nil, apierror.Ef(apierror.KindNotFound, "catalog item %s not found or inactive", req.CatalogItemID)
	}

	responsibleID, err := s.resolveResponsible(ctx, comanda, req.ResponsibleStaffID)
	if err != nil {
		return nil, err
	}

	line := model.ComandaItem{
		ComandaID:          comanda.ID,
		Kind:               item.Kind,
		CatalogItemID:      item.ID,
		Name:               item.Name,
		UnitPrice:          item.Price,
		Quantity:           req.Quantity,
		ResponsibleStaffID: responsibleID,
	}
	comanda.Items = append(comanda.Items, line)
	comanda.RecomputeTotals()

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AddItemTx(tx, &comanda.Items[len(comanda.Items)-1]); err != nil {
			return err
		}
		return s.repo.UpdateTotalsTx(tx, comanda.ID, comanda.Subtotal, comanda.Discount, comanda.Total)
	}); err != nil {
		return nil, err
	}
	return comandaToResponse(comanda), nil
}

// RemoveItem drops one line. Removing the last item leaves the comanda
// open with a zero total — it does not auto-cancel.
func (s *comandaService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.mutableComanda(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	remaining := comanda.Items[:0]
	for _, item := range comanda.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return nil, apierror.Ef(apierror.KindNotFound, "line item %s not found on comanda %s", itemID, id)
	}
	comanda.Items = remaining
	comanda.RecomputeTotals()

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.DeleteItemTx(tx, comanda.ID, itemID); err != nil {
			return err
		}
		return s.repo.UpdateTotalsTx(tx, comanda.ID, comanda.Subtotal, comanda.Discount, comanda.Total)
	}); err != nil {
		return nil, err
	}
	return comandaToResponse(comanda), nil
}

// SetDiscount applies a non-negative discount. Total clamps at zero
// regardless of the discount magnitude.
func (s *comandaService) SetDiscount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*dto.ComandaResponse, error) {
	if amount.IsNegative() {
		return nil, apierror.E(apierror.KindValidation, "discount must be >= 0")
	}
	comanda, err := s.mutableComanda(ctx, id)
	if err != nil {
		return nil, err
	}

	comanda.Discount = amount
	comanda.RecomputeTotals()

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTotalsTx(tx, comanda.ID, comanda.Subtotal, comanda.Discount, comanda.Total)
	}); err != nil {
		return nil, err
	}
	return comandaToResponse(comanda), nil
}

// ReassignResponsible changes commission attribution for one line without
// altering its price.
func (s *comandaService) ReassignResponsible(ctx context.Context, id, itemID, staffID uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.mutableComanda(ctx, id)
	if err != nil {
		return nil, err
	}

	professional, err := s.staff.FindByID(ctx, staffID)
	if err != nil || professional.Status != "active" {
		return nil, apierror.Ef(apierror.KindNotFound, "staff %s not found or inactive", staffID)
	}

	found := false
	for i := range comanda.Items {
		if comanda.Items[i].ID == itemID {
			comanda.Items[i].ResponsibleStaffID = staffID
			found = true
			break
		}
	}
	if !found {
		return nil, apierror.Ef(apierror.KindNotFound, "line item %s not found on comanda %s", itemID, id)
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		_, err := s.repo.UpdateItemResponsibleTx(tx, comanda.ID, itemID, staffID)
		return err
	}); err != nil {
		return nil, err
	}
	return comandaToResponse(comanda), nil
}

// mutableComanda loads the comanda and rejects any mutation attempt when it
// is no longer open — detected before any write.
func (s *comandaService) mutableComanda(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	comanda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "comanda %s not found", id)
	}
	if !comanda.Open() {
		return nil, apierror.Ef(apierror.KindInvalidState, "comanda %s is %s and can no longer be modified", id, comanda.Status)
	}
	return comanda, nil
}

// resolveResponsible applies the responsible-staff policy: the field is
// required unless DEFAULT_RESPONSIBLE_STAFF is enabled, in which case the
// comanda's default staff is used when the request omits it.
func (s *comandaService) resolveResponsible(ctx context.Context, comanda *model.Comanda, raw *string) (uuid.UUID, error) {
	if raw != nil {
		staffID, err := uuid.Parse(*raw)
		if err != nil {
			return uuid.Nil, apierror.E(apierror.KindValidation, "responsible_staff_id is not a valid uuid")
		}
		professional, err := s.staff.FindByID(ctx, staffID)
		if err != nil || professional.Status != "active" {
			return uuid.Nil, apierror.Ef(apierror.KindNotFound, "staff %s not found or inactive", *raw)
		}
		return staffID, nil
	}

	if s.cfg != nil && s.cfg.DefaultResponsibleStaff && comanda.StaffID != nil {
		return *comanda.StaffID, nil
	}

	return uuid.Nil, &apierror.Error{
		Kind:   apierror.KindValidation,
		Msg:    "responsible_staff_id is required",
		Fields: map[string]string{"responsible_staff_id": "required"},
	}
}
