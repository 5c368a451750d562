package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── Client repo ──────────────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
	visits  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	return r.CreateTx(nil, c)
}

func (r *stubClientRepo) CreateTx(_ *gorm.DB, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClientRepo) FindByName(_ context.Context, name string) (*model.Client, error) {
	for _, c := range r.clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *stubClientRepo) List(_ context.Context, _ dto.ClientFilter) ([]model.Client, int64, error) {
	out := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) RecordVisitTx(_ *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	c, ok := r.clients[id]
	if !ok {
		return errNotFound
	}
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.LastVisit = &at
	r.visits++
	return nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

// ── Staff repo ───────────────────────────────────────────────────────────────

type stubStaffRepo struct {
	staff map[uuid.UUID]*model.Staff
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{staff: make(map[uuid.UUID]*model.Staff)}
}

func (r *stubStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *stubStaffRepo) ListActive(_ context.Context) ([]model.Staff, error) {
	out := make([]model.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		if s.Status == "active" {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.StaffRepository = (*stubStaffRepo)(nil)

func seedStaff(r *stubStaffRepo, name string) *model.Staff {
	s := &model.Staff{
		ID:             uuid.New(),
		Name:           name,
		Role:           "barber",
		CommissionRate: decimal.NewFromInt(40),
		Status:         "active",
	}
	r.staff[s.ID] = s
	return s
}

// ── Catalog repo ─────────────────────────────────────────────────────────────

type stubCatalogRepo struct {
	items map[uuid.UUID]*model.CatalogItem
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{items: make(map[uuid.UUID]*model.CatalogItem)}
}

func (r *stubCatalogRepo) Create(_ context.Context, item *model.CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *stubCatalogRepo) List(_ context.Context, _ dto.CatalogFilter) ([]model.CatalogItem, int64, error) {
	out := make([]model.CatalogItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *stubCatalogRepo) Update(_ context.Context, item *model.CatalogItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubCatalogRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return errNotFound
	}
	if item.Stock+delta < 0 {
		return errors.New("stock would go negative")
	}
	item.Stock += delta
	return nil
}

func (r *stubCatalogRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	item, ok := r.items[id]
	if !ok {
		return 0, errNotFound
	}
	if item.Stock < qty {
		return 0, nil
	}
	item.Stock -= qty
	return 1, nil
}

func (r *stubCatalogRepo) LowStock(_ context.Context) ([]model.CatalogItem, error) {
	out := make([]model.CatalogItem, 0)
	for _, item := range r.items {
		if item.Kind == model.KindProduct && item.Active && item.Stock <= item.MinStock {
			out = append(out, *item)
		}
	}
	return out, nil
}

var _ repository.CatalogRepository = (*stubCatalogRepo)(nil)

func seedService(r *stubCatalogRepo, name string, price float64, durationMin int) *model.CatalogItem {
	item := &model.CatalogItem{
		ID:          uuid.New(),
		Kind:        model.KindService,
		Name:        name,
		Price:       decimal.NewFromFloat(price),
		DurationMin: &durationMin,
		Active:      true,
	}
	r.items[item.ID] = item
	return item
}

func seedProduct(r *stubCatalogRepo, name string, price float64, stock, minStock int) *model.CatalogItem {
	item := &model.CatalogItem{
		ID:       uuid.New(),
		Kind:     model.KindProduct,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		MinStock: minStock,
		Active:   true,
	}
	r.items[item.ID] = item
	return item
}

// ── Appointment repo ─────────────────────────────────────────────────────────

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	// ops records the order of agenda-lock and conflict-check calls.
	ops []string
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *stubAppointmentRepo) CreateTx(_ *gorm.DB, a *model.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments[a.ID] = a
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return a, nil
}

func (r *stubAppointmentRepo) ListByDate(_ context.Context, day time.Time) ([]model.Appointment, error) {
	out := make([]model.Appointment, 0)
	for _, a := range r.appointments {
		if a.StartTime.Year() == day.Year() && a.StartTime.YearDay() == day.YearDay() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) LockAgendaTx(_ *gorm.DB, staffID uuid.UUID) error {
	r.ops = append(r.ops, "lock:"+staffID.String())
	return nil
}

func (r *stubAppointmentRepo) CountConflicts(_ *gorm.DB, staffID uuid.UUID, start, end time.Time) (int64, error) {
	r.ops = append(r.ops, "conflicts:"+staffID.String())
	var n int64
	for _, a := range r.appointments {
		if a.StaffID != staffID {
			continue
		}
		if a.Status != model.AppointmentConfirmed && a.Status != model.AppointmentPending {
			continue
		}
		if a.StartTime.Before(end) && start.Before(a.EndTime) {
			n++
		}
	}
	return n, nil
}

func (r *stubAppointmentRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	a, ok := r.appointments[id]
	if !ok {
		return errNotFound
	}
	a.Status = status
	return nil
}

func (r *stubAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.UpdateStatusTx(nil, id, status)
}

func (r *stubAppointmentRepo) DB() *gorm.DB { return nil }

var _ repository.AppointmentRepository = (*stubAppointmentRepo)(nil)

// ── Comanda repo ─────────────────────────────────────────────────────────────

type stubComandaRepo struct {
	comandas map[uuid.UUID]*model.Comanda
}

func newStubComandaRepo() *stubComandaRepo {
	return &stubComandaRepo{comandas: make(map[uuid.UUID]*model.Comanda)}
}

func (r *stubComandaRepo) CreateTx(_ *gorm.DB, c *model.Comanda) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Items {
		if c.Items[i].ID == uuid.Nil {
			c.Items[i].ID = uuid.New()
		}
		c.Items[i].ComandaID = c.ID
	}
	r.comandas[c.ID] = c
	return nil
}

// FindByID returns a detached copy the way a fresh DB read would.
func (r *stubComandaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	cp.Items = append([]model.ComandaItem(nil), c.Items...)
	return &cp, nil
}

func (r *stubComandaRepo) List(_ context.Context, _ dto.ComandaFilter) ([]model.Comanda, int64, error) {
	out := make([]model.Comanda, 0, len(r.comandas))
	for _, c := range r.comandas {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubComandaRepo) AddItemTx(_ *gorm.DB, item *model.ComandaItem) error {
	c, ok := r.comandas[item.ComandaID]
	if !ok {
		return errNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	c.Items = append(c.Items, *item)
	return nil
}

func (r *stubComandaRepo) DeleteItemTx(_ *gorm.DB, comandaID, itemID uuid.UUID) (int64, error) {
	c, ok := r.comandas[comandaID]
	if !ok {
		return 0, errNotFound
	}
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubComandaRepo) UpdateItemResponsibleTx(_ *gorm.DB, comandaID, itemID, staffID uuid.UUID) (int64, error) {
	c, ok := r.comandas[comandaID]
	if !ok {
		return 0, errNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].ResponsibleStaffID = staffID
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubComandaRepo) UpdateTotalsTx(_ *gorm.DB, id uuid.UUID, subtotal, discount, total decimal.Decimal) error {
	c, ok := r.comandas[id]
	if !ok {
		return errNotFound
	}
	c.Subtotal = subtotal
	c.Discount = discount
	c.Total = total
	return nil
}

func (r *stubComandaRepo) ReplaceItemsTx(_ *gorm.DB, comandaID uuid.UUID, items []model.ComandaItem) error {
	c, ok := r.comandas[comandaID]
	if !ok {
		return errNotFound
	}
	replaced := make([]model.ComandaItem, len(items))
	copy(replaced, items)
	for i := range replaced {
		if replaced[i].ID == uuid.Nil {
			replaced[i].ID = uuid.New()
		}
		replaced[i].ComandaID = comandaID
	}
	c.Items = replaced
	return nil
}

func (r *stubComandaRepo) MarkPaidTx(_ *gorm.DB, id uuid.UUID, paid *model.Comanda) (int64, error) {
	c, ok := r.comandas[id]
	if !ok {
		return 0, errNotFound
	}
	if c.Status != model.ComandaOpen {
		return 0, nil
	}
	c.Status = model.ComandaPaid
	c.PaymentMethod = paid.PaymentMethod
	c.ClosedAt = paid.ClosedAt
	c.Subtotal = paid.Subtotal
	c.Discount = paid.Discount
	c.Total = paid.Total
	return 1, nil
}

func (r *stubComandaRepo) MarkCancelled(_ context.Context, id uuid.UUID) (int64, error) {
	c, ok := r.comandas[id]
	if !ok {
		return 0, errNotFound
	}
	if c.Status != model.ComandaOpen {
		return 0, nil
	}
	c.Status = model.ComandaCancelled
	return 1, nil
}

// UpdateStatus is a test helper to force a comanda into a given status.
func (r *stubComandaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	c, ok := r.comandas[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (r *stubComandaRepo) DB() *gorm.DB { return nil }

var _ repository.ComandaRepository = (*stubComandaRepo)(nil)

// ── Transaction repo ─────────────────────────────────────────────────────────

type stubTransactionRepo struct {
	transactions []model.Transaction
	failCreate   bool
}

func (r *stubTransactionRepo) Create(_ context.Context, t *model.Transaction) error {
	if r.failCreate {
		return errors.New("ledger unavailable")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *stubTransactionRepo) FindByComandaID(_ context.Context, comandaID uuid.UUID) (*model.Transaction, error) {
	for i := range r.transactions {
		if r.transactions[i].ComandaID != nil && *r.transactions[i].ComandaID == comandaID {
			return &r.transactions[i], nil
		}
	}
	return nil, errNotFound
}

func (r *stubTransactionRepo) List(_ context.Context, _ dto.TransactionFilter) ([]model.Transaction, error) {
	return r.transactions, nil
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── Stock movement repo ──────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.StockMovement, error) {
	out := make([]model.StockMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)
