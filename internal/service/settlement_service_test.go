package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlementFixture struct {
	svc          service.SettlementService
	comandas     *stubComandaRepo
	catalog      *stubCatalogRepo
	clients      *stubClientRepo
	appointments *stubAppointmentRepo
	transactions *stubTransactionRepo
	movements    *stubMovementRepo
}

func buildSettlementSvc() *settlementFixture {
	f := &settlementFixture{
		comandas:     newStubComandaRepo(),
		catalog:      newStubCatalogRepo(),
		clients:      newStubClientRepo(),
		appointments: newStubAppointmentRepo(),
		transactions: &stubTransactionRepo{},
		movements:    &stubMovementRepo{},
	}
	f.svc = service.NewSettlementService(
		f.comandas, f.catalog, f.clients, f.appointments, f.transactions, f.movements, nil)
	return f
}

// seedOpenComanda stores an open comanda with one service line and,
// optionally, one product line of the given quantity.
func seedOpenComanda(f *settlementFixture, product *model.CatalogItem, productQty int) *model.Comanda {
	client := seedClient(f.clients, "Cliente Fechamento")
	staffID := uuid.New()

	items := []model.ComandaItem{{
		ID:                 uuid.New(),
		Kind:               model.KindService,
		CatalogItemID:      uuid.New(),
		Name:               "Corte",
		UnitPrice:          decimal.NewFromInt(45),
		Quantity:           1,
		ResponsibleStaffID: staffID,
	}}
	if product != nil {
		items = append(items, model.ComandaItem{
			ID:                 uuid.New(),
			Kind:               model.KindProduct,
			CatalogItemID:      product.ID,
			Name:               product.Name,
			UnitPrice:          product.Price,
			Quantity:           productQty,
			ResponsibleStaffID: staffID,
		})
	}

	comanda := &model.Comanda{
		ID:       uuid.New(),
		ClientID: client.ID,
		Origin:   model.OriginWalkIn,
		Status:   model.ComandaOpen,
		Items:    items,
	}
	comanda.RecomputeTotals()
	f.comandas.comandas[comanda.ID] = comanda
	return comanda
}

func TestSettle_HappyPath(t *testing.T) {
	f := buildSettlementSvc()
	pomada := seedProduct(f.catalog, "Pomada", 35, 10, 2)
	comanda := seedOpenComanda(f, pomada, 2)

	resp, err := f.svc.Settle(context.Background(), comanda.ID, "pix")
	require.NoError(t, err)

	// comanda closed with payment stamped
	assert.Equal(t, model.ComandaPaid, resp.Comanda.Status)
	require.NotNil(t, resp.Comanda.PaymentMethod)
	assert.Equal(t, "pix", *resp.Comanda.PaymentMethod)
	assert.NotNil(t, resp.Comanda.ClosedAt)
	assert.Equal(t, "115", resp.Comanda.Total.String()) // 45 + 2×35

	// stock decremented and movement recorded
	assert.Equal(t, 8, f.catalog.items[pomada.ID].Stock)
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, -2, f.movements.movements[0].Quantity)
	assert.Equal(t, "settlement", f.movements.movements[0].Type)

	// exactly one income ledger entry for the full total
	require.Len(t, f.transactions.transactions, 1)
	entry := f.transactions.transactions[0]
	assert.Equal(t, model.TransactionIncome, entry.Type)
	assert.Equal(t, "115", entry.Amount.String())
	assert.Equal(t, "pix", entry.Method)
	require.NotNil(t, entry.ComandaID)
	assert.Equal(t, comanda.ID, *entry.ComandaID)

	// client spend updated inside the same settlement
	client := f.clients.clients[comanda.ClientID]
	assert.Equal(t, "115", client.TotalSpent.String())
	assert.NotNil(t, client.LastVisit)
}

func TestSettle_InsufficientStockAbortsEverything(t *testing.T) {
	f := buildSettlementSvc()
	pomada := seedProduct(f.catalog, "Pomada", 35, 1, 2) // only 1 left
	comanda := seedOpenComanda(f, pomada, 3)

	_, err := f.svc.Settle(context.Background(), comanda.ID, "cash")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindConflict))

	// no ledger entry and no client spend
	assert.Empty(t, f.transactions.transactions)
	assert.Equal(t, decimal.Zero.String(), f.clients.clients[comanda.ClientID].TotalSpent.String())

	stored, _ := f.comandas.FindByID(context.Background(), comanda.ID)
	assert.Equal(t, model.ComandaOpen, stored.Status)
}

func TestSettle_SecondAttemptFails(t *testing.T) {
	f := buildSettlementSvc()
	pomada := seedProduct(f.catalog, "Pomada", 35, 10, 2)
	comanda := seedOpenComanda(f, pomada, 1)

	_, err := f.svc.Settle(context.Background(), comanda.ID, "cash")
	require.NoError(t, err)

	_, err = f.svc.Settle(context.Background(), comanda.ID, "credit")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInvalidState))

	// stock decremented once, one ledger entry, one visit recorded
	assert.Equal(t, 9, f.catalog.items[pomada.ID].Stock)
	assert.Len(t, f.transactions.transactions, 1)
	assert.Equal(t, 1, f.clients.visits)
}

func TestSettle_EmptyComandaRejected(t *testing.T) {
	f := buildSettlementSvc()
	client := seedClient(f.clients, "Cliente")
	comanda := &model.Comanda{ID: uuid.New(), ClientID: client.ID, Origin: model.OriginWalkIn, Status: model.ComandaOpen}
	f.comandas.comandas[comanda.ID] = comanda

	_, err := f.svc.Settle(context.Background(), comanda.ID, "cash")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInvalidState))
}

func TestSettle_CompletesLinkedAppointment(t *testing.T) {
	f := buildSettlementSvc()
	comanda := seedOpenComanda(f, nil, 0)

	appt := &model.Appointment{
		ID:        uuid.New(),
		ClientID:  comanda.ClientID,
		StaffID:   uuid.New(),
		ServiceID: uuid.New(),
		StartTime: time.Now(),
		EndTime:   time.Now().Add(30 * time.Minute),
		Status:    model.AppointmentConfirmed,
	}
	f.appointments.appointments[appt.ID] = appt
	comanda.AppointmentID = &appt.ID
	comanda.Origin = model.OriginScheduled

	_, err := f.svc.Settle(context.Background(), comanda.ID, "debit")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCompleted, appt.Status)
}

func TestSettle_LedgerFailureIsSurfacedWithComandaID(t *testing.T) {
	f := buildSettlementSvc()
	pomada := seedProduct(f.catalog, "Pomada", 35, 10, 2)
	comanda := seedOpenComanda(f, pomada, 1)
	f.transactions.failCreate = true

	_, err := f.svc.Settle(context.Background(), comanda.ID, "cash")
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindDependency))

	var de *apierror.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, comanda.ID.String(), de.EntityIDs["comanda_id"])

	// the settlement itself committed: comanda paid, stock decremented
	stored, _ := f.comandas.FindByID(context.Background(), comanda.ID)
	assert.Equal(t, model.ComandaPaid, stored.Status)
	assert.Equal(t, 9, f.catalog.items[pomada.ID].Stock)
}

func TestCancel_NoStockNoLedger(t *testing.T) {
	f := buildSettlementSvc()
	pomada := seedProduct(f.catalog, "Pomada", 35, 10, 2)
	comanda := seedOpenComanda(f, pomada, 2)

	resp, err := f.svc.Cancel(context.Background(), comanda.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComandaCancelled, resp.Status)

	assert.Equal(t, 10, f.catalog.items[pomada.ID].Stock)
	assert.Empty(t, f.transactions.transactions)
	assert.Empty(t, f.movements.movements)
}

func TestCancel_CancelsLinkedAppointment(t *testing.T) {
	f := buildSettlementSvc()
	comanda := seedOpenComanda(f, nil, 0)

	appt := &model.Appointment{ID: uuid.New(), Status: model.AppointmentConfirmed}
	f.appointments.appointments[appt.ID] = appt
	comanda.AppointmentID = &appt.ID

	_, err := f.svc.Cancel(context.Background(), comanda.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCancelled, appt.Status)
}

// settleBetweenReadRepo flips the stored comanda to paid right after a read,
// standing in for a settlement that commits between Cancel's precondition
// check and its status update.
type settleBetweenReadRepo struct {
	*stubComandaRepo
}

func (r *settleBetweenReadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	c, err := r.stubComandaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.comandas[id].Status = model.ComandaPaid
	return c, nil
}

func TestCancel_LosesToConcurrentSettle(t *testing.T) {
	f := buildSettlementSvc()
	comanda := seedOpenComanda(f, nil, 0)

	appt := &model.Appointment{ID: uuid.New(), Status: model.AppointmentCompleted}
	f.appointments.appointments[appt.ID] = appt
	comanda.AppointmentID = &appt.ID

	svc := service.NewSettlementService(
		&settleBetweenReadRepo{stubComandaRepo: f.comandas},
		f.catalog, f.clients, f.appointments, f.transactions, f.movements, nil)

	_, err := svc.Cancel(context.Background(), comanda.ID)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInvalidState))

	// paid is terminal: the losing cancel must not touch the comanda or
	// the completed appointment
	assert.Equal(t, model.ComandaPaid, comanda.Status)
	assert.Equal(t, model.AppointmentCompleted, appt.Status)
}

func TestCancel_PaidComandaRejected(t *testing.T) {
	f := buildSettlementSvc()
	comanda := seedOpenComanda(f, nil, 0)
	comanda.Status = model.ComandaPaid

	_, err := f.svc.Cancel(context.Background(), comanda.ID)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindInvalidState))
}
