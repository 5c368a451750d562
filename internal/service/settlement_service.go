package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/apierror"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/dto"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/model"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/repository"
	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SettlementService performs the single irreversible operation that turns
// an open comanda into revenue, inventory movement, and a ledger entry.
type SettlementService interface {
	Settle(ctx context.Context, id uuid.UUID, paymentMethod string) (*dto.SettleResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error)
}

type settlementService struct {
	comandas     repository.ComandaRepository
	catalog      repository.CatalogRepository
	clients      repository.ClientRepository
	appointments repository.AppointmentRepository
	transactions repository.TransactionRepository
	movements    repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewSettlementService(
	comandas repository.ComandaRepository,
	catalog repository.CatalogRepository,
	clients repository.ClientRepository,
	appointments repository.AppointmentRepository,
	transactions repository.TransactionRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) SettlementService {
	return &settlementService{
		comandas:     comandas,
		catalog:      catalog,
		clients:      clients,
		appointments: appointments,
		transactions: transactions,
		movements:    movements,
		dispatcher:   dispatcher,
	}
}

// ── Settle ────────────────────────────────────────────────────────────────────
// One ACID transaction covers the full close:
//   1. rewrite the final item set (last full edit wins)
//   2. decrement stock for every product line
//   3. flip status open→paid guarded by the current status — the arbiter
//      between concurrent settle calls; the loser sees 0 rows and fails
//      with invalid_state, never a double decrement
//   4. stamp payment method / closed_at, update client spend, complete the
//      linked appointment
// The ledger posting happens after commit: if it fails the comanda is
// correctly paid and stock correctly decremented, but no ledger entry
// exists — surfaced as dependency_failure with the comanda id so the
// caller can retry the posting.

func (s *settlementService) Settle(ctx context.Context, id uuid.UUID, paymentMethod string) (*dto.SettleResponse, error) {
	comanda, err := s.comandas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "comanda %s not found", id)
	}
	if !comanda.Open() {
		return nil, apierror.Ef(apierror.KindInvalidState, "comanda %s is %s and cannot be settled", id, comanda.Status)
	}
	if len(comanda.Items) == 0 {
		return nil, apierror.Ef(apierror.KindInvalidState, "comanda %s has no line items", id)
	}

	// Totals are re-derived from the final item set — the persisted value
	// is never trusted over the invariant.
	comanda.RecomputeTotals()
	now := time.Now()
	comanda.PaymentMethod = &paymentMethod
	comanda.ClosedAt = &now

	txErr := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		if err := s.comandas.ReplaceItemsTx(tx, comanda.ID, comanda.Items); err != nil {
			return err
		}

		for _, item := range comanda.Items {
			if item.Kind != model.KindProduct {
				continue
			}
			rows, err := s.catalog.DecrementStockTx(tx, item.CatalogItemID, item.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apierror.Ef(apierror.KindConflict, "insufficient stock for %s", item.Name)
			}

			ref := comanda.ID
			if err := s.movements.CreateTx(tx, &model.StockMovement{
				ProductID:   item.CatalogItemID,
				Type:        "settlement",
				Quantity:    -item.Quantity,
				Reason:      fmt.Sprintf("comanda %s settled", comanda.ID),
				ReferenceID: &ref,
			}); err != nil {
				return err
			}
		}

		rows, err := s.comandas.MarkPaidTx(tx, comanda.ID, comanda)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Another settlement already won — abort with no stock effect
			return apierror.Ef(apierror.KindInvalidState, "comanda %s is no longer open", comanda.ID)
		}

		if comanda.AppointmentID != nil {
			if err := s.appointments.UpdateStatusTx(tx, *comanda.AppointmentID, model.AppointmentCompleted); err != nil {
				return err
			}
		}

		return s.clients.RecordVisitTx(tx, comanda.ClientID, comanda.Total, now)
	})
	if txErr != nil {
		var de *apierror.Error
		if errors.As(txErr, &de) {
			return nil, de
		}
		return nil, apierror.Wrap(apierror.KindInternal, "settlement transaction failed", txErr)
	}
	comanda.Status = model.ComandaPaid

	comandaRef := comanda.ID
	entry := model.Transaction{
		Type:        model.TransactionIncome,
		Amount:      comanda.Total,
		Method:      paymentMethod,
		Description: fmt.Sprintf("Comanda %s", comanda.ID),
		ComandaID:   &comandaRef,
		Date:        now,
	}
	if err := s.transactions.Create(ctx, &entry); err != nil {
		log.Error().Err(err).Str("comanda_id", comanda.ID.String()).
			Msg("comanda settled but ledger posting failed")
		return nil, &apierror.Error{
			Kind:      apierror.KindDependency,
			Msg:       "comanda settled but the ledger entry could not be posted; retry the posting",
			EntityIDs: map[string]string{"comanda_id": comanda.ID.String()},
			Err:       err,
		}
	}

	s.enqueueReceipt(ctx, comanda, &entry)

	return &dto.SettleResponse{
		Comanda:     *comandaToResponse(comanda),
		Transaction: *transactionToResponse(&entry),
	}, nil
}

// ── Cancel ────────────────────────────────────────────────────────────────────
// Terminal non-revenue path: no stock movement, no ledger entry.

func (s *settlementService) Cancel(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.comandas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Ef(apierror.KindNotFound, "comanda %s not found", id)
	}
	if !comanda.Open() {
		return nil, apierror.Ef(apierror.KindInvalidState, "comanda %s is %s and cannot be cancelled", id, comanda.Status)
	}

	// The guarded update is the arbiter: if a settlement committed after
	// our read, zero rows match and the comanda stays paid.
	rows, err := s.comandas.MarkCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apierror.Ef(apierror.KindInvalidState, "comanda %s was closed by another operation and cannot be cancelled", id)
	}
	if comanda.AppointmentID != nil {
		if err := s.appointments.UpdateStatus(ctx, *comanda.AppointmentID, model.AppointmentCancelled); err != nil {
			log.Warn().Err(err).Str("comanda_id", id.String()).
				Msg("comanda cancelled but appointment status update failed")
		}
	}

	comanda.Status = model.ComandaCancelled
	return comandaToResponse(comanda), nil
}

// ListTransactions returns the ledger entries for a day. The ledger is
// append-only; there is no update or delete path.
func (s *settlementService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error) {
	entries, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindInternal, "listing transactions failed", err)
	}
	out := make([]dto.TransactionResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *transactionToResponse(&entries[i]))
	}
	return out, nil
}

// enqueueReceipt dispatches a best-effort receipt email job when the client
// has an email address on file. Never fails the settlement.
func (s *settlementService) enqueueReceipt(ctx context.Context, comanda *model.Comanda, entry *model.Transaction) {
	if s.dispatcher == nil {
		return
	}
	client, err := s.clients.FindByID(ctx, comanda.ClientID)
	if err != nil || client.Email == nil || *client.Email == "" {
		return
	}
	_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptPayload{
		ComandaID:     comanda.ID.String(),
		TransactionID: entry.ID.String(),
		ClientName:    client.Name,
		ClientEmail:   *client.Email,
		Total:         comanda.Total.StringFixed(2),
		Method:        entry.Method,
	})
}
