package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: mails a plain-text payment
// confirmation to the client after a comanda is settled.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/augustosanchesmanager-ux/sou-manager-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

type ReceiptWorker struct {
	mailer *infra.Mailer
}

func NewReceiptWorker(mailer *infra.Mailer) *ReceiptWorker {
	return &ReceiptWorker{mailer: mailer}
}

// Process sends the receipt email. Returning an error requeues the job
// until the retry budget is exhausted, after which it lands in the DLQ.
func (w *ReceiptWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReceiptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if payload.ClientEmail == "" {
		log.Warn().Str("comanda_id", payload.ComandaID).Msg("receipt_worker: empty client_email — skipping")
		return nil
	}

	subject := "Payment receipt"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %s (%s).\nReference: %s\n\nThank you for your visit!",
		payload.ClientName, payload.Total, payload.Method, payload.TransactionID,
	)
	if err := w.mailer.SendReceipt(payload.ClientEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", payload.ClientEmail).Msg("receipt_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ClientEmail).Str("comanda_id", payload.ComandaID).
		Msg("receipt_worker: receipt sent")
	return nil
}
