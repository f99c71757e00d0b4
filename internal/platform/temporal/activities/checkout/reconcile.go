package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

// ReconcileActivityName runs one reconciliation pass for a transaction.
const ReconcileActivityName = "checkout.activities.Reconcile"

// Activities groups activities operating on the checkout bounded context.
type Activities struct {
	service checkoutports.Service
}

// NewActivities wires the checkout service into the Temporal activities bundle.
func NewActivities(service checkoutports.Service) *Activities {
	return &Activities{service: service}
}

// Reconcile pulls the gateway status for a transaction and returns the
// status the transaction landed on. Gateway failures return an error so the
// activity retry policy kicks in.
func (a *Activities) Reconcile(ctx context.Context, transactionID string) (string, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("reconcile activity not initialized", "transactionId", transactionID)
		return "", errors.New("reconcile activity not initialized")
	}
	id, err := uuid.Parse(transactionID)
	if err != nil {
		return "", err
	}
	logger.Info("Reconcile activity started", "transactionId", transactionID)
	transaction, err := a.service.ReconcileStatus(ctx, id)
	if err != nil {
		logger.Error("Reconcile activity failed", "transactionId", transactionID, "error", err)
		return "", err
	}
	logger.Info("Reconcile activity completed", "transactionId", transactionID, "status", string(transaction.Status))
	return string(transaction.Status), nil
}
