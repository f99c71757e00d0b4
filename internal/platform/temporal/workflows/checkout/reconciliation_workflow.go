package checkout

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	checkoutactivities "github.com/eshop-labs/checkout-api/internal/platform/temporal/activities/checkout"
)

const (
	// ReconciliationWorkflowName is the public identifier for registering the workflow.
	ReconciliationWorkflowName = "checkout.workflows.Reconciliation"
	// ReconciliationTaskQueue is the queue consumed by the worker processing reconciliations.
	ReconciliationTaskQueue = "TRANSACTION_RECONCILIATION"

	pollInterval = 15 * time.Second
	maxPolls     = 40
)

// ReconciliationWorkflowInput identifies the transaction left in a
// non-terminal state at creation time.
type ReconciliationWorkflowInput struct {
	TransactionID string
	TraceID       string
}

// ReconciliationWorkflow polls the gateway through the reconcile activity
// until the transaction reaches a terminal status or the poll budget runs
// out. The engine's compare-and-swap keeps repeated polls idempotent, so
// the workflow needs no state of its own.
func ReconciliationWorkflow(ctx workflow.Context, input ReconciliationWorkflowInput) (string, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ReconciliationWorkflow started", withTraceID(input.TraceID, "transactionId", input.TransactionID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var status string
	for attempt := 0; attempt < maxPolls; attempt++ {
		if err := workflow.ExecuteActivity(ctx, checkoutactivities.ReconcileActivityName, input.TransactionID).Get(ctx, &status); err != nil {
			logger.Error("ReconciliationWorkflow failed", withTraceID(input.TraceID, "transactionId", input.TransactionID, "error", err)...)
			return status, err
		}
		if checkoutdomain.Status(status).Terminal() {
			logger.Info("ReconciliationWorkflow completed", withTraceID(input.TraceID, "transactionId", input.TransactionID, "status", status)...)
			return status, nil
		}
		if err := workflow.Sleep(ctx, pollInterval); err != nil {
			return status, err
		}
	}
	logger.Warn("ReconciliationWorkflow exhausted poll budget", withTraceID(input.TraceID, "transactionId", input.TransactionID, "status", status)...)
	return status, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
