package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	checkoutworkflows "github.com/eshop-labs/checkout-api/internal/platform/temporal/workflows/checkout"
)

var (
	_ ports.ReconciliationOrchestrator = (*TemporalReconciliation)(nil)
	_ ports.ReconciliationOrchestrator = (*InlineReconciliation)(nil)
)

// TemporalReconciliation starts reconciliation workflows on a Temporal cluster.
type TemporalReconciliation struct {
	client    client.Client
	taskQueue string
}

// NewTemporalReconciliation wires a Temporal client into the orchestrator.
func NewTemporalReconciliation(c client.Client) *TemporalReconciliation {
	return &TemporalReconciliation{client: c, taskQueue: checkoutworkflows.ReconciliationTaskQueue}
}

// ScheduleReconciliation starts the durable poll loop for a transaction.
// The workflow id is derived from the transaction id, so scheduling twice
// for the same transaction deduplicates on the cluster.
func (o *TemporalReconciliation) ScheduleReconciliation(ctx context.Context, transactionID uuid.UUID) error {
	if o == nil || o.client == nil {
		return errors.New("temporal reconciliation not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("transaction-reconciliation-%s", transactionID),
		TaskQueue: o.taskQueue,
	}
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.ReconciliationWorkflow,
		checkoutworkflows.ReconciliationWorkflowInput{
			TransactionID: transactionID.String(),
			TraceID:       traceIDFromContext(ctx),
		},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineReconciliation runs a single reconciliation pass without Temporal,
// useful for tests or dev fallbacks. Later status changes then rely on the
// status-poll endpoint or the reconciler sweep.
type InlineReconciliation struct {
	service ports.Service
}

// NewInlineReconciliation wraps the checkout service for synchronous execution.
func NewInlineReconciliation(service ports.Service) *InlineReconciliation {
	return &InlineReconciliation{service: service}
}

func (o *InlineReconciliation) ScheduleReconciliation(ctx context.Context, transactionID uuid.UUID) error {
	if o == nil || o.service == nil {
		return errors.New("inline reconciliation not configured")
	}
	_, err := o.service.ReconcileStatus(ctx, transactionID)
	return err
}

func traceIDFromContext(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
