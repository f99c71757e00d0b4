package ports

import (
	"context"

	"github.com/google/uuid"
)

// ReconciliationOrchestrator schedules follow-up status reconciliation for a
// transaction that left creation in a non-terminal state.
type ReconciliationOrchestrator interface {
	ScheduleReconciliation(ctx context.Context, transactionID uuid.UUID) error
}
