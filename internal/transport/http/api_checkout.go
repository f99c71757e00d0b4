package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutmapper "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/http/mapper"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

// CheckoutAPI wires HTTP transport with the checkout service and the
// reconciliation orchestrator.
type CheckoutAPI struct {
	service   checkoutports.Service
	workflows checkoutports.ReconciliationOrchestrator
	logger    *slog.Logger
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided service.
func NewCheckoutAPI(service checkoutports.Service, workflows checkoutports.ReconciliationOrchestrator, logger *slog.Logger) CheckoutAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return CheckoutAPI{service: service, workflows: workflows, logger: logger}
}

// Post /api/transactions
// Create a payment transaction for a product
func (api *CheckoutAPI) CreateTransaction(c *gin.Context) {
	var payload checkoutmapper.CreateTransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	transaction, err := api.service.CreateTransaction(c.Request.Context(), checkoutmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	api.scheduleFollowUp(c, transaction)
	c.JSON(http.StatusCreated, checkoutmapper.FromTransaction(transaction))
}

// scheduleFollowUp queues reconciliation for charges the gateway accepted but
// has not yet settled. Scheduling failures are logged, not surfaced: the
// transaction itself was created.
func (api *CheckoutAPI) scheduleFollowUp(c *gin.Context, transaction *domain.Transaction) {
	if api.workflows == nil || transaction == nil {
		return
	}
	if transaction.Status != domain.StatusPending || transaction.GatewayID == "" {
		return
	}
	if err := api.workflows.ScheduleReconciliation(c.Request.Context(), transaction.ID); err != nil {
		api.logger.WarnContext(c.Request.Context(), "failed to schedule reconciliation",
			slog.String("transaction_id", transaction.ID.String()),
			slog.String("error", err.Error()))
	}
}

// Get /api/transactions/:id
// Find transaction by ID
func (api *CheckoutAPI) GetTransactionById(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	transaction, err := api.service.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutmapper.FromTransaction(transaction))
}

// Get /api/transactions/:id/status
// Reconcile and report the current transaction status
func (api *CheckoutAPI) GetTransactionStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	transaction, err := api.service.ReconcileStatus(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutmapper.FromTransactionStatus(transaction))
}

// Get /api/transactions
// List transactions with optional status/customer/time filters
func (api *CheckoutAPI) ListTransactions(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	transactions, err := api.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkoutmapper.FromTransactionList(transactions))
}

func parseListFilter(c *gin.Context) (checkoutports.ListFilter, error) {
	var filter checkoutports.ListFilter
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		switch status {
		case domain.StatusPending, domain.StatusApproved, domain.StatusDeclined, domain.StatusError:
			filter.Status = &status
		default:
			return checkoutports.ListFilter{}, fmt.Errorf("unknown status %q", raw)
		}
	}
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return checkoutports.ListFilter{}, err
		}
		filter.CustomerID = &customerID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return checkoutports.ListFilter{}, err
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return checkoutports.ListFilter{}, err
		}
		filter.To = &to
	}
	return filter, nil
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.UUID{}, false
	}
	return id, true
}
