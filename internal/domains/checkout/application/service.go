package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	customerdomain "github.com/eshop-labs/checkout-api/internal/domains/customers/domain"
	customerports "github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
	deliveryports "github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
	productports "github.com/eshop-labs/checkout-api/internal/domains/products/ports"
)

// Service is the transaction lifecycle engine. It creates transactions
// against inventory, submits them to the payment gateway, and reconciles
// later gateway status changes into local state exactly once.
type Service struct {
	transactions ports.Repository
	products     productports.Repository
	customers    customerports.Repository
	deliveries   deliveryports.Service
	gateway      ports.PaymentGateway
	logger       *slog.Logger
}

type Option func(*Service)

// WithLogger injects a slog logger. Partial failures after an approved
// charge are reported through it; without a logger they would be invisible.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(
	transactions ports.Repository,
	products productports.Repository,
	customers customerports.Repository,
	deliveries deliveryports.Service,
	gateway ports.PaymentGateway,
	opts ...Option,
) *Service {
	s := &Service{
		transactions: transactions,
		products:     products,
		customers:    customers,
		deliveries:   deliveries,
		gateway:      gateway,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateTransaction validates the request, checks stock, upserts the
// customer, persists a pending transaction, submits the charge, and applies
// the gateway result. Once the pending transaction is persisted the
// operation never returns an error for gateway failures; the caller
// observes a persisted ERROR status.
func (s *Service) CreateTransaction(ctx context.Context, input ports.CreateTransactionInput) (*domain.Transaction, error) {
	// All preconditions run before anything is written. A rejected request
	// must leave no trace, the customer row included.
	if !input.Amount.IsPositive() {
		return nil, mapValidationError(domain.ErrInvalidAmount)
	}
	if err := input.DeliveryInfo.Validate(); err != nil {
		return nil, mapValidationError(err)
	}
	if err := input.Card.Validate(); err != nil {
		return nil, mapValidationError(err)
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, productports.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, input.ProductID)
		}
		return nil, err
	}
	if !product.InStock() {
		return nil, fmt.Errorf("%w: product %d", ErrOutOfStock, input.ProductID)
	}

	customer, err := s.upsertCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	transaction, err := domain.NewTransaction(input.ProductID, customer.ID, input.Amount, input.DeliveryInfo, input.Card)
	if err != nil {
		return nil, mapValidationError(err)
	}
	transaction, err = s.transactions.Save(ctx, transaction)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Charge(ctx, transaction.ID.String(), input.Amount, input.CustomerEmail, input.Card, input.Installments)
	if err != nil {
		s.logger.WarnContext(ctx, "gateway charge failed, transaction marked ERROR",
			slog.String("transaction.id", transaction.ID.String()),
			slog.String("error", err.Error()))
		if _, casErr := s.transactions.CompareAndSwapStatus(ctx, transaction.ID, domain.StatusPending, domain.StatusError); casErr != nil {
			return nil, casErr
		}
		return s.transactions.GetByID(ctx, transaction.ID)
	}

	if err := s.transactions.SetGatewayID(ctx, transaction.ID, result.GatewayID); err != nil {
		return nil, err
	}

	if result.Status != domain.StatusPending {
		swapped, err := s.transactions.CompareAndSwapStatus(ctx, transaction.ID, domain.StatusPending, result.Status)
		if err != nil {
			return nil, err
		}
		if swapped && result.Status == domain.StatusApproved {
			transaction.GatewayID = result.GatewayID
			s.applyApproval(ctx, transaction)
		}
	}
	return s.transactions.GetByID(ctx, transaction.ID)
}

// ReconcileStatus pulls the gateway's current view of a transaction and
// applies any status delta. Gateway failures propagate to the caller: this
// is a read with no side effect to roll back, so retries are cheap.
func (s *Service) ReconcileStatus(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrTransactionNotFound, id)
		}
		return nil, err
	}
	if transaction.GatewayID == "" {
		return transaction, nil
	}
	// Approved is final. Never move a transaction away from it, whatever
	// the gateway reports afterwards.
	if transaction.Status == domain.StatusApproved {
		return transaction, nil
	}

	result, err := s.gateway.GetStatus(ctx, transaction.GatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrGateway, err)
	}
	if result.Status == transaction.Status {
		return transaction, nil
	}

	oldStatus := transaction.Status
	swapped, err := s.transactions.CompareAndSwapStatus(ctx, id, oldStatus, result.Status)
	if err != nil {
		return nil, err
	}
	if swapped {
		s.logger.InfoContext(ctx, "transaction status reconciled",
			slog.String("transaction.id", id.String()),
			slog.String("status.old", string(oldStatus)),
			slog.String("status.new", string(result.Status)))
		if result.Status == domain.StatusApproved && oldStatus != domain.StatusApproved {
			s.applyApproval(ctx, transaction)
		}
	}
	return s.transactions.GetByID(ctx, id)
}

func (s *Service) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrTransactionNotFound, id)
		}
		return nil, err
	}
	return transaction, nil
}

func (s *Service) ListTransactions(ctx context.Context, filter ports.ListFilter) ([]*domain.Transaction, error) {
	return s.transactions.List(ctx, filter)
}

// upsertCustomer reuses the customer registered under the email or creates
// one. A duplicate-insert race resolves by re-fetching, never by failing.
func (s *Service) upsertCustomer(ctx context.Context, input ports.CreateTransactionInput) (*customerdomain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, input.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, customerports.ErrNotFound) {
		return nil, err
	}
	fresh, err := customerdomain.NewCustomer(input.CustomerName, input.CustomerEmail, input.CustomerPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	customer, err = s.customers.Save(ctx, fresh)
	if errors.Is(err, customerports.ErrDuplicateEmail) {
		return s.customers.GetByEmail(ctx, input.CustomerEmail)
	}
	return customer, err
}

// applyApproval runs the stock decrement and delivery creation that must
// fire at most once per transaction. The caller guarantees exclusivity by
// winning the status compare-and-swap into APPROVED. Failures here are not
// rolled back: the charge already went through, so the transaction stays
// APPROVED and the inconsistency is surfaced for manual reconciliation.
func (s *Service) applyApproval(ctx context.Context, transaction *domain.Transaction) {
	if err := s.products.DecrementStock(ctx, transaction.ProductID); err != nil {
		s.logger.ErrorContext(ctx, "PARTIAL FAILURE: stock decrement failed after gateway approval, manual reconciliation required",
			slog.String("transaction.id", transaction.ID.String()),
			slog.Int64("product.id", transaction.ProductID),
			slog.String("error", err.Error()))
	}
	_, err := s.deliveries.CreateDelivery(ctx, deliveryports.CreateDeliveryInput{
		TransactionID: transaction.ID,
		CustomerID:    transaction.CustomerID,
		Address:       transaction.DeliveryInfo.Address,
		City:          transaction.DeliveryInfo.City,
		Region:        transaction.DeliveryInfo.Region,
		Country:       transaction.DeliveryInfo.Country,
		PostalCode:    transaction.DeliveryInfo.PostalCode,
	})
	if err != nil {
		if errors.Is(err, deliveryports.ErrAlreadyExists) {
			// The side effect already landed through the other code path.
			return
		}
		s.logger.ErrorContext(ctx, "PARTIAL FAILURE: delivery creation failed after gateway approval, manual reconciliation required",
			slog.String("transaction.id", transaction.ID.String()),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
