package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/eshop-labs/checkout-api/internal/domains/checkout/domain"
	"github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
)

const tracerName = "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout application port with tracing, logging,
// and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateTransaction runs the purchase flow with instrumentation.
func (s *Service) CreateTransaction(ctx context.Context, input ports.CreateTransactionInput) (*domain.Transaction, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateTransaction", attribute.Int64("product.id", input.ProductID))
	defer span.End()

	s.logInfo(ctx, "creating transaction", slog.Int64("product.id", input.ProductID))
	result, err := s.inner.CreateTransaction(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create transaction", slog.Int64("product.id", input.ProductID))
	}
	span.SetAttributes(attribute.String("transaction.status", string(result.Status)))
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "transaction created",
		slog.String("transaction.id", result.ID.String()),
		slog.String("status", string(result.Status)))
	return result, nil
}

// ReconcileStatus pulls the gateway status with instrumentation.
func (s *Service) ReconcileStatus(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	ctx, span := s.startSpan(ctx, "Service.ReconcileStatus", attribute.String("transaction.id", id.String()))
	defer span.End()

	result, err := s.inner.ReconcileStatus(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reconcile transaction", slog.String("transaction.id", id.String()))
	}
	span.SetAttributes(attribute.String("transaction.status", string(result.Status)))
	s.metrics.recordReconciled(ctx, result.Status)
	return result, nil
}

func (s *Service) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	ctx, span := s.startSpan(ctx, "Service.GetTransactionByID", attribute.String("transaction.id", id.String()))
	defer span.End()

	result, err := s.inner.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to fetch transaction", slog.String("transaction.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListTransactions(ctx context.Context, filter ports.ListFilter) ([]*domain.Transaction, error) {
	ctx, span := s.startSpan(ctx, "Service.ListTransactions")
	defer span.End()

	result, err := s.inner.ListTransactions(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list transactions")
	}
	span.SetAttributes(attribute.Int("transaction.result.count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	created    metric.Int64Counter
	reconciled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("checkout.transactions.created", metric.WithDescription("Number of transactions created"))
	reconciled, _ := m.Int64Counter("checkout.transactions.reconciled", metric.WithDescription("Number of reconciliation passes"))
	return serviceMetrics{created: created, reconciled: reconciled}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	if m.created == nil {
		return
	}
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("transaction.status", string(status))))
}

func (m serviceMetrics) recordReconciled(ctx context.Context, status domain.Status) {
	if m.reconciled == nil {
		return
	}
	m.reconciled.Add(ctx, 1, metric.WithAttributes(attribute.String("transaction.status", string(status))))
}

var _ ports.Service = (*Service)(nil)
