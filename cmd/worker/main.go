package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/eshop-labs/checkout-api/internal/app/api"
	wompiclient "github.com/eshop-labs/checkout-api/internal/clients/http/wompi"
	checkoutwompi "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/external/wompi"
	checkoutmemory "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/persistence/postgres"
	checkoutapp "github.com/eshop-labs/checkout-api/internal/domains/checkout/application"
	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	customermemory "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/persistence/postgres"
	customerports "github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
	deliverymemory "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/memory"
	deliverypostgres "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/persistence/postgres"
	deliveryapp "github.com/eshop-labs/checkout-api/internal/domains/deliveries/application"
	deliveryports "github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
	productmemory "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/persistence/postgres"
	productports "github.com/eshop-labs/checkout-api/internal/domains/products/ports"
	platformobservability "github.com/eshop-labs/checkout-api/internal/platform/observability"
	platformpostgres "github.com/eshop-labs/checkout-api/internal/platform/postgres"
	checkoutactivities "github.com/eshop-labs/checkout-api/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/eshop-labs/checkout-api/internal/platform/temporal/workflows/checkout"
)

func main() {
	ctx := context.Background()
	const serviceName = "checkout-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	checkoutService, cleanup, err := buildCheckoutService(ctx, logger, instruments, cfg)
	if err != nil {
		logger.Error("failed to build checkout service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	activities := checkoutactivities.NewActivities(checkoutService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.ReconciliationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.ReconciliationWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.ReconciliationWorkflowName})
	w.RegisterActivityWithOptions(activities.Reconcile, activity.RegisterOptions{Name: checkoutactivities.ReconcileActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.ReconciliationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildCheckoutService(ctx context.Context, logger *slog.Logger, instruments *platformobservability.Instruments, cfg api.Config) (checkoutports.Service, func(), error) {
	transactions, products, customers, deliveries, cleanup := buildRepositories(ctx, logger, cfg)

	gatewayClient, err := wompiclient.New(wompiclient.Config{
		BaseURL:         cfg.WompiBaseURL,
		PublicKey:       cfg.WompiPublicKey,
		PrivateKey:      cfg.WompiPrivateKey,
		IntegritySecret: cfg.WompiIntegritySecret,
		HTTPClient:      &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	gateway, err := checkoutwompi.NewGateway(gatewayClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	deliveryService := deliveryapp.NewService(deliveries)
	core := checkoutapp.NewService(
		transactions,
		products,
		customers,
		deliveryService,
		gateway,
		checkoutapp.WithLogger(logger),
	)
	service := checkoutobs.New(
		core,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	return service, cleanup, nil
}

func buildRepositories(ctx context.Context, logger *slog.Logger, cfg api.Config) (checkoutports.Repository, productports.Repository, customerports.Repository, deliveryports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return checkoutmemory.NewRepository(), productmemory.NewRepository(), customermemory.NewRepository(), deliverymemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return checkoutmemory.NewRepository(), productmemory.NewRepository(), customermemory.NewRepository(), deliverymemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return checkoutmemory.NewRepository(), productmemory.NewRepository(), customermemory.NewRepository(), deliverymemory.NewRepository(), func() {}
	}
	logger.Info("worker repositories configured with postgres")
	return checkoutpostgres.NewRepository(db), productpostgres.NewRepository(db), customerpostgres.NewRepository(db), deliverypostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}
