package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	wompiclient "github.com/eshop-labs/checkout-api/internal/clients/http/wompi"
	checkoutwompi "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/external/wompi"
	checkoutmemory "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/persistence/postgres"
	checkoutworkflows "github.com/eshop-labs/checkout-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/eshop-labs/checkout-api/internal/domains/checkout/application"
	checkoutports "github.com/eshop-labs/checkout-api/internal/domains/checkout/ports"
	customermemory "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/eshop-labs/checkout-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/eshop-labs/checkout-api/internal/domains/customers/application"
	customerports "github.com/eshop-labs/checkout-api/internal/domains/customers/ports"
	deliverymemory "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/memory"
	deliverypostgres "github.com/eshop-labs/checkout-api/internal/domains/deliveries/adapters/persistence/postgres"
	deliveryapp "github.com/eshop-labs/checkout-api/internal/domains/deliveries/application"
	deliveryports "github.com/eshop-labs/checkout-api/internal/domains/deliveries/ports"
	productmemory "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/eshop-labs/checkout-api/internal/domains/products/adapters/persistence/postgres"
	productapp "github.com/eshop-labs/checkout-api/internal/domains/products/application"
	productports "github.com/eshop-labs/checkout-api/internal/domains/products/ports"
	"github.com/eshop-labs/checkout-api/internal/domains/products/seed"
	"github.com/eshop-labs/checkout-api/internal/platform/migrations"
	platformobservability "github.com/eshop-labs/checkout-api/internal/platform/observability"
	platformpostgres "github.com/eshop-labs/checkout-api/internal/platform/postgres"
	httpapi "github.com/eshop-labs/checkout-api/internal/transport/http"
)

// repositories groups the per-context persistence adapters behind their ports.
type repositories struct {
	transactions checkoutports.Repository
	products     productports.Repository
	customers    customerports.Repository
	deliveries   deliveryports.Repository
}

// Run boots the checkout HTTP API with observability, repositories,
// the payment gateway, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "checkout-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repos, cleanupRepos := buildRepositories(ctx, logger, cfg)
	defer cleanupRepos()
	if !cfg.SeedDisabled {
		if err := seed.Run(ctx, repos.products); err != nil {
			logger.Warn("failed to seed product catalog", slog.String("error", err.Error()))
		}
	}

	gateway, err := buildGateway(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure payment gateway: %w", err)
	}

	deliveryService := deliveryapp.NewService(repos.deliveries)
	coreCheckout := checkoutapp.NewService(
		repos.transactions,
		repos.products,
		repos.customers,
		deliveryService,
		gateway,
		checkoutapp.WithLogger(logger),
	)
	checkoutService := checkoutobs.New(
		coreCheckout,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	var orchestrator checkoutports.ReconciliationOrchestrator = checkoutworkflows.NewInlineReconciliation(checkoutService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, reconciling inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = checkoutworkflows.NewTemporalReconciliation(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	productService := productapp.NewService(repos.products)
	customerService := customerapp.NewService(repos.customers)

	handlers := httpapi.ApiHandleFunctions{
		CheckoutAPI:   httpapi.NewCheckoutAPI(checkoutService, orchestrator, logger),
		ProductsAPI:   httpapi.NewProductsAPI(productService),
		CustomersAPI:  httpapi.NewCustomersAPI(customerService),
		DeliveriesAPI: httpapi.NewDeliveriesAPI(deliveryService),
	}

	router := httpapi.NewRouter(handlers, cfg.CORSAllowedOrigins)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("checkout API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("checkout API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, logger *slog.Logger, cfg Config) (repositories, func()) {
	memory := repositories{
		transactions: checkoutmemory.NewRepository(),
		products:     productmemory.NewRepository(),
		customers:    customermemory.NewRepository(),
		deliveries:   deliverymemory.NewRepository(),
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memory, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return memory, func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		transactions: checkoutpostgres.NewRepository(db),
		products:     productpostgres.NewRepository(db),
		customers:    customerpostgres.NewRepository(db),
		deliveries:   deliverypostgres.NewRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func buildGateway(cfg Config) (checkoutports.PaymentGateway, error) {
	client, err := wompiclient.New(wompiclient.Config{
		BaseURL:         cfg.WompiBaseURL,
		PublicKey:       cfg.WompiPublicKey,
		PrivateKey:      cfg.WompiPrivateKey,
		IntegritySecret: cfg.WompiIntegritySecret,
		HTTPClient:      &http.Client{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return checkoutwompi.NewGateway(client)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
