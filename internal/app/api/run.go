package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	marketserver "github.com/marketcore/go-gin-market-server/go"

	catalogmemory "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"

	customermemory "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/memory"
	customerobs "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/observability"
	customerpostgres "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/marketcore/go-gin-market-server/internal/domains/customers/application"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"

	reviewcatalog "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/catalog"
	reviewmemory "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/memory"
	reviewpostgres "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/persistence/postgres"
	reviewapp "github.com/marketcore/go-gin-market-server/internal/domains/reviews/application"
	reviewports "github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"

	salescatalog "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/catalog"
	salesmemory "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/memory"
	salesobs "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/observability"
	salespostgres "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/marketcore/go-gin-market-server/internal/domains/sales/application"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"

	"github.com/marketcore/go-gin-market-server/internal/platform/migrations"
	platformobservability "github.com/marketcore/go-gin-market-server/internal/platform/observability"
	platformpostgres "github.com/marketcore/go-gin-market-server/internal/platform/postgres"
)

// Run boots the market HTTP API with observability, repositories, and the
// purchase ledger wired. Without POSTGRES_DSN everything runs on in-memory
// adapters, which keeps local development and contract tests self-contained.
func Run(ctx context.Context) error {
	const serviceName = "market-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
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

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	customerService, catalogService, salesService, reviewService := buildServices(cfg, db, instruments)

	if cfg.SessionPurgeIntervalMinute > 0 && db != nil {
		go purgeSessionsPeriodically(ctx, db, cfg, logger)
	}

	handlers := marketserver.ApiHandleFunctions{
		CustomerAPI: marketserver.NewCustomerAPI(customerService),
		GoodsAPI:    marketserver.NewGoodsAPI(catalogService),
		SalesAPI:    marketserver.NewSalesAPI(salesService, customerService),
		ReviewAPI:   marketserver.NewReviewAPI(reviewService, customerService),
	}

	router := marketserver.NewRouter(handlers, customerService)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("market API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("market API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildServices(cfg Config, db *gorm.DB, instruments *platformobservability.Instruments) (customerports.Service, catalogports.Service, salesports.Service, reviewports.Service) {
	logger := instruments.Logger

	var customerRepo customerports.Repository
	var sessionStore customerports.SessionStore
	var catalogRepo catalogports.Repository
	var reviewRepo reviewports.Repository
	var ledger salesports.Ledger

	if db != nil {
		customerRepo = customerpostgres.NewRepository(db)
		sessionStore = customerpostgres.NewSessionStore(db, cfg.SessionTTL)
		catalogRepo = catalogpostgres.NewRepository(db)
		reviewRepo = reviewpostgres.NewRepository(db)
		ledger = salespostgres.NewLedger(db)
		logger.Info("repositories configured with postgres")
	} else {
		memCustomers := customermemory.NewRepository()
		memCatalog := catalogmemory.NewRepository()
		customerRepo = memCustomers
		sessionStore = customermemory.NewSessionStore(cfg.SessionTTL)
		catalogRepo = memCatalog
		reviewRepo = reviewmemory.NewRepository()
		ledger = salesmemory.NewLedger(memCustomers, memCatalog)
	}

	customerService := customerobs.New(
		customerapp.NewService(customerRepo, sessionStore),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	catalogService := catalogapp.NewService(catalogRepo)
	salesService := salesobs.New(
		salesapp.NewService(ledger, salescatalog.NewReader(catalogService)),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
	)
	reviewService := reviewapp.NewService(reviewRepo, reviewcatalog.NewChecker(catalogService))
	return customerService, catalogService, salesService, reviewService
}

func purgeSessionsPeriodically(ctx context.Context, db *gorm.DB, cfg Config, logger *slog.Logger) {
	store := customerpostgres.NewSessionStore(db, cfg.SessionTTL)
	interval := time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.PurgeExpired(ctx); err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
			}
		}
	}
}
