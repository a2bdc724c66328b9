package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/primeorcamentos/backoffice-api/docs"
	"github.com/primeorcamentos/backoffice-api/internal/config"
	"github.com/primeorcamentos/backoffice-api/internal/database"
	"github.com/primeorcamentos/backoffice-api/internal/document"
	"github.com/primeorcamentos/backoffice-api/internal/http/handler"
	"github.com/primeorcamentos/backoffice-api/internal/http/middleware"
	"github.com/primeorcamentos/backoffice-api/internal/http/router"
	"github.com/primeorcamentos/backoffice-api/internal/jobs"
	"github.com/primeorcamentos/backoffice-api/internal/logger"
	"github.com/primeorcamentos/backoffice-api/internal/lookup"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// @title Prime Orcamentos Back Office API
// @version 1.0
// @description Back-office API for quotes, service orders, work orders and BDI-based pricing

// @contact.name API Support
// @contact.email suporte@primeorcamentos.com.br

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run auto migrations: %w", err)
	}

	// Optional public registry lookups; nil when disabled
	lookupClient := lookup.NewClient(&cfg.Lookup, log)

	// Repositories
	customerRepo := repository.NewCustomerRepository(db)
	catalogItemRepo := repository.NewCatalogItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	costItemRepo := repository.NewCostItemRepository(db)
	bdiConfigRepo := repository.NewBdiConfigRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Services
	numberService := service.NewNumberService(numberSequenceRepo)
	customerService := service.NewCustomerService(customerRepo, log)
	if lookupClient != nil {
		customerService.SetLookupClient(lookupClient)
	}
	catalogService := service.NewCatalogService(catalogItemRepo, log)
	orderService := service.NewOrderService(orderRepo, customerRepo, costItemRepo, numberService, log)
	lifecycleService := service.NewOrderLifecycleService(orderRepo, orderService, log)
	costService := service.NewCostTrackingService(orderRepo, costItemRepo, orderService, log)
	bdiService := service.NewBdiService(bdiConfigRepo, log)
	renderer := document.NewRenderer(&cfg.Documents)
	documentService := service.NewDocumentService(orderService, costService, renderer, log)

	// Middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	customerHandler := handler.NewCustomerHandler(customerService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	orderHandler := handler.NewOrderHandler(orderService, lifecycleService, log)
	costItemHandler := handler.NewCostItemHandler(costService, log)
	bdiHandler := handler.NewBdiHandler(bdiService, log)
	documentHandler := handler.NewDocumentHandler(documentService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		customerHandler,
		catalogHandler,
		orderHandler,
		costItemHandler,
		bdiHandler,
		documentHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		expiryJob := jobs.NewQuoteExpiryJob(lifecycleService, log, 5*time.Minute)
		if err := scheduler.AddJob(jobs.QuoteExpiryJobName, cfg.Jobs.QuoteExpiryCron, expiryJob.Run); err != nil {
			log.Error("Failed to register quote expiry job", zap.Error(err))
		}

		window := time.Duration(cfg.Jobs.IntegrityWindowDays) * 24 * time.Hour
		integrityJob := jobs.NewIntegrityJob(orderService, log, window, 10*time.Minute)
		if err := scheduler.AddJob(jobs.IntegrityJobName, cfg.Jobs.IntegrityCron, integrityJob.Run); err != nil {
			log.Error("Failed to register financial integrity job", zap.Error(err))
		}

		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.GetJobNames()))
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
