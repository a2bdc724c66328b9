package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/primeorcamentos/backoffice-api/internal/config"
	"github.com/primeorcamentos/backoffice-api/internal/database"
	"github.com/primeorcamentos/backoffice-api/internal/http/handler"
	"github.com/primeorcamentos/backoffice-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/primeorcamentos/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	rateLimiter     *middleware.RateLimiter
	customerHandler *handler.CustomerHandler
	catalogHandler  *handler.CatalogHandler
	orderHandler    *handler.OrderHandler
	costItemHandler *handler.CostItemHandler
	bdiHandler      *handler.BdiHandler
	documentHandler *handler.DocumentHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	customerHandler *handler.CustomerHandler,
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	costItemHandler *handler.CostItemHandler,
	bdiHandler *handler.BdiHandler,
	documentHandler *handler.DocumentHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		rateLimiter:     rateLimiter,
		customerHandler: customerHandler,
		catalogHandler:  catalogHandler,
		orderHandler:    orderHandler,
		costItemHandler: costItemHandler,
		bdiHandler:      bdiHandler,
		documentHandler: documentHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", rt.customerHandler.List)
			r.Post("/", rt.customerHandler.Create)
			r.Get("/{id}", rt.customerHandler.GetByID)
			r.Put("/{id}", rt.customerHandler.Update)
			r.Delete("/{id}", rt.customerHandler.Delete)
		})

		// Registry lookups
		r.Route("/lookup", func(r chi.Router) {
			r.Get("/company/{taxId}", rt.customerHandler.LookupTaxID)
			r.Get("/postal/{code}", rt.customerHandler.LookupPostalCode)
		})

		// Catalog
		r.Route("/catalog-items", func(r chi.Router) {
			r.Get("/", rt.catalogHandler.List)
			r.Post("/", rt.catalogHandler.Create)
			r.Get("/{id}", rt.catalogHandler.GetByID)
			r.Put("/{id}", rt.catalogHandler.Update)
			r.Delete("/{id}", rt.catalogHandler.Delete)
		})

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", rt.orderHandler.List)
			r.Post("/", rt.orderHandler.Create)
			r.Get("/export", rt.documentHandler.OrderBookXLSX)
			r.Get("/{id}", rt.orderHandler.GetByID)
			r.Put("/{id}", rt.orderHandler.Update)
			r.Delete("/{id}", rt.orderHandler.Delete)

			// Lifecycle
			r.Put("/{id}/status", rt.orderHandler.UpdateStatus)
			r.Post("/{id}/convert", rt.orderHandler.Convert)

			// Cost tracking
			r.Get("/{id}/cost-report", rt.costItemHandler.GetReport)
			r.Route("/{id}/cost-items", func(r chi.Router) {
				r.Post("/", rt.costItemHandler.Create)
				r.Put("/{itemId}", rt.costItemHandler.Update)
				r.Delete("/{itemId}", rt.costItemHandler.Delete)
				r.Put("/{itemId}/actual", rt.costItemHandler.RecordActual)
			})

			// Documents
			r.Route("/{id}/documents", func(r chi.Router) {
				r.Get("/proposal", rt.documentHandler.ProposalPDF)
				r.Get("/cost-report", rt.documentHandler.CostReportPDF)
				r.Get("/cost-report.xlsx", rt.documentHandler.CostReportXLSX)
			})
		})

		// BDI configurations
		r.Route("/bdi-configs", func(r chi.Router) {
			r.Get("/", rt.bdiHandler.List)
			r.Post("/", rt.bdiHandler.Create)
			r.Post("/preview", rt.bdiHandler.Preview)
			r.Get("/{id}", rt.bdiHandler.GetByID)
			r.Put("/{id}", rt.bdiHandler.Update)
			r.Delete("/{id}", rt.bdiHandler.Delete)
		})
	})

	return r
}
