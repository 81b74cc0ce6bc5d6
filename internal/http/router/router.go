package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/http/handler"
	"github.com/parcauto/fleet-dashboard/internal/http/middleware"
	"github.com/parcauto/fleet-dashboard/internal/session"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/parcauto/fleet-dashboard/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	backendClient      *backend.Client
	sessionMiddleware  *session.Middleware
	rateLimiter        *middleware.RateLimiter
	authHandler        *handler.AuthHandler
	vehicleHandler     *handler.VehicleHandler
	maintenanceHandler *handler.MaintenanceHandler
	sparePartHandler   *handler.SparePartHandler
	userHandler        *handler.UserHandler
	dashboardHandler   *handler.DashboardHandler
	reportHandler      *handler.ReportHandler
	prefsHandler       *handler.PrefsHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	backendClient *backend.Client,
	sessionMiddleware *session.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	vehicleHandler *handler.VehicleHandler,
	maintenanceHandler *handler.MaintenanceHandler,
	sparePartHandler *handler.SparePartHandler,
	userHandler *handler.UserHandler,
	dashboardHandler *handler.DashboardHandler,
	reportHandler *handler.ReportHandler,
	prefsHandler *handler.PrefsHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		backendClient:      backendClient,
		sessionMiddleware:  sessionMiddleware,
		rateLimiter:        rateLimiter,
		authHandler:        authHandler,
		vehicleHandler:     vehicleHandler,
		maintenanceHandler: maintenanceHandler,
		sparePartHandler:   sparePartHandler,
		userHandler:        userHandler,
		dashboardHandler:   dashboardHandler,
		reportHandler:      reportHandler,
		prefsHandler:       prefsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Backend reachability (readiness probe)
	r.Get("/health/backend", func(w http.ResponseWriter, r *http.Request) {
		status := rt.backendClient.HealthCheck(r.Context(), rt.cfg.Backend.HealthPath)

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			rt.logger.Error("backend health check failed", zap.String("error", status.Error))
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status.Status,
			"service":    "fleet-backend",
			"latency_ms": status.Latency.Milliseconds(),
			"error":      status.Error,
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
		// Public routes (no session required), throttled by client IP
		r.With(rt.rateLimiter.LimitByIP).Post("/auth/login", rt.authHandler.Login)

		// Session-protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.sessionMiddleware.Authenticate)
			// Authenticated traffic is keyed per user, with a higher budget
			r.Use(rt.rateLimiter.Limit)

			// Auth
			r.Post("/auth/logout", rt.authHandler.Logout)
			r.Get("/auth/me", rt.authHandler.Me)

			// Vehicles
			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", rt.vehicleHandler.List)
				r.Post("/", rt.vehicleHandler.Create)
				r.Get("/analytics", rt.vehicleHandler.Analytics)
				r.Get("/export", rt.vehicleHandler.Export)
				r.Get("/{id}", rt.vehicleHandler.Get)
				r.Put("/{id}", rt.vehicleHandler.Update)
				r.With(rt.sessionMiddleware.RequireChief).Delete("/{id}", rt.vehicleHandler.Delete)
			})
			r.Get("/vehicle-types", rt.vehicleHandler.ListTypes)

			// Maintenance operations
			r.Route("/maintenance-operations", func(r chi.Router) {
				r.Get("/", rt.maintenanceHandler.List)
				r.Post("/", rt.maintenanceHandler.Create)
				r.Get("/planned", rt.maintenanceHandler.Planned)
				r.Get("/{id}", rt.maintenanceHandler.Get)
				r.Put("/{id}", rt.maintenanceHandler.Update)
				r.Delete("/{id}", rt.maintenanceHandler.Delete)
				r.With(rt.sessionMiddleware.RequireChief).Post("/{id}/validate", rt.maintenanceHandler.Validate)
			})
			r.Get("/maintenance-types", rt.maintenanceHandler.ListTypes)
			r.With(rt.sessionMiddleware.RequireChief).Get("/validations/pending", rt.maintenanceHandler.PendingValidations)

			// Spare parts
			r.Route("/spare-parts", func(r chi.Router) {
				r.Get("/", rt.sparePartHandler.List)
				r.Post("/", rt.sparePartHandler.Create)
				r.Get("/{id}", rt.sparePartHandler.Get)
				r.Put("/{id}", rt.sparePartHandler.Update)
				r.Delete("/{id}", rt.sparePartHandler.Delete)
				r.Post("/{id}/update-stock", rt.sparePartHandler.UpdateStock)
				r.Get("/alerts/low-stock", rt.sparePartHandler.LowStock)
			})

			// Staff (chief only)
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.sessionMiddleware.RequireChief)
				r.Get("/", rt.userHandler.List)
				r.Post("/", rt.userHandler.Create)
				r.Get("/{id}", rt.userHandler.Get)
				r.Put("/{id}", rt.userHandler.Update)
				r.Delete("/{id}", rt.userHandler.Delete)
			})
			r.Get("/technicians", rt.userHandler.Technicians)

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.Get)

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/annual", rt.reportHandler.Annual)
				r.Get("/forecast", rt.reportHandler.Forecast)
				r.Get("/export", rt.reportHandler.Export)
			})

			// UI preferences
			r.Route("/preferences", func(r chi.Router) {
				r.Get("/", rt.prefsHandler.List)
				r.Get("/{key}", rt.prefsHandler.Get)
				r.Put("/{key}", rt.prefsHandler.Set)
				r.Delete("/{key}", rt.prefsHandler.Delete)
			})
		})
	})

	return r
}
