package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parcauto/fleet-dashboard/docs"
	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/http/handler"
	"github.com/parcauto/fleet-dashboard/internal/http/middleware"
	"github.com/parcauto/fleet-dashboard/internal/http/router"
	"github.com/parcauto/fleet-dashboard/internal/jobs"
	"github.com/parcauto/fleet-dashboard/internal/logger"
	"github.com/parcauto/fleet-dashboard/internal/prefs"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"github.com/parcauto/fleet-dashboard/internal/session"
	"github.com/parcauto/fleet-dashboard/internal/storage"
	"go.uber.org/zap"
)

// @title Fleet Dashboard Gateway API
// @version 1.0
// @description Session gateway for the vehicle fleet maintenance dashboard

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Signed session cookie issued at login

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to the fleet backend
	backendClient, err := backend.NewClient(&cfg.Backend, log)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	log.Info("Backend client initialized", zap.String("base_url", cfg.Backend.BaseURL))

	// Open the preference store
	prefStore, err := prefs.NewStore(&cfg.Prefs)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	if err := prefStore.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate preference store: %w", err)
	}

	// Initialize the export archive when enabled
	var archive storage.FileStorage
	if cfg.Storage.ArchiveEnabled {
		archive, err = storage.NewStorage(&cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		log.Info("Export archive initialized", zap.String("mode", cfg.Storage.Mode))
	}

	// Shared response cache for backend reads
	cache := query.NewCache(query.DefaultTTL, log)

	// Initialize services
	authService := service.NewAuthService(backendClient, log)
	vehicleService := service.NewVehicleService(backendClient, cache, log)
	maintenanceService := service.NewMaintenanceService(backendClient, cache, log)
	sparePartService := service.NewSparePartService(backendClient, cache, log)
	userService := service.NewUserService(backendClient, cache, log)
	dashboardService := service.NewDashboardService(backendClient, cache, log)
	reportService := service.NewReportService(backendClient, cache, archive, log)

	// Initialize session handling
	sessionManager, err := session.NewManager(&cfg.Session, log)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	sessionMiddleware := session.NewMiddleware(sessionManager, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionManager, log)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, log)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService, log)
	sparePartHandler := handler.NewSparePartHandler(sparePartService, log)
	userHandler := handler.NewUserHandler(userService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	prefsHandler := handler.NewPrefsHandler(prefStore, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		backendClient,
		sessionMiddleware,
		rateLimiter,
		authHandler,
		vehicleHandler,
		maintenanceHandler,
		sparePartHandler,
		userHandler,
		dashboardHandler,
		reportHandler,
		prefsHandler,
	)

	// Start background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		refreshJobs := jobs.NewRefreshJobs(dashboardService, sparePartService, &cfg.Jobs, log)
		if err := refreshJobs.Register(scheduler); err != nil {
			log.Error("Failed to register refresh jobs", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started",
				zap.String("dashboard_refresh", cfg.Jobs.DashboardRefreshCron),
				zap.String("low_stock_poll", cfg.Jobs.LowStockPollCron),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
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
