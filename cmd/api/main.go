package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/cache"
	"github.com/GTDGit/inventory_api/internal/config"
	"github.com/GTDGit/inventory_api/internal/database"
	"github.com/GTDGit/inventory_api/internal/handler"
	"github.com/GTDGit/inventory_api/internal/middleware"
	"github.com/GTDGit/inventory_api/internal/report"
	"github.com/GTDGit/inventory_api/internal/repository"
	"github.com/GTDGit/inventory_api/internal/service"
	"github.com/GTDGit/inventory_api/internal/sse"
	"github.com/GTDGit/inventory_api/internal/utils"
	"github.com/GTDGit/inventory_api/internal/worker"
	"github.com/GTDGit/inventory_api/internal/workspace"
)

// main is the application entrypoint for the inventory API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("timezone", cfg.Location.String()).Msg("starting inventory api")

	// 3. Context for startup and graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Connect database
	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 4a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4b. Connect to Redis
	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// 6. Per-owner workspaces, pushing metrics to dashboard streams
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)
	stores := workspace.Stores{
		Products:   productRepo,
		Sales:      saleRepo,
		Events:     eventRepo,
		Categories: categoryRepo,
	}
	registry := workspace.NewRegistry(func(ownerID string) *workspace.Workspace {
		return workspace.New(ownerID, stores, workspace.Options{
			Location: cfg.Location,
			Notifier: notifier,
		})
	}, nil)

	// 7. Initialize services
	sessions := cache.NewSessionCache(redisClient, cfg.SessionTTL)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	authSvc := service.NewAuthService(profileRepo, sessions, tokens, registry, hub, cfg.SessionTTL)
	profileSvc := service.NewProfileService(profileRepo)

	// 7a. Report archival (optional)
	var archiver handler.ReportArchiver
	s3Archiver, err := report.NewArchiver(ctx, &cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("S3 archiver initialization failed - reports will be download-only")
	} else if s3Archiver != nil {
		archiver = s3Archiver
	}

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(database.Pinger{DB: db}, redisClient),
		Auth:      handler.NewAuthHandler(authSvc),
		Profile:   handler.NewProfileHandler(profileSvc),
		Product:   handler.NewProductHandler(registry),
		Sale:      handler.NewSaleHandler(registry),
		Category:  handler.NewCategoryHandler(registry),
		Event:     handler.NewEventHandler(registry),
		Dashboard: handler.NewDashboardHandler(registry, hub),
		Report:    handler.NewReportHandler(registry, archiver, cfg.Report.ListLimit),
	}

	// 9. Middleware
	sessionMw := middleware.NewSessionMiddleware(authSvc)
	signInLimiter := middleware.NewInvalidAuthRateLimiter(cfg.SignInAttempts)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw, signInLimiter)

	// 10. Start workers
	go worker.NewWorkspaceSweepWorker(registry, signInLimiter, cfg.Worker.SweepInterval, cfg.Worker.MaxIdle).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers and open streams
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Category  *handler.CategoryHandler
	Event     *handler.EventHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMw *middleware.SessionMiddleware, signInLimiter *middleware.InvalidAuthRateLimiter) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/v1/health", handlers.Health.GetHealth)

	auth := router.Group("/v1/auth")
	{
		auth.POST("/sign-up", handlers.Auth.SignUp)
		auth.POST("/sign-in", signInLimiter.Handle(), handlers.Auth.SignIn)
		auth.POST("/sign-out", sessionMw.Handle(), handlers.Auth.SignOut)
	}

	// EventSource can't send headers, so the stream takes ?token=
	router.GET("/v1/dashboard/stream", sessionMw.HandleStream(), handlers.Dashboard.Stream)

	v1 := router.Group("/v1")
	v1.Use(sessionMw.Handle())
	{
		v1.POST("/workspace/reload", handlers.Dashboard.Reload)

		// Products
		v1.GET("/products", handlers.Product.List)
		v1.POST("/products", handlers.Product.Create)
		v1.PUT("/products/:id", handlers.Product.Update)
		v1.DELETE("/products/:id", handlers.Product.Delete)
		v1.GET("/products/:id/performance", handlers.Product.Performance)

		// Sales
		v1.GET("/sales", handlers.Sale.List)
		v1.POST("/sales", handlers.Sale.Create)
		v1.DELETE("/sales/:id", handlers.Sale.Delete)

		// Categories
		v1.GET("/categories", handlers.Category.List)
		v1.POST("/categories", handlers.Category.Create)
		v1.PUT("/categories/:name", handlers.Category.Rename)
		v1.DELETE("/categories/:name", handlers.Category.Delete)

		// Calendar
		v1.GET("/events", handlers.Event.List)
		v1.POST("/events", handlers.Event.Create)
		v1.PUT("/events/:id", handlers.Event.Update)
		v1.DELETE("/events/:id", handlers.Event.Delete)

		// Dashboard
		v1.GET("/dashboard", handlers.Dashboard.Get)

		// Reports
		v1.GET("/reports/monthly.pdf", handlers.Report.MonthlyPDF)
		v1.GET("/reports/inventory.xlsx", handlers.Report.InventoryXLSX)
		v1.GET("/reports/categories", handlers.Report.Categories)

		// Profile
		v1.GET("/profile", handlers.Profile.Get)
		v1.PUT("/profile", handlers.Profile.Update)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
