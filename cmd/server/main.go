package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	httpapi "crateledger-backend/internal/api/http"
	"crateledger-backend/internal/config"
	"crateledger-backend/internal/jobs"
	"crateledger-backend/internal/logger"
	"crateledger-backend/internal/repository/postgres"
	"crateledger-backend/internal/scheduler"
	"crateledger-backend/internal/security"
	"crateledger-backend/internal/service"
	"crateledger-backend/internal/session"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Crate Ledger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	if err := goose.Up(db, "migrations"); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize Redis session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unavailable, session state disabled", "error", err)
	}
	sessions := session.NewStore(redisClient, cfg.SessionTTL())

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	sellerSvc := service.NewSellerService(store.SellerRepository)
	crateSvc := service.NewCrateService(store.CrateRepository)
	ledgerSvc := service.NewLedgerService(
		store.MovementRepository,
		store.CrateRepository,
		store.SellerRepository,
		cfg.LostThreshold(),
	)
	reportSvc := service.NewReportService(store.CrateRepository, store.MovementRepository, ledgerSvc)

	// Initialize HTTP handlers
	mw := httpapi.NewAuthMiddleware(tokenManager)
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           httpapi.NewAuthHandler(authSvc, sessions),
		Sellers:        httpapi.NewSellerHandler(sellerSvc),
		Crates:         httpapi.NewCrateHandler(crateSvc),
		Movements:      httpapi.NewMovementHandler(ledgerSvc, reportSvc, sessions),
		Reports:        httpapi.NewReportHandler(reportSvc, ledgerSvc),
		Admin:          httpapi.NewAdminHandler(authSvc, ledgerSvc, crateSvc),
		Mw:             mw,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(&jobs.Services{Ledger: ledgerSvc, Email: emailSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
