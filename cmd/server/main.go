package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "rentdesk-backend/internal/api/http"
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/geo"
	"rentdesk-backend/internal/jobs"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository/postgres"
	"rentdesk-backend/internal/scheduler"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
	"rentdesk-backend/internal/storage"

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
	logger.Info("Starting RentDesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Run schema migrations
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage Service
	var uploader storage.Uploader
	var mockStorage *storage.MockStorageService
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		uploader = mockStorage
	} else {
		logger.Info("Using Cloudinary storage", "cloud_name", cfg.Cloudinary.CloudName)
		uploader = storage.NewCloudinaryService(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	}

	// Initialize Geocoder
	geocoder := geo.NewNominatimClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ProductRepository,
		store.CustomerRepository,
		store.VehicleRepository,
		store.DriverRepository,
		geocoder,
	)
	productSvc := service.NewProductService(store.ProductRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	fleetSvc := service.NewFleetService(store.VehicleRepository, store.DriverRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	statsSvc := service.NewStatsService(store.RentalRepository, store.VehicleRepository)
	uploadSvc := service.NewUploadService(uploader)

	// Build the HTTP router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Rentals:     rentalSvc,
		Products:    productSvc,
		Customers:   customerSvc,
		Fleet:       fleetSvc,
		Auth:        authSvc,
		Stats:       statsSvc,
		Uploads:     uploadSvc,
		Tokens:      tokenManager,
		MockStorage: mockStorage,
	})

	// Start the overdue-reminder scheduler in-process
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
