package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ventapos/ventapos-api/internal/application/service"
	"github.com/ventapos/ventapos-api/internal/config"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/internal/infrastructure/database"
	"github.com/ventapos/ventapos-api/internal/infrastructure/repository"
	"github.com/ventapos/ventapos-api/internal/metrics"
	"github.com/ventapos/ventapos-api/internal/presentation/http/handler"
	"github.com/ventapos/ventapos-api/internal/presentation/http/routes"
	"github.com/ventapos/ventapos-api/internal/scheduler"
	"github.com/ventapos/ventapos-api/pkg/logger"
	"github.com/ventapos/ventapos-api/pkg/utils"
	"github.com/ventapos/ventapos-api/pkg/whatsapp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger := logger.Must(logger.New())
	defer appLogger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg, appLogger); err != nil {
		appLogger.Warn("failed to seed default data", zap.Error(err))
	}

	// Redis is optional; the cache degrades to a no-op when it is unreachable.
	appCache := cache.New(&cfg.Redis, appLogger)
	defer appCache.Close()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reminderRepo := repository.NewPaymentReminderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize WhatsApp sender; a nil client keeps reminder previews and
	// deep links working while outbound sends stay disabled.
	var waClient whatsapp.Client
	if cfg.WhatsApp.Enabled {
		waClient = whatsapp.NewClient(whatsapp.ClientConfig{
			BaseURL:       cfg.WhatsApp.BaseURL,
			APIVersion:    cfg.WhatsApp.APIVersion,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			AccessToken:   cfg.WhatsApp.AccessToken,
		})
	}
	waSender := whatsapp.NewSender(waClient, cfg.WhatsApp.SendDelay, appLogger.Named("whatsapp"))

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, settingsRepo)
	customerService := service.NewCustomerService(customerRepo, paymentRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, settingsRepo, cfg.Sales, appCache, appLogger.Named("sales"))
	paymentService := service.NewPaymentService(paymentRepo, customerRepo, appCache, cfg.Redis.SummaryTTL, appLogger.Named("payments"))
	reminderService := service.NewReminderService(paymentRepo, reminderRepo, settingsRepo, waSender, appLogger.Named("reminders"))
	userService := service.NewUserService(userRepo, activityRepo)
	settingsService := service.NewSettingsService(settingsRepo, appCache)
	dashboardService := service.NewDashboardService(saleRepo, productRepo, customerRepo, paymentService, productService, appCache, cfg.Redis.SummaryTTL, appLogger.Named("dashboard"))
	exportService := service.NewExportService(productRepo, customerRepo, saleRepo, paymentRepo)

	appMetrics := metrics.New()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sale:      handler.NewSaleHandler(saleService, appMetrics),
		Payment:   handler.NewPaymentHandler(paymentService),
		Reminder:  handler.NewReminderHandler(reminderService),
		User:      handler.NewUserHandler(userService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
	}

	// Start the background jobs
	jobs := scheduler.New(paymentService, dashboardService, appMetrics, appLogger.Named("scheduler"))
	jobs.Start()
	defer jobs.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     appLogger.Named("http"),
		Metrics:    appMetrics,
		Cache:      appCache,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	appLogger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
