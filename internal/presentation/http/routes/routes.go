package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ventapos/ventapos-api/internal/config"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/internal/metrics"
	"github.com/ventapos/ventapos-api/internal/presentation/http/handler"
	"github.com/ventapos/ventapos-api/internal/presentation/http/middleware"
	"github.com/ventapos/ventapos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Sale      *handler.SaleHandler
	Payment   *handler.PaymentHandler
	Reminder  *handler.ReminderHandler
	User      *handler.UserHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Cache      *cache.Cache
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		redisState := "disabled"
		if deps.Cache != nil && deps.Cache.Enabled() {
			redisState = "down"
			if deps.Cache.IsHealthy() {
				redisState = "up"
			}
		}
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"redis":   redisState,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Products
	registerProductRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h)

	// Payments & reminders
	registerPaymentRoutes(protected, h)

	// Exports
	protected.GET("/exports/:dataset", h.Export.Export)

	// Admin-only routes
	registerAdminRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/debtors", h.Customer.ListDebtors)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/payments", h.Customer.GetPayments)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.POST("/preview", h.Sale.Preview)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", h.Sale.Cancel)
		sales.POST("/:id/deliver", h.Sale.MarkDelivered)
		sales.POST("/:id/payments", h.Sale.AddPayment)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Create)
		payments.GET("/summary", h.Payment.GetSummary)
		payments.POST("/sweep-overdue", h.Payment.SweepOverdue)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", h.Payment.Update)
		payments.POST("/:id/mark-paid", h.Payment.MarkPaid)
		payments.POST("/:id/cancel", h.Payment.Cancel)
		payments.DELETE("/:id", h.Payment.Delete)
		payments.GET("/:id/reminders", h.Reminder.GetForPayment)
		payments.GET("/:id/reminders/preview", h.Reminder.Preview)
	}

	reminders := protected.Group("/reminders")
	{
		reminders.GET("", h.Reminder.List)
		reminders.POST("/send", h.Reminder.Send)
		reminders.POST("/send-overdue", h.Reminder.SendOverdue)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		users := admin.Group("/users")
		{
			users.GET("", h.User.List)
			users.POST("", h.User.Create)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}

		admin.GET("/activity", h.User.ListActivity)

		admin.GET("/settings", h.Settings.GetSettings)
		admin.PUT("/settings", h.Settings.UpdateSettings)
	}
}
