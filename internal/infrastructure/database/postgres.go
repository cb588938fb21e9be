package database

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ventapos/ventapos-api/internal/config"
	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
)

const defaultReminderTemplate = `Estimado/a {nombre},

Le recordamos que tiene un pago pendiente:
💰 Monto: ${monto}
📅 Vencimiento: {fecha_vencimiento}
📋 Concepto: {descripcion}

¡Gracias por su preferencia!`

const defaultOverdueTemplate = `Estimado/a {nombre},

Su pago se encuentra VENCIDO:
💰 Monto: ${monto}
📅 Venció el: {fecha_vencimiento}
📋 Concepto: {descripcion}

⚠️ Le solicitamos regularizar su pago a la brevedad para evitar inconvenientes.`

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.ActivityLog{},

		// Catalog entities
		&entity.Product{},
		&entity.Customer{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SalePayment{},
		&entity.Payment{},
		&entity.PaymentReminder{},

		// System entities
		&entity.CompanySettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedDefaultData creates the company settings row and the initial admin
// account when the database is empty.
func SeedDefaultData(db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	var settings entity.CompanySettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.CompanySettings{
			CompanyName:       "VentaPOS",
			CurrencyCode:      "ARS",
			TaxRateBP:         cfg.Sales.DefaultTaxRateBP,
			LowStockThreshold: 5,
			ReminderTemplate:  defaultReminderTemplate,
			OverdueTemplate:   defaultOverdueTemplate,
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed company settings: %w", err)
		}
		logger.Info("seeded default company settings")
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", cfg.Seed.AdminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		FirstName: "Admin",
		LastName:  "VentaPOS",
		Email:     cfg.Seed.AdminEmail,
		Password:  string(hashed),
		Role:      enum.UserRoleAdmin,
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info("seeded admin user", zap.String("email", cfg.Seed.AdminEmail))
	return nil
}
