package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/pkg/apperror"
)

// SettingsService handles company settings operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	cache        *cache.Cache
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, c *cache.Cache) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, cache: c}
}

// GetSettings returns the company settings row
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Company settings")
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	CompanyName       *string
	Address           *string
	Phone             *string
	Email             *string
	CurrencyCode      *string
	TaxRateBP         *int64
	LowStockThreshold *int
	ReminderTemplate  *string
	OverdueTemplate   *string
	UpdatedBy         uuid.UUID
}

// UpdateSettings updates the company settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.Email != nil {
		settings.Email = input.Email
	}
	if input.CurrencyCode != nil {
		settings.CurrencyCode = *input.CurrencyCode
	}
	if input.TaxRateBP != nil {
		if *input.TaxRateBP < 0 || *input.TaxRateBP > 10000 {
			return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 10000 basis points")
		}
		settings.TaxRateBP = *input.TaxRateBP
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, apperror.NewBadRequestError("Low stock threshold cannot be negative")
		}
		settings.LowStockThreshold = *input.LowStockThreshold
	}
	if input.ReminderTemplate != nil {
		settings.ReminderTemplate = *input.ReminderTemplate
	}
	if input.OverdueTemplate != nil {
		settings.OverdueTemplate = *input.OverdueTemplate
	}
	settings.UpdatedBy = &input.UpdatedBy

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	// Currency, tax rate, and thresholds feed the cached aggregate views.
	s.cache.InvalidatePattern(ctx, "dashboard:*")
	s.cache.InvalidatePattern(ctx, "payments:*")

	return settings, nil
}
