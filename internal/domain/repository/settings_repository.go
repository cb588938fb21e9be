package repository

import (
	"context"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for company settings operations.
// Settings form a single row that is created on first boot.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Update(ctx context.Context, settings *entity.CompanySettings) error
}
