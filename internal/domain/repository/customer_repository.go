package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	ListAll(ctx context.Context) ([]entity.Customer, error)
	// GetDebtors returns active customers carrying a positive debt balance.
	GetDebtors(ctx context.Context, params *pagination.PaginationParams) ([]entity.Customer, int64, error)
	// AdjustDebt atomically adds delta (may be negative) to a customer's debt.
	AdjustDebt(ctx context.Context, id uuid.UUID, delta int64) error
	CountActive(ctx context.Context) (int64, error)
	CountDebtors(ctx context.Context) (int64, error)
}
