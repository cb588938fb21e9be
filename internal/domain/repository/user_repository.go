package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

// ActivityLogRepository defines the interface for activity log operations
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, params *ActivityLogFilterParams) ([]entity.ActivityLog, int64, error)
}

// ActivityLogFilterParams contains filtering parameters for activity log queries
type ActivityLogFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Action     string
	EntityType string
}
