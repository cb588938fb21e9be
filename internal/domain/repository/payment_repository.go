package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// PaymentRepository defines the interface for customer payment operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListAll(ctx context.Context) ([]entity.Payment, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
	// GetPendingDueBefore returns pending payments whose due date is strictly
	// before the given instant.
	GetPendingDueBefore(ctx context.Context, now time.Time) ([]entity.Payment, error)
	// ListOverdue returns payments marked overdue plus pending payments past
	// their due date, with customers preloaded.
	ListOverdue(ctx context.Context, now time.Time) ([]entity.Payment, error)
	// MarkOverdueBatch flips the given pending payments to overdue. Returns
	// the number of rows updated.
	MarkOverdueBatch(ctx context.Context, ids []uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, paidDate *time.Time) error
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PaymentStatus
	Method     *enum.PaymentMethod
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PaymentReminderRepository defines the interface for reminder history operations
type PaymentReminderRepository interface {
	Create(ctx context.Context, reminder *entity.PaymentReminder) error
	CreateBatch(ctx context.Context, reminders []entity.PaymentReminder) error
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentReminder, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.PaymentReminder, int64, error)
}
