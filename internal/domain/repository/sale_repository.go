package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// CreateWithItems persists the sale, its items and the optional initial
	// payment in a single transaction.
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, payment *entity.SalePayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	// GetWithDetails loads the sale with its items, payments and customer.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	ListAll(ctx context.Context) ([]entity.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	AddPayment(ctx context.Context, payment *entity.SalePayment) error
	// TotalsBetween sums confirmed and delivered sale totals in [start, end).
	TotalsBetween(ctx context.Context, start, end time.Time) (int64, int64, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
	// TopProducts aggregates sold quantity per product in [start, end).
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	SaleStatus    *enum.SaleStatus
	PaymentStatus *enum.SalePaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Search        string
	SaleStatus    *enum.SaleStatus
	PaymentStatus *enum.SalePaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// ProductSalesRow is an aggregate row of units sold and revenue per product.
type ProductSalesRow struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int64      `json:"quantity"`
	Revenue     int64      `json:"revenue"`
}
