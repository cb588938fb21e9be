package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	domainRepo "github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems persists the sale, its items and the optional initial payment
// in a single transaction.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, payment *entity.SalePayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		if payment != nil {
			payment.SaleID = sale.ID
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "sale_number = ?", saleNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Payments").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Sale{}, "id = ?", id).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Sale{}), saleFilters{
		Search:        params.Search,
		SaleStatus:    params.SaleStatus,
		PaymentStatus: params.PaymentStatus,
		CustomerID:    params.CustomerID,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "sale_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

// ListWithCursor returns sales using cursor-based pagination
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Sale{}), saleFilters{
		Search:        params.Search,
		SaleStatus:    params.SaleStatus,
		PaymentStatus: params.PaymentStatus,
		CustomerID:    params.CustomerID,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
	})

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Customer").
		Preload("Items").
		Order("created_at ASC, id ASC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) ListAll(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}

type saleFilters struct {
	Search        string
	SaleStatus    *enum.SaleStatus
	PaymentStatus *enum.SalePaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

func (r *saleRepository) applyFilters(query *gorm.DB, f saleFilters) *gorm.DB {
	if f.Search != "" {
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?",
			"%"+f.Search+"%", "%"+f.Search+"%")
	}
	if f.SaleStatus != nil {
		query = query.Where("sale_status = ?", *f.SaleStatus)
	}
	if f.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *f.PaymentStatus)
	}
	if f.CustomerID != nil {
		query = query.Where("customer_id = ?", *f.CustomerID)
	}
	if f.StartDate != nil {
		query = query.Where("sale_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("sale_date < ?", *f.EndDate)
	}
	return query
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("sale_status", status).Error
}

func (r *saleRepository) AddPayment(ctx context.Context, payment *entity.SalePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// TotalsBetween sums confirmed and delivered sale totals in [start, end).
// Returns total revenue and collected tax.
func (r *saleRepository) TotalsBetween(ctx context.Context, start, end time.Time) (int64, int64, error) {
	var row struct {
		Revenue int64
		Tax     int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(tax_amount), 0) AS tax").
		Where("sale_status IN ?", []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusDelivered}).
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Scan(&row).Error
	return row.Revenue, row.Tax, err
}

func (r *saleRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("sale_status IN ?", []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusDelivered}).
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Count(&count).Error
	return count, err
}

// TopProducts aggregates sold quantity and revenue per product in [start, end).
func (r *saleRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.ProductSalesRow, error) {
	var rows []domainRepo.ProductSalesRow
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Select("sale_items.product_id, sale_items.product_name, SUM(sale_items.quantity) AS quantity, SUM(sale_items.line_total) AS revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.sale_status IN ?", []enum.SaleStatus{enum.SaleStatusConfirmed, enum.SaleStatusDelivered}).
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end).
		Group("sale_items.product_id, sale_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
