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

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{})

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR description ILIKE ? OR transaction_reference ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Method != nil {
		query = query.Where("payment_method = ?", *params.Method)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
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
		Order(sortBy + " " + sortOrder).
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) ListAll(ctx context.Context) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// GetPendingDueBefore returns pending payments whose due date is strictly before now.
func (r *paymentRepository) GetPendingDueBefore(ctx context.Context, now time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", enum.PaymentStatusPending, now).
		Preload("Customer").
		Find(&payments).Error
	return payments, err
}

// ListOverdue returns payments already marked overdue along with pending
// payments past their due date.
func (r *paymentRepository) ListOverdue(ctx context.Context, now time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND due_date IS NOT NULL AND due_date < ?)",
			enum.PaymentStatusOverdue, enum.PaymentStatusPending, now).
		Preload("Customer").
		Order("due_date ASC").
		Find(&payments).Error
	return payments, err
}

// MarkOverdueBatch flips pending payments to overdue in a single statement.
func (r *paymentRepository) MarkOverdueBatch(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("id IN ? AND status = ?", ids, enum.PaymentStatusPending).
		Update("status", enum.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, paidDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paidDate != nil {
		updates["paid_date"] = *paidDate
	}
	return r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

type paymentReminderRepository struct {
	db *gorm.DB
}

// NewPaymentReminderRepository creates a new payment reminder repository
func NewPaymentReminderRepository(db *gorm.DB) domainRepo.PaymentReminderRepository {
	return &paymentReminderRepository{db: db}
}

func (r *paymentReminderRepository) Create(ctx context.Context, reminder *entity.PaymentReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *paymentReminderRepository) CreateBatch(ctx context.Context, reminders []entity.PaymentReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reminders).Error
}

func (r *paymentReminderRepository) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentReminder, error) {
	var reminders []entity.PaymentReminder
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("sent_at DESC").
		Find(&reminders).Error
	return reminders, err
}

func (r *paymentReminderRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.PaymentReminder, int64, error) {
	var reminders []entity.PaymentReminder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PaymentReminder{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("sent_at DESC").
		Find(&reminders).Error

	return reminders, total, err
}
