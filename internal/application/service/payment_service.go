package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/pkg/apperror"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// PaymentService handles customer payment obligations
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	cache        *cache.Cache
	summaryTTL   time.Duration
	logger       *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	c *cache.Cache,
	summaryTTL time.Duration,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		cache:        c,
		summaryTTL:   summaryTTL,
		logger:       logger,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	CustomerID           *uuid.UUID
	CustomerName         string
	Amount               int64 // cents
	PaymentMethod        enum.PaymentMethod
	WalletType           enum.WalletType
	TransactionReference *string
	Status               enum.PaymentStatus
	DueDate              *time.Time
	Description          *string
	Notes                *string
	CreatedBy            uuid.UUID
}

// CreatePayment records a new payment obligation. A pending payment linked
// to a customer increases that customer's debt balance.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	status := input.Status
	if status == "" {
		status = enum.PaymentStatusPending
	}

	name := input.CustomerName
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		name = customer.FullName()
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	if status == enum.PaymentStatusPending && input.DueDate == nil {
		s.logger.Warn("pending payment created without due date, it can never turn overdue",
			zap.String("customer", name))
	}

	payment := &entity.Payment{
		CustomerID:           input.CustomerID,
		CustomerName:         name,
		Amount:               input.Amount,
		PaymentMethod:        input.PaymentMethod,
		WalletType:           input.WalletType,
		TransactionReference: input.TransactionReference,
		Status:               status,
		DueDate:              input.DueDate,
		Description:          input.Description,
		Notes:                input.Notes,
		CreatedBy:            input.CreatedBy,
	}
	if status == enum.PaymentStatusPaid {
		now := time.Now()
		payment.PaidDate = &now
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if input.CustomerID != nil && (status == enum.PaymentStatusPending || status == enum.PaymentStatusOverdue) {
		if err := s.customerRepo.AdjustDebt(ctx, *input.CustomerID, payment.Amount); err != nil {
			s.logger.Error("failed to adjust customer debt",
				zap.String("customer_id", input.CustomerID.String()), zap.Error(err))
		}
	}

	s.invalidateSummary(ctx)
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// UpdatePaymentInput represents the update payment input
type UpdatePaymentInput struct {
	ID                   uuid.UUID
	Amount               *int64
	PaymentMethod        *enum.PaymentMethod
	WalletType           *enum.WalletType
	TransactionReference *string
	DueDate              *time.Time
	Description          *string
	Notes                *string
	UpdatedBy            uuid.UUID
}

// UpdatePayment updates a payment's editable fields. Status transitions go
// through MarkPaid and CancelPayment instead.
func (s *PaymentService) UpdatePayment(ctx context.Context, input *UpdatePaymentInput) (*entity.Payment, error) {
	payment, err := s.GetPayment(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	debtDelta := int64(0)
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewBadRequestError("Payment amount must be positive")
		}
		if payment.CustomerID != nil && (payment.Status == enum.PaymentStatusPending || payment.Status == enum.PaymentStatusOverdue) {
			debtDelta = *input.Amount - payment.Amount
		}
		payment.Amount = *input.Amount
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.WalletType != nil {
		payment.WalletType = *input.WalletType
	}
	if input.TransactionReference != nil {
		payment.TransactionReference = input.TransactionReference
	}
	if input.DueDate != nil {
		payment.DueDate = input.DueDate
	}
	if input.Description != nil {
		payment.Description = input.Description
	}
	if input.Notes != nil {
		payment.Notes = input.Notes
	}
	payment.UpdatedBy = &input.UpdatedBy

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if debtDelta != 0 {
		if err := s.customerRepo.AdjustDebt(ctx, *payment.CustomerID, debtDelta); err != nil {
			s.logger.Error("failed to adjust customer debt", zap.Error(err))
		}
	}

	s.invalidateSummary(ctx)
	return payment, nil
}

// MarkPaid settles a pending or overdue payment and releases the customer's
// debt for it.
func (s *PaymentService) MarkPaid(ctx context.Context, id, userID uuid.UUID) (*entity.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == enum.PaymentStatusPaid {
		return payment, nil
	}
	if payment.Status == enum.PaymentStatusCancelled {
		return nil, apperror.NewBadRequestError("Cancelled payments cannot be marked as paid")
	}

	now := time.Now()
	payment.Status = enum.PaymentStatusPaid
	payment.PaidDate = &now
	payment.UpdatedBy = &userID

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if payment.CustomerID != nil {
		if err := s.customerRepo.AdjustDebt(ctx, *payment.CustomerID, -payment.Amount); err != nil {
			s.logger.Error("failed to adjust customer debt", zap.Error(err))
		}
	}

	s.invalidateSummary(ctx)
	return payment, nil
}

// CancelPayment voids a payment obligation. Cancelled payments drop out of
// every summary bucket.
func (s *PaymentService) CancelPayment(ctx context.Context, id, userID uuid.UUID) (*entity.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == enum.PaymentStatusPaid {
		return nil, apperror.NewBadRequestError("Paid payments cannot be cancelled")
	}
	if payment.Status == enum.PaymentStatusCancelled {
		return payment, nil
	}

	wasOwed := payment.Status == enum.PaymentStatusPending || payment.Status == enum.PaymentStatusOverdue
	payment.Status = enum.PaymentStatusCancelled
	payment.UpdatedBy = &userID

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if wasOwed && payment.CustomerID != nil {
		if err := s.customerRepo.AdjustDebt(ctx, *payment.CustomerID, -payment.Amount); err != nil {
			s.logger.Error("failed to adjust customer debt", zap.Error(err))
		}
	}

	s.invalidateSummary(ctx)
	return payment, nil
}

// DeletePayment removes a payment record
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return err
	}

	if payment.CustomerID != nil && (payment.Status == enum.PaymentStatusPending || payment.Status == enum.PaymentStatusOverdue) {
		if err := s.customerRepo.AdjustDebt(ctx, *payment.CustomerID, -payment.Amount); err != nil {
			s.logger.Error("failed to adjust customer debt", zap.Error(err))
		}
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummary(ctx)
	return nil
}

// GetSummary returns the bucket totals over all payments. The result is
// served from Redis when fresh enough.
func (s *PaymentService) GetSummary(ctx context.Context) (*PaymentSummary, error) {
	if data, ok := s.cache.Get(ctx, cache.PaymentSummaryKey); ok {
		var cached PaymentSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := SummarizePayments(payments, time.Now())

	debtors, err := s.customerRepo.CountDebtors(ctx)
	if err != nil {
		return nil, err
	}
	summary.CustomersWithDebt = debtors

	if data, err := json.Marshal(summary); err == nil {
		s.cache.Set(ctx, cache.PaymentSummaryKey, data, s.summaryTTL)
	}

	return &summary, nil
}

// SweepOverdue finds pending payments past their due date and flips them to
// overdue. Returns the number of payments updated.
func (s *PaymentService) SweepOverdue(ctx context.Context) (int64, error) {
	due, err := s.paymentRepo.GetPendingDueBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(due))
	for i := range due {
		ids = append(ids, due[i].ID)
	}

	updated, err := s.paymentRepo.MarkOverdueBatch(ctx, ids)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.logger.Info("marked payments overdue", zap.Int64("count", updated))
		s.invalidateSummary(ctx)
	}

	return updated, nil
}

func (s *PaymentService) invalidateSummary(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.PaymentSummaryKey, cache.DashboardStatsKey)
}
