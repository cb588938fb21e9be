package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ventapos/ventapos-api/internal/config"
	"github.com/ventapos/ventapos-api/internal/domain/cart"
	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/pkg/apperror"
	"github.com/ventapos/ventapos-api/pkg/pagination"
	"github.com/ventapos/ventapos-api/pkg/utils"
)

// SaleService handles the sale flow: building a draft from catalog products,
// deriving totals and committing the sale with its stock movements.
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	cfg          config.SalesConfig
	cache        *cache.Cache
	logger       *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	cfg config.SalesConfig,
	c *cache.Cache,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
		cache:        c,
		logger:       logger,
	}
}

// SaleItemInput is one requested product line
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// SaleInput represents a sale submission
type SaleInput struct {
	Items          []SaleItemInput
	CustomerID     *uuid.UUID
	CustomerName   *string
	CustomerEmail  *string
	PaymentMethod  enum.PaymentMethod
	DiscountAmount int64 // cents
	AmountPaid     int64 // cents paid at the counter
	Notes          *string
	CreatedBy      uuid.UUID
}

// SalePreview is the derived view of a draft before submission
type SalePreview struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
}

// taxRateBP resolves the active tax rate: company settings first, then the
// configured default.
func (s *SaleService) taxRateBP(ctx context.Context) int64 {
	settings, err := s.settingsRepo.Get(ctx)
	if err == nil && settings != nil && settings.TaxRateBP > 0 {
		return settings.TaxRateBP
	}
	return s.cfg.DefaultTaxRateBP
}

// buildDraft materializes the requested items into a cart draft, copying
// price and identity from the catalog at this moment.
func (s *SaleService) buildDraft(ctx context.Context, input *SaleInput) (*cart.Draft, []entity.Product, error) {
	if len(input.Items) == 0 {
		return nil, nil, apperror.NewBadRequestError("Sale requires at least one item")
	}

	// Merge repeated product IDs so each one becomes a single line,
	// preserving first-occurrence order.
	merged := make([]SaleItemInput, 0, len(input.Items))
	position := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if idx, ok := position[item.ProductID]; ok {
			merged[idx].Quantity += item.Quantity
			continue
		}
		position[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	ids := make([]uuid.UUID, 0, len(merged))
	for _, item := range merged {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	draft := cart.NewDraft(cart.Options{
		DefaultTaxRateBP: s.taxRateBP(ctx),
		ClampTotalAtZero: s.cfg.ClampNegativeTotal,
	})
	draft.CustomerID = input.CustomerID
	if input.PaymentMethod != "" {
		draft.PaymentMethod = input.PaymentMethod
	}
	draft.Discount = input.DiscountAmount

	for _, item := range merged {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError("Product")
		}
		if !product.IsActive {
			return nil, nil, apperror.NewBadRequestError("Product " + product.Name + " is not available")
		}

		draft.AddProduct(cart.ProductRef{
			ID:      product.ID,
			Barcode: product.Barcode,
			Name:    product.Name,
			Price:   product.Price,
		})
		if err := draft.SetQuantity(draft.Len()-1, item.Quantity); err != nil {
			return nil, nil, err
		}
	}

	return draft, products, nil
}

// PreviewSale derives totals for a prospective sale without persisting
// anything or touching stock.
func (s *SaleService) PreviewSale(ctx context.Context, input *SaleInput) (*SalePreview, error) {
	draft, _, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SalePreview{Lines: draft.Lines(), Totals: draft.Totals()}, nil
}

// CreateSale commits a sale: stock is decremented atomically, then the sale,
// its items and the counter payment are written in one transaction. A sale
// that is not fully paid adds the open balance to the customer's debt.
func (s *SaleService) CreateSale(ctx context.Context, input *SaleInput) (*entity.Sale, error) {
	draft, _, err := s.buildDraft(ctx, input)
	if err != nil {
		return nil, err
	}

	var customerName, customerEmail *string
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		name := customer.FullName()
		customerName = &name
		customerEmail = customer.Email
	} else {
		customerName = input.CustomerName
		customerEmail = input.CustomerEmail
	}

	decrements := make(map[uuid.UUID]int, draft.Len())
	for _, line := range draft.Lines() {
		decrements[line.ProductID] += line.Quantity
	}

	failed, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, apperror.NewConflictError("Insufficient stock for one or more products")
	}

	totals := draft.Totals()
	now := time.Now()

	sale := &entity.Sale{
		SaleNumber:     utils.GenerateSaleNumber(),
		CustomerID:     input.CustomerID,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		SaleDate:       now,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
		PaymentMethod:  draft.PaymentMethod,
		PaymentStatus:  paymentStatusFor(input.AmountPaid, totals.TotalAmount),
		SaleStatus:     enum.SaleStatusConfirmed,
		Notes:          input.Notes,
		CreatedBy:      input.CreatedBy,
	}

	items := make([]entity.SaleItem, 0, draft.Len())
	for _, line := range draft.Lines() {
		productID := line.ProductID
		items = append(items, entity.SaleItem{
			ProductID:      &productID,
			ProductBarcode: line.Barcode,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TaxRateBP:      line.TaxRateBP,
			TaxAmount:      line.TaxAmount,
			LineTotal:      line.LineTotal,
		})
	}

	var payment *entity.SalePayment
	if input.AmountPaid > 0 {
		payment = &entity.SalePayment{
			PaymentMethod: draft.PaymentMethod,
			Amount:        input.AmountPaid,
			PaymentDate:   now,
			CreatedBy:     input.CreatedBy,
		}
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, items, payment); err != nil {
		// The stock decrement already happened, put it back.
		if restockErr := s.productRepo.AtomicIncrementBatch(ctx, decrements); restockErr != nil {
			s.logger.Error("failed to restore stock after sale rollback",
				zap.String("sale_number", sale.SaleNumber), zap.Error(restockErr))
		}
		return nil, err
	}

	if input.CustomerID != nil && input.AmountPaid < totals.TotalAmount {
		balance := totals.TotalAmount - input.AmountPaid
		if err := s.customerRepo.AdjustDebt(ctx, *input.CustomerID, balance); err != nil {
			s.logger.Error("failed to record sale balance as customer debt", zap.Error(err))
		}
	}

	s.cache.Invalidate(ctx, cache.DashboardStatsKey)
	s.logger.Info("sale created",
		zap.String("sale_number", sale.SaleNumber),
		zap.Int64("total_cents", sale.TotalAmount),
		zap.Int("items", len(items)))

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

func paymentStatusFor(paid, total int64) enum.SalePaymentStatus {
	switch {
	case paid <= 0:
		return enum.SalePaymentStatusPending
	case paid < total:
		return enum.SalePaymentStatusPartial
	default:
		return enum.SalePaymentStatusCompleted
	}
}

// GetSale retrieves a sale with items, payments and customer
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and page-based pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales using cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sale entity.Sale) string { return sale.ID.String() },
		func(sale entity.Sale) time.Time { return sale.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// CancelSale voids a sale, restores the sold stock and releases any open
// customer balance created by it.
func (s *SaleService) CancelSale(ctx context.Context, id, userID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if sale.SaleStatus == enum.SaleStatusCancelled {
		return sale, nil
	}
	if sale.SaleStatus == enum.SaleStatusDelivered {
		return nil, apperror.NewBadRequestError("Delivered sales cannot be cancelled")
	}

	increments := make(map[uuid.UUID]int, len(sale.Items))
	for _, item := range sale.Items {
		if item.ProductID != nil {
			increments[*item.ProductID] += item.Quantity
		}
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if sale.CustomerID != nil {
		if balance := sale.TotalAmount - sale.AmountPaid(); balance > 0 {
			if err := s.customerRepo.AdjustDebt(ctx, *sale.CustomerID, -balance); err != nil {
				s.logger.Error("failed to release customer debt on cancellation", zap.Error(err))
			}
		}
	}

	sale.SaleStatus = enum.SaleStatusCancelled
	sale.UpdatedBy = &userID
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.DashboardStatsKey)
	s.logger.Info("sale cancelled", zap.String("sale_number", sale.SaleNumber))
	return sale, nil
}

// MarkDelivered flips a confirmed sale to delivered
func (s *SaleService) MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if sale.SaleStatus != enum.SaleStatusConfirmed {
		return nil, apperror.NewBadRequestError("Only confirmed sales can be delivered")
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusDelivered); err != nil {
		return nil, err
	}
	sale.SaleStatus = enum.SaleStatusDelivered
	return sale, nil
}

// AddSalePaymentInput represents an additional payment against a sale
type AddSalePaymentInput struct {
	SaleID               uuid.UUID
	PaymentMethod        enum.PaymentMethod
	Amount               int64 // cents
	TransactionReference *string
	Notes                *string
	CreatedBy            uuid.UUID
}

// AddSalePayment records a follow-up payment against a sale, advancing its
// payment status and reducing the customer's open balance.
func (s *SaleService) AddSalePayment(ctx context.Context, input *AddSalePaymentInput) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}

	if sale.SaleStatus == enum.SaleStatusCancelled {
		return nil, apperror.NewBadRequestError("Cancelled sales cannot receive payments")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	outstanding := sale.TotalAmount - sale.AmountPaid()
	if input.Amount > outstanding {
		return nil, apperror.NewBadRequestError("Payment exceeds outstanding balance")
	}

	payment := &entity.SalePayment{
		SaleID:               sale.ID,
		PaymentMethod:        input.PaymentMethod,
		Amount:               input.Amount,
		PaymentDate:          time.Now(),
		TransactionReference: input.TransactionReference,
		Notes:                input.Notes,
		CreatedBy:            input.CreatedBy,
	}
	if err := s.saleRepo.AddPayment(ctx, payment); err != nil {
		return nil, err
	}

	sale.Payments = append(sale.Payments, *payment)
	sale.PaymentStatus = paymentStatusFor(sale.AmountPaid(), sale.TotalAmount)
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	if sale.CustomerID != nil {
		if err := s.customerRepo.AdjustDebt(ctx, *sale.CustomerID, -input.Amount); err != nil {
			s.logger.Error("failed to reduce customer debt", zap.Error(err))
		}
	}

	return sale, nil
}
