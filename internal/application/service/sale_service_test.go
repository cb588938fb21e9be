package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventapos/ventapos-api/internal/config"
	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

type stubProductRepo struct {
	products      map[uuid.UUID]*entity.Product
	decremented   map[uuid.UUID]int
	failDecrement []uuid.UUID
}

func newStubProductRepo(products ...*entity.Product) *stubProductRepo {
	r := &stubProductRepo{
		products:    make(map[uuid.UUID]*entity.Product),
		decremented: make(map[uuid.UUID]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *stubProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *entity.Product) error { return nil }
func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error      { return nil }

func (r *stubProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]entity.Product, error) { return nil, nil }

func (r *stubProductRepo) GetLowStock(_ context.Context, _ int) ([]entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(r.failDecrement) > 0 {
		return r.failDecrement, nil
	}
	for id, amount := range decrements {
		r.decremented[id] += amount
		r.products[id].Quantity -= amount
	}
	return nil, nil
}

func (r *stubProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		r.products[id].Quantity += amount
	}
	return nil
}

func (r *stubProductRepo) CountActive(_ context.Context) (int64, error) { return 0, nil }

type stubSaleRepo struct {
	created *entity.Sale
	items   []entity.SaleItem
	payment *entity.SalePayment
}

func (r *stubSaleRepo) CreateWithItems(_ context.Context, sale *entity.Sale, items []entity.SaleItem, payment *entity.SalePayment) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.created = sale
	r.items = items
	r.payment = payment
	return nil
}

func (r *stubSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.created, nil
}

func (r *stubSaleRepo) GetBySaleNumber(_ context.Context, _ string) (*entity.Sale, error) {
	return r.created, nil
}

func (r *stubSaleRepo) GetWithDetails(_ context.Context, _ uuid.UUID) (*entity.Sale, error) {
	if r.created == nil {
		return nil, nil
	}
	sale := *r.created
	sale.Items = r.items
	if r.payment != nil {
		sale.Payments = []entity.SalePayment{*r.payment}
	}
	return &sale, nil
}

func (r *stubSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.created = sale
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (r *stubSaleRepo) ListWithCursor(_ context.Context, _ *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]entity.Sale, error) { return nil, nil }

func (r *stubSaleRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status enum.SaleStatus) error {
	r.created.SaleStatus = status
	return nil
}

func (r *stubSaleRepo) AddPayment(_ context.Context, payment *entity.SalePayment) error {
	r.payment = payment
	return nil
}

func (r *stubSaleRepo) TotalsBetween(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return 0, 0, nil
}

func (r *stubSaleRepo) CountBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, _, _ time.Time, _ int) ([]repository.ProductSalesRow, error) {
	return nil, nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	debtDelta map[uuid.UUID]int64
}

func newStubCustomerRepo(customers ...*entity.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{
		customers: make(map[uuid.UUID]*entity.Customer),
		debtDelta: make(map[uuid.UUID]int64),
	}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *stubCustomerRepo) GetByEmail(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }
func (r *stubCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

func (r *stubCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) ListAll(_ context.Context) ([]entity.Customer, error) { return nil, nil }

func (r *stubCustomerRepo) GetDebtors(_ context.Context, _ *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) AdjustDebt(_ context.Context, id uuid.UUID, delta int64) error {
	r.debtDelta[id] += delta
	return nil
}

func (r *stubCustomerRepo) CountActive(_ context.Context) (int64, error)  { return 0, nil }
func (r *stubCustomerRepo) CountDebtors(_ context.Context) (int64, error) { return 0, nil }

type stubSettingsRepo struct {
	settings *entity.CompanySettings
}

func (r *stubSettingsRepo) Get(_ context.Context) (*entity.CompanySettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *entity.CompanySettings) error {
	r.settings = s
	return nil
}

func newTestSaleService(productRepo *stubProductRepo, saleRepo *stubSaleRepo, customerRepo *stubCustomerRepo) *SaleService {
	return NewSaleService(
		saleRepo,
		productRepo,
		customerRepo,
		&stubSettingsRepo{},
		config.SalesConfig{DefaultTaxRateBP: 2100},
		cache.Disabled(),
		nil,
	)
}

func testProduct(price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Barcode:  "779" + uuid.New().String()[:6],
		Name:     "Producto",
		Price:    price,
		Quantity: stock,
		IsActive: true,
	}
}

func TestPreviewSaleTotals(t *testing.T) {
	p1 := testProduct(1000, 10)
	p2 := testProduct(2000, 10)
	svc := newTestSaleService(newStubProductRepo(p1, p2), &stubSaleRepo{}, newStubCustomerRepo())

	preview, err := svc.PreviewSale(context.Background(), &SaleInput{
		Items: []SaleItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, preview.Lines, 2)
	assert.Equal(t, int64(4000), preview.Totals.Subtotal)
	assert.Equal(t, int64(840), preview.Totals.TaxAmount)
	assert.Equal(t, int64(4840), preview.Totals.TotalAmount)
}

func TestPreviewSaleMergesDuplicateItems(t *testing.T) {
	p := testProduct(1000, 10)
	svc := newTestSaleService(newStubProductRepo(p), &stubSaleRepo{}, newStubCustomerRepo())

	preview, err := svc.PreviewSale(context.Background(), &SaleInput{
		Items: []SaleItemInput{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: p.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, preview.Lines, 1)
	assert.Equal(t, 3, preview.Lines[0].Quantity)
	assert.Equal(t, int64(3000), preview.Totals.Subtotal)
}

func TestPreviewSaleRejectsEmpty(t *testing.T) {
	svc := newTestSaleService(newStubProductRepo(), &stubSaleRepo{}, newStubCustomerRepo())

	_, err := svc.PreviewSale(context.Background(), &SaleInput{})
	assert.Error(t, err)
}

func TestCreateSaleDecrementsStockAndPersists(t *testing.T) {
	p := testProduct(1000, 5)
	productRepo := newStubProductRepo(p)
	saleRepo := &stubSaleRepo{}
	svc := newTestSaleService(productRepo, saleRepo, newStubCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &SaleInput{
		Items:      []SaleItemInput{{ProductID: p.ID, Quantity: 2}},
		AmountPaid: 2420,
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, 2, productRepo.decremented[p.ID])

	require.NotNil(t, saleRepo.created)
	assert.Contains(t, saleRepo.created.SaleNumber, "VTA-")
	assert.Equal(t, int64(2000), saleRepo.created.Subtotal)
	assert.Equal(t, int64(420), saleRepo.created.TaxAmount)
	assert.Equal(t, int64(2420), saleRepo.created.TotalAmount)
	assert.Equal(t, enum.SalePaymentStatusCompleted, saleRepo.created.PaymentStatus)
	assert.Equal(t, enum.SaleStatusConfirmed, sale.SaleStatus)

	require.Len(t, saleRepo.items, 1)
	assert.Equal(t, int64(2420), saleRepo.items[0].LineTotal)

	require.NotNil(t, saleRepo.payment)
	assert.Equal(t, int64(2420), saleRepo.payment.Amount)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	p := testProduct(1000, 1)
	productRepo := newStubProductRepo(p)
	productRepo.failDecrement = []uuid.UUID{p.ID}
	saleRepo := &stubSaleRepo{}
	svc := newTestSaleService(productRepo, saleRepo, newStubCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &SaleInput{
		Items:     []SaleItemInput{{ProductID: p.ID, Quantity: 5}},
		CreatedBy: uuid.New(),
	})
	assert.Error(t, err)
	assert.Nil(t, saleRepo.created)
}

func TestCreateSaleOnCreditAddsCustomerDebt(t *testing.T) {
	p := testProduct(1000, 5)
	customer := &entity.Customer{ID: uuid.New(), FirstName: "Juan", IsActive: true}
	customerRepo := newStubCustomerRepo(customer)
	svc := newTestSaleService(newStubProductRepo(p), &stubSaleRepo{}, customerRepo)

	_, err := svc.CreateSale(context.Background(), &SaleInput{
		Items:      []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
		CustomerID: &customer.ID,
		AmountPaid: 0,
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)

	// 1000 + 210 tax, nothing paid at the counter
	assert.Equal(t, int64(1210), customerRepo.debtDelta[customer.ID])
}

func TestCancelSaleRestoresStockAndDebt(t *testing.T) {
	p := testProduct(1000, 5)
	customer := &entity.Customer{ID: uuid.New(), FirstName: "Ana", IsActive: true}
	productRepo := newStubProductRepo(p)
	customerRepo := newStubCustomerRepo(customer)
	saleRepo := &stubSaleRepo{}
	svc := newTestSaleService(productRepo, saleRepo, customerRepo)

	_, err := svc.CreateSale(context.Background(), &SaleInput{
		Items:      []SaleItemInput{{ProductID: p.ID, Quantity: 2}},
		CustomerID: &customer.ID,
		CreatedBy:  uuid.New(),
	})
	require.NoError(t, err)
	require.Equal(t, 3, p.Quantity)

	_, err = svc.CancelSale(context.Background(), saleRepo.created.ID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, int64(0), customerRepo.debtDelta[customer.ID])
	assert.Equal(t, enum.SaleStatusCancelled, saleRepo.created.SaleStatus)
}
