package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/internal/infrastructure/cache"
)

// DashboardService provides the admin panel overview statistics
type DashboardService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	paymentSvc   *PaymentService
	productSvc   *ProductService
	cache        *cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	paymentSvc *PaymentService,
	productSvc *ProductService,
	c *cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentSvc:   paymentSvc,
		productSvc:   productSvc,
		cache:        c,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// DashboardStats represents the admin panel overview
type DashboardStats struct {
	TodayRevenue   float64                      `json:"today_revenue"`
	TodaySales     int64                        `json:"today_sales"`
	MonthRevenue   float64                      `json:"month_revenue"`
	MonthTax       float64                      `json:"month_tax"`
	MonthSales     int64                        `json:"month_sales"`
	TotalProducts  int64                        `json:"total_products"`
	LowStockCount  int                          `json:"low_stock_count"`
	TotalCustomers int64                        `json:"total_customers"`
	Payments       PaymentSummary               `json:"payments"`
	TopProducts    []repository.ProductSalesRow `json:"top_products"`
}

// GetStats assembles the dashboard numbers, serving from cache when fresh.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if data, ok := s.cache.Get(ctx, cache.DashboardStatsKey); ok {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tomorrow := dayStart.Add(24 * time.Hour)

	stats := &DashboardStats{}

	todayRevenue, _, err := s.saleRepo.TotalsBetween(ctx, dayStart, tomorrow)
	if err != nil {
		return nil, err
	}
	stats.TodayRevenue = float64(todayRevenue) / 100

	stats.TodaySales, err = s.saleRepo.CountBetween(ctx, dayStart, tomorrow)
	if err != nil {
		return nil, err
	}

	monthRevenue, monthTax, err := s.saleRepo.TotalsBetween(ctx, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}
	stats.MonthRevenue = float64(monthRevenue) / 100
	stats.MonthTax = float64(monthTax) / 100

	stats.MonthSales, err = s.saleRepo.CountBetween(ctx, monthStart, tomorrow)
	if err != nil {
		return nil, err
	}

	stats.TotalProducts, err = s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productSvc.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	stats.TotalCustomers, err = s.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.paymentSvc.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	stats.Payments = *summary

	stats.TopProducts, err = s.saleRepo.TopProducts(ctx, monthStart, tomorrow, 5)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, cache.DashboardStatsKey, data, s.cacheTTL)
	}

	return stats, nil
}
