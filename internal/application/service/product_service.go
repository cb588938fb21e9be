package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/pkg/apperror"
	"github.com/ventapos/ventapos-api/pkg/pagination"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, settingsRepo repository.SettingsRepository) *ProductService {
	return &ProductService{productRepo: productRepo, settingsRepo: settingsRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Barcode     string
	Name        string
	Description *string
	Price       int64 // cents
	Quantity    int
	MinStock    int
	Category    string
	Supplier    *string
	CreatedBy   uuid.UUID
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Product price cannot be negative")
	}

	existing, err := s.productRepo.GetByBarcode(ctx, input.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this barcode already exists")
	}

	product := &entity.Product{
		Barcode:     input.Barcode,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		MinStock:    input.MinStock,
		Category:    input.Category,
		Supplier:    input.Supplier,
		IsActive:    true,
		CreatedBy:   &input.CreatedBy,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode looks up a product by its barcode, the scanner path in
// the sale flow.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below their low stock threshold. The
// company-wide threshold overrides per-product minimums when set.
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	threshold := 0
	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings != nil {
		threshold = settings.LowStockThreshold
	}
	return s.productRepo.GetLowStock(ctx, threshold)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	Barcode     *string
	Name        *string
	Description *string
	Price       *int64 // cents
	Quantity    *int
	MinStock    *int
	Category    *string
	Supplier    *string
	IsActive    *bool
	UpdatedBy   uuid.UUID
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Barcode != nil && *input.Barcode != product.Barcode {
		existing, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A product with this barcode already exists")
		}
		product.Barcode = *input.Barcode
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Product price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Supplier != nil {
		product.Supplier = input.Supplier
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedBy = &input.UpdatedBy

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
