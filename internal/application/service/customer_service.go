package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/pkg/apperror"
	"github.com/ventapos/ventapos-api/pkg/pagination"
	"github.com/ventapos/ventapos-api/pkg/utils"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, paymentRepo repository.PaymentRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, paymentRepo: paymentRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	FirstName          string
	LastName           *string
	Email              *string
	Phone              *string
	Address            *string
	City               *string
	PostalCode         *string
	Country            *string
	TaxID              *string
	CustomerType       enum.CustomerType
	CreditLimit        int64 // cents
	DiscountPercentage float64
	Notes              *string
	CreatedBy          uuid.UUID
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Email != nil && *input.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this email already exists")
		}
	}

	customerType := input.CustomerType
	if customerType == "" {
		customerType = enum.CustomerTypeIndividual
	}

	customer := &entity.Customer{
		CustomerCode:       utils.GenerateCustomerCode(),
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              input.Email,
		Phone:              input.Phone,
		Address:            input.Address,
		City:               input.City,
		PostalCode:         input.PostalCode,
		Country:            input.Country,
		TaxID:              input.TaxID,
		CustomerType:       customerType,
		CreditLimit:        input.CreditLimit,
		DiscountPercentage: input.DiscountPercentage,
		IsActive:           true,
		Notes:              input.Notes,
		CreatedBy:          &input.CreatedBy,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerPayments returns a customer's payment history
func (s *CustomerService) GetCustomerPayments(ctx context.Context, id uuid.UUID) ([]entity.Payment, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByCustomer(ctx, id)
}

// ListCustomers lists customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListDebtors lists active customers carrying debt, highest balance first
func (s *CustomerService) ListDebtors(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.GetDebtors(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID                 uuid.UUID
	FirstName          *string
	LastName           *string
	Email              *string
	Phone              *string
	Address            *string
	City               *string
	PostalCode         *string
	Country            *string
	TaxID              *string
	CustomerType       *enum.CustomerType
	CreditLimit        *int64
	DiscountPercentage *float64
	IsActive           *bool
	Notes              *string
	UpdatedBy          uuid.UUID
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = input.LastName
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.PostalCode != nil {
		customer.PostalCode = input.PostalCode
	}
	if input.Country != nil {
		customer.Country = input.Country
	}
	if input.TaxID != nil {
		customer.TaxID = input.TaxID
	}
	if input.CustomerType != nil {
		customer.CustomerType = *input.CustomerType
	}
	if input.CreditLimit != nil {
		customer.CreditLimit = *input.CreditLimit
	}
	if input.DiscountPercentage != nil {
		customer.DiscountPercentage = *input.DiscountPercentage
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}
	customer.UpdatedBy = &input.UpdatedBy

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Customers with outstanding debt
// cannot be removed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	if customer.HasDebt() {
		return apperror.NewBadRequestError("Customers with outstanding debt cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}
