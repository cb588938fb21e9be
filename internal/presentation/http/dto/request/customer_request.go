package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	FirstName          string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName           *string `json:"last_name" binding:"omitempty,max=100"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone" binding:"omitempty,max=30"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	PostalCode         *string `json:"postal_code"`
	Country            *string `json:"country"`
	TaxID              *string `json:"tax_id"`
	CustomerType       string  `json:"customer_type" binding:"omitempty,oneof=individual business"`
	CreditLimit        float64 `json:"credit_limit" binding:"min=0"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"min=0,max=100"`
	Notes              *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	FirstName          *string  `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName           *string  `json:"last_name" binding:"omitempty,max=100"`
	Email              *string  `json:"email" binding:"omitempty,email"`
	Phone              *string  `json:"phone" binding:"omitempty,max=30"`
	Address            *string  `json:"address"`
	City               *string  `json:"city"`
	PostalCode         *string  `json:"postal_code"`
	Country            *string  `json:"country"`
	TaxID              *string  `json:"tax_id"`
	CustomerType       *string  `json:"customer_type" binding:"omitempty,oneof=individual business"`
	CreditLimit        *float64 `json:"credit_limit" binding:"omitempty,min=0"`
	DiscountPercentage *float64 `json:"discount_percentage" binding:"omitempty,min=0,max=100"`
	IsActive           *bool    `json:"is_active"`
	Notes              *string  `json:"notes"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
