package request

import "github.com/google/uuid"

// SaleItemRequest represents one cart line in a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a sale creation (or preview) request
type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerID     *uuid.UUID        `json:"customer_id"`
	CustomerName   *string           `json:"customer_name"`
	CustomerEmail  *string           `json:"customer_email" binding:"omitempty,email"`
	PaymentMethod  string            `json:"payment_method" binding:"omitempty,oneof=cash card transfer wallet"`
	DiscountAmount float64           `json:"discount_amount" binding:"min=0"`
	AmountPaid     float64           `json:"amount_paid" binding:"min=0"`
	Notes          *string           `json:"notes"`
}

// AddSalePaymentRequest represents a follow-up payment on an open sale
type AddSalePaymentRequest struct {
	PaymentMethod        string  `json:"payment_method" binding:"required,oneof=cash card transfer wallet"`
	Amount               float64 `json:"amount" binding:"required,gt=0"`
	TransactionReference *string `json:"transaction_reference"`
	Notes                *string `json:"notes"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	SaleStatus    string `form:"sale_status" binding:"omitempty,oneof=draft confirmed delivered cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending partial completed refunded"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Limit         int    `form:"limit"` // For cursor-based pagination
}
