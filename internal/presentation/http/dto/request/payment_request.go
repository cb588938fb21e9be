package request

import "github.com/google/uuid"

// CreatePaymentRequest represents a standalone payment creation request
type CreatePaymentRequest struct {
	CustomerID           *uuid.UUID `json:"customer_id"`
	CustomerName         string     `json:"customer_name" binding:"omitempty,max=255"`
	Amount               float64    `json:"amount" binding:"required,gt=0"`
	PaymentMethod        string     `json:"payment_method" binding:"required,oneof=cash card transfer wallet"`
	WalletType           string     `json:"wallet_type" binding:"omitempty,oneof=mercadopago uala brubank"`
	TransactionReference *string    `json:"transaction_reference"`
	Status               string     `json:"status" binding:"omitempty,oneof=pending paid"`
	DueDate              *string    `json:"due_date"` // RFC 3339 or YYYY-MM-DD
	Description          *string    `json:"description"`
	Notes                *string    `json:"notes"`
}

// UpdatePaymentRequest represents a payment update request
type UpdatePaymentRequest struct {
	Amount               *float64 `json:"amount" binding:"omitempty,gt=0"`
	PaymentMethod        *string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer wallet"`
	WalletType           *string  `json:"wallet_type" binding:"omitempty,oneof=mercadopago uala brubank"`
	TransactionReference *string  `json:"transaction_reference"`
	DueDate              *string  `json:"due_date"`
	Description          *string  `json:"description"`
	Notes                *string  `json:"notes"`
}

// PaymentFilterRequest represents payment filter parameters
type PaymentFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
	Method     string `form:"method" binding:"omitempty,oneof=cash card transfer wallet"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// SendRemindersRequest represents a bulk WhatsApp reminder request
type SendRemindersRequest struct {
	PaymentIDs []uuid.UUID `json:"payment_ids" binding:"required,min=1"`
}
