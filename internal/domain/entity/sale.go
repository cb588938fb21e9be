package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed sale
type Sale struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber       string                 `gorm:"size:100;unique;not null" json:"sale_number"`
	CustomerID       *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName     *string                `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerEmail    *string                `gorm:"size:255" json:"customer_email,omitempty"`
	SaleDate         time.Time              `gorm:"not null;index" json:"sale_date"`
	Subtotal         int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount        int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount   int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount      int64                  `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod    enum.PaymentMethod     `gorm:"size:50;default:'cash'" json:"payment_method"`
	PaymentStatus    enum.SalePaymentStatus `gorm:"size:20;default:'pending'" json:"payment_status"`
	SaleStatus       enum.SaleStatus        `gorm:"size:20;default:'confirmed'" json:"sale_status"`
	Notes            *string                `gorm:"type:text" json:"notes,omitempty"`
	InvoiceGenerated bool                   `gorm:"default:false" json:"invoice_generated"`
	InvoiceNumber    *string                `gorm:"size:100" json:"invoice_number,omitempty"`
	CreatedBy        uuid.UUID              `gorm:"type:uuid;not null;index" json:"created_by"`
	UpdatedBy        *uuid.UUID             `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	DeletedAt        gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem    `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []SalePayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalAmount    float64 `json:"total_amount"`
	}{
		Alias:          Alias(s),
		Subtotal:       float64(s.Subtotal) / 100,
		TaxAmount:      float64(s.TaxAmount) / 100,
		DiscountAmount: float64(s.DiscountAmount) / 100,
		TotalAmount:    float64(s.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// AmountPaid sums the recorded payments against this sale, in cents.
func (s *Sale) AmountPaid() int64 {
	var paid int64
	for _, p := range s.Payments {
		paid += p.Amount
	}
	return paid
}

// SaleItem represents one product line within a sale
type SaleItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID      *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductBarcode string         `gorm:"size:100" json:"product_barcode"`
	ProductName    string         `gorm:"size:255;not null" json:"product_name"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	UnitPrice      int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	TaxRateBP      int64          `gorm:"default:0" json:"-"` // Basis points (2100 = 21%)
	TaxAmount      int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	LineTotal      int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		TaxRate   float64 `json:"tax_rate"`
		TaxAmount float64 `json:"tax_amount"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		TaxRate:   float64(si.TaxRateBP) / 100,
		TaxAmount: float64(si.TaxAmount) / 100,
		LineTotal: float64(si.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SalePayment represents a payment recorded against a sale
type SalePayment struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID               uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	PaymentMethod        enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	Amount               int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentDate          time.Time          `gorm:"not null" json:"payment_date"`
	TransactionReference *string            `gorm:"size:255" json:"transaction_reference,omitempty"`
	Notes                *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy            uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt            time.Time          `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (sp SalePayment) MarshalJSON() ([]byte, error) {
	type Alias SalePayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(sp),
		Amount: float64(sp.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale payment
func (sp *SalePayment) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalePayment model
func (SalePayment) TableName() string {
	return "sale_payments"
}
