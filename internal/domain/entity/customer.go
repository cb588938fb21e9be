package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a customer account
type Customer struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CustomerCode       string            `gorm:"size:50;unique;not null" json:"customer_code"`
	FirstName          string            `gorm:"size:255;not null" json:"first_name"`
	LastName           *string           `gorm:"size:255" json:"last_name,omitempty"`
	Email              *string           `gorm:"size:255" json:"email,omitempty"`
	Phone              *string           `gorm:"size:50" json:"phone,omitempty"`
	Address            *string           `gorm:"type:text" json:"address,omitempty"`
	City               *string           `gorm:"size:100" json:"city,omitempty"`
	PostalCode         *string           `gorm:"size:20" json:"postal_code,omitempty"`
	Country            *string           `gorm:"size:100" json:"country,omitempty"`
	TaxID              *string           `gorm:"size:50" json:"tax_id,omitempty"`
	CustomerType       enum.CustomerType `gorm:"size:20;default:'individual'" json:"customer_type"`
	CreditLimit        int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountPercentage float64           `gorm:"default:0" json:"discount_percentage"`
	TotalDebt          int64             `gorm:"default:0;index" json:"-"` // Stored in cents, excluded from JSON
	IsActive           bool              `gorm:"default:true" json:"is_active"`
	Notes              *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy          *uuid.UUID        `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy          *uuid.UUID        `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	DeletedAt          gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Sales    []Sale    `gorm:"foreignKey:CustomerID" json:"-"`
	Payments []Payment `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		CreditLimit float64 `json:"credit_limit"`
		TotalDebt   float64 `json:"total_debt"`
	}{
		Alias:       Alias(c),
		CreditLimit: float64(c.CreditLimit) / 100,
		TotalDebt:   float64(c.TotalDebt) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// FullName joins first and last name for display and message templates.
func (c *Customer) FullName() string {
	if c.LastName == nil || *c.LastName == "" {
		return c.FirstName
	}
	return strings.TrimSpace(c.FirstName + " " + *c.LastName)
}

// HasDebt reports whether the customer carries an outstanding balance.
func (c *Customer) HasDebt() bool {
	return c.TotalDebt > 0
}
