package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings holds the single-row panel configuration: company identity,
// sale defaults, and the WhatsApp reminder templates.
type CompanySettings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName  string    `gorm:"size:255;not null" json:"company_name"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	Phone        *string   `gorm:"size:50" json:"phone,omitempty"`
	Email        *string   `gorm:"size:255" json:"email,omitempty"`
	CurrencyCode string    `gorm:"size:10;default:'ARS'" json:"currency_code"`
	// TaxRateBP is the default sale tax rate in basis points (2100 = 21%).
	TaxRateBP         int64      `gorm:"default:2100" json:"tax_rate_bp"`
	LowStockThreshold int        `gorm:"default:5" json:"low_stock_threshold"`
	ReminderTemplate  string     `gorm:"type:text" json:"reminder_template"`
	OverdueTemplate   string     `gorm:"type:text" json:"overdue_template"`
	UpdatedBy         *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating settings
func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
