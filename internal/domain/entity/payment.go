package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents a payment obligation tied to a customer. Only pending
// obligations can turn overdue; paid and cancelled records are terminal.
type Payment struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID           *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName         string             `gorm:"size:255;not null" json:"customer_name"`
	Amount               int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod        enum.PaymentMethod `gorm:"size:50;default:'cash'" json:"payment_method"`
	WalletType           enum.WalletType    `gorm:"size:50" json:"wallet_type,omitempty"`
	TransactionReference *string            `gorm:"size:255" json:"transaction_reference,omitempty"`
	Status               enum.PaymentStatus `gorm:"size:20;default:'pending';index" json:"status"`
	DueDate              *time.Time         `gorm:"index" json:"due_date,omitempty"`
	PaidDate             *time.Time         `json:"paid_date,omitempty"`
	Description          *string            `gorm:"type:text" json:"description,omitempty"`
	Notes                *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy            uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy            *uuid.UUID         `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Reminders []PaymentReminder `gorm:"foreignKey:PaymentID" json:"reminders,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// GetAmountDecimal returns the amount as a decimal (for message templates)
func (p *Payment) GetAmountDecimal() float64 {
	return float64(p.Amount) / 100
}

// PaymentReminder records one reminder message composed for a payment.
type PaymentReminder struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"payment_id"`
	ReminderType string         `gorm:"size:50;default:'whatsapp'" json:"reminder_type"`
	Message      string         `gorm:"type:text;not null" json:"message"`
	SentAt       time.Time      `gorm:"not null" json:"sent_at"`
	SentBy       uuid.UUID      `gorm:"type:uuid;not null" json:"sent_by"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Payment Payment `gorm:"foreignKey:PaymentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new reminder
func (r *PaymentReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentReminder model
func (PaymentReminder) TableName() string {
	return "payment_reminders"
}
