package request

// UpdateSettingsRequest represents a company settings update request
type UpdateSettingsRequest struct {
	CompanyName       *string `json:"company_name" binding:"omitempty,min=1,max=255"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone" binding:"omitempty,max=30"`
	Email             *string `json:"email" binding:"omitempty,email"`
	CurrencyCode      *string `json:"currency_code" binding:"omitempty,len=3"`
	TaxRateBP         *int64  `json:"tax_rate_bp" binding:"omitempty,min=0,max=10000"`
	LowStockThreshold *int    `json:"low_stock_threshold" binding:"omitempty,min=0"`
	ReminderTemplate  *string `json:"reminder_template"`
	OverdueTemplate   *string `json:"overdue_template"`
}
