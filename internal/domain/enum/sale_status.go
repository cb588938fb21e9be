package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the lifecycle state of a persisted sale.
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusDelivered SaleStatus = "delivered"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// ParseSaleStatus validates a raw sale status string.
func ParseSaleStatus(s string) (SaleStatus, error) {
	switch SaleStatus(s) {
	case SaleStatusDraft, SaleStatusConfirmed, SaleStatusDelivered, SaleStatusCancelled:
		return SaleStatus(s), nil
	}
	return "", fmt.Errorf("invalid sale status %q", s)
}

func (s SaleStatus) String() string {
	return string(s)
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSaleStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = SaleStatus(v)
	case []byte:
		*s = SaleStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SaleStatus", value)
	}
	return nil
}

// SalePaymentStatus tracks how much of a sale's total has been collected.
type SalePaymentStatus string

const (
	SalePaymentStatusPending   SalePaymentStatus = "pending"
	SalePaymentStatusPartial   SalePaymentStatus = "partial"
	SalePaymentStatusCompleted SalePaymentStatus = "completed"
	SalePaymentStatusRefunded  SalePaymentStatus = "refunded"
)

// ParseSalePaymentStatus validates a raw sale payment status string.
func ParseSalePaymentStatus(s string) (SalePaymentStatus, error) {
	switch SalePaymentStatus(s) {
	case SalePaymentStatusPending, SalePaymentStatusPartial, SalePaymentStatusCompleted, SalePaymentStatusRefunded:
		return SalePaymentStatus(s), nil
	}
	return "", fmt.Errorf("invalid sale payment status %q", s)
}

func (s SalePaymentStatus) String() string {
	return string(s)
}

func (s SalePaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *SalePaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSalePaymentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s SalePaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SalePaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SalePaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = SalePaymentStatus(v)
	case []byte:
		*s = SalePaymentStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SalePaymentStatus", value)
	}
	return nil
}
