package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a sale or payment was settled.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodWallet   PaymentMethod = "wallet"
)

// ParsePaymentMethod validates a raw method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodWallet:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("invalid payment method %q", s)
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	return nil
}

// WalletType identifies the virtual wallet used when the method is "wallet".
type WalletType string

const (
	WalletTypeNone        WalletType = ""
	WalletTypeMercadoPago WalletType = "mercadopago"
	WalletTypeUala        WalletType = "uala"
	WalletTypeBrubank     WalletType = "brubank"
)

// ParseWalletType validates a raw wallet type; empty is allowed because the
// field only applies to wallet payments.
func ParseWalletType(s string) (WalletType, error) {
	switch WalletType(s) {
	case WalletTypeNone, WalletTypeMercadoPago, WalletTypeUala, WalletTypeBrubank:
		return WalletType(s), nil
	}
	return "", fmt.Errorf("invalid wallet type %q", s)
}
