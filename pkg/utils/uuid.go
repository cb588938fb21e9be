package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateSaleNumber generates a unique sale number
func GenerateSaleNumber() string {
	return "VTA-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateCustomerCode generates a unique customer code
func GenerateCustomerCode() string {
	return "CLI-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateInvoiceNumber generates a unique invoice number
func GenerateInvoiceNumber() string {
	return "FAC-" + strings.ToUpper(uuid.New().String()[:8])
}
