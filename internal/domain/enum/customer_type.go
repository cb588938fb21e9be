package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CustomerType distinguishes retail individuals from business accounts.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
)

// ParseCustomerType validates a raw customer type string.
func ParseCustomerType(s string) (CustomerType, error) {
	switch CustomerType(s) {
	case CustomerTypeIndividual, CustomerTypeBusiness:
		return CustomerType(s), nil
	}
	return "", fmt.Errorf("invalid customer type %q", s)
}

func (t CustomerType) String() string {
	return string(t)
}

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseCustomerType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	if value == nil {
		*t = CustomerTypeIndividual
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CustomerType(v)
	case []byte:
		*t = CustomerType(v)
	default:
		return fmt.Errorf("cannot scan %T into CustomerType", value)
	}
	return nil
}
