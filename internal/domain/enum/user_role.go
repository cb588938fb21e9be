package enum

import (
	"database/sql/driver"
	"fmt"
)

// UserRole is the operator's access level. The panel only knows admins and
// employees; finer permissions never existed in the schema.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
)

// ParseUserRole validates a raw role string.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleEmployee:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("invalid user role %q", s)
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = UserRoleEmployee
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRole", value)
	}
	return nil
}
