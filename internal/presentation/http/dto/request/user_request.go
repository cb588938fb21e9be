package request

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string `json:"last_name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=admin employee"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin employee"`
	IsActive  *bool   `json:"is_active"`
}

// ActivityFilterRequest represents activity log filter parameters
type ActivityFilterRequest struct {
	UserID     string `form:"user_id"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
