package request

// Monetary fields on the wire are decimal amounts ("price": 1500.50);
// handlers convert them to integer cents before touching the services.

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Barcode     string  `json:"barcode" binding:"required,max=100"`
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	MinStock    int     `json:"min_stock" binding:"min=0"`
	Category    string  `json:"category" binding:"omitempty,max=100"`
	Supplier    *string `json:"supplier"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Barcode     *string  `json:"barcode" binding:"omitempty,min=1,max=100"`
	Name        *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,min=0"`
	MinStock    *int     `json:"min_stock" binding:"omitempty,min=0"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Supplier    *string  `json:"supplier"`
	IsActive    *bool    `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
