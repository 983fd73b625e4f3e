package handler

import "github.com/NagulmeeraShaik7/products-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// updateProductRequest carries a partial update; absent fields stay untouched.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type listProductsResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Products []*domain.Product `json:"products"`
}
