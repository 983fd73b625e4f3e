package ports

import (
	"context"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

// CreateProductInput carries all data needed to add a catalog entry.
type CreateProductInput struct {
	Name        string
	Category    string
	Price       float64
	Description string
	Image       string
}

// ListProductsInput carries the parameters for the list endpoint.
type ListProductsInput struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Total    int64
	Page     int
	Limit    int
	Products []*domain.Product
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	Add(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
}
