package ports

import (
	"context"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	Name     string // optional: case-insensitive partial match
	Category string // optional: case-insensitive partial match
	Page     int    // 1-based
	Limit    int    // rows per page
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update applies a partial update and returns the updated document.
	// Returns domain.ErrProductNotFound when id matches nothing.
	Update(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}

// ProductUpdate holds optional fields for a partial product update.
// Nil pointers leave the stored value untouched.
type ProductUpdate struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Image       *string
}
