package ports

import (
	"context"
	"time"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

// OrderItemInput is a single requested product line.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput carries all data needed to place an order.
type PlaceOrderInput struct {
	UserID string
	Items  []OrderItemInput
}

// GetOrderInput carries the parameters to retrieve a single order.
// Role and UserID enforce ownership: customers only see their own orders.
type GetOrderInput struct {
	OrderID string
	Role    string
	UserID  string
}

// OrderEventInput is the DTO passed from the transport layer to the event pipeline.
type OrderEventInput struct {
	OrderID   string
	Status    string
	Timestamp time.Time
	Source    string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Place(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	Get(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	// ProcessEvent validates, deduplicates, and applies a status event.
	ProcessEvent(ctx context.Context, event OrderEventInput) error
}
