package ports

import (
	"context"
	"time"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// FindByID retrieves an order by id; ownership checks are the service's job.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus atomically sets the order's new status and appends a
	// history entry. The source string is stored as the entry notes.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, ts time.Time, source string) error
	// InsertEvent persists an event to the order_events audit collection.
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}
