package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders       map[string]*domain.Order
	events       []*domain.OrderEvent
	statusWrites int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	clone := *o
	clone.ID = "order_1"
	r.orders[clone.ID] = &clone
	return &clone, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus, ts time.Time, source string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	r.statusWrites++
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: source})
	return nil
}

func (r *stubOrderRepo) InsertEvent(_ context.Context, event *domain.OrderEvent) error {
	r.events = append(r.events, event)
	return nil
}

type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func (d *stubDedup) key(orderID, status string, ts time.Time) string {
	return orderID + ":" + status + ":" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, orderID, status string, ts time.Time) (bool, error) {
	return d.seen[d.key(orderID, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, orderID, status string, ts time.Time) error {
	d.seen[d.key(orderID, status, ts)] = true
	return nil
}

func catalogWith(products ...*domain.Product) *stubProductRepo {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &stubProductRepo{
		findFn: func(_ context.Context, id string) (*domain.Product, error) {
			if p, ok := byID[id]; ok {
				clone := *p
				return &clone, nil
			}
			return nil, domain.ErrProductNotFound
		},
	}
}

func TestOrderService_Place_PricesFromCatalog(t *testing.T) {
	orders := newStubOrderRepo()
	catalog := catalogWith(
		&domain.Product{ID: "p1", Name: "Laptop", Price: 1000},
		&domain.Product{ID: "p2", Name: "Mouse", Price: 25.5},
	)
	svc := NewOrderService(orders, catalog, newStubDedup(), zerolog.Nop())

	order, err := svc.Place(context.Background(), ports.PlaceOrderInput{
		UserID: "u1",
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if order.TotalAmount != 1051 {
		t.Fatalf("expected total 1051, got %v", order.TotalAmount)
	}
	if order.Status != domain.OrderPlaced {
		t.Fatalf("expected status placed, got %s", order.Status)
	}
	if len(order.StatusHistory) != 1 || order.StatusHistory[0].Status != domain.OrderPlaced {
		t.Fatalf("expected initial history entry, got %+v", order.StatusHistory)
	}
}

func TestOrderService_Place_UnknownProduct(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), catalogWith(), newStubDedup(), zerolog.Nop())

	_, err := svc.Place(context.Background(), ports.PlaceOrderInput{
		UserID: "u1",
		Items:  []ports.OrderItemInput{{ProductID: "nope", Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderService_Place_EmptyOrder(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), catalogWith(), newStubDedup(), zerolog.Nop())

	if _, err := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u1"}); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestOrderService_Get_ScopesCustomers(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["order_1"] = &domain.Order{ID: "order_1", UserID: "u1", Status: domain.OrderPlaced}
	svc := NewOrderService(orders, catalogWith(), newStubDedup(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderID: "order_1", Role: domain.RoleCustomer, UserID: "u2"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("customer reading a foreign order must be forbidden, got %v", err)
	}

	order, err := svc.Get(context.Background(), ports.GetOrderInput{OrderID: "order_1", Role: domain.RoleCustomer, UserID: "u1"})
	if err != nil {
		t.Fatalf("owner should read their own order: %v", err)
	}
	if order.ID != "order_1" {
		t.Fatalf("expected order_1, got %s", order.ID)
	}

	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderID: "order_1", Role: domain.RoleAdmin, UserID: "u2"}); err != nil {
		t.Fatalf("admin should see any order: %v", err)
	}

	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderID: "missing", Role: domain.RoleCustomer, UserID: "u1"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for missing order, got %v", err)
	}
}

func TestOrderService_ProcessEvent_AppliesTransition(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["order_1"] = &domain.Order{ID: "order_1", UserID: "u1", Status: domain.OrderPlaced}
	svc := NewOrderService(orders, catalogWith(), newStubDedup(), zerolog.Nop())

	err := svc.ProcessEvent(context.Background(), ports.OrderEventInput{
		OrderID:   "order_1",
		Status:    "shipped",
		Timestamp: time.Now().UTC(),
		Source:    "warehouse",
	})
	if err != nil {
		t.Fatalf("ProcessEvent returned error: %v", err)
	}
	if orders.orders["order_1"].Status != domain.OrderShipped {
		t.Fatalf("expected shipped, got %s", orders.orders["order_1"].Status)
	}
	if len(orders.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(orders.events))
	}
}

func TestOrderService_ProcessEvent_InvalidTransition(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["order_1"] = &domain.Order{ID: "order_1", UserID: "u1", Status: domain.OrderPlaced}
	svc := NewOrderService(orders, catalogWith(), newStubDedup(), zerolog.Nop())

	err := svc.ProcessEvent(context.Background(), ports.OrderEventInput{
		OrderID:   "order_1",
		Status:    "delivered",
		Timestamp: time.Now().UTC(),
		Source:    "courier",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if orders.statusWrites != 0 {
		t.Fatalf("invalid transition must not write")
	}
}

func TestOrderService_ProcessEvent_SkipsDuplicates(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["order_1"] = &domain.Order{ID: "order_1", UserID: "u1", Status: domain.OrderPlaced}
	svc := NewOrderService(orders, catalogWith(), newStubDedup(), zerolog.Nop())

	event := ports.OrderEventInput{
		OrderID:   "order_1",
		Status:    "shipped",
		Timestamp: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Source:    "warehouse",
	}
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("first event: %v", err)
	}
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("duplicate event should be skipped silently: %v", err)
	}
	if orders.statusWrites != 1 {
		t.Fatalf("expected exactly one status write, got %d", orders.statusWrites)
	}
}
