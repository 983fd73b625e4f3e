package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, orderID, status string, ts time.Time) error
}

type orderService struct {
	orderRepo   ports.OrderRepository
	productRepo ports.ProductRepository
	dedup       DedupChecker
	log         zerolog.Logger
}

// NewOrderService returns an OrderService implementation.
func NewOrderService(
	orderRepo ports.OrderRepository,
	productRepo ports.ProductRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		dedup:       dedup,
		log:         log,
	}
}

// Place prices the requested items against the current catalog and persists
// the order with status "placed".
func (s *orderService) Place(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(input.Items))
	var total float64
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, domain.ErrEmptyOrder
		}
		product, err := s.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("place order: product %s: %w", it.ProductID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(it.Quantity)
	}

	order := &domain.Order{
		UserID:      input.UserID,
		Items:       items,
		TotalAmount: total,
		Status:      domain.OrderPlaced,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.OrderPlaced, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to place order")
		return nil, err
	}

	s.log.Info().Str("order_id", created.ID).Str("user_id", input.UserID).Float64("total", total).Msg("order placed")
	return created, nil
}

// Get retrieves an order. Admins see every order; anyone else reading an
// order they do not own fails with domain.ErrForbidden.
func (s *orderService) Get(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.Role != domain.RoleAdmin && order.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ProcessEvent validates, deduplicates, and applies a single status event.
func (s *orderService) ProcessEvent(ctx context.Context, in ports.OrderEventInput) error {
	newStatus := domain.OrderStatus(in.Status)

	// Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.OrderID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", in.OrderID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("order_id", in.OrderID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, in.OrderID)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	// Mark as processed before writing so a retry cannot double-apply.
	if markErr := s.dedup.Mark(ctx, in.OrderID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("order_id", in.OrderID).Msg("failed to set dedup key")
	}

	if err := s.orderRepo.UpdateStatus(ctx, in.OrderID, newStatus, in.Timestamp, in.Source); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}

	// Audit trail insert is non-fatal.
	audit := &domain.OrderEvent{
		OrderID:   in.OrderID,
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Source:    in.Source,
	}
	if err := s.orderRepo.InsertEvent(ctx, audit); err != nil {
		s.log.Warn().Err(err).Str("order_id", in.OrderID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("order_id", in.OrderID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("order event processed")

	return nil
}
