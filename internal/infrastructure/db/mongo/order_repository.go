package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/ports"
)

const (
	ordersCollection      = "orders"
	orderEventsCollection = "order_events"
)

type mongoOrder struct {
	ID            primitive.ObjectID          `bson:"_id,omitempty"`
	UserID        string                      `bson:"user_id"`
	Items         []domain.OrderItem          `bson:"items"`
	TotalAmount   float64                     `bson:"total_amount"`
	Status        domain.OrderStatus          `bson:"status"`
	StatusHistory []domain.StatusHistoryEntry `bson:"status_history"`
	CreatedAt     time.Time                   `bson:"created_at"`
	UpdatedAt     time.Time                   `bson:"updated_at"`
}

type mongoOrderEvent struct {
	OrderID   string             `bson:"order_id"`
	Status    domain.OrderStatus `bson:"status"`
	Timestamp time.Time          `bson:"timestamp"`
	Source    string             `bson:"source"`
	CreatedAt time.Time          `bson:"created_at"`
}

// OrderRepository persists orders and their status events in MongoDB.
type OrderRepository struct {
	orders *mongo.Collection
	events *mongo.Collection
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		orders: db.Collection(ordersCollection),
		events: db.Collection(orderEventsCollection),
	}
}

// EnsureIndexes creates the indexes for owner lookups and event audits.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}
	_, err = r.events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create order event indexes: %w", err)
	}
	return nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:        o.UserID,
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		StatusHistory: o.StatusHistory,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	result, err := r.orders.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var doc mongoOrder
	err = r.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toOrder(doc), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, ts time.Time, source string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	entry := domain.StatusHistoryEntry{
		Status:    status,
		Timestamp: ts,
		Notes:     source,
	}
	update := bson.M{
		"$set":  bson.M{"status": status, "updated_at": time.Now().UTC()},
		"$push": bson.M{"status_history": entry},
	}

	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := mongoOrderEvent{
		OrderID:   event.OrderID,
		Status:    event.Status,
		Timestamp: event.Timestamp,
		Source:    event.Source,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func toOrder(doc mongoOrder) *domain.Order {
	return &domain.Order{
		ID:            doc.ID.Hex(),
		UserID:        doc.UserID,
		Items:         doc.Items,
		TotalAmount:   doc.TotalAmount,
		Status:        doc.Status,
		StatusHistory: doc.StatusHistory,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
