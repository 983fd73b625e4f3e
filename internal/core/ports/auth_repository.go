package ports

import (
	"context"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Duplicate emails are rejected with
	// domain.ErrUserExists by the storage layer's unique index.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
