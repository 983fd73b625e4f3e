package ports

import (
	"context"

	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
