package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/NagulmeeraShaik7/products-api/internal/core/token"
)

// Context keys populated by Auth for downstream middleware and handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

const (
	msgTokenMissing = "authorization token missing or invalid"
	msgTokenInvalid = "invalid or expired token"
)

// Auth validates the bearer token and injects the request identity into the
// echo context. All verification failures collapse to a uniform 401 message;
// the precise cause is only logged.
func Auth(jwtSecret string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
			}

			claims, err := token.Verify(parts[1], jwtSecret)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid)
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}
