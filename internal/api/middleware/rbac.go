package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const msgAccessDenied = "access denied: insufficient permissions"

// RequireRole enforces that the authenticated identity carries exactly the
// required role. It must be registered after Auth; an absent role is treated
// the same as a mismatch.
func RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role != required {
				return echo.NewHTTPError(http.StatusForbidden, msgAccessDenied)
			}
			return next(c)
		}
	}
}
