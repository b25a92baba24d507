package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// RequireRole guards a route behind a role. It must run after Auth; a request
// whose principal lacks the role fails with domain.ErrInsufficientRole.
func RequireRole(role domain.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := Principal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !principal.HasRole(role) {
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}
