package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/bookstore-backend/internal/api/metrics"
	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

// PrincipalKey is the context key under which Auth stores the verified
// principal.
const PrincipalKey = "principal"

// Auth extracts the bearer token, validates it through the token service and
// injects the resulting principal into the request context. Expired and
// tampered tokens surface as distinct domain errors so the error handler (and
// clients) can tell a stale session from an attack.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := tokens.Validate(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// Principal returns the principal injected by Auth, or nil when the request
// did not pass through it.
func Principal(c echo.Context) *domain.Principal {
	principal, _ := c.Get(PrincipalKey).(*domain.Principal)
	return principal
}
