package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

func invokeRBAC(t *testing.T, role domain.RoleName, principal *domain.Principal) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}

	handler := RequireRole(role)(func(c echo.Context) error { return nil })
	return handler(c)
}

func TestRequireRole_Allows(t *testing.T) {
	principal := &domain.Principal{Username: "root", Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}

	if err := invokeRBAC(t, domain.RoleAdmin, principal); err != nil {
		t.Fatalf("expected admin allowed, got %v", err)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	principal := &domain.Principal{Username: "alice", Roles: []string{"ROLE_USER"}}

	if err := invokeRBAC(t, domain.RoleAdmin, principal); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	err := invokeRBAC(t, domain.RoleAdmin, nil)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError without principal, got %v", err)
	}
}
