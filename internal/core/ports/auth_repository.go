package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// UserRepository is the credential store: the single source of truth for
// identity records and for username/email uniqueness. Save must surface
// storage-level constraint violations as domain.ErrDuplicateUsername or
// domain.ErrDuplicateEmail so concurrent registrations are arbitrated by the
// database, not by the pre-checks.
type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository is the role registry over the closed role enumeration.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	// EnsureDefault returns the ROLE_USER row, creating it exactly once if
	// absent. Safe under concurrent first use: a racing duplicate creation is
	// treated as success.
	EnsureDefault(ctx context.Context) (*domain.Role, error)
}
