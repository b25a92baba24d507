package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// RoleRepository is the SQLite-backed role registry. Role rows are created
// lazily; UNIQUE(name) keeps the table at one row per enumeration value.
type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	role := &domain.Role{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM roles WHERE name = ?`, string(name),
	).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

// EnsureDefault returns the ROLE_USER row, inserting it on first use. The
// insert ignores a conflict on name, so two racing first registrations both
// converge on the single persisted row.
func (r *RoleRepository) EnsureDefault(ctx context.Context) (*domain.Role, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (name, description) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
		string(domain.RoleUser), "Default user role",
	)
	if err != nil {
		return nil, fmt.Errorf("ensure default role: %w", err)
	}
	return r.FindByName(ctx, domain.RoleUser)
}
