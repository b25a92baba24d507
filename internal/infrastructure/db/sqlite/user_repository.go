package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// UserRepository is the SQLite-backed credential store. The UNIQUE
// constraints on username and email are the final arbiter of uniqueness;
// violations come back as domain duplicate errors.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, first_name, last_name, password_hash, enabled, created_at, updated_at
		FROM users
		WHERE username = ?`, username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	roles, err := r.loadRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// Save inserts the user when ID is zero and updates it otherwise. The role
// set is rewritten alongside in the same transaction, and updated_at is
// refreshed on every update.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if user.ID == 0 {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, email, first_name, last_name, password_hash, enabled, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user.Username, user.Email, user.FirstName, user.LastName,
			user.PasswordHash, user.Enabled, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return nil, translateConstraint(err)
		}
		user.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
	} else {
		user.UpdatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx, `
			UPDATE users
			SET email = ?, first_name = ?, last_name = ?, password_hash = ?, enabled = ?, updated_at = ?
			WHERE id = ?`,
			user.Email, user.FirstName, user.LastName,
			user.PasswordHash, user.Enabled, user.UpdatedAt, user.ID,
		)
		if err != nil {
			return nil, translateConstraint(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, user.ID); err != nil {
			return nil, fmt.Errorf("clear roles: %w", err)
		}
	}

	for _, role := range user.Roles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`,
			user.ID, role.ID,
		); err != nil {
			return nil, fmt.Errorf("assign role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, translateConstraint(err)
	}
	return user, nil
}

func (r *UserRepository) loadRoles(ctx context.Context, userID int64) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.description
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
