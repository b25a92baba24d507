package domain

import (
	"errors"
	"time"
)

// RoleName is the closed enumeration of authorization roles. The set is
// compiled into the binary; storage only materializes rows for it lazily.
type RoleName string

const (
	RoleUser      RoleName = "ROLE_USER"
	RoleAdmin     RoleName = "ROLE_ADMIN"
	RoleModerator RoleName = "ROLE_MODERATOR"
)

// IsValid reports whether n is one of the compiled-in role names.
func (n RoleName) IsValid() bool {
	switch n {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

var ErrDuplicateUsername = errors.New("username already exists")
var ErrDuplicateEmail = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrInsufficientRole = errors.New("insufficient role")

// Role is a row of the lazily materialized role lookup table. At most one row
// exists per RoleName; it is created on first reference and reused after.
type Role struct {
	ID          int64    `json:"id"`
	Name        RoleName `json:"name"`
	Description string   `json:"description,omitempty"`
}

// User is the persisted identity record. The password is held only as a
// salted one-way hash and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleNames returns the user's role names as plain strings, in storage order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Principal is the verified identity recovered from a validated token.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(name RoleName) bool {
	for _, r := range p.Roles {
		if r == string(name) {
			return true
		}
	}
	return false
}
