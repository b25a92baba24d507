package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// yields false, never a panic.
	Verify(plaintext, digest string) bool
}

// TokenService issues and validates stateless signed bearer tokens. There is
// no server-side record of issued tokens; validity is determined entirely by
// signature and expiry.
type TokenService interface {
	// Issue mints a token for the subject and returns it together with its
	// lifetime in seconds.
	Issue(username string, roles []string) (token string, expiresIn int64, err error)
	// Validate recovers the principal from a token. It fails with
	// domain.ErrTokenExpired when the signature is valid but the expiry has
	// passed, and domain.ErrTokenInvalid for anything malformed or tampered.
	Validate(token string) (*domain.Principal, error)
}

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// AuthResult is the response envelope produced by registration and login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	User        *domain.User
}

// AuthService orchestrates registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// LoginThrottle limits repeated failed login attempts per key. It sits outside
// the coordinator; a nil implementation means throttling is disabled.
type LoginThrottle interface {
	// Allow reports whether another attempt is permitted for key.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure notes a failed attempt for key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure count for key after a successful login.
	Reset(ctx context.Context, key string) error
}
