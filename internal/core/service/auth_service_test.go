package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User

	// saveErr, when set, is returned by Save to simulate a constraint
	// violation surfacing from storage after the pre-checks passed.
	saveErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if existing, ok := r.users[user.Username]; ok && existing.ID != user.ID {
		return nil, domain.ErrDuplicateUsername
	}
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	}
	r.users[user.Username] = cloneUser(user)
	return cloneUser(user), nil
}

type stubRoleRepo struct {
	mu    sync.Mutex
	roles map[domain.RoleName]*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[domain.RoleName]*domain.Role)}
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *stubRoleRepo) EnsureDefault(_ context.Context) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[domain.RoleUser]; ok {
		return role, nil
	}
	role := &domain.Role{ID: int64(len(r.roles) + 1), Name: domain.RoleUser, Description: "Default user role"}
	r.roles[domain.RoleUser] = role
	return role, nil
}

func newTestAuthService(users ports.UserRepository, roles ports.RoleRepository) (*AuthService, *JWTTokenService) {
	tokens := NewJWTTokenService("test-secret", time.Hour)
	return NewAuthService(users, roles, NewBcryptHasher(), tokens), tokens
}

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:  username,
		Email:     email,
		FirstName: "Alice",
		LastName:  "A",
		Password:  "pw123!",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, tokens := newTestAuthService(newStubUserRepo(), newStubRoleRepo())

	result, err := svc.Register(context.Background(), registerInput("alice", "a@x.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if result.TokenType != "Bearer" {
		t.Fatalf("expected token type Bearer, got %q", result.TokenType)
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", result.ExpiresIn)
	}
	if !result.User.Enabled {
		t.Fatalf("registered user must be enabled")
	}
	if names := result.User.RoleNames(); len(names) != 1 || names[0] != "ROLE_USER" {
		t.Fatalf("expected roles [ROLE_USER], got %v", names)
	}
	if result.User.PasswordHash == "pw123!" {
		t.Fatalf("password must be stored hashed")
	}

	principal, err := tokens.Validate(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if principal.Username != "alice" {
		t.Fatalf("token subject mismatch: %q", principal.Username)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.Register(context.Background(), registerInput("bob", "b1@x.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob", "b2@x.com")); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), newStubRoleRepo())

	if _, err := svc.Register(context.Background(), registerInput("carol", "c@x.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("carol2", "c@x.com")); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_StorageArbitersRace(t *testing.T) {
	// The pre-checks pass but Save reports a constraint violation, as happens
	// when a concurrent registration wins between check and insert.
	repo := newStubUserRepo()
	repo.saveErr = domain.ErrDuplicateUsername
	svc, _ := newTestAuthService(repo, newStubRoleRepo())

	if _, err := svc.Register(context.Background(), registerInput("dave", "d@x.com")); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername from storage, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo, newStubRoleRepo())

	if _, err := svc.Register(context.Background(), registerInput("erin", "e@x.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "erin", "pw123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected token")
	}

	principal, err := tokens.Validate(result.AccessToken)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if principal.Username != "erin" {
		t.Fatalf("token subject mismatch: %q", principal.Username)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != "ROLE_USER" {
		t.Fatalf("unexpected roles in token: %v", principal.Roles)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newStubRoleRepo())

	if _, err := svc.Register(context.Background(), registerInput("frank", "f@x.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	disabled := cloneUser(repo.users["frank"])
	disabled.Username = "gina"
	disabled.Email = "g@x.com"
	disabled.ID = 0
	disabled.Enabled = false
	if _, err := repo.Save(context.Background(), disabled); err != nil {
		t.Fatalf("seed disabled user: %v", err)
	}

	cases := map[string]struct {
		username string
		password string
	}{
		"wrong password":       {"frank", "nope"},
		"nonexistent username": {"ghost", "pw123!"},
		"disabled identity":    {"gina", "pw123!"},
	}
	for name, tc := range cases {
		_, err := svc.Login(context.Background(), tc.username, tc.password)
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}
