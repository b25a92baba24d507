package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

func TestUserRepository_SaveAndFind(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)

	role, err := roles.EnsureDefault(context.Background())
	if err != nil {
		t.Fatalf("ensure default role: %v", err)
	}

	user := testUser("alice")
	user.Roles = []domain.Role{*role}
	saved, err := users.Save(context.Background(), user)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	found, err := users.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Fatalf("unexpected email %q", found.Email)
	}
	if len(found.Roles) != 1 || found.Roles[0].Name != domain.RoleUser {
		t.Fatalf("expected [ROLE_USER], got %v", found.Roles)
	}
	if found.PasswordHash != user.PasswordHash {
		t.Fatalf("hash not round-tripped")
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	users := NewUserRepository(openTestDB(t))

	if _, err := users.FindByUsername(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Exists(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	if _, err := users.Save(context.Background(), testUser("bob")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, tc := range []struct {
		name string
		got  func() (bool, error)
		want bool
	}{
		{"existing username", func() (bool, error) { return users.ExistsByUsername(context.Background(), "bob") }, true},
		{"missing username", func() (bool, error) { return users.ExistsByUsername(context.Background(), "ghost") }, false},
		{"existing email", func() (bool, error) { return users.ExistsByEmail(context.Background(), "bob@example.com") }, true},
		{"missing email", func() (bool, error) { return users.ExistsByEmail(context.Background(), "ghost@example.com") }, false},
	} {
		exists, err := tc.got()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if exists != tc.want {
			t.Fatalf("%s: expected %v", tc.name, tc.want)
		}
	}
}

func TestUserRepository_DuplicateConstraints(t *testing.T) {
	users := NewUserRepository(openTestDB(t))

	if _, err := users.Save(context.Background(), testUser("carol")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	dup := testUser("carol")
	dup.Email = "other@example.com"
	if _, err := users.Save(context.Background(), dup); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	dup = testUser("carol2")
	dup.Email = "carol@example.com"
	if _, err := users.Save(context.Background(), dup); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_UpdateRewritesRoles(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)

	userRole, err := roles.EnsureDefault(context.Background())
	if err != nil {
		t.Fatalf("ensure default role: %v", err)
	}
	if _, err := db.ExecContext(context.Background(),
		`INSERT INTO roles (name, description) VALUES (?, ?)`,
		string(domain.RoleAdmin), "Administrator",
	); err != nil {
		t.Fatalf("seed admin role: %v", err)
	}
	adminRole, err := roles.FindByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("find admin role: %v", err)
	}

	user := testUser("dave")
	user.Roles = []domain.Role{*userRole}
	saved, err := users.Save(context.Background(), user)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	saved.Roles = []domain.Role{*userRole, *adminRole}
	before := saved.UpdatedAt
	if _, err := users.Save(context.Background(), saved); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err := users.FindByUsername(context.Background(), "dave")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(found.Roles) != 2 {
		t.Fatalf("expected 2 roles after update, got %d", len(found.Roles))
	}
	if !found.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected ROLE_ADMIN after update")
	}
	if !found.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at refreshed")
	}
}

// Two goroutines race to claim the same username. The UNIQUE constraint must
// let exactly one through and report ErrDuplicateUsername to the other, in
// either ordering.
func TestUserRepository_ConcurrentDuplicateUsername(t *testing.T) {
	users := NewUserRepository(openTestDB(t))

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = users.Save(context.Background(), testUser("erin"))
		}(i)
	}
	wg.Wait()

	var wins, dups int
	for _, err := range errs {
		switch err {
		case nil:
			wins++
		case domain.ErrDuplicateUsername, domain.ErrDuplicateEmail:
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", wins)
	}
	if dups != attempts-1 {
		t.Fatalf("expected %d duplicate errors, got %d", attempts-1, dups)
	}
}
