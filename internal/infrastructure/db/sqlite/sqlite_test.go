package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testUser(username string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthash",
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testBook(title, isbn string) *domain.Book {
	now := time.Now().UTC()
	return &domain.Book{
		Title:           title,
		Author:          "Author",
		Description:     "A book",
		ISBN:            isbn,
		Category:        "fiction",
		Price:           19.90,
		StockQuantity:   10,
		PublicationYear: 2020,
		Available:       true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
