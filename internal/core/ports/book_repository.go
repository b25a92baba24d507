package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// BookFilter narrows a paginated catalog listing. Zero values mean "no
// constraint"; Search matches title, author and category case-insensitively.
type BookFilter struct {
	Search        string
	Category      string
	AvailableOnly bool
}

// BookRepository is the catalog persistence interface. Create surfaces an
// ISBN uniqueness violation as domain.ErrDuplicateISBN.
type BookRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	List(ctx context.Context, filter BookFilter, page Page) ([]domain.Book, int64, error)
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

// Page is a normalized pagination request.
type Page struct {
	Number int // zero-based
	Size   int
	SortBy string
	Desc   bool
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps the page request to sane bounds and whitelists the sort
// column, falling back to id ordering.
func (p Page) Normalize(sortable ...string) Page {
	if p.Number < 0 {
		p.Number = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	for _, col := range sortable {
		if p.SortBy == col {
			return p
		}
	}
	p.SortBy = "id"
	return p
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return p.Number * p.Size
}
