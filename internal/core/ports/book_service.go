package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// PagedBooks is a page of catalog results plus totals for the client.
type PagedBooks struct {
	Books      []domain.Book
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

type CreateBookInput struct {
	Title           string
	Author          string
	Description     string
	ISBN            string
	Category        string
	Price           float64
	StockQuantity   int
	PublicationYear int
	ImageURL        string
	Rating          float64
	Available       bool
}

// BookService exposes catalog reads to everyone and mutations to admins
// (the role gate lives in the HTTP layer).
type BookService interface {
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context, page Page) (*PagedBooks, error)
	SearchBooks(ctx context.Context, query string, page Page) (*PagedBooks, error)
	BooksByCategory(ctx context.Context, category string, page Page) (*PagedBooks, error)
	AvailableBooks(ctx context.Context, page Page) (*PagedBooks, error)
	CreateBook(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, in CreateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}
