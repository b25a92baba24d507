package service

import (
	"context"
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

// bookSortable lists the columns a client may sort listings by.
var bookSortable = []string{"id", "title", "author", "price", "rating", "publication_year", "created_at"}

// BookService implements catalog reads and admin mutations.
type BookService struct {
	books ports.BookRepository
}

func NewBookService(books ports.BookRepository) *BookService {
	return &BookService{books: books}
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context, page ports.Page) (*ports.PagedBooks, error) {
	return s.list(ctx, ports.BookFilter{}, page)
}

func (s *BookService) SearchBooks(ctx context.Context, query string, page ports.Page) (*ports.PagedBooks, error) {
	return s.list(ctx, ports.BookFilter{Search: query}, page)
}

func (s *BookService) BooksByCategory(ctx context.Context, category string, page ports.Page) (*ports.PagedBooks, error) {
	return s.list(ctx, ports.BookFilter{Category: category}, page)
}

func (s *BookService) AvailableBooks(ctx context.Context, page ports.Page) (*ports.PagedBooks, error) {
	return s.list(ctx, ports.BookFilter{AvailableOnly: true}, page)
}

func (s *BookService) list(ctx context.Context, filter ports.BookFilter, page ports.Page) (*ports.PagedBooks, error) {
	page = page.Normalize(bookSortable...)

	books, total, err := s.books.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return &ports.PagedBooks{
		Books:      books,
		Total:      total,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

// CreateBook rejects a duplicate ISBN up front; the unique constraint on the
// isbn column still backstops a concurrent insert.
func (s *BookService) CreateBook(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	if existing, err := s.books.FindByISBN(ctx, in.ISBN); err != nil && err != domain.ErrBookNotFound {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateISBN
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:           in.Title,
		Author:          in.Author,
		Description:     in.Description,
		ISBN:            in.ISBN,
		Category:        in.Category,
		Price:           in.Price,
		StockQuantity:   in.StockQuantity,
		PublicationYear: in.PublicationYear,
		ImageURL:        in.ImageURL,
		Rating:          in.Rating,
		Available:       in.Available,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return s.books.Create(ctx, book)
}

// UpdateBook rewrites every mutable field of an existing book. The ISBN is
// immutable after creation.
func (s *BookService) UpdateBook(ctx context.Context, id int64, in ports.CreateBookInput) (*domain.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.Category = in.Category
	book.Price = in.Price
	book.StockQuantity = in.StockQuantity
	book.PublicationYear = in.PublicationYear
	book.ImageURL = in.ImageURL
	book.Rating = in.Rating
	book.Available = in.Available
	book.UpdatedAt = time.Now().UTC()

	return s.books.Update(ctx, book)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.books.FindByID(ctx, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
