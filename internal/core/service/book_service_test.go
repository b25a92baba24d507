package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

type stubBookRepo struct {
	nextID int64
	books  map[int64]*domain.Book
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[int64]*domain.Book)}
}

func (r *stubBookRepo) FindByID(_ context.Context, id int64) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) FindByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) List(_ context.Context, filter ports.BookFilter, page ports.Page) ([]domain.Book, int64, error) {
	var matched []domain.Book
	for _, b := range r.books {
		if filter.AvailableOnly && !b.Available {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(b.Title), needle) &&
				!strings.Contains(strings.ToLower(b.Author), needle) &&
				!strings.Contains(strings.ToLower(b.Category), needle) {
				continue
			}
		}
		matched = append(matched, *b)
	}

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return nil, domain.ErrDuplicateISBN
		}
	}
	r.nextID++
	book.ID = r.nextID
	clone := *book
	r.books[book.ID] = &clone
	return book, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if _, ok := r.books[book.ID]; !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *book
	r.books[book.ID] = &clone
	return book, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func bookInput(title, isbn string) ports.CreateBookInput {
	return ports.CreateBookInput{
		Title:         title,
		Author:        "Author",
		ISBN:          isbn,
		Category:      "fiction",
		Price:         19.90,
		StockQuantity: 5,
		Available:     true,
	}
}

func TestBookService_CreateAndGet(t *testing.T) {
	svc := NewBookService(newStubBookRepo())

	created, err := svc.CreateBook(context.Background(), bookInput("Dune", "978-0441013593"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.GetBook(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Dune" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
}

func TestBookService_CreateDuplicateISBN(t *testing.T) {
	svc := NewBookService(newStubBookRepo())

	if _, err := svc.CreateBook(context.Background(), bookInput("Dune", "978-0441013593")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateBook(context.Background(), bookInput("Dune (reprint)", "978-0441013593")); err != domain.ErrDuplicateISBN {
		t.Fatalf("expected ErrDuplicateISBN, got %v", err)
	}
}

func TestBookService_ListPagination(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewBookService(repo)

	for i := 0; i < 25; i++ {
		in := bookInput("Book", "isbn-"+string(rune('a'+i)))
		if _, err := svc.CreateBook(context.Background(), in); err != nil {
			t.Fatalf("seed book %d: %v", i, err)
		}
	}

	page, err := svc.ListBooks(context.Background(), ports.Page{Number: 1, Size: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if len(page.Books) != 10 {
		t.Fatalf("expected 10 books on page 1, got %d", len(page.Books))
	}

	// Out-of-range sizes are clamped.
	page, err = svc.ListBooks(context.Background(), ports.Page{Number: 0, Size: 10_000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Size != ports.MaxPageSize {
		t.Fatalf("expected size clamped to %d, got %d", ports.MaxPageSize, page.Size)
	}
}

func TestBookService_UpdateMissing(t *testing.T) {
	svc := NewBookService(newStubBookRepo())

	if _, err := svc.UpdateBook(context.Background(), 42, bookInput("Nope", "isbn-x")); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookService_UpdateKeepsISBN(t *testing.T) {
	svc := NewBookService(newStubBookRepo())

	created, err := svc.CreateBook(context.Background(), bookInput("Dune", "978-0441013593"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := bookInput("Dune Messiah", "isbn-should-be-ignored")
	updated, err := svc.UpdateBook(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ISBN != "978-0441013593" {
		t.Fatalf("ISBN must be immutable, got %q", updated.ISBN)
	}
	if updated.Title != "Dune Messiah" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if !updated.UpdatedAt.After(time.Time{}) {
		t.Fatalf("expected refreshed update timestamp")
	}
}

func TestBookService_DeleteMissing(t *testing.T) {
	svc := NewBookService(newStubBookRepo())

	if err := svc.DeleteBook(context.Background(), 7); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
