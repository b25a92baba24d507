package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

const bookColumns = `id, title, author, description, isbn, category, price,
	stock_quantity, publication_year, image_url, rating, available, created_at, updated_at`

// BookRepository is the SQLite-backed catalog store.
type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (*domain.Book, error) {
	return r.findOne(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return r.findOne(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn)
}

func (r *BookRepository) findOne(ctx context.Context, query string, arg any) (*domain.Book, error) {
	book := &domain.Book{}
	err := scanBook(r.db.QueryRowContext(ctx, query, arg), book)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return book, nil
}

// List returns one page of books matching the filter plus the unpaged total.
// The sort column is whitelisted upstream by ports.Page.Normalize.
func (r *BookRepository) List(ctx context.Context, filter ports.BookFilter, page ports.Page) ([]domain.Book, int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		where = append(where, `(LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(category) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, filter.Category)
	}
	if filter.AvailableOnly {
		where = append(where, `available = 1`)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	dir := "ASC"
	if page.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM books%s ORDER BY %s %s LIMIT ? OFFSET ?`,
		bookColumns, clause, page.SortBy, dir)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]domain.Book, 0, page.Size)
	for rows.Next() {
		var book domain.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, total, rows.Err()
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO books (title, author, description, isbn, category, price,
			stock_quantity, publication_year, image_url, rating, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title, book.Author, book.Description, book.ISBN, book.Category, book.Price,
		book.StockQuantity, book.PublicationYear, book.ImageURL, book.Rating, book.Available,
		book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}
	book.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return book, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, description = ?, category = ?, price = ?,
			stock_quantity = ?, publication_year = ?, image_url = ?, rating = ?,
			available = ?, updated_at = ?
		WHERE id = ?`,
		book.Title, book.Author, book.Description, book.Category, book.Price,
		book.StockQuantity, book.PublicationYear, book.ImageURL, book.Rating,
		book.Available, book.UpdatedAt, book.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, book *domain.Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.ISBN,
		&book.Category,
		&book.Price,
		&book.StockQuantity,
		&book.PublicationYear,
		&book.ImageURL,
		&book.Rating,
		&book.Available,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}
