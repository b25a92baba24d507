package handler

import (
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

type bookRequest struct {
	Title           string  `json:"title"           validate:"required,max=255"`
	Author          string  `json:"author"          validate:"required,max=255"`
	Description     string  `json:"description"`
	ISBN            string  `json:"isbn"            validate:"required,min=10,max=17"`
	Category        string  `json:"category"        validate:"required,max=100"`
	Price           float64 `json:"price"           validate:"required,gt=0"`
	StockQuantity   int     `json:"stockQuantity"   validate:"gte=0"`
	PublicationYear int     `json:"publicationYear" validate:"omitempty,gte=0"`
	ImageURL        string  `json:"imageUrl"`
	Rating          float64 `json:"rating"          validate:"gte=0,lte=5"`
	Available       bool    `json:"available"`
}

func (r bookRequest) toInput() ports.CreateBookInput {
	return ports.CreateBookInput{
		Title:           r.Title,
		Author:          r.Author,
		Description:     r.Description,
		ISBN:            r.ISBN,
		Category:        r.Category,
		Price:           r.Price,
		StockQuantity:   r.StockQuantity,
		PublicationYear: r.PublicationYear,
		ImageURL:        r.ImageURL,
		Rating:          r.Rating,
		Available:       r.Available,
	}
}

type bookResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description,omitempty"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	StockQuantity   int       `json:"stockQuantity"`
	PublicationYear int       `json:"publicationYear,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Rating          float64   `json:"rating"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func newBookResponse(book *domain.Book) bookResponse {
	return bookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Description:     book.Description,
		ISBN:            book.ISBN,
		Category:        book.Category,
		Price:           book.Price,
		StockQuantity:   book.StockQuantity,
		PublicationYear: book.PublicationYear,
		ImageURL:        book.ImageURL,
		Rating:          book.Rating,
		Available:       book.Available,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

// pagedResponse is the list envelope shared by paginated endpoints.
type pagedResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func newPagedBooks(page *ports.PagedBooks) pagedResponse[bookResponse] {
	content := make([]bookResponse, 0, len(page.Books))
	for i := range page.Books {
		content = append(content, newBookResponse(&page.Books[i]))
	}
	return pagedResponse[bookResponse]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    page.TotalPages,
	}
}
