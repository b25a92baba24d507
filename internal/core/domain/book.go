package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrDuplicateISBN = errors.New("book with this ISBN already exists")
var ErrBookUnavailable = errors.New("book is not available")
var ErrInsufficientStock = errors.New("insufficient stock")

// Book is the catalog aggregate. ISBN is globally unique.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description,omitempty"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	StockQuantity   int       `json:"stock_quantity"`
	PublicationYear int       `json:"publication_year,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Rating          float64   `json:"rating"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
