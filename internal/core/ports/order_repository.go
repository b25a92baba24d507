package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// OrderRepository persists orders. Create runs the stock decrement and the
// order insert in one transaction; a line whose book has too little stock
// fails the whole order with domain.ErrInsufficientStock.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, int64, error)
}
