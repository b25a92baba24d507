package ports

import (
	"context"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

type OrderItemInput struct {
	BookID   int64
	Quantity int
}

// PagedOrders is a page of a user's order history.
type PagedOrders struct {
	Orders     []domain.Order
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// OrderService places and reads orders on behalf of an authenticated
// principal. Orders are owned: only the owner or an admin may read one.
type OrderService interface {
	PlaceOrder(ctx context.Context, principal *domain.Principal, items []OrderItemInput) (*domain.Order, error)
	GetOrder(ctx context.Context, principal *domain.Principal, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, principal *domain.Principal, page Page) (*PagedOrders, error)
}
