package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

// OrderService places and reads orders for an authenticated principal.
type OrderService struct {
	orders ports.OrderRepository
	books  ports.BookRepository
	users  ports.UserRepository
}

func NewOrderService(orders ports.OrderRepository, books ports.BookRepository, users ports.UserRepository) *OrderService {
	return &OrderService{orders: orders, books: books, users: users}
}

// PlaceOrder prices each line from the current catalog and hands the order to
// the repository, which decrements stock and inserts atomically. Prices are
// captured per line so later catalog edits do not rewrite order history.
func (s *OrderService) PlaceOrder(ctx context.Context, principal *domain.Principal, items []ports.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}

	var total float64
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		book, err := s.books.FindByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		if !book.Available {
			return nil, domain.ErrBookUnavailable
		}
		lines = append(lines, domain.OrderItem{
			BookID:    book.ID,
			Quantity:  item.Quantity,
			UnitPrice: book.Price,
		})
		total += book.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber: newOrderNumber(),
		UserID:      user.ID,
		Status:      domain.OrderPending,
		TotalAmount: total,
		Items:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.orders.Create(ctx, order)
}

// GetOrder returns an order to its owner or to an admin; anyone else gets
// ErrOrderNotFound rather than ErrForbidden to avoid confirming existence.
func (s *OrderService) GetOrder(ctx context.Context, principal *domain.Principal, id int64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal.HasRole(domain.RoleAdmin) {
		return order, nil
	}

	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns the principal's own order history, newest first.
func (s *OrderService) ListOrders(ctx context.Context, principal *domain.Principal, page ports.Page) (*ports.PagedOrders, error) {
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}

	page = page.Normalize("id", "created_at", "total_amount")
	orders, total, err := s.orders.ListByUser(ctx, user.ID, page)
	if err != nil {
		return nil, err
	}

	return &ports.PagedOrders{
		Orders:     orders,
		Total:      total,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:13])
}
