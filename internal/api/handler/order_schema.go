package handler

import (
	"time"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
)

type orderItemRequest struct {
	BookID   int64 `json:"bookId"   validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemResponse struct {
	ID        int64   `json:"id"`
	BookID    int64   `json:"bookId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"totalAmount"`
	Items       []orderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:        item.ID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return orderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func newPagedOrders(page *ports.PagedOrders) pagedResponse[orderResponse] {
	content := make([]orderResponse, 0, len(page.Orders))
	for i := range page.Orders {
		content = append(content, newOrderResponse(&page.Orders[i]))
	}
	return pagedResponse[orderResponse]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.Total,
		TotalPages:    page.TotalPages,
	}
}
