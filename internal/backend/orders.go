package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andesviajes/storefront/internal/domain"
)

type createOrderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

// OrderReceipt is the backend's answer to a submitted order. PaymentURL
// is empty when no external payment step is required.
type OrderReceipt struct {
	Order      *domain.Order `json:"order"`
	PaymentURL string        `json:"paymentUrl"`
}

func (c *Client) CreateOrder(ctx context.Context, items []domain.OrderItem) (*OrderReceipt, error) {
	var receipt OrderReceipt
	if err := c.do(ctx, http.MethodPost, "/api/orders", createOrderRequest{Items: items}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var env struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &env); err != nil {
		return nil, err
	}
	return env.Orders, nil
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// UpdateOrderStatus is the admin-side transition; the canonical status
// string goes over the wire.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/api/orders/%d/status", orderID)
	return c.do(ctx, http.MethodPut, path, updateStatusRequest{Status: status}, nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/api/orders/%d/cancel", orderID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}
