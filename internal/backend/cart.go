package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andesviajes/storefront/internal/domain"
)

type cartEnvelope struct {
	Cart *domain.Cart `json:"cart"`
}

// GetCart fetches the authenticated user's full cart. A backend
// response without a cart object reads as an empty cart.
func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &env); err != nil {
		return nil, err
	}
	if env.Cart == nil {
		return &domain.Cart{}, nil
	}
	return env.Cart, nil
}

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) error {
	req := addToCartRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/api/cart/add", req, nil)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem changes the quantity of the line holding productID.
// Items are addressed by product id so no cart read is needed first.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) error {
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	return c.do(ctx, http.MethodPut, path, updateQuantityRequest{Quantity: quantity}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/clear", nil, nil)
}
