package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andesviajes/storefront/internal/domain"
)

// ListProducts is the only cart-adjacent endpoint that works without a
// bearer token.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) error {
	path := fmt.Sprintf("/api/products/%d", p.ID)
	return c.do(ctx, http.MethodPut, path, p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/products/%d", productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
