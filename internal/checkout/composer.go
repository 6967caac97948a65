package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/cart"
	"github.com/andesviajes/storefront/internal/domain"
	"github.com/andesviajes/storefront/internal/trips"
)

// ErrOrderFailed is the generic terminal failure for one checkout
// attempt; the cart and saved customizations are left intact so the
// user can retry.
var ErrOrderFailed = errors.New("Error al procesar la orden")

// OrderPlacer is the order-creation slice of the backend client.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, items []domain.OrderItem) (*backend.OrderReceipt, error)
}

// Result of a successful checkout. PaymentURL, when set, is where the
// caller must send the user; the cart has already been cleared either
// way.
type Result struct {
	Order      *domain.Order
	PaymentURL string
}

// Composer merges the server-side cart with the locally saved trip
// customizations into one order submission.
type Composer struct {
	orders OrderPlacer
	trips  trips.Store
	cart   *cart.Manager
	userID string
}

func NewComposer(orders OrderPlacer, tripStore trips.Store, cartManager *cart.Manager, userID string) *Composer {
	return &Composer{
		orders: orders,
		trips:  tripStore,
		cart:   cartManager,
		userID: userID,
	}
}

// Compose maps every cart line to an order item, spreading in the trip
// fields for lines that have a saved customization and leaving them off
// for lines that don't. No validation or defaulting happens here.
func (c *Composer) Compose(ctx context.Context) ([]domain.OrderItem, error) {
	saved, err := c.trips.All(ctx, c.userID)
	if err != nil {
		return nil, fmt.Errorf("read trip customizations: %w", err)
	}

	lines := c.cart.Items()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, ln := range lines {
		item := domain.OrderItem{ProductID: ln.ProductID, Quantity: ln.Quantity}
		if tc, ok := saved[ln.ProductID]; ok {
			item.FechaIda = tc.FechaIda
			item.FechaVuelta = tc.FechaVuelta
			item.HoraIda = tc.HoraIda
			item.HoraVuelta = tc.HoraVuelta
		}
		items = append(items, item)
	}
	return items, nil
}

// Checkout submits the composed order. An unauthenticated session gets
// ErrAuthRequired without any request. On success the server-side cart
// is cleared; saved trip customizations are deliberately NOT cleared
// here (the order-events consumer cleans them up once the order
// completes). Any failure is terminal for this attempt.
func (c *Composer) Checkout(ctx context.Context) (*Result, error) {
	if c.cart.State() == cart.StateUnauthenticated {
		return nil, cart.ErrAuthRequired
	}

	items, err := c.Compose(ctx)
	if err != nil {
		slog.Warn("checkout composition failed", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrOrderFailed, err)
	}

	receipt, err := c.orders.CreateOrder(ctx, items)
	if err != nil {
		slog.Warn("order submission failed", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrOrderFailed, err)
	}

	// Clear regardless of whether a payment redirect follows; a clear
	// failure is logged, not surfaced, since the order already exists.
	if err := c.cart.Clear(ctx); err != nil {
		slog.Warn("cart clear after checkout failed", "error", err)
	}

	return &Result{Order: receipt.Order, PaymentURL: receipt.PaymentURL}, nil
}
