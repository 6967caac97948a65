package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/domain"
)

// State of a cart session. Mutating covers any in-flight add, remove,
// update or clear; independent mutations may overlap and their
// completion order is not guaranteed.
type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateReady
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateMutating:
		return "mutating"
	default:
		return "ready"
	}
}

// ErrAuthRequired is returned by mutations attempted without a session.
var ErrAuthRequired = errors.New("autenticación requerida")

// User-visible messages, as the store shows them.
const (
	msgAddedToCart  = "¡Paquete agregado exitosamente al carrito!"
	errAuthToAdd    = "Debes iniciar sesión para agregar productos al carrito"
	errAuthToModify = "Debes iniciar sesión para modificar el carrito"
	errLoadCart     = "Error al cargar el carrito"
	errAddToCart    = "Error al agregar al carrito"
	errRemoveItem   = "Error al remover del carrito"
	errUpdateQty    = "Error al actualizar la cantidad"
	errClearCart    = "Error al vaciar el carrito"
	errItemNotFound = "Item no encontrado en el carrito"
)

// Backend is the slice of the store API the manager drives.
type Backend interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, productID int64) error
	ClearCart(ctx context.Context) error
}

// Message is the transient per-product feedback shown next to a
// package card. At most one of Success/Error is set; both empty means
// nothing to show.
type Message struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Manager is the single source of truth for one user's server-side
// cart. It mirrors the backend cart (full replace on every fetch),
// derives the total, and tracks per-product transient messages with an
// auto-clear timer.
type Manager struct {
	backend Backend

	mu       sync.Mutex
	authed   bool
	loading  bool
	inflight int
	items    []domain.CartLine
	cartErr  string
	messages map[int64]Message
	msgGen   map[int64]int

	msgTTL   time.Duration
	addCalls singleflight.Group
}

func NewManager(b Backend) *Manager {
	return &Manager{
		backend:  b,
		messages: make(map[int64]Message),
		msgGen:   make(map[int64]int),
		msgTTL:   3 * time.Second,
	}
}

// Authenticate marks the session live and loads the cart. Fetch
// failures leave the session authenticated with a cart-level error.
func (m *Manager) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	m.authed = true
	m.loading = true
	m.mu.Unlock()

	err := m.Fetch(ctx)

	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
	return err
}

// Logout clears everything and forces the cart empty; no requests fire
// until the next Authenticate.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authed = false
	m.items = nil
	m.cartErr = ""
	m.messages = make(map[int64]Message)
	m.msgGen = make(map[int64]int)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case !m.authed:
		return StateUnauthenticated
	case m.loading:
		return StateLoading
	case m.inflight > 0:
		return StateMutating
	default:
		return StateReady
	}
}

// Items returns a copy of the current in-memory cart lines.
func (m *Manager) Items() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CartLine, len(m.items))
	copy(out, m.items)
	return out
}

// Err is the current cart-level error message, empty when none.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cartErr
}

// Fetch replaces the whole in-memory cart with the backend's view. On
// failure the previous lines stay displayed and a cart-level error is
// set.
func (m *Manager) Fetch(ctx context.Context) error {
	cart, err := m.backend.GetCart(ctx)
	if err != nil {
		slog.Warn("cart fetch failed", "error", err)
		m.setCartErr(errLoadCart)
		return fmt.Errorf("%s: %w", errLoadCart, err)
	}

	m.mu.Lock()
	m.items = cart.Items
	m.cartErr = ""
	m.mu.Unlock()
	return nil
}

// Add puts quantity units of a product in the cart and reports whether
// it worked. Concurrent calls for the same product are coalesced into
// one request; callers share its outcome. Outcome lands in the
// per-product message, which clears itself after the message TTL.
func (m *Manager) Add(ctx context.Context, productID int64, quantity int) bool {
	if m.State() == StateUnauthenticated {
		m.setMessage(productID, Message{Error: errAuthToAdd})
		return false
	}

	v, _, _ := m.addCalls.Do(strconv.FormatInt(productID, 10), func() (any, error) {
		m.beginMutation()
		defer m.endMutation()

		m.ClearMessage(productID)
		if err := m.backend.AddToCart(ctx, productID, quantity); err != nil {
			slog.Warn("add to cart failed", "product_id", productID, "error", err)
			m.setMessage(productID, Message{Error: addErrorMessage(err)})
			return false, nil
		}

		if err := m.Fetch(ctx); err != nil {
			slog.Warn("cart refresh after add failed", "product_id", productID, "error", err)
		}
		m.setMessage(productID, Message{Success: msgAddedToCart})
		return true, nil
	})
	return v.(bool)
}

// Remove deletes the line for productID. The backend addresses lines
// by product id, so a missing line comes back as a not-found error and
// the displayed cart is left unchanged.
func (m *Manager) Remove(ctx context.Context, productID int64) error {
	if m.State() == StateUnauthenticated {
		m.setCartErr(errAuthToModify)
		return ErrAuthRequired
	}

	m.beginMutation()
	defer m.endMutation()

	if err := m.backend.RemoveCartItem(ctx, productID); err != nil {
		slog.Warn("remove from cart failed", "product_id", productID, "error", err)
		m.setCartErr(mutationErrorMessage(err, errRemoveItem))
		return err
	}
	return m.Fetch(ctx)
}

// UpdateQuantity sets the quantity on the line for productID. Values
// below 1 are rejected by the backend, not here.
func (m *Manager) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if m.State() == StateUnauthenticated {
		m.setCartErr(errAuthToModify)
		return ErrAuthRequired
	}

	m.beginMutation()
	defer m.endMutation()

	if err := m.backend.UpdateCartItem(ctx, productID, quantity); err != nil {
		slog.Warn("quantity update failed", "product_id", productID, "error", err)
		m.setCartErr(mutationErrorMessage(err, errUpdateQty))
		return err
	}
	return m.Fetch(ctx)
}

// Clear empties the cart. On success the local state is emptied
// directly, without a re-fetch.
func (m *Manager) Clear(ctx context.Context) error {
	if m.State() == StateUnauthenticated {
		m.setCartErr(errAuthToModify)
		return ErrAuthRequired
	}

	m.beginMutation()
	defer m.endMutation()

	if err := m.backend.ClearCart(ctx); err != nil {
		slog.Warn("clear cart failed", "error", err)
		m.setCartErr(errClearCart)
		return err
	}

	m.mu.Lock()
	m.items = nil
	m.cartErr = ""
	m.mu.Unlock()
	return nil
}

// Total sums price × quantity over the in-memory lines, in the
// catalog's native currency. Pure; no conversion or tax here.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Cart{Items: m.items}.Total()
}

// Message returns the transient feedback for a product; the zero value
// means nothing is pending.
func (m *Manager) Message(productID int64) Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages[productID]
}

// ClearMessage dismisses a product's feedback immediately.
func (m *Manager) ClearMessage(productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgGen[productID]++
	delete(m.messages, productID)
}

// setMessage stores feedback and arms its auto-clear. The generation
// counter keeps an old timer from wiping a newer message.
func (m *Manager) setMessage(productID int64, msg Message) {
	m.mu.Lock()
	m.msgGen[productID]++
	gen := m.msgGen[productID]
	m.messages[productID] = msg
	ttl := m.msgTTL
	m.mu.Unlock()

	time.AfterFunc(ttl, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.msgGen[productID] == gen {
			delete(m.messages, productID)
		}
	})
}

func (m *Manager) setCartErr(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cartErr = msg
}

func (m *Manager) beginMutation() {
	m.mu.Lock()
	m.inflight++
	m.mu.Unlock()
}

func (m *Manager) endMutation() {
	m.mu.Lock()
	m.inflight--
	m.mu.Unlock()
}

// addErrorMessage prefers the backend's own error text, falling back to
// the generic add failure.
func addErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return errAddToCart
}

func mutationErrorMessage(err error, generic string) string {
	if errors.Is(err, backend.ErrNotFound) {
		return errItemNotFound
	}
	return generic
}
