package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/domain"
)

type mockBackend struct {
	m         sync.Mutex
	cart      *domain.Cart
	getErr    error
	addErr    error
	updateErr error
	removeErr error
	clearErr  error

	addCalls   atomic.Int32
	addStarted chan struct{}
	addRelease chan struct{}
}

func (b *mockBackend) GetCart(context.Context) (*domain.Cart, error) {
	b.m.Lock()
	defer b.m.Unlock()
	if b.getErr != nil {
		return nil, b.getErr
	}
	items := make([]domain.CartLine, len(b.cart.Items))
	copy(items, b.cart.Items)
	return &domain.Cart{Items: items}, nil
}

func (b *mockBackend) AddToCart(_ context.Context, productID int64, quantity int) error {
	b.addCalls.Add(1)
	if b.addStarted != nil {
		b.addStarted <- struct{}{}
		<-b.addRelease
	}
	b.m.Lock()
	defer b.m.Unlock()
	if b.addErr != nil {
		return b.addErr
	}
	b.cart.Items = append(b.cart.Items, domain.CartLine{
		ID:        int64(len(b.cart.Items) + 1),
		ProductID: productID,
		Quantity:  quantity,
		Product:   domain.Product{ID: productID, Price: decimal.NewFromInt(100)},
	})
	return nil
}

func (b *mockBackend) UpdateCartItem(_ context.Context, productID int64, quantity int) error {
	b.m.Lock()
	defer b.m.Unlock()
	if b.updateErr != nil {
		return b.updateErr
	}
	for i := range b.cart.Items {
		if b.cart.Items[i].ProductID == productID {
			b.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return backend.ErrNotFound
}

func (b *mockBackend) RemoveCartItem(_ context.Context, productID int64) error {
	b.m.Lock()
	defer b.m.Unlock()
	if b.removeErr != nil {
		return b.removeErr
	}
	for i, item := range b.cart.Items {
		if item.ProductID == productID {
			b.cart.Items = append(b.cart.Items[:i], b.cart.Items[i+1:]...)
			return nil
		}
	}
	return backend.ErrNotFound
}

func (b *mockBackend) ClearCart(context.Context) error {
	b.m.Lock()
	defer b.m.Unlock()
	if b.clearErr != nil {
		return b.clearErr
	}
	b.cart.Items = nil
	return nil
}

func line(productID int64, quantity int, price int64) domain.CartLine {
	return domain.CartLine{
		ID:        productID * 10,
		ProductID: productID,
		Quantity:  quantity,
		Product:   domain.Product{ID: productID, Price: decimal.NewFromInt(price)},
	}
}

func newReadyManager(t *testing.T, b *mockBackend) *Manager {
	t.Helper()
	m := NewManager(b)
	m.msgTTL = 40 * time.Millisecond
	require.NoError(t, m.Authenticate(context.Background()))
	require.Equal(t, StateReady, m.State())
	return m
}

func TestManager_StartsUnauthenticatedAndEmpty(t *testing.T) {
	m := NewManager(&mockBackend{cart: &domain.Cart{}})
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Items())
	assert.True(t, m.Total().IsZero())
}

func TestAuthenticate_LoadsCart(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].ProductID)
}

func TestFetch_ErrorKeepsPreviousItems(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	b.m.Lock()
	b.getErr = &backend.APIError{Status: 500}
	b.m.Unlock()

	err := m.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error al cargar el carrito", m.Err())
	assert.Len(t, m.Items(), 1, "previous cart stays displayed")
}

func TestAdd_Unauthenticated(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}}
	m := NewManager(b)
	m.msgTTL = 40 * time.Millisecond

	ok := m.Add(context.Background(), 5, 1)
	assert.False(t, ok)
	assert.Equal(t, "Debes iniciar sesión para agregar productos al carrito", m.Message(5).Error)
	assert.Equal(t, int32(0), b.addCalls.Load(), "no request without a session")
}

func TestAdd_SuccessRefreshesAndSetsMessage(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}}
	m := newReadyManager(t, b)

	ok := m.Add(context.Background(), 5, 2)
	require.True(t, ok)
	require.Len(t, m.Items(), 1)
	assert.Equal(t, 2, m.Items()[0].Quantity)

	msg := m.Message(5)
	assert.Equal(t, "¡Paquete agregado exitosamente al carrito!", msg.Success)
	assert.Empty(t, msg.Error)
}

func TestAdd_FailureSetsPerProductError(t *testing.T) {
	b := &mockBackend{
		cart:   &domain.Cart{},
		addErr: &backend.APIError{Status: 409, Message: "Sin stock disponible"},
	}
	m := newReadyManager(t, b)

	ok := m.Add(context.Background(), 5, 1)
	assert.False(t, ok)

	msg := m.Message(5)
	assert.Equal(t, "Sin stock disponible", msg.Error)
	assert.Empty(t, msg.Success)
	assert.Empty(t, m.Items())
}

func TestAdd_MessageAutoClearsAfterTTL(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}, addErr: &backend.APIError{Status: 500}}
	m := newReadyManager(t, b)

	require.False(t, m.Add(context.Background(), 5, 1))
	require.NotEmpty(t, m.Message(5).Error)

	require.Eventually(t, func() bool {
		return m.Message(5) == Message{}
	}, time.Second, 5*time.Millisecond, "message should clear itself")
}

func TestAdd_NewMessageSurvivesOldTimer(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}}
	m := newReadyManager(t, b)
	m.msgTTL = 60 * time.Millisecond

	require.True(t, m.Add(context.Background(), 5, 1))
	time.Sleep(30 * time.Millisecond)
	require.True(t, m.Add(context.Background(), 5, 1))
	time.Sleep(40 * time.Millisecond)

	// First timer has fired by now; the second message must still be up.
	assert.NotEmpty(t, m.Message(5).Success)
}

func TestAdd_ConcurrentCallsForSameProductAreCoalesced(t *testing.T) {
	b := &mockBackend{
		cart:       &domain.Cart{},
		addStarted: make(chan struct{}, 1),
		addRelease: make(chan struct{}),
	}
	m := newReadyManager(t, b)

	results := make(chan bool, 2)
	go func() { results <- m.Add(context.Background(), 5, 1) }()
	<-b.addStarted
	go func() { results <- m.Add(context.Background(), 5, 1) }()

	// Give the second call time to join the in-flight one, then let
	// the request finish.
	time.Sleep(20 * time.Millisecond)
	close(b.addRelease)

	assert.True(t, <-results)
	assert.True(t, <-results)
	assert.Equal(t, int32(1), b.addCalls.Load(), "rapid repeats share one request")
}

func TestRemove_Success(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100), line(7, 1, 50)}}}
	m := newReadyManager(t, b)

	require.NoError(t, m.Remove(context.Background(), 5))
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
}

func TestRemove_NotFoundKeepsCartAndSetsError(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	err := m.Remove(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "Item no encontrado en el carrito", m.Err())
	assert.Len(t, m.Items(), 1, "previous cart state unchanged")
}

func TestRemove_Unauthenticated(t *testing.T) {
	m := NewManager(&mockBackend{cart: &domain.Cart{}})

	err := m.Remove(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, "Debes iniciar sesión para modificar el carrito", m.Err())
}

func TestUpdateQuantity_Success(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	require.NoError(t, m.UpdateQuantity(context.Background(), 5, 4))
	assert.Equal(t, 4, m.Items()[0].Quantity)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}}
	m := newReadyManager(t, b)

	err := m.UpdateQuantity(context.Background(), 99, 3)
	require.Error(t, err)
	assert.Equal(t, "Item no encontrado en el carrito", m.Err())
}

func TestClear_EmptiesLocallyWithoutRefetch(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	// Make any re-fetch visible as an error.
	b.m.Lock()
	b.getErr = &backend.APIError{Status: 500}
	b.m.Unlock()

	require.NoError(t, m.Clear(context.Background()))
	assert.Empty(t, m.Items())
	assert.Empty(t, m.Err())
}

func TestTotal_SumsPriceTimesQuantity(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)

	require.True(t, m.Total().Equal(decimal.NewFromInt(200)))
	// Idempotent: same answer on every call.
	require.True(t, m.Total().Equal(decimal.NewFromInt(200)))
}

func TestLogout_ForcesEmptyCart(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{Items: []domain.CartLine{line(5, 2, 100)}}}
	m := newReadyManager(t, b)
	require.NotEmpty(t, m.Items())

	m.Logout()
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Empty(t, m.Items())
	assert.True(t, m.Total().IsZero())
}

func TestClearMessage_DismissesImmediately(t *testing.T) {
	b := &mockBackend{cart: &domain.Cart{}}
	m := newReadyManager(t, b)

	require.True(t, m.Add(context.Background(), 5, 1))
	require.NotEmpty(t, m.Message(5).Success)

	m.ClearMessage(5)
	assert.Equal(t, Message{}, m.Message(5))
}
