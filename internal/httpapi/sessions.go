package httpapi

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/cart"
	"github.com/andesviajes/storefront/internal/checkout"
	"github.com/andesviajes/storefront/internal/trips"
)

// Session bundles the per-user state the storefront keeps between
// requests: the cart manager and the order composer, both bound to the
// user's bearer token.
type Session struct {
	UserID string
	Cart   *cart.Manager
	Orders *checkout.Composer
}

// Sessions resolves bearer tokens to live sessions. The first request
// with a token validates it against the backend and loads the cart;
// later requests reuse the same manager so transient messages and
// in-flight guards keep working across calls.
type Sessions struct {
	backend *backend.Client
	trips   trips.Store

	mu sync.Mutex
	m  map[string]*Session
}

func NewSessions(b *backend.Client, tripStore trips.Store) *Sessions {
	return &Sessions{
		backend: b,
		trips:   tripStore,
		m:       make(map[string]*Session),
	}
}

// Get returns the session for a token, creating and authenticating it
// on first use. An invalid token surfaces the backend's unauthorized
// error.
func (s *Sessions) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	if session, ok := s.m[token]; ok {
		s.mu.Unlock()
		return session, nil
	}
	s.mu.Unlock()

	client := s.backend.WithToken(token)
	user, err := client.Me(ctx)
	if err != nil {
		return nil, err
	}

	userID := strconv.FormatInt(user.ID, 10)
	manager := cart.NewManager(client)
	if err := manager.Authenticate(ctx); err != nil {
		// A cart load failure is a cart-level error, not a session
		// failure; the session still comes up.
		slog.Warn("initial cart load failed", "user_id", userID, "error", err)
	}

	session := &Session{
		UserID: userID,
		Cart:   manager,
		Orders: checkout.NewComposer(client, s.trips, manager, userID),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.m[token]; ok {
		return existing, nil
	}
	s.m[token] = session
	return session, nil
}

// Drop forgets a session, forcing revalidation on the next request.
func (s *Sessions) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.m[token]; ok {
		session.Cart.Logout()
		delete(s.m, token)
	}
}
