package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized maps 401 responses; callers redirect to login.
	ErrUnauthorized = errors.New("autenticación requerida")
	// ErrNotFound maps 404 responses, typically a stale cart item id.
	ErrNotFound = errors.New("item no encontrado en el carrito")
)

// APIError is a non-2xx response with whatever message the backend put
// in its {"error": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}
