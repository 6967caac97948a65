package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/cart"
	"github.com/andesviajes/storefront/internal/checkout"
	"github.com/andesviajes/storefront/internal/trips"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleError maps domain errors onto HTTP statuses in one place.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr trips.ValidationError
	switch {
	case errors.Is(err, cart.ErrAuthRequired), errors.Is(err, backend.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, backend.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_failed", verr.Message)
	case errors.Is(err, checkout.ErrOrderFailed):
		respondError(w, http.StatusBadGateway, "order_failed", checkout.ErrOrderFailed.Error())
	default:
		slog.Error("unhandled request error",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
