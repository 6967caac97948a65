package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/andesviajes/storefront/internal/domain"
	"github.com/andesviajes/storefront/internal/trips"
)

type TripsHandler struct {
	sessions  *Sessions
	store     trips.Store
	validator *trips.TripValidator
}

func NewTripsHandler(sessions *Sessions, store trips.Store, validator *trips.TripValidator) *TripsHandler {
	return &TripsHandler{sessions: sessions, store: store, validator: validator}
}

func (h *TripsHandler) session(w http.ResponseWriter, r *http.Request) *Session {
	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil
	}
	session, err := h.sessions.Get(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return nil
	}
	return session
}

// Save validates and stores a trip customization for one product;
// validation failure means nothing is written.
func (h *TripsHandler) Save(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var tc domain.TripCustomization
	if err := json.NewDecoder(r.Body).Decode(&tc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.validator.Validate(tc); err != nil {
		handleError(w, r, err)
		return
	}
	if err := h.store.Save(r.Context(), session.UserID, productID, tc); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tc)
}

func (h *TripsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	tc, found, err := h.store.Get(r.Context(), session.UserID, productID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "not_found", "no customization for this product")
		return
	}
	respondJSON(w, http.StatusOK, tc)
}

func (h *TripsHandler) List(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	all, err := h.store.All(r.Context(), session.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}
