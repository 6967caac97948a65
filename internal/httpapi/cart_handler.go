package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andesviajes/storefront/internal/cart"
	"github.com/andesviajes/storefront/internal/domain"
)

type CartHandler struct {
	sessions *Sessions
}

func NewCartHandler(sessions *Sessions) *CartHandler {
	return &CartHandler{sessions: sessions}
}

type cartResponse struct {
	Items []domain.CartLine `json:"items"`
	Total string            `json:"total"`
	State string            `json:"state"`
	Error string            `json:"error,omitempty"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type addItemResponse struct {
	Added   bool         `json:"added"`
	Message cart.Message `json:"message"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) *Session {
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

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	respondJSON(w, http.StatusOK, cartResponse{
		Items: session.Cart.Items(),
		Total: session.Cart.Total().String(),
		State: session.Cart.State().String(),
		Error: session.Cart.Err(),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	added := session.Cart.Add(r.Context(), req.ProductID, req.Quantity)
	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	respondJSON(w, status, addItemResponse{
		Added:   added,
		Message: session.Cart.Message(req.ProductID),
	})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := session.Cart.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		handleError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := session.Cart.Remove(r.Context(), productID); err != nil {
		handleError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	if err := session.Cart.Clear(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Cart.Message(productID))
}

func (h *CartHandler) DismissMessage(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	session.Cart.ClearMessage(productID)
	w.WriteHeader(http.StatusNoContent)
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
