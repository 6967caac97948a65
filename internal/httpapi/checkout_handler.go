package httpapi

import (
	"net/http"

	"github.com/andesviajes/storefront/internal/domain"
)

type CheckoutHandler struct {
	sessions *Sessions
}

func NewCheckoutHandler(sessions *Sessions) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

type checkoutResponse struct {
	Order      *domain.Order `json:"order,omitempty"`
	PaymentURL string        `json:"paymentUrl,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	session, err := h.sessions.Get(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := session.Orders.Checkout(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkoutResponse{
		Order:      result.Order,
		PaymentURL: result.PaymentURL,
	})
}
