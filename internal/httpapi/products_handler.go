package httpapi

import (
	"net/http"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/domain"
)

type ProductsHandler struct {
	backend *backend.Client
}

func NewProductsHandler(client *backend.Client) *ProductsHandler {
	return &ProductsHandler{backend: client}
}

type productResponse struct {
	domain.Product
	Tier        domain.CostTier `json:"tier"`
	FlightClass string          `json:"flightClass"`
	HotelStars  int             `json:"hotelStars"`
}

// List serves the catalog annotated with the derived cost tier, flight
// class and hotel category the package cards display.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.backend.ListProducts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		tier := domain.TierForPrice(p.Price)
		out = append(out, productResponse{
			Product:     p,
			Tier:        tier,
			FlightClass: tier.FlightClass(),
			HotelStars:  tier.HotelStars(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}
