package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andesviajes/storefront/internal/backend"
	"github.com/andesviajes/storefront/internal/rates"
	"github.com/andesviajes/storefront/internal/trips"
	"github.com/andesviajes/storefront/internal/weather"
)

// Deps are the wired application components the router exposes.
type Deps struct {
	Sessions      *Sessions
	Backend       *backend.Client
	TripStore     trips.Store
	TripValidator *trips.TripValidator
	Rates         *rates.Cache
	Weather       *weather.Client

	RequestTimeout time.Duration
}

// NewRouter builds the storefront's HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cartHandler := NewCartHandler(deps.Sessions)
	checkoutHandler := NewCheckoutHandler(deps.Sessions)
	tripsHandler := NewTripsHandler(deps.Sessions, deps.TripStore, deps.TripValidator)
	ratesHandler := NewRatesHandler(deps.Rates)
	weatherHandler := NewWeatherHandler(deps.Weather)
	productsHandler := NewProductsHandler(deps.Backend)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(BearerTokenMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Get("/messages/{product_id}", cartHandler.GetMessage)
			r.Delete("/messages/{product_id}", cartHandler.DismissMessage)
		})

		r.Post("/checkout", checkoutHandler.Checkout)

		// Logout: forget the session so the token revalidates next time.
		r.Delete("/session", func(w http.ResponseWriter, r *http.Request) {
			if token := tokenFromContext(r.Context()); token != "" {
				deps.Sessions.Drop(token)
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", tripsHandler.List)
			r.Get("/{product_id}", tripsHandler.Get)
			r.Put("/{product_id}", tripsHandler.Save)
		})

		r.Get("/products", productsHandler.List)

		r.Get("/rates", ratesHandler.GetRates)
		r.Get("/rates/convert", ratesHandler.Convert)
		r.Get("/weather", weatherHandler.GetWeather)
	})

	return r
}
