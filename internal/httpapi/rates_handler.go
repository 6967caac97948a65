package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andesviajes/storefront/internal/rates"
	"github.com/andesviajes/storefront/internal/weather"
)

type RatesHandler struct {
	cache *rates.Cache
}

func NewRatesHandler(cache *rates.Cache) *RatesHandler {
	return &RatesHandler{cache: cache}
}

type ratesResponse struct {
	Rates      map[string]float64 `json:"rates"`
	FetchedAt  time.Time          `json:"fetchedAt"`
	Currencies []rates.Currency   `json:"currencies"`
}

// GetRates serves the cached table; before the first successful fetch
// the conversion banner simply has nothing to show.
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	table, fetchedAt, ok := h.cache.Snapshot()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, "rates_unavailable", "exchange rates not loaded yet")
		return
	}
	respondJSON(w, http.StatusOK, ratesResponse{
		Rates:      table,
		FetchedAt:  fetchedAt,
		Currencies: rates.Currencies,
	})
}

type convertResponse struct {
	Amount    float64 `json:"amount"`
	Converted bool    `json:"converted"`
	Display   string  `json:"display"`
}

// Convert reprices an amount between currencies. Converted=false means
// the fail-open identity fallback kicked in and the amount is still in
// the source currency.
func (h *RatesHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount", "amount must be a number")
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "from and to are required")
		return
	}

	conv := h.cache.Convert(amount, from, to)
	respondJSON(w, http.StatusOK, convertResponse{
		Amount:    conv.Amount,
		Converted: conv.Converted,
		Display:   rates.Format(conv.Amount, to),
	})
}

type WeatherHandler struct {
	client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

type weatherResponse struct {
	City        string  `json:"city"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// GetWeather degrades to 503 rather than failing the page; the UI
// shows "no disponible".
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	report, err := h.client.Current(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "weather_unavailable", "weather not available")
		return
	}

	resp := weatherResponse{
		City:      report.Name,
		Temp:      report.Main.Temp,
		Humidity:  report.Main.Humidity,
		WindSpeed: report.Wind.Speed,
	}
	if len(report.Weather) > 0 {
		resp.Description = report.Weather[0].Description
		resp.Icon = weather.Icon(report.Weather[0].Main)
	}
	respondJSON(w, http.StatusOK, resp)
}
