package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andesviajes/storefront/pkg/circuitbreaker"
)

// Report is the slice of the provider's response the store shows next
// to a destination.
type Report struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Destination names carrying accents the provider trips over.
var cityAliases = map[string]string{
	"Iguazú":    "Iguazu",
	"Córdoba":   "Cordoba",
	"Bariloche": "San Carlos de Bariloche",
}

// Client looks up current weather by city name. Unknown cities fall
// back to the configured default city rather than failing the page.
type Client struct {
	baseURL     string
	apiKey      string
	defaultCity string
	http        *http.Client
	breaker     *circuitbreaker.Breaker
}

func NewClient(baseURL, apiKey, defaultCity string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		defaultCity: defaultCity,
		http:        &http.Client{Timeout: timeout},
		breaker:     circuitbreaker.New(3, 5*time.Minute),
	}
}

// Current resolves a city with a fallback chain: aliased/normalized
// name, then the raw name, then the default city.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather API key not configured")
	}
	if city == "" {
		city = c.defaultCity
	}

	candidates := []string{normalizeCity(city)}
	if raw := strings.TrimSpace(city); raw != candidates[0] {
		candidates = append(candidates, raw)
	}
	if c.defaultCity != candidates[0] {
		candidates = append(candidates, c.defaultCity)
	}

	var report *Report
	err := c.breaker.Do(func() error {
		var lastErr error
		for _, candidate := range candidates {
			r, err := c.fetch(ctx, candidate)
			if err == nil {
				report = r
				return nil
			}
			lastErr = err
			if !isNotFound(err) {
				return err
			}
		}
		return lastErr
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type notFoundError struct{ city string }

func (e *notFoundError) Error() string {
	return fmt.Sprintf("no weather for city %q", e.city)
}

func isNotFound(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}

func (c *Client) fetch(ctx context.Context, city string) (*Report, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "es")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &notFoundError{city: city}
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("weather API key rejected")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("weather provider responded %d", resp.StatusCode)
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	return &report, nil
}

// normalizeCity applies the alias table, then strips the accented
// characters Argentine destination names actually use.
func normalizeCity(city string) string {
	city = strings.TrimSpace(city)
	if mapped, ok := cityAliases[city]; ok {
		return mapped
	}
	return accentReplacer.Replace(city)
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
)

// Icon maps a provider condition to the emoji the UI shows.
func Icon(condition string) string {
	icons := map[string]string{
		"Clear":        "☀️",
		"Clouds":       "☁️",
		"Rain":         "🌧️",
		"Snow":         "❄️",
		"Thunderstorm": "⛈️",
		"Drizzle":      "🌦️",
		"Mist":         "🌫️",
	}
	if icon, ok := icons[condition]; ok {
		return icon
	}
	return "🌡️"
}
