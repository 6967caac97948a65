package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andesviajes/storefront/pkg/circuitbreaker"
)

// Source provides the EUR-based rate table (EUR = 1).
type Source interface {
	FetchRates(ctx context.Context) (map[string]float64, time.Time, error)
}

// Conversion tags the result of Convert so callers can tell a real
// conversion from the fail-open identity fallback. The displayed amount
// is the same either way; Converted is false when no conversion was
// possible.
type Conversion struct {
	Amount    float64
	Converted bool
}

// Cache holds the single process-wide exchange rate table. A failed
// refresh keeps the last-known-good rates; Convert fails open to the
// original amount when the table is missing a currency.
type Cache struct {
	source   Source
	breaker  *circuitbreaker.Breaker
	interval time.Duration

	mu        sync.RWMutex
	rates     map[string]float64
	fetchedAt time.Time
	lastErr   error
}

func NewCache(source Source, interval time.Duration) *Cache {
	return &Cache{
		source:   source,
		breaker:  circuitbreaker.New(3, 5*time.Minute),
		interval: interval,
	}
}

// Refresh fetches the rate table once. On failure the previous rates
// stay in place and the error is retained for inspection.
func (c *Cache) Refresh(ctx context.Context) error {
	var (
		rates     map[string]float64
		fetchedAt time.Time
	)
	err := c.breaker.Do(func() error {
		var fetchErr error
		rates, fetchedAt, fetchErr = c.source.FetchRates(ctx)
		return fetchErr
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.rates = rates
	c.fetchedAt = fetchedAt
	c.lastErr = nil
	return nil
}

// Run refreshes immediately, then on every tick until ctx is done.
func (c *Cache) Run(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		slog.Warn("initial rates refresh failed", "error", err)
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				slog.Warn("rates refresh failed, keeping previous table", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Convert reprices amount from one currency to another through the
// EUR-based table: amount / rate[from] * rate[to]. Same currency is a
// true identity conversion; a missing table or missing rate falls open
// to the unconverted amount with Converted = false.
func (c *Cache) Convert(amount float64, from, to string) Conversion {
	if from == to {
		return Conversion{Amount: amount, Converted: true}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rates == nil {
		return Conversion{Amount: amount}
	}
	rateFrom, okFrom := c.rates[from]
	rateTo, okTo := c.rates[to]
	if !okFrom || !okTo || rateFrom == 0 {
		return Conversion{Amount: amount}
	}

	return Conversion{Amount: amount / rateFrom * rateTo, Converted: true}
}

// Snapshot returns the current table and when it was fetched; ok is
// false before the first successful refresh.
func (c *Cache) Snapshot() (map[string]float64, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rates == nil {
		return nil, time.Time{}, false
	}
	out := make(map[string]float64, len(c.rates))
	for k, v := range c.rates {
		out[k] = v
	}
	return out, c.fetchedAt, true
}

// Err reports the most recent refresh failure, nil after a success.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
