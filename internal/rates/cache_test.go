package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mu        sync.Mutex
	rates     map[string]float64
	fetchedAt time.Time
	err       error
	calls     int
}

func (m *mockSource) FetchRates(context.Context) (map[string]float64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, time.Time{}, m.err
	}
	return m.rates, m.fetchedAt, nil
}

func (m *mockSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

var testRates = map[string]float64{
	"EUR": 1,
	"USD": 1.1,
	"ARS": 1000,
	"JPY": 160,
}

func newReadyCache(t *testing.T) (*Cache, *mockSource) {
	t.Helper()
	src := &mockSource{rates: testRates, fetchedAt: time.Unix(1700000000, 0)}
	c := NewCache(src, time.Hour)
	require.NoError(t, c.Refresh(context.Background()))
	return c, src
}

func TestRefresh_StoresRatesAndClearsError(t *testing.T) {
	c, src := newReadyCache(t)

	rates, fetchedAt, ok := c.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 1.1, rates["USD"])
	assert.Equal(t, time.Unix(1700000000, 0), fetchedAt)
	assert.NoError(t, c.Err())

	// A later failure keeps the previous table.
	src.setErr(errors.New("provider down"))
	require.Error(t, c.Refresh(context.Background()))
	rates, _, ok = c.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 1.1, rates["USD"])
	assert.ErrorContains(t, c.Err(), "provider down")

	// And a recovery clears the retained error.
	src.setErr(nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.NoError(t, c.Err())
}

func TestConvert_IdentityLaw(t *testing.T) {
	c, _ := newReadyCache(t)

	for _, code := range []string{"USD", "ARS", "XXX"} {
		conv := c.Convert(42.5, code, code)
		assert.Equal(t, 42.5, conv.Amount)
		assert.True(t, conv.Converted)
	}
}

func TestConvert_ThroughEURBase(t *testing.T) {
	c, _ := newReadyCache(t)

	conv := c.Convert(200, "USD", "ARS")
	require.True(t, conv.Converted)
	assert.InDelta(t, 181818.18, conv.Amount, 0.01)
}

func TestConvert_RoundTripLaw(t *testing.T) {
	c, _ := newReadyCache(t)

	there := c.Convert(123.45, "USD", "JPY")
	require.True(t, there.Converted)
	back := c.Convert(there.Amount, "JPY", "USD")
	require.True(t, back.Converted)
	assert.InDelta(t, 123.45, back.Amount, 1e-9)
}

func TestConvert_MissingRateFailsOpen(t *testing.T) {
	c, _ := newReadyCache(t)

	conv := c.Convert(99, "USD", "BTC")
	assert.Equal(t, float64(99), conv.Amount)
	assert.False(t, conv.Converted)

	conv = c.Convert(99, "XXX", "USD")
	assert.Equal(t, float64(99), conv.Amount)
	assert.False(t, conv.Converted)
}

func TestConvert_NoTableFailsOpen(t *testing.T) {
	src := &mockSource{err: errors.New("down")}
	c := NewCache(src, time.Hour)

	conv := c.Convert(50, "USD", "ARS")
	assert.Equal(t, float64(50), conv.Amount)
	assert.False(t, conv.Converted)

	_, _, ok := c.Snapshot()
	assert.False(t, ok)
}

func TestRun_RefreshesOnStartAndTick(t *testing.T) {
	src := &mockSource{rates: testRates, fetchedAt: time.Now()}
	c := NewCache(src, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls >= 2
	}, time.Second, 5*time.Millisecond, "expected an initial fetch plus at least one tick")
}
