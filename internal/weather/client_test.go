package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `{
	"name": "%s",
	"main": {"temp": 21.4, "humidity": 60},
	"wind": {"speed": 12},
	"weather": [{"main": "Clear", "description": "cielo claro"}]
}`

func newTestServer(t *testing.T, known map[string]bool, queries *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		if queries != nil {
			*queries = append(*queries, city)
		}
		if !known[city] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(sampleReport, city)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrent_KnownCity(t *testing.T) {
	srv := newTestServer(t, map[string]bool{"Mendoza": true}, nil)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	report, err := c.Current(context.Background(), "Mendoza")
	require.NoError(t, err)
	assert.Equal(t, "Mendoza", report.Name)
	assert.Equal(t, 21.4, report.Main.Temp)
	assert.Equal(t, 60, report.Main.Humidity)
	require.Len(t, report.Weather, 1)
	assert.Equal(t, "Clear", report.Weather[0].Main)
}

func TestCurrent_AliasedCity(t *testing.T) {
	var queries []string
	srv := newTestServer(t, map[string]bool{"San Carlos de Bariloche": true}, &queries)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	_, err := c.Current(context.Background(), "Bariloche")
	require.NoError(t, err)
	require.NotEmpty(t, queries)
	assert.Equal(t, "San Carlos de Bariloche", queries[0])
}

func TestCurrent_AccentsStripped(t *testing.T) {
	var queries []string
	srv := newTestServer(t, map[string]bool{"Neuquen": true}, &queries)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	_, err := c.Current(context.Background(), "Neuquén")
	require.NoError(t, err)
	assert.Equal(t, "Neuquen", queries[0])
}

func TestCurrent_FallsBackToDefaultCity(t *testing.T) {
	var queries []string
	srv := newTestServer(t, map[string]bool{"Buenos Aires": true}, &queries)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	report, err := c.Current(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "Buenos Aires", report.Name)
	assert.Equal(t, []string{"Atlantis", "Buenos Aires"}, queries)
}

func TestCurrent_EmptyCityUsesDefault(t *testing.T) {
	srv := newTestServer(t, map[string]bool{"Buenos Aires": true}, nil)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	report, err := c.Current(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Buenos Aires", report.Name)
}

func TestCurrent_NothingFound(t *testing.T) {
	srv := newTestServer(t, map[string]bool{}, nil)
	c := NewClient(srv.URL, "key", "Buenos Aires", time.Second)

	_, err := c.Current(context.Background(), "Atlantis")
	require.Error(t, err)
}

func TestCurrent_MissingAPIKey(t *testing.T) {
	c := NewClient("http://unused", "", "Buenos Aires", time.Second)

	_, err := c.Current(context.Background(), "Mendoza")
	require.ErrorContains(t, err, "API key")
}

func TestCurrent_RejectedAPIKeyIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "bad", "Buenos Aires", time.Second)

	_, err := c.Current(context.Background(), "Mendoza")
	require.ErrorContains(t, err, "rejected")
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "☀️", Icon("Clear"))
	assert.Equal(t, "🌡️", Icon("Sandstorm"))
}
