package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type ratesResponse struct {
	Success   bool               `json:"success"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
	Error     string             `json:"error"`
}

// FetchRates pulls the EUR-based exchange rate table the backend proxies
// from its rates provider. The timestamp is the provider's, in epoch
// seconds.
func (c *Client) FetchRates(ctx context.Context) (map[string]float64, time.Time, error) {
	var resp ratesResponse
	if err := c.do(ctx, http.MethodGet, "/api/currency/rates", nil, &resp); err != nil {
		return nil, time.Time{}, err
	}
	if !resp.Success {
		return nil, time.Time{}, fmt.Errorf("rates provider error: %s", resp.Error)
	}
	return resp.Rates, time.Unix(resp.Timestamp, 0), nil
}

type HelpSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Client) Help(ctx context.Context) ([]HelpSection, error) {
	return c.help(ctx, "/api/help")
}

// PublicHelp works without a token.
func (c *Client) PublicHelp(ctx context.Context) ([]HelpSection, error) {
	return c.help(ctx, "/api/help/public")
}

func (c *Client) help(ctx context.Context, path string) ([]HelpSection, error) {
	var env struct {
		Sections []HelpSection `json:"sections"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Sections, nil
}
