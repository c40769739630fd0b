package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"spotboard/internal/price"
)

var (
	// ErrDayNotFound is returned when no document exists for the requested
	// date, typically tomorrow before the provider's publish cutoff.
	ErrDayNotFound = errors.New("day document not found")
)

// Client fetches per-day price documents from the price object store over
// HTTP. It implements the price.Fetcher interface.
type Client struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a storage client rooted at baseURL. Day documents are
// expected at {baseURL}/{YYYY-MM-DD}.json.
func NewClient(client *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "price-storage",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		name:    "price-storage",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (c *Client) Name() string {
	return c.name
}

// FetchDay retrieves and decodes the document for one calendar date.
// A missing document yields ErrDayNotFound; a body that fails to decode
// yields a decode error. Callers treat both the same way: that date simply
// contributes no data.
func (c *Client) FetchDay(ctx context.Context, date string) (*price.DayDocument, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s.json", c.baseURL, date)
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, date)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, date)
	}

	var doc price.DayDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document for %s: %w", date, err)
	}
	if doc.Date == "" {
		doc.Date = date
	}

	return &doc, nil
}
