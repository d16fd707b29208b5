// Package exchange converts amounts between currencies using a live rate
// API, with a small hardcoded table as the emergency fallback.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var errRateMissing = errors.New("conversion rate missing in response")

// RateSource yields the rate to multiply an amount in from-currency by to
// get the equivalent in to-currency.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Client fetches latest rates in the exchangerate-api response shape:
// GET {base}/{FROM} returns {"rates": {"TO": rate, ...}}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ratesResponse struct {
	Base  string                 `json:"base"`
	Rates map[string]json.Number `json:"rates"`
}

// NewClient creates a rate API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://api.exchangerate-api.com/v4/latest"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Rate implements RateSource.
func (c *Client) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return decimal.Zero, errors.New("from and to currencies are required")
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(from))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to request rate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload ratesResponse
	if err := decoder.Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rateStr, ok := payload.Rates[to]
	if !ok {
		return decimal.Zero, errRateMissing
	}

	rate, err := decimal.NewFromString(rateStr.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse rate: %w", err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, errors.New("rate must be positive")
	}

	return rate, nil
}
