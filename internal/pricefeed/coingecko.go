package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultCoinGeckoURL is the CoinGecko simple price endpoint.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// Source returns the current price from an external feed.
type Source interface {
	Fetch(ctx context.Context) (float64, error)
}

var _ Source = (*CoinGeckoClient)(nil)

// CoinGeckoClient fetches a single spot price from the CoinGecko simple
// price API, e.g. bitcoin in usd.
type CoinGeckoClient struct {
	httpClient *http.Client
	baseURL    string
	coin       string
	currency   string
}

// NewCoinGeckoClient creates a client for one coin/currency pair.
// An empty baseURL uses DefaultCoinGeckoURL.
func NewCoinGeckoClient(baseURL, coin, currency string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	return &CoinGeckoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		coin:       coin,
		currency:   currency,
	}
}

// simplePriceResponse maps coin id -> currency -> price, for example
// {"bitcoin":{"usd":45000}}.
type simplePriceResponse map[string]map[string]float64

// Fetch queries the endpoint and returns the price for the configured pair.
//
// Returns an error if the request fails, the API responds with a non-200
// status, the body is not valid JSON, or the pair is missing from the body.
func (c *CoinGeckoClient) Fetch(ctx context.Context) (float64, error) {
	params := url.Values{}
	params.Set("ids", c.coin)
	params.Set("vs_currencies", c.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var body simplePriceResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return 0, fmt.Errorf("failed to decode coingecko response: %w", err)
	}

	price, ok := body[c.coin][c.currency]
	if !ok {
		return 0, fmt.Errorf("no %s price for %s in coingecko response", c.currency, c.coin)
	}

	return price, nil
}
