// Package price fetches the staking token's USD spot price.
package price

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/logger"
)

// Client reads the token's spot price
//
//go:generate mockgen -source=client.go -destination=../../mocks/price.go -package=mocks -mock_names=Client=MockPriceClient
type Client interface {
	// TokenUSD returns the token's USD price. A feed failure degrades to 0
	// so that price-gated behavior fails closed rather than erroring.
	TokenUSD(ctx context.Context) float64
}

// Config holds the price feed configuration
type Config struct {
	BaseURL string
	CoinID  string
}

type client struct {
	http    adapter.HTTPClient
	baseURL string
	coinID  string
}

// NewClient creates a new price feed client
func NewClient(cfg Config, httpClient adapter.HTTPClient) Client {
	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		coinID:  cfg.CoinID,
	}
}

// TokenUSD returns the token's USD price, or 0 on any feed failure
func (c *client) TokenUSD(ctx context.Context) float64 {
	endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd", c.baseURL, c.coinID)

	var resp map[string]map[string]float64
	if err := c.http.Get(ctx, endpoint, map[string]string{"accept": "application/json"}, &resp); err != nil {
		logger.Warn("price feed unavailable, defaulting to 0", zap.Error(err), zap.String("coin", c.coinID))
		return 0
	}

	quote, ok := resp[c.coinID]
	if !ok {
		logger.Warn("price feed missing coin, defaulting to 0", zap.String("coin", c.coinID))
		return 0
	}

	return quote["usd"]
}
