// Package pricecharting queries the US market price API used as the
// sell-side reference.
package pricecharting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apperror"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/circuitbreaker"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/httpclient"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/ratelimit"
)

// ClientConfig holds the API settings.
type ClientConfig struct {
	BaseURL string
	APIKey  string

	MinRequestInterval time.Duration
	RequestTimeout     time.Duration
}

// productResponse mirrors the API's product lookup payload. Prices are
// integer US cents.
type productResponse struct {
	Status      string `json:"status"`
	ID          string `json:"id"`
	ProductName string `json:"product-name"`
	LoosePrice  int64  `json:"loose-price"`
}

// Client fetches market prices with a circuit breaker in front of the
// API.
type Client struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	cb      *circuitbreaker.CircuitBreaker[*productResponse]
	apiKey  string
	logger  logger.LoggerInterface
}

// NewClient creates a market price client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "pricecharting base url")
	}
	if cfg.APIKey == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "pricecharting api key")
	}

	interval := cfg.MinRequestInterval
	if interval < time.Second {
		interval = time.Second
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("pricecharting"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:  client,
		limiter: ratelimit.NewEvery(interval),
		cb:      circuitbreaker.New[*productResponse](circuitbreaker.DefaultConfig("pricecharting")),
		apiKey:  cfg.APIKey,
		logger:  log,
	}, nil
}

// FetchPrice looks the card up by set, number and name. A product with
// no usable price returns (nil, nil); only transport and API failures
// surface as errors and count against the breaker.
func (c *Client) FetchPrice(ctx context.Context, card domain.Card) (*domain.MarketPrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	product, err := c.cb.Execute(func() (*productResponse, error) {
		return c.lookup(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	if product == nil || product.LoosePrice <= 0 {
		c.logger.Debug(ctx, "no market price", "card", card.ID)
		return nil, nil
	}

	return &domain.MarketPrice{
		Price:     decimal.NewFromInt(product.LoosePrice).Div(decimal.NewFromInt(100)),
		URL:       fmt.Sprintf("https://www.pricecharting.com/game/%s", product.ID),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (c *Client) lookup(ctx context.Context, card domain.Card) (*productResponse, error) {
	var product productResponse

	resp, err := c.client.NewRequest().
		SetQueryParams(map[string]string{
			"t": c.apiKey,
			"q": searchQuery(card),
		}).
		SetResult(&product).
		Get(ctx, "/api/product")
	if err != nil {
		return nil, apperror.External(apperror.CodeMarketAPIError, card.ID, err)
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return nil, apperror.External(apperror.CodeMarketAuthRejected, card.ID,
			fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.IsError() {
		return nil, apperror.External(apperror.CodeMarketAPIError, card.ID,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	// The API reports lookup misses inside a 200 response.
	if product.Status != "success" {
		return nil, nil
	}
	return &product, nil
}

// searchQuery builds the product search term. The API matches US set
// naming, so the card name leads and the collector number disambiguates.
func searchQuery(card domain.Card) string {
	return fmt.Sprintf("pokemon %s %s", card.Name, card.Number)
}
