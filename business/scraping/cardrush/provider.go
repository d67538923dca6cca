// Package cardrush scrapes listing pages from the Cardrush Pokemon shop.
package cardrush

import (
	"context"
	"fmt"
	"time"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apperror"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/httpclient"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/ratelimit"
)

// ProviderConfig holds the scraper settings.
type ProviderConfig struct {
	BaseURL string

	// MinRequestInterval spaces out requests to the shop. Defaults to
	// one second; the shop bans faster crawlers.
	MinRequestInterval time.Duration

	RequestTimeout time.Duration
}

// Provider fetches and parses Cardrush listing pages.
type Provider struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	baseURL string
	logger  logger.LoggerInterface
}

// NewProvider creates a Cardrush quote provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "cardrush base url")
	}

	interval := cfg.MinRequestInterval
	if interval < time.Second {
		interval = time.Second
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("cardrush"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{
			"User-Agent": "Mozilla/5.0 (compatible; price-watch)",
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client:  client,
		limiter: ratelimit.NewEvery(interval),
		baseURL: cfg.BaseURL,
		logger:  log,
	}, nil
}

// Source returns the shop identifier.
func (p *Provider) Source() string {
	return domain.SourceCardRush
}

// FetchQuotes searches the shop for the card and parses every listing
// row on the result page.
func (p *Provider) FetchQuotes(ctx context.Context, card domain.Card) ([]domain.Quote, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.client.NewRequest().
		SetQueryParam("keyword", searchKeyword(card)).
		Get(ctx, "/product-list")
	if err != nil {
		return nil, apperror.External(apperror.CodeShopFetchFailed, card.ID, err)
	}
	if resp.IsError() {
		return nil, apperror.External(apperror.CodeShopFetchFailed, card.ID,
			fmt.Errorf("cardrush returned status %d", resp.StatusCode))
	}

	quotes := parseListings(resp.String(), p.baseURL)
	p.logger.Debug(ctx, "cardrush listings parsed", "card", card.ID, "quotes", len(quotes))
	return quotes, nil
}

// searchKeyword builds the shop query. Set code plus collector number
// narrows results far better than the card name, which the shop lists
// in Japanese.
func searchKeyword(card domain.Card) string {
	return fmt.Sprintf("%s %s", card.Set, card.Number)
}
