// Package torecacamp scrapes the Toreca Camp shop. The shop renders its
// listing grid client-side, so extraction runs inside a headless browser
// instead of over raw HTML.
package torecacamp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apperror"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/ratelimit"
)

// ProviderConfig holds the scraper settings.
type ProviderConfig struct {
	BaseURL string

	// MinRequestInterval spaces out page loads. Defaults to two
	// seconds; headless page loads are heavy on the shop.
	MinRequestInterval time.Duration

	// PageTimeout bounds one full navigate-render-extract pass.
	PageTimeout time.Duration
}

// Provider drives a headless browser against the shop's search page.
type Provider struct {
	baseURL     string
	limiter     *ratelimit.Limiter
	pageTimeout time.Duration
	logger      logger.LoggerInterface
}

// NewProvider creates a Toreca Camp quote provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, apperror.Validation(apperror.CodeRequiredField, "torecacamp base url")
	}

	interval := cfg.MinRequestInterval
	if interval < 2*time.Second {
		interval = 2 * time.Second
	}
	timeout := cfg.PageTimeout
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &Provider{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter:     ratelimit.NewEvery(interval),
		pageTimeout: timeout,
		logger:      log,
	}, nil
}

// Source returns the shop identifier.
func (p *Provider) Source() string {
	return domain.SourceTorecaCamp
}

// newBrowserContext creates a fresh chromedp context (one browser, one
// tab per fetch).
func (p *Provider) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return browserCtx, cancel
}

// listingRow is the shape the in-page extraction script returns.
type listingRow struct {
	Condition string `json:"condition"`
	Price     int64  `json:"price"`
	SoldOut   bool   `json:"soldOut"`
	URL       string `json:"url"`
}

// extractScript walks the rendered listing grid. Price text looks like
// "1,480円"; the condition badge carries the grade; sold-out cards get a
// dedicated badge. Absence of the badge means the card is purchasable.
const extractScript = `
(function() {
	var rows = [];
	var items = document.querySelectorAll('.product-item, .item-card');
	for (var i = 0; i < items.length; i++) {
		var el = items[i];
		var priceEl = el.querySelector('.price, .product-price');
		var condEl = el.querySelector('.condition, .state-badge');
		var linkEl = el.querySelector('a[href]');
		if (!priceEl) continue;

		var digits = (priceEl.textContent || '').replace(/[^0-9]/g, '');
		rows.push({
			condition: condEl ? condEl.textContent.trim() : '',
			price: digits ? parseInt(digits, 10) : 0,
			soldOut: !!el.querySelector('.soldout, .sold-out-badge'),
			url: linkEl ? linkEl.href : ''
		});
	}
	return rows;
})()
`

// FetchQuotes loads the shop's search results in a headless tab and
// extracts every rendered listing.
func (p *Provider) FetchQuotes(ctx context.Context, card domain.Card) ([]domain.Quote, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.pageTimeout)
	defer cancel()

	browserCtx, cancelBrowser := p.newBrowserContext(fetchCtx)
	defer cancelBrowser()

	pageURL := fmt.Sprintf("%s/search?q=%s+%s", p.baseURL, card.Set, card.Number)

	var rows []listingRow
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(4*time.Second), // give JS time to render
		chromedp.Evaluate(extractScript, &rows),
	)
	if err != nil {
		return nil, apperror.External(apperror.CodeBrowserExecError, card.ID, err)
	}

	quotes := make([]domain.Quote, 0, len(rows))
	for _, row := range rows {
		if row.Price <= 0 {
			continue
		}
		quotes = append(quotes, domain.Quote{
			Source:    domain.SourceTorecaCamp,
			Condition: row.Condition,
			PriceJPY:  row.Price,
			InStock:   !row.SoldOut,
			URL:       row.URL,
		})
	}

	p.logger.Debug(ctx, "torecacamp listings extracted", "card", card.ID, "quotes", len(quotes))
	return quotes, nil
}
