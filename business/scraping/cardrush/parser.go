package cardrush

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// The shop renders one <li class="item_box"> per listing. Inside it the
// product name carries the grade in brackets, the price ends in 円 and
// sold-out listings carry a soldout class or marker text. Markup drifts,
// so extraction is regexp-per-field over the block, not a DOM walk.
var (
	itemBlockRe = regexp.MustCompile(`(?s)<li[^>]*class="[^"]*item_box[^"]*"[^>]*>(.*?)</li>`)
	linkRe      = regexp.MustCompile(`<a[^>]+href="([^"]+)"`)
	nameRe      = regexp.MustCompile(`(?s)<p[^>]*class="[^"]*item_name[^"]*"[^>]*>(.*?)</p>`)
	priceRe     = regexp.MustCompile(`([0-9][0-9,]*)円`)
	conditionRe = regexp.MustCompile(`[【\[](?:状態)?([^】\]]+)[】\]]`)
	soldOutRe   = regexp.MustCompile(`soldout|SOLD\s*OUT|売切|品切`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

// parseListings extracts quotes from a listing page. Blocks missing a
// price or condition are skipped; stock defaults to available unless the
// block carries an explicit sold-out marker.
func parseListings(html, baseURL string) []domain.Quote {
	var quotes []domain.Quote

	for _, m := range itemBlockRe.FindAllStringSubmatch(html, -1) {
		block := m[1]

		price := parsePrice(block)
		if price <= 0 {
			continue
		}

		condition := parseCondition(block)
		if condition == "" {
			continue
		}

		quotes = append(quotes, domain.Quote{
			Source:    domain.SourceCardRush,
			Condition: condition,
			PriceJPY:  price,
			InStock:   !soldOutRe.MatchString(block),
			URL:       parseURL(block, baseURL),
		})
	}
	return quotes
}

func parsePrice(block string) int64 {
	m := priceRe.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseCondition(block string) string {
	name := block
	if m := nameRe.FindStringSubmatch(block); m != nil {
		name = m[1]
	}
	name = tagRe.ReplaceAllString(name, "")

	m := conditionRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func parseURL(block, baseURL string) string {
	m := linkRe.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	href := m[1]
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
