// Package console renders viable opportunities to a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	viableStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	potentialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// Reporter prints viable opportunities as they are found.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to stdout.
func NewReporter() *Reporter {
	return &Reporter{out: os.Stdout}
}

// NewReporterTo creates a reporter writing to the given writer.
func NewReporterTo(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// ReportViable renders one opportunity.
func (r *Reporter) ReportViable(ctx context.Context, opp domain.Opportunity) error {
	card := opp.Card
	result := opp.Result
	baseline := opp.Baseline

	header := fmt.Sprintf("%s  %s %s %s", card.Name, card.Set, card.Number, card.Rarity)
	tag := viableStyle.Render("VIABLE")
	if result.Potential {
		tag = potentialStyle.Render("POTENTIAL (out of stock)")
	}

	rule := ruleStyle.Render("────────────────────────────────────────")

	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "%s  %s\n", titleStyle.Render(header), tag)
	fmt.Fprintf(r.out, "%s ¥%d (%s, %s)\n",
		labelStyle.Render("Buy"),
		baseline.Quote.PriceJPY, baseline.Quote.Source, baseline.Grade)
	fmt.Fprintf(r.out, "%s $%s\n", labelStyle.Render("Market"), card.MarketUSD().StringFixed(2))
	fmt.Fprintf(r.out, "%s $%s (%s%%)\n",
		labelStyle.Render("Profit"),
		result.ProfitUSD.StringFixed(2), result.ProfitPercent.StringFixed(1))
	if baseline.Quote.URL != "" {
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Render("Listing"), baseline.Quote.URL)
	}
	return nil
}
