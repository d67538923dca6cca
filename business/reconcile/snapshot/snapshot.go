// Package snapshot defines the persisted dashboard document: the full
// opportunity set of one refresh cycle plus aggregate stats. The engine
// can be re-run from a document's cards alone; no other state is needed
// to reproduce any baseline or margin.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// Stats are the aggregate figures shown on the dashboard header.
type Stats struct {
	TotalCards          int             `json:"totalCards"`
	ViableOpportunities int             `json:"viableOpportunities"`
	AvgMarginPercent    decimal.Decimal `json:"avgMargin"`
}

// Document is one complete refresh result. Readers consume it
// atomically; a refresh replaces the whole document, never patches it.
type Document struct {
	BuildID       string               `json:"buildId"`
	BuiltAt       time.Time            `json:"builtAt"`
	Opportunities []domain.Opportunity `json:"opportunities"`
	Stats         Stats                `json:"stats"`
}

// Build assembles a document from a derived opportunity set. The average
// margin covers cards that have a displayed margin, rounded like every
// other percentage.
func Build(opps []domain.Opportunity) *Document {
	doc := &Document{
		BuildID:       uuid.NewString(),
		BuiltAt:       time.Now().UTC(),
		Opportunities: opps,
	}

	var sum decimal.Decimal
	counted := 0
	for i := range opps {
		if opps[i].IsViable() {
			doc.Stats.ViableOpportunities++
		}
		if r := opps[i].Result; r != nil {
			sum = sum.Add(r.ProfitPercent)
			counted++
		}
	}
	doc.Stats.TotalCards = len(opps)
	if counted > 0 {
		doc.Stats.AvgMarginPercent = sum.Div(decimal.NewFromInt(int64(counted))).Round(1)
	}
	return doc
}

// Cards returns the raw card collection, the shape the engine accepts as
// input.
func (d *Document) Cards() []domain.Card {
	cards := make([]domain.Card, len(d.Opportunities))
	for i := range d.Opportunities {
		cards[i] = d.Opportunities[i].Card
	}
	return cards
}

// WriteFile persists the document atomically: a temp file in the target
// directory, then a rename, so readers never observe a half-written
// snapshot.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// ReadFile loads a previously persisted document.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &doc, nil
}
