// Package history persists observed prices to Postgres so margin trends
// survive restarts.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apperror"
)

const createTable = `
CREATE TABLE IF NOT EXISTS price_history (
	id          BIGSERIAL PRIMARY KEY,
	observed_at TIMESTAMPTZ NOT NULL,
	card_id     TEXT        NOT NULL,
	source      TEXT,
	grade       TEXT,
	price_jpy   BIGINT,
	in_stock    BOOLEAN,
	market_usd  NUMERIC(12, 2),
	profit_usd  NUMERIC(12, 2),
	profit_pct  NUMERIC(8, 1)
);
CREATE INDEX IF NOT EXISTS price_history_card_time_idx
	ON price_history (card_id, observed_at);
`

const insertRow = `
INSERT INTO price_history
	(observed_at, card_id, source, grade, price_jpy, in_stock, market_usd, profit_usd, profit_pct)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Store appends one row per card per refresh cycle.
type Store struct {
	db *sql.DB
}

// NewStore opens the database, verifies connectivity and ensures the
// schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperror.External(apperror.CodeHistoryConnFailed, "open", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, apperror.External(apperror.CodeHistoryConnFailed, "ping", err)
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, apperror.External(apperror.CodeHistoryConnFailed, "migrate", err)
	}

	return &Store{db: db}, nil
}

// AppendPrices writes the cycle's observations in one transaction.
func (s *Store) AppendPrices(ctx context.Context, builtAt time.Time, opps []domain.Opportunity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.External(apperror.CodeHistoryWriteFailed, "begin", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return apperror.External(apperror.CodeHistoryWriteFailed, "prepare", err)
	}
	defer stmt.Close()

	for i := range opps {
		if err := appendOne(ctx, stmt, builtAt, &opps[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.External(apperror.CodeHistoryWriteFailed, "commit", err)
	}
	return nil
}

func appendOne(ctx context.Context, stmt *sql.Stmt, builtAt time.Time, opp *domain.Opportunity) error {
	var (
		source, grade sql.NullString
		priceJPY      sql.NullInt64
		inStock       sql.NullBool
		marketUSD     sql.NullString
		profitUSD     sql.NullString
		profitPct     sql.NullString
	)

	if b := opp.Baseline; b.Resolved() {
		source = sql.NullString{String: b.Quote.Source, Valid: true}
		grade = sql.NullString{String: string(b.Grade), Valid: true}
		priceJPY = sql.NullInt64{Int64: b.Quote.PriceJPY, Valid: true}
		inStock = sql.NullBool{Bool: b.InStock, Valid: true}
	}
	if opp.Card.HasMarketPrice() {
		marketUSD = sql.NullString{String: opp.Card.MarketUSD().StringFixed(2), Valid: true}
	}
	if r := opp.Result; r != nil {
		profitUSD = sql.NullString{String: r.ProfitUSD.StringFixed(2), Valid: true}
		profitPct = sql.NullString{String: r.ProfitPercent.StringFixed(1), Valid: true}
	}

	_, err := stmt.ExecContext(ctx, builtAt, opp.Card.ID,
		source, grade, priceJPY, inStock, marketUSD, profitUSD, profitPct)
	if err != nil {
		return apperror.External(apperror.CodeHistoryWriteFailed, opp.Card.ID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
