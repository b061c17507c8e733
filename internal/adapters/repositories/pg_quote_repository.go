package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"moving-dispatch-service/internal/platform/obs"
	"moving-dispatch-service/internal/ports"
)

// Postgres-backed implementation of the QuoteRepository port.
// The engines never touch this directly; the HTTP layer records issued quotes
// for audit and billing reconciliation.
type PgQuoteRepository struct{ DB *sql.DB }

func NewPgQuoteRepository(db *sql.DB) *PgQuoteRepository {
	return &PgQuoteRepository{DB: db}
}

// SaveQuote persists one audit record. A missing ID gets a fresh UUID.
func (r *PgQuoteRepository) SaveQuote(ctx context.Context, rec ports.QuoteRecord) (err error) {
	defer obs.Time(ctx, "quotes.Save")(&err)

	if r.DB == nil {
		return errors.New("quote repository: db is nil")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		return errors.New("save quote: created_at must be set")
	}

	q := `
	INSERT INTO quotes (
		id,
		distance_km,
		base_price,
		dynamic_multiplier,
		final_price,
		confidence,
		explanation,
		quoted_at,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := r.DB.ExecContext(ctx, q,
		rec.ID,
		rec.DistanceKm,
		rec.BasePrice,
		rec.DynamicMultiplier,
		rec.FinalPrice,
		rec.Confidence,
		rec.Explanation,
		rec.QuotedAt,
		rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("save quote %s: %w", rec.ID, err)
	}
	return nil
}

// ListRecentQuotes returns the newest audit records, newest first.
func (r *PgQuoteRepository) ListRecentQuotes(ctx context.Context, limit int) (_ []ports.QuoteRecord, err error) {
	defer obs.Time(ctx, "quotes.ListRecent")(&err)

	if r.DB == nil {
		return nil, errors.New("quote repository: db is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	q := `
	SELECT
		id,
		distance_km,
		base_price,
		dynamic_multiplier,
		final_price,
		confidence,
		explanation,
		quoted_at,
		created_at
	FROM quotes
	ORDER BY created_at DESC
	LIMIT $1;
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent quotes: query quotes table: %w", err)
	}
	defer rows.Close()

	records := make([]ports.QuoteRecord, 0, limit)
	for rows.Next() {
		var rec ports.QuoteRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.DistanceKm,
			&rec.BasePrice,
			&rec.DynamicMultiplier,
			&rec.FinalPrice,
			&rec.Confidence,
			&rec.Explanation,
			&rec.QuotedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list recent quotes: scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent quotes: row iteration: %w", err)
	}
	return records, nil
}
