package ports

import (
	"context"
	"time"
)

// QuoteRecord is a persisted audit entry for one issued quote.
// Persistence is a collaborator concern; the pricing engine itself never
// touches storage.
type QuoteRecord struct {
	ID                string
	DistanceKm        float64
	BasePrice         float64
	DynamicMultiplier float64
	FinalPrice        float64
	Confidence        float64
	Explanation       string
	QuotedAt          time.Time // effective time the quote was priced for
	CreatedAt         time.Time // server time the record was written
}

// Port: a boundary for persisting issued quotes for audit and billing.
type QuoteRepository interface {
	SaveQuote(ctx context.Context, rec QuoteRecord) error
	ListRecentQuotes(ctx context.Context, limit int) ([]QuoteRecord, error)
}
