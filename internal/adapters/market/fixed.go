package market

import (
	"context"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
)

// FixedMarketProvider returns the same conditions (or error) on every fetch.
// Tests use it to pin down the dynamic side of a quote.
type FixedMarketProvider struct {
	Conditions ports.MarketConditions
	Err        error
}

func (p *FixedMarketProvider) FetchMarketConditions(ctx context.Context, near domain.GeoPoint) (ports.MarketConditions, error) {
	if p.Err != nil {
		return ports.MarketConditions{}, p.Err
	}
	return p.Conditions, nil
}
