// Package market provides MarketConditionsProvider implementations.
//
// The simulated provider stands in for live demand/supply/weather telemetry
// until a real feed is wired; tests use the fixed provider.
package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
)

// SimulatedMarketProvider synthesizes plausible market conditions from a
// seeded random source. It is a development stand-in, not a telemetry client.
// Safe for concurrent use.
type SimulatedMarketProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewSimulatedMarketProvider(seed int64) *SimulatedMarketProvider {
	return &SimulatedMarketProvider{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (p *SimulatedMarketProvider) FetchMarketConditions(ctx context.Context, near domain.GeoPoint) (ports.MarketConditions, error) {
	if err := ctx.Err(); err != nil {
		return ports.MarketConditions{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	weather := domain.WeatherClear
	switch roll := p.rng.Float64(); {
	case roll > 0.9:
		weather = domain.WeatherStormy
	case roll > 0.7:
		weather = domain.WeatherRainy
	}

	return ports.MarketConditions{
		DemandLevel:      0.5 + p.rng.Float64()*1.5, // 0.5 .. 2.0
		SupplyLevel:      0.3 + p.rng.Float64()*1.2, // 0.3 .. 1.5
		FuelCostPerLiter: 180 + p.rng.Float64()*60,  // ₦180 .. ₦240
		Weather:          weather,
		TrafficLevel:     p.rng.Float64(),
		ObservedAt:       p.now(),
	}, nil
}
