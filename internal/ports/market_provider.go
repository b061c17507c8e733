package ports

import (
	"context"
	"time"

	"moving-dispatch-service/internal/domain"
)

// MarketConditions is one sample of the live signals dynamic pricing reacts to.
type MarketConditions struct {
	DemandLevel      float64
	SupplyLevel      float64
	FuelCostPerLiter float64
	Weather          domain.Weather
	TrafficLevel     float64 // 0..1
	ObservedAt       time.Time
}

// Contract for fetching market conditions near a point.
// Production wires live telemetry; tests supply fixed conditions. A fetch
// failure must surface to the caller, never be silently defaulted.
type MarketConditionsProvider interface {
	FetchMarketConditions(ctx context.Context, near domain.GeoPoint) (MarketConditions, error)
}
