package market

import (
	"context"
	"testing"

	"moving-dispatch-service/internal/domain"
)

func TestSimulatedProviderRanges(t *testing.T) {
	p := NewSimulatedMarketProvider(42)
	near := domain.GeoPoint{Lat: 6.5, Lng: 3.4}

	for i := 0; i < 100; i++ {
		cond, err := p.FetchMarketConditions(context.Background(), near)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cond.DemandLevel < 0.5 || cond.DemandLevel > 2.0 {
			t.Errorf("demand %v out of range [0.5, 2.0]", cond.DemandLevel)
		}
		if cond.SupplyLevel < 0.3 || cond.SupplyLevel > 1.5 {
			t.Errorf("supply %v out of range [0.3, 1.5]", cond.SupplyLevel)
		}
		if cond.FuelCostPerLiter < 180 || cond.FuelCostPerLiter > 240 {
			t.Errorf("fuel cost %v out of range [180, 240]", cond.FuelCostPerLiter)
		}
		if cond.TrafficLevel < 0 || cond.TrafficLevel > 1 {
			t.Errorf("traffic %v out of range [0, 1]", cond.TrafficLevel)
		}
		switch cond.Weather {
		case domain.WeatherClear, domain.WeatherRainy, domain.WeatherStormy:
		default:
			t.Errorf("unexpected weather %q", cond.Weather)
		}
		if cond.ObservedAt.IsZero() {
			t.Error("ObservedAt must be set")
		}
	}
}

func TestSimulatedProviderCancelledContext(t *testing.T) {
	p := NewSimulatedMarketProvider(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchMarketConditions(ctx, domain.GeoPoint{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
