package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"moving-dispatch-service/internal/adapters/market"
	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
)

func calmConditions(observedAt time.Time) ports.MarketConditions {
	return ports.MarketConditions{
		DemandLevel:      1.0,
		SupplyLevel:      1.0,
		FuelCostPerLiter: 200,
		Weather:          domain.WeatherClear,
		TrafficLevel:     0.3,
		ObservedAt:       observedAt,
	}
}

func quoteFactors(at time.Time) domain.PricingFactors {
	return domain.PricingFactors{
		DistanceKm:     100,
		Pickup:         domain.GeoPoint{Lat: 6.5, Lng: 3.4},
		At:             at,
		Urgency:        domain.UrgencyLow,
		LocationClass:  "",
		ItemComplexity: 0,
	}
}

func TestCalculateDynamicPriceStandardConditions(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	result, err := engine.CalculateDynamicPrice(context.Background(), quoteFactors(midweekNoon))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.BasePrice != 250 { // 100km * 2.5
		t.Errorf("base price = %v, want 250", result.BasePrice)
	}
	if result.DynamicMultiplier != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", result.DynamicMultiplier)
	}
	if result.FinalPrice != 250 {
		t.Errorf("final price = %v, want 250", result.FinalPrice)
	}
	if result.Explanation != "Standard pricing applies" {
		t.Errorf("explanation = %q", result.Explanation)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95 for fresh calm conditions", result.Confidence)
	}
	if result.PriceRange.Min != 200 || result.PriceRange.Max != 300 {
		t.Errorf("price range = %+v, want [200, 300]", result.PriceRange)
	}
}

func TestCalculateDynamicPriceMultiplierComposition(t *testing.T) {
	cond := calmConditions(midweekNoon)
	cond.Weather = domain.WeatherRainy // 1.3
	cond.TrafficLevel = 0.7            // 1.2
	cond.DemandLevel = 1.4             // ratio 1.4 -> 1.2

	provider := &market.FixedMarketProvider{Conditions: cond}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	factors := quoteFactors(midweekNoon)
	factors.Urgency = domain.UrgencyMedium // 1.2
	factors.LocationClass = "city-center"  // 1.3
	factors.ItemComplexity = 0.5           // 1.1

	result, err := engine.CalculateDynamicPrice(context.Background(), factors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	product := 1.0 * 1.2 * 1.3 * 1.2 * 1.1 * 1.2 * 1.3
	if math.Abs(result.DynamicMultiplier-product) > 1e-9 {
		t.Errorf("multiplier = %v, want %v", result.DynamicMultiplier, product)
	}
	want := round2(250 * product)
	if want > 500 {
		want = 500
	}
	if result.FinalPrice != want {
		t.Errorf("final price = %v, want %v", result.FinalPrice, want)
	}

	for _, key := range breakdownOrder {
		if _, ok := result.Breakdown[key]; !ok {
			t.Errorf("breakdown missing factor %q", key)
		}
	}
}

func TestCalculateDynamicPriceBounds(t *testing.T) {
	t.Run("surge caps at maximum fare", func(t *testing.T) {
		cond := calmConditions(midweekNoon)
		cond.Weather = domain.WeatherStormy
		cond.TrafficLevel = 0.95
		cond.DemandLevel = 3.0
		cond.SupplyLevel = 0.4

		provider := &market.FixedMarketProvider{Conditions: cond}
		engine := NewPricingEngine(DefaultPricingConfig(), provider)

		factors := quoteFactors(time.Date(2026, 3, 4, 8, 30, 0, 0, time.UTC)) // rush
		factors.DistanceKm = 200
		factors.Urgency = domain.UrgencyHigh
		factors.ItemComplexity = 0.9
		factors.LocationClass = "airport"

		result, err := engine.CalculateDynamicPrice(context.Background(), factors)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FinalPrice != 500 {
			t.Errorf("final price = %v, want capped 500", result.FinalPrice)
		}
	})

	t.Run("discounts floor at minimum fare", func(t *testing.T) {
		cond := calmConditions(midweekNoon)
		cond.DemandLevel = 0.3 // ratio 0.3 -> 0.8

		provider := &market.FixedMarketProvider{Conditions: cond}
		engine := NewPricingEngine(DefaultPricingConfig(), provider)

		factors := quoteFactors(midweekNoon)
		factors.DistanceKm = 1 // base price hits the minimum fare

		result, err := engine.CalculateDynamicPrice(context.Background(), factors)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.FinalPrice != 15 {
			t.Errorf("final price = %v, want floored 15", result.FinalPrice)
		}
	})
}

func TestCalculateDynamicPriceRushHourSpike(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	rush := quoteFactors(time.Date(2026, 3, 4, 8, 30, 0, 0, time.UTC))
	midday := quoteFactors(time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC))

	rushQuote, err := engine.CalculateDynamicPrice(context.Background(), rush)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	middayQuote, err := engine.CalculateDynamicPrice(context.Background(), midday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rushQuote.FinalPrice <= middayQuote.FinalPrice {
		t.Errorf("rush quote %v not greater than midday quote %v", rushQuote.FinalPrice, middayQuote.FinalPrice)
	}
	if rushQuote.Breakdown["timeOfDay"] != 1.6 {
		t.Errorf("rush multiplier = %v, want 1.6", rushQuote.Breakdown["timeOfDay"])
	}
}

func TestTimeOfDayMultiplierBands(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"weekend beats rush", time.Date(2026, 3, 7, 8, 30, 0, 0, time.UTC), 1.1},
		{"rush morning", time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), 1.6},
		{"rush evening", time.Date(2026, 3, 4, 18, 45, 0, 0, time.UTC), 1.6},
		{"peak shoulder", time.Date(2026, 3, 4, 7, 15, 0, 0, time.UTC), 1.4},
		{"late night", time.Date(2026, 3, 4, 23, 30, 0, 0, time.UTC), 1.2},
		{"early morning", time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC), 1.2},
		{"plain midday", time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeOfDayMultiplier(tt.at); got != tt.want {
				t.Errorf("timeOfDayMultiplier(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestCalculateDynamicPriceExplanation(t *testing.T) {
	cond := calmConditions(midweekNoon)
	cond.Weather = domain.WeatherRainy // 1.3 > 1.2

	provider := &market.FixedMarketProvider{Conditions: cond}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	factors := quoteFactors(midweekNoon)
	factors.Urgency = domain.UrgencyHigh // 1.5 > 1.2

	result, err := engine.CalculateDynamicPrice(context.Background(), factors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Price adjusted for adverse weather conditions, urgent scheduling"
	if result.Explanation != want {
		t.Errorf("explanation = %q, want %q", result.Explanation, want)
	}
}

func TestCalculateDynamicPriceConfidenceDropsWithStaleData(t *testing.T) {
	stale := calmConditions(midweekNoon.Add(-20 * time.Minute))
	provider := &market.FixedMarketProvider{Conditions: stale}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	result, err := engine.CalculateDynamicPrice(context.Background(), quoteFactors(midweekNoon))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Confidence-0.7) > 1e-9 {
		t.Errorf("confidence = %v, want 0.7 for stale conditions", result.Confidence)
	}
}

func TestCalculateDynamicPricePropagatesFetchFailure(t *testing.T) {
	fetchErr := errors.New("telemetry feed down")
	provider := &market.FixedMarketProvider{Err: fetchErr}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	_, err := engine.CalculateDynamicPrice(context.Background(), quoteFactors(midweekNoon))
	if !errors.Is(err, fetchErr) {
		t.Fatalf("got %v, want wrapped fetch error", err)
	}
}

func TestCalculateDynamicPriceRejectsInvalidFactors(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	bad := quoteFactors(midweekNoon)
	bad.DistanceKm = -1
	if _, err := engine.CalculateDynamicPrice(context.Background(), bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("negative distance: got %v, want ErrInvalidInput", err)
	}

	noTime := quoteFactors(time.Time{})
	if _, err := engine.CalculateDynamicPrice(context.Background(), noTime); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("zero time: got %v, want ErrInvalidInput", err)
	}
}

func TestSubscribeToPriceUpdates(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	var mu sync.Mutex
	var delivered []domain.PricingResult

	cancel, err := engine.SubscribeToPriceUpdates(
		context.Background(),
		quoteFactors(midweekNoon),
		func(r domain.PricingResult, err error) {
			if err != nil {
				t.Errorf("unexpected quote error: %v", err)
				return
			}
			mu.Lock()
			delivered = append(delivered, r)
			mu.Unlock()
		},
		5*time.Millisecond,
	)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	cancel()
	cancel() // idempotent

	// Let a delivery that was already executing at cancel time finish, then
	// verify no new ones start.
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	count := len(delivered)
	mu.Unlock()
	if count < 2 {
		t.Fatalf("expected immediate quote plus ticks, got %d deliveries", count)
	}

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	after := len(delivered)
	mu.Unlock()
	if after != count {
		t.Errorf("callback fired after cancel: %d -> %d", count, after)
	}
}

func TestSubscribeToPriceUpdatesCancelFromCallback(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	var mu sync.Mutex
	deliveries := 0
	ready := make(chan struct{})
	unsubscribed := make(chan struct{})

	var cancel func()
	cancel, err := engine.SubscribeToPriceUpdates(
		context.Background(),
		quoteFactors(midweekNoon),
		func(domain.PricingResult, error) {
			// The immediate first quote can arrive before Subscribe returns;
			// wait until the cancel func has been assigned.
			<-ready
			mu.Lock()
			deliveries++
			mu.Unlock()
			// One-shot subscriber: take the first quote and unsubscribe.
			cancel()
			close(unsubscribed)
		},
		5*time.Millisecond,
	)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	close(ready)

	select {
	case <-unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("cancel from inside the callback did not return")
	}

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if deliveries != 1 {
		t.Fatalf("expected exactly one delivery for a one-shot subscriber, got %d", deliveries)
	}
}

func TestSubscribeToPriceUpdatesRejectsNilCallback(t *testing.T) {
	provider := &market.FixedMarketProvider{Conditions: calmConditions(midweekNoon)}
	engine := NewPricingEngine(DefaultPricingConfig(), provider)

	_, err := engine.SubscribeToPriceUpdates(context.Background(), quoteFactors(midweekNoon), nil, time.Second)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
