package domain

import (
	"fmt"
	"time"
)

// Weather is the coarse weather class used by the pricing multipliers.
type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherRainy  Weather = "rainy"
	WeatherStormy Weather = "stormy"
)

// PricingFactors are the static trip attributes of one quote.
// Dynamic signals (demand, supply, weather, traffic) come from the market
// conditions provider at quote time.
type PricingFactors struct {
	DistanceKm     float64
	Pickup         GeoPoint
	At             time.Time
	Urgency        Urgency
	LocationClass  string  // e.g. "airport", "city-center"; unknown classes price at 1.0
	ItemComplexity float64 // 0..1
}

// Validate rejects factors the price computation cannot handle.
func (f PricingFactors) Validate() error {
	if f.DistanceKm < 0 {
		return fmt.Errorf("%w: distance must be >= 0", ErrInvalidInput)
	}
	if err := f.Pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	if f.At.IsZero() {
		return fmt.Errorf("%w: quote time must be set", ErrInvalidInput)
	}
	switch f.Urgency {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, f.Urgency)
	}
	if f.ItemComplexity < 0 || f.ItemComplexity > 1 {
		return fmt.Errorf("%w: item complexity %v out of range [0, 1]", ErrInvalidInput, f.ItemComplexity)
	}
	return nil
}

// PriceRange brackets a quote for display.
type PriceRange struct {
	Min float64
	Max float64
}

// PricingResult is one computed quote. Each re-quote replaces the previous
// result wholesale; results are never merged.
type PricingResult struct {
	BasePrice         float64
	DynamicMultiplier float64
	FinalPrice        float64 // ₦
	Breakdown         map[string]float64
	Confidence        float64 // 0..1
	PriceRange        PriceRange
	Explanation       string
	QuotedAt          time.Time
}
