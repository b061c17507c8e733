package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
)

// PricingConfig holds the fare bounds and multiplier tables of the dynamic
// pricing model. Multiple configurations (regions, currencies) can coexist;
// nothing here is ambient state.
type PricingConfig struct {
	MinimumFare float64 // ₦
	MaximumFare float64 // ₦
	PerKmRate   float64 // ₦ per kilometre

	// LocationMultipliers maps a location class (lower-case) to its fare
	// multiplier. Unknown classes price at 1.0.
	LocationMultipliers map[string]float64

	// FreshnessWindow is how old a market-conditions sample may get before
	// quote confidence starts dropping.
	FreshnessWindow time.Duration
}

// DefaultPricingConfig returns the reference fare table.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		MinimumFare: 15,
		MaximumFare: 500,
		PerKmRate:   2.5,
		LocationMultipliers: map[string]float64{
			"airport":     1.4,
			"city-center": 1.3,
			"suburb":      1.0,
			"industrial":  1.1,
		},
		FreshnessWindow: 10 * time.Minute,
	}
}

// PricingEngine computes dynamic quotes from trip factors and live market
// conditions. It holds no mutable state between calls; the market provider is
// the only collaborator.
type PricingEngine struct {
	cfg    PricingConfig
	market ports.MarketConditionsProvider
}

func NewPricingEngine(cfg PricingConfig, market ports.MarketConditionsProvider) *PricingEngine {
	return &PricingEngine{cfg: cfg, market: market}
}

// breakdownOrder fixes the factor order for products and explanations so that
// identical inputs always produce identical output text.
var breakdownOrder = []string{
	"timeOfDay",
	"demandSupply",
	"weather",
	"traffic",
	"itemComplexity",
	"urgency",
	"locationClass",
}

var surgeClauses = map[string]string{
	"timeOfDay":      "high-demand time of day",
	"demandSupply":   "demand well above available movers",
	"weather":        "adverse weather conditions",
	"traffic":        "heavy traffic on the route",
	"itemComplexity": "complex item handling",
	"urgency":        "urgent scheduling",
	"locationClass":  "premium pickup area",
}

// CalculateDynamicPrice quotes a trip. Market conditions come from the
// injected provider; a fetch failure propagates to the caller rather than
// being papered over with defaults.
func (e *PricingEngine) CalculateDynamicPrice(ctx context.Context, factors domain.PricingFactors) (domain.PricingResult, error) {
	if err := factors.Validate(); err != nil {
		return domain.PricingResult{}, fmt.Errorf("calculate dynamic price: %w", err)
	}

	cond, err := e.market.FetchMarketConditions(ctx, factors.Pickup)
	if err != nil {
		return domain.PricingResult{}, fmt.Errorf("calculate dynamic price: fetch market conditions: %w", err)
	}

	basePrice := math.Max(e.cfg.MinimumFare, factors.DistanceKm*e.cfg.PerKmRate)

	breakdown := map[string]float64{
		"timeOfDay":      timeOfDayMultiplier(factors.At),
		"demandSupply":   demandSupplyMultiplier(cond.DemandLevel, cond.SupplyLevel),
		"weather":        weatherMultiplier(cond.Weather),
		"traffic":        severityMultiplier(cond.TrafficLevel),
		"itemComplexity": severityMultiplier(factors.ItemComplexity),
		"urgency":        urgencyMultiplier(factors.Urgency),
		"locationClass":  e.locationMultiplier(factors.LocationClass),
	}

	product := 1.0
	for _, key := range breakdownOrder {
		product *= breakdown[key]
	}

	// Clamp to the fare bounds: discount multipliers may pull the product
	// below 1.0, but a quote never leaves [MinimumFare, MaximumFare].
	finalPrice := round2(basePrice * product)
	if finalPrice > e.cfg.MaximumFare {
		finalPrice = e.cfg.MaximumFare
	}
	if finalPrice < e.cfg.MinimumFare {
		finalPrice = e.cfg.MinimumFare
	}

	return domain.PricingResult{
		BasePrice:         round2(basePrice),
		DynamicMultiplier: product,
		FinalPrice:        finalPrice,
		Breakdown:         breakdown,
		Confidence:        e.quoteConfidence(cond, factors.At, product),
		PriceRange: domain.PriceRange{
			Min: round2(finalPrice * 0.8),
			Max: round2(finalPrice * 1.2),
		},
		Explanation: buildExplanation(breakdown),
		QuotedAt:    factors.At,
	}, nil
}

// timeOfDayMultiplier applies surge by clock time. Weekends win over every
// hourly band; the narrow rush band is checked before the wider peak band so
// rush pricing takes precedence where the two overlap.
func timeOfDayMultiplier(at time.Time) float64 {
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return 1.1
	}

	hour := at.Hour()
	switch {
	case hour == 8 || hour == 18:
		return 1.6 // rush
	case (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19):
		return 1.4 // peak
	case hour >= 23 || hour < 5:
		return 1.2 // late night
	default:
		return 1.0
	}
}

func demandSupplyMultiplier(demand, supply float64) float64 {
	ratio := demand / math.Max(supply, 0.1)
	switch {
	case ratio > 2.0:
		return 1.8
	case ratio > 1.5:
		return 1.5
	case ratio > 1.2:
		return 1.2
	case ratio < 0.5:
		return 0.8
	case ratio < 0.8:
		return 0.9
	default:
		return 1.0
	}
}

func weatherMultiplier(w domain.Weather) float64 {
	switch w {
	case domain.WeatherRainy:
		return 1.3
	case domain.WeatherStormy:
		return 1.5
	default:
		return 1.0
	}
}

// severityMultiplier buckets a [0, 1] severity signal; shared by traffic and
// item complexity, which use the same curve.
func severityMultiplier(level float64) float64 {
	switch {
	case level > 0.8:
		return 1.4
	case level > 0.6:
		return 1.2
	case level > 0.4:
		return 1.1
	default:
		return 1.0
	}
}

func urgencyMultiplier(u domain.Urgency) float64 {
	switch u {
	case domain.UrgencyHigh:
		return 1.5
	case domain.UrgencyMedium:
		return 1.2
	default:
		return 1.0
	}
}

func (e *PricingEngine) locationMultiplier(class string) float64 {
	if m, ok := e.cfg.LocationMultipliers[strings.ToLower(strings.TrimSpace(class))]; ok {
		return m
	}
	return 1.0
}

// quoteConfidence derives a [0.5, 0.95] trust score from market-data freshness
// and surge extremity. Deterministic given the inputs.
func (e *PricingEngine) quoteConfidence(cond ports.MarketConditions, at time.Time, multiplier float64) float64 {
	conf := 0.95

	if cond.ObservedAt.IsZero() {
		conf -= 0.15
	} else {
		age := at.Sub(cond.ObservedAt)
		if age < 0 {
			age = 0
		}
		window := e.cfg.FreshnessWindow
		if window <= 0 {
			window = 10 * time.Minute
		}
		conf -= math.Min(0.25, age.Seconds()/window.Seconds()*0.25)
	}

	// Extreme surge means the quote is more likely to move before booking.
	if excess := multiplier - 1.5; excess > 0 {
		conf -= math.Min(0.2, excess*0.1)
	}

	return math.Max(0.5, math.Min(0.95, conf))
}

// buildExplanation concatenates a clause for every multiplier exceeding 1.2,
// in fixed factor order.
func buildExplanation(breakdown map[string]float64) string {
	clauses := make([]string, 0, len(breakdownOrder))
	for _, key := range breakdownOrder {
		if breakdown[key] > 1.2 {
			clauses = append(clauses, surgeClauses[key])
		}
	}
	if len(clauses) == 0 {
		return "Standard pricing applies"
	}
	return "Price adjusted for " + strings.Join(clauses, ", ")
}
