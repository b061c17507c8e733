package services

import (
	"fmt"
	"math"
	"slices"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/geo"
)

// MatchingConfig holds the weights and thresholds of the agent scoring model.
// Weights are expected to sum to 1.0.
type MatchingConfig struct {
	ProximityWeight    float64
	RatingWeight       float64
	ReliabilityWeight  float64
	VehicleFitWeight   float64
	AvailabilityWeight float64

	MaxPickupDistanceKm float64
	PrepTimeMinutes     float64

	MinimumCost float64 // floor of the cost estimate, ₦
	PerKmRate   float64 // ₦ per kilometre

	InstantMinConfidence     float64
	InstantMaxArrivalMinutes float64
}

// DefaultMatchingConfig returns the reference scoring weights.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		ProximityWeight:    0.40,
		RatingWeight:       0.25,
		ReliabilityWeight:  0.20,
		VehicleFitWeight:   0.10,
		AvailabilityWeight: 0.05,

		MaxPickupDistanceKm: 50,
		PrepTimeMinutes:     5,

		MinimumCost: 15,
		PerKmRate:   2.5,

		InstantMinConfidence:     0.7,
		InstantMaxArrivalMinutes: 30,
	}
}

// FindBestMatches scores every eligible agent in the pool against the request
// and returns up to maxResults candidates, highest score first.
//
// Agents that are offline, already on a job, or further than the pickup
// distance cap are excluded. An empty pool, or a pool with no survivor after
// filtering, yields an empty slice: no match is a normal outcome the caller
// handles, not an error.
func FindBestMatches(
	cfg MatchingConfig,
	req domain.CustomerRequest,
	pool []domain.Agent,
	maxResults int,
	at time.Time,
) ([]domain.MatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("find best matches: %w", err)
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("find best matches: %w: maxResults must be > 0", domain.ErrInvalidInput)
	}
	for _, a := range pool {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("find best matches: %w", err)
		}
	}

	results := make([]domain.MatchResult, 0, len(pool))
	for _, agent := range pool {
		if !agent.Online || agent.CurrentJobID != "" {
			continue
		}

		pickupDistance := geo.DistanceKm(agent.Location, req.Pickup)
		if pickupDistance > cfg.MaxPickupDistanceKm {
			continue
		}

		capacityRatio := req.Items.Volume / agent.Vehicle.CapacityVolume
		score := cfg.ProximityWeight*proximityScore(pickupDistance, cfg.MaxPickupDistanceKm) +
			cfg.RatingWeight*(agent.Rating/5) +
			cfg.ReliabilityWeight*agent.ReliabilityScore +
			cfg.VehicleFitWeight*vehicleFitScore(capacityRatio) +
			cfg.AvailabilityWeight // online is a given post-filter

		traffic := geo.TrafficLevel(agent.Location, req.Pickup, at)
		travel := geo.TravelTimeMinutes(agent.Location, req.Pickup, traffic)
		arrival := math.Round(travel + agent.ResponseTimeMinutes*0.5 + cfg.PrepTimeMinutes)

		jobHistoryFactor := 0.8
		if agent.TotalJobs > 10 {
			jobHistoryFactor = 1.0
		}

		results = append(results, domain.MatchResult{
			Agent:                   agent,
			Score:                   score,
			EstimatedArrivalMinutes: arrival,
			EstimatedCost:           estimateCost(cfg, pickupDistance, agent.Vehicle.Type, req.Items),
			Confidence:              math.Min(0.95, score*jobHistoryFactor),
			Reasons:                 matchReasons(pickupDistance, capacityRatio, agent),
		})
	}

	// Sort by score descending; tie-breaker on agent ID keeps the ranking
	// deterministic for equally scored candidates.
	slices.SortFunc(results, func(a, b domain.MatchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Agent.ID < b.Agent.ID {
			return -1
		}
		if a.Agent.ID > b.Agent.ID {
			return 1
		}
		return 0
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// InstantMatch returns the top candidate only when it clears the confidence
// and arrival-time bars for an immediate dispatch. A nil result means the
// caller should fall back to FindBestMatches and offer choices.
func InstantMatch(
	cfg MatchingConfig,
	req domain.CustomerRequest,
	pool []domain.Agent,
	at time.Time,
) (*domain.MatchResult, error) {
	matches, err := FindBestMatches(cfg, req, pool, 1, at)
	if err != nil {
		return nil, fmt.Errorf("instant match: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	top := matches[0]
	if top.Confidence < cfg.InstantMinConfidence || top.EstimatedArrivalMinutes > cfg.InstantMaxArrivalMinutes {
		return nil, nil
	}
	return &top, nil
}

func proximityScore(distanceKm, maxKm float64) float64 {
	return math.Max(0, (maxKm-distanceKm)/maxKm)
}

// vehicleFitScore rewards a close-but-not-overfull capacity match.
// Oversized vehicles still complete the job, so over-capacity is penalized
// less than under-capacity.
func vehicleFitScore(capacityRatio float64) float64 {
	switch {
	case capacityRatio <= 0.5:
		return 0.6
	case capacityRatio <= 0.8:
		return 0.8
	case capacityRatio <= 1.0:
		return 1.0
	case capacityRatio <= 1.2:
		return 0.9
	default:
		return 0.7
	}
}

func vehicleTypeMultiplier(t domain.VehicleType) float64 {
	switch t {
	case domain.VehicleMedium:
		return 1.2
	case domain.VehicleLarge:
		return 1.4
	case domain.VehicleTruck:
		return 1.6
	default:
		return 1.0
	}
}

func estimateCost(cfg MatchingConfig, distanceKm float64, vt domain.VehicleType, items domain.Items) float64 {
	cost := math.Max(cfg.MinimumCost, cfg.PerKmRate*distanceKm)
	cost *= vehicleTypeMultiplier(vt)
	if items.Fragile {
		cost *= 1.2
	}
	if len(items.SpecialRequirements) > 0 {
		cost *= 1.1
	}
	if items.Volume > 50 {
		cost *= 1.3
	}
	return round2(cost)
}

// matchReasons assembles the explainability strings shown on match cards.
// Threshold checks only; reasons never feed back into the score.
func matchReasons(distanceKm, capacityRatio float64, agent domain.Agent) []string {
	reasons := make([]string, 0, 4)

	if distanceKm < 5 {
		reasons = append(reasons, "Very close location")
	} else if distanceKm < 15 {
		reasons = append(reasons, "Close to pickup")
	}

	if agent.Rating >= 4.5 {
		reasons = append(reasons, "Excellent rating")
	} else if agent.Rating >= 4.0 {
		reasons = append(reasons, "Highly rated")
	}

	if agent.ReliabilityScore >= 0.9 {
		reasons = append(reasons, "Very reliable")
	}

	if capacityRatio > 0.8 && capacityRatio <= 1.0 {
		reasons = append(reasons, "Right-sized vehicle")
	}

	if agent.TotalJobs > 100 {
		reasons = append(reasons, "Experienced mover")
	}

	return reasons
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
