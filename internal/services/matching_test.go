package services

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"moving-dispatch-service/internal/domain"
)

// Wednesday 13:00 UTC: medium traffic, no surge bands.
var midweekNoon = time.Date(2026, 3, 4, 13, 0, 0, 0, time.UTC)

var testPickup = domain.GeoPoint{Lat: 6.5, Lng: 3.4}

// pointNorthKm returns a point approximately km kilometres north of p.
func pointNorthKm(p domain.GeoPoint, km float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat + km/(6371.0*math.Pi/180), Lng: p.Lng}
}

func matchRequest() domain.CustomerRequest {
	return domain.CustomerRequest{
		Pickup:          testPickup,
		PickupAddress:   "12 Marina Rd, Lagos Island",
		Delivery:        pointNorthKm(testPickup, 10),
		DeliveryAddress: "4 Allen Ave, Ikeja",
		Items:           domain.Items{Count: 8, Volume: 20, WeightKg: 150},
		PreferredTime:   midweekNoon,
		Budget:          100,
		Urgency:         domain.UrgencyLow,
	}
}

func availableAgent(id string, distanceKm float64) domain.Agent {
	return domain.Agent{
		ID:       id,
		Name:     "Mover " + id,
		Location: pointNorthKm(testPickup, distanceKm),
		Rating:   4.0,
		Vehicle: domain.AgentVehicle{
			Type:           domain.VehicleMedium,
			CapacityVolume: 25,
		},
		TotalJobs:           40,
		Online:              true,
		ResponseTimeMinutes: 4,
		ReliabilityScore:    0.85,
	}
}

func TestFindBestMatchesNearbyExcellentDriver(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	agent := availableAgent("star", 2)
	agent.Rating = 4.9
	agent.ReliabilityScore = 0.98
	agent.Vehicle.CapacityVolume = 20 // exact capacity: ratio 1.0

	matches, err := FindBestMatches(cfg, req, []domain.Agent{agent}, 5, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	m := matches[0]
	if m.Score <= 0.85 {
		t.Errorf("score = %v, want > 0.85", m.Score)
	}
	// 0.4*0.96 + 0.25*0.98 + 0.2*0.98 + 0.1*1.0 + 0.05
	if math.Abs(m.Score-0.975) > 0.001 {
		t.Errorf("score = %v, want ~0.975", m.Score)
	}
	if m.Confidence != 0.95 {
		t.Errorf("confidence = %v, want capped 0.95", m.Confidence)
	}

	// 2km at 24km/h (traffic 0.5) = 5min travel + 4*0.5 response + 5 prep.
	if m.EstimatedArrivalMinutes != 12 {
		t.Errorf("arrival = %v, want 12", m.EstimatedArrivalMinutes)
	}

	if !slices.Contains(m.Reasons, "Very close location") {
		t.Errorf("reasons missing %q: %v", "Very close location", m.Reasons)
	}
	if !slices.Contains(m.Reasons, "Excellent rating") {
		t.Errorf("reasons missing %q: %v", "Excellent rating", m.Reasons)
	}
}

func TestFindBestMatchesFiltersIneligibleAgents(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	offline := availableAgent("offline", 3)
	offline.Online = false

	busy := availableAgent("busy", 3)
	busy.CurrentJobID = "job-77"

	far := availableAgent("far", 60)

	eligible := availableAgent("ok", 5)

	matches, err := FindBestMatches(cfg, req, []domain.Agent{offline, busy, far, eligible}, 10, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Agent.ID != "ok" {
		t.Errorf("expected agent ok, got %q", matches[0].Agent.ID)
	}
}

func TestFindBestMatchesEmptyPool(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	matches, err := FindBestMatches(cfg, req, []domain.Agent{}, 5, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}

	instant, err := InstantMatch(cfg, req, nil, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instant != nil {
		t.Fatalf("expected nil instant match, got %+v", instant)
	}
}

func TestFindBestMatchesMonotonicity(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	better := availableAgent("better", 3)
	better.Rating = 4.8
	better.ReliabilityScore = 0.95

	worse := availableAgent("worse", 12)
	worse.Rating = 3.9
	worse.ReliabilityScore = 0.70

	matches, err := FindBestMatches(cfg, req, []domain.Agent{worse, better}, 5, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Agent.ID != "better" {
		t.Errorf("dominating agent should rank first, got %q", matches[0].Agent.ID)
	}
	if matches[0].Score < matches[1].Score {
		t.Errorf("dominating agent scored lower: %v < %v", matches[0].Score, matches[1].Score)
	}
}

func TestFindBestMatchesOversizedLoadDegradesFit(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest() // volume 20

	exact := availableAgent("exact", 5)
	exact.Vehicle.CapacityVolume = 20 // ratio 1.0 -> fit 1.0

	overloaded := availableAgent("overloaded", 5)
	overloaded.Vehicle.CapacityVolume = 20.0 / 1.5 // ratio 1.5 -> fit 0.7

	matches, err := FindBestMatches(cfg, req, []domain.Agent{overloaded, exact}, 5, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Agent.ID != "exact" {
		t.Errorf("exact-fit agent should rank first, got %q", matches[0].Agent.ID)
	}

	diff := matches[0].Score - matches[1].Score
	if math.Abs(diff-0.03) > 0.0001 { // 0.1 weight * (1.0 - 0.7)
		t.Errorf("fit score gap = %v, want 0.03", diff)
	}
}

func TestFindBestMatchesCostEstimate(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()
	req.Items.Fragile = true

	agent := availableAgent("a", 2) // short trip: minimum fare applies

	matches, err := FindBestMatches(cfg, req, []domain.Agent{agent}, 1, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// max(15, 2.5*2) * 1.2 (medium) * 1.2 (fragile)
	want := 21.6
	if got := matches[0].EstimatedCost; math.Abs(got-want) > 0.001 {
		t.Errorf("cost = %v, want %v", got, want)
	}
}

func TestFindBestMatchesRejectsInvalidInput(t *testing.T) {
	cfg := DefaultMatchingConfig()

	badVolume := matchRequest()
	badVolume.Items.Volume = 0
	if _, err := FindBestMatches(cfg, badVolume, nil, 5, midweekNoon); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("zero volume: got %v, want ErrInvalidInput", err)
	}

	badCoords := matchRequest()
	badCoords.Pickup.Lat = math.NaN()
	if _, err := FindBestMatches(cfg, badCoords, nil, 5, midweekNoon); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("NaN pickup: got %v, want ErrInvalidInput", err)
	}

	if _, err := FindBestMatches(cfg, matchRequest(), nil, 0, midweekNoon); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("maxResults 0: got %v, want ErrInvalidInput", err)
	}

	badAgent := availableAgent("bad", 3)
	badAgent.ReliabilityScore = 1.5
	if _, err := FindBestMatches(cfg, matchRequest(), []domain.Agent{badAgent}, 5, midweekNoon); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad reliability: got %v, want ErrInvalidInput", err)
	}
}

func TestInstantMatchAcceptsQualifiedTopCandidate(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	agent := availableAgent("star", 2)
	agent.Rating = 4.9
	agent.ReliabilityScore = 0.98
	agent.Vehicle.CapacityVolume = 20

	instant, err := InstantMatch(cfg, req, []domain.Agent{agent}, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instant == nil {
		t.Fatal("expected instant match, got nil")
	}
	if instant.Agent.ID != "star" {
		t.Errorf("expected agent star, got %q", instant.Agent.ID)
	}
}

func TestInstantMatchRejectsLowConfidence(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	// Close enough to arrive quickly, but a weak candidate overall.
	weak := availableAgent("weak", 2)
	weak.Rating = 1.0
	weak.ReliabilityScore = 0.2
	weak.TotalJobs = 5 // history factor 0.8 pushes confidence further down
	weak.Vehicle.CapacityVolume = 50

	instant, err := InstantMatch(cfg, req, []domain.Agent{weak}, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instant != nil {
		t.Fatalf("expected nil for low-confidence candidate, got confidence %v", instant.Confidence)
	}
}

func TestInstantMatchRejectsSlowArrival(t *testing.T) {
	cfg := DefaultMatchingConfig()
	req := matchRequest()

	// Strong candidate, but 20km out: ~50min travel blows the arrival bound.
	distant := availableAgent("distant", 20)
	distant.Rating = 5.0
	distant.ReliabilityScore = 1.0
	distant.Vehicle.CapacityVolume = 20
	distant.ResponseTimeMinutes = 10

	instant, err := InstantMatch(cfg, req, []domain.Agent{distant}, midweekNoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instant != nil {
		t.Fatalf("expected nil for slow arrival, got %v minutes", instant.EstimatedArrivalMinutes)
	}
}
