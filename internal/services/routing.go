package services

import (
	"fmt"
	"math"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/geo"
	"moving-dispatch-service/internal/ports"
)

// RoutingConfig holds the cost model and capacity heuristics of the route
// optimizer.
type RoutingConfig struct {
	FuelCostPerLiter  float64 // ₦
	DriverCostPerHour float64 // ₦
	// ServiceVolumeFactor converts a stop's service minutes into the volume
	// proxy used for the vehicle capacity check.
	ServiceVolumeFactor float64
}

// DefaultRoutingConfig returns the reference cost constants.
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		FuelCostPerLiter:    200,
		DriverCostPerHour:   500,
		ServiceVolumeFactor: 0.1,
	}
}

// OptimizeRoutes partitions stops into priority groups (1..5, processed in
// ascending order), assigns each group the most fuel-efficient vehicle with
// enough capacity, and builds a nearest-neighbor route per group with pickups
// visited before deliveries.
//
// A group with no suitable vehicle is skipped with a human-readable
// recommendation; the call still succeeds. Empty stops yield an empty result
// with confidence 0. Savings are measured against the baseline router
// (input-order route when nil).
func OptimizeRoutes(
	cfg RoutingConfig,
	vehicles []domain.Vehicle,
	stops []domain.Location,
	startTime time.Time,
	baseline ports.BaselineRouter,
) (domain.OptimizationResult, error) {
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return domain.OptimizationResult{}, fmt.Errorf("optimize routes: %w", err)
		}
	}
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return domain.OptimizationResult{}, fmt.Errorf("optimize routes: %w", err)
		}
	}
	if startTime.IsZero() {
		return domain.OptimizationResult{}, fmt.Errorf("optimize routes: %w: start time must be set", domain.ErrInvalidInput)
	}
	if baseline == nil {
		baseline = InputOrderBaseline{}
	}

	result := domain.OptimizationResult{
		Routes:          []domain.Route{},
		Recommendations: []string{},
	}
	if len(stops) == 0 {
		return result, nil
	}

	groups := make(map[int][]domain.Location)
	for _, s := range stops {
		groups[s.Priority] = append(groups[s.Priority], s)
	}

	var costSavings float64

	for priority := 1; priority <= 5; priority++ {
		group := groups[priority]
		if len(group) == 0 {
			continue
		}

		volumeProxy := 0.0
		for _, s := range group {
			volumeProxy += s.EstimatedServiceMinutes * cfg.ServiceVolumeFactor
		}

		vehicle, ok := bestVehicle(vehicles, volumeProxy)
		if !ok {
			result.Recommendations = append(result.Recommendations, fmt.Sprintf(
				"no vehicle with capacity %.1f available for %d priority-%d stops; add a larger vehicle or split the group",
				volumeProxy, len(group), priority,
			))
			continue
		}

		route, baselineCost, err := buildRoute(cfg, vehicle, group, startTime, baseline)
		if err != nil {
			return domain.OptimizationResult{}, fmt.Errorf("optimize routes: priority %d: %w", priority, err)
		}

		costSavings += math.Max(0, baselineCost-route.EstimatedCost)
		result.Routes = append(result.Routes, route)
	}

	if len(result.Routes) == 0 {
		return result, nil
	}

	var fuelSum, timeSum, effSum float64
	for _, r := range result.Routes {
		fuelSum += r.Optimization.FuelSavingsPct
		timeSum += r.Optimization.TimeSavingsPct
		effSum += r.Optimization.Efficiency
	}
	n := float64(len(result.Routes))
	avgFuel := fuelSum / n
	avgEff := effSum / n

	result.TotalSavings = domain.TotalSavings{
		FuelPct: round2(avgFuel),
		TimePct: round2(timeSum / n),
		CostAbs: round2(costSavings),
	}

	efficiencyScore := math.Min(1, avgEff*1.2)
	savingsScore := math.Min(1, avgFuel/30)
	result.Confidence = (efficiencyScore + savingsScore) / 2

	return result, nil
}

// bestVehicle picks the most fuel-efficient vehicle whose capacity covers the
// group's volume proxy. Ties resolve to the lexicographically smaller ID so
// repeated calls stay deterministic.
func bestVehicle(vehicles []domain.Vehicle, volumeProxy float64) (domain.Vehicle, bool) {
	var best domain.Vehicle
	found := false
	for _, v := range vehicles {
		if v.CapacityVolume < volumeProxy {
			continue
		}
		if !found ||
			v.FuelEfficiencyKmPerLiter > best.FuelEfficiencyKmPerLiter ||
			(v.FuelEfficiencyKmPerLiter == best.FuelEfficiencyKmPerLiter && v.ID < best.ID) {
			best = v
			found = true
		}
	}
	return best, found
}

func buildRoute(
	cfg RoutingConfig,
	vehicle domain.Vehicle,
	group []domain.Location,
	startTime time.Time,
	baseline ports.BaselineRouter,
) (domain.Route, float64, error) {
	ordered, distanceKm, travelMinutes := nearestNeighborOrder(vehicle.CurrentLocation, group, startTime)

	serviceMinutes := 0.0
	for _, s := range ordered {
		serviceMinutes += s.EstimatedServiceMinutes
	}

	totalTime := travelMinutes + serviceMinutes
	fuelLiters := distanceKm / vehicle.FuelEfficiencyKmPerLiter
	cost := round2(fuelLiters*cfg.FuelCostPerLiter + totalTime/60*cfg.DriverCostPerHour)

	bm, err := baseline.Baseline(vehicle, group, startTime)
	if err != nil {
		return domain.Route{}, 0, fmt.Errorf("baseline route: %w", err)
	}

	var fuelSavings, timeSavings float64
	if bm.DistanceKm > 0 {
		fuelSavings = math.Max(0, (bm.DistanceKm-distanceKm)/bm.DistanceKm*100)
	}
	if bm.TimeMinutes > 0 {
		timeSavings = math.Max(0, (bm.TimeMinutes-totalTime)/bm.TimeMinutes*100)
	}
	baselineFuel := bm.DistanceKm / vehicle.FuelEfficiencyKmPerLiter
	baselineCost := baselineFuel*cfg.FuelCostPerLiter + bm.TimeMinutes/60*cfg.DriverCostPerHour

	route := domain.Route{
		Vehicle:          vehicle,
		OrderedStops:     ordered,
		TotalDistanceKm:  round2(distanceKm),
		TotalTimeMinutes: totalTime,
		TotalFuelLiters:  round2(fuelLiters),
		EstimatedCost:    cost,
		Waypoints:        buildWaypoints(vehicle.CurrentLocation, ordered, startTime),
		Optimization: domain.RouteOptimization{
			FuelSavingsPct: round2(fuelSavings),
			TimeSavingsPct: round2(timeSavings),
			Efficiency:     routeEfficiency(vehicle.CurrentLocation, ordered, distanceKm),
		},
	}
	return route, baselineCost, nil
}

// buildWaypoints walks the ordered stop list again, accumulating arrival =
// previous departure + travel time and departure = arrival + service time.
func buildWaypoints(start domain.GeoPoint, ordered []domain.Location, startTime time.Time) []domain.Waypoint {
	waypoints := make([]domain.Waypoint, 0, len(ordered))
	pos := start
	cursor := startTime

	for _, s := range ordered {
		traffic := geo.TrafficLevel(pos, s.Point, startTime)
		travel := geo.TravelTimeMinutes(pos, s.Point, traffic)

		arrival := cursor.Add(time.Duration(travel * float64(time.Minute)))
		departure := arrival.Add(time.Duration(s.EstimatedServiceMinutes * float64(time.Minute)))

		waypoints = append(waypoints, domain.Waypoint{
			Point:     s.Point,
			Address:   s.Address,
			Kind:      s.Kind,
			Arrival:   arrival,
			Departure: departure,
		})

		pos = s.Point
		cursor = departure
	}
	return waypoints
}

// routeEfficiency compares total distance against an independent lower bound:
// the largest pairwise great-circle distance among the start position and all
// stops. Any tour must cover at least that leg, so the ratio lands in (0, 1].
func routeEfficiency(start domain.GeoPoint, ordered []domain.Location, totalDistanceKm float64) float64 {
	if totalDistanceKm == 0 {
		return 1
	}

	points := make([]domain.GeoPoint, 0, len(ordered)+1)
	points = append(points, start)
	for _, s := range ordered {
		points = append(points, s.Point)
	}

	lowerBound := 0.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := geo.DistanceKm(points[i], points[j]); d > lowerBound {
				lowerBound = d
			}
		}
	}

	return math.Min(1, lowerBound/totalDistanceKm)
}
