package domain

import "time"

// Waypoint is a timestamped visit in a planned route.
type Waypoint struct {
	Point     GeoPoint
	Address   string
	Kind      StopKind
	Arrival   time.Time
	Departure time.Time
}

// RouteOptimization holds the savings metrics attached to a single route.
// Savings are measured against a naive baseline (stops in input order);
// efficiency compares total distance against an independent lower bound.
type RouteOptimization struct {
	FuelSavingsPct float64
	TimeSavingsPct float64
	Efficiency     float64 // 0..1
}

// Route is the planned visiting order for one vehicle.
// Built fresh per optimization call and never mutated afterward.
type Route struct {
	Vehicle          Vehicle
	OrderedStops     []Location
	TotalDistanceKm  float64
	TotalTimeMinutes float64
	TotalFuelLiters  float64
	EstimatedCost    float64 // ₦
	Waypoints        []Waypoint
	Optimization     RouteOptimization
}

// TotalSavings aggregates savings across all routes of one optimization call.
type TotalSavings struct {
	FuelPct float64
	TimePct float64
	CostAbs float64 // ₦
}

// OptimizationResult is the full output of one OptimizeRoutes call.
type OptimizationResult struct {
	Routes          []Route
	TotalSavings    TotalSavings
	Recommendations []string
	Confidence      float64 // 0..1
}
