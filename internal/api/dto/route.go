package dto

import "time"

type VehicleRequest struct {
	ID                       string  `json:"id"`
	Type                     string  `json:"type"`
	CapacityVolume           float64 `json:"capacity_volume"`
	FuelEfficiencyKmPerLiter float64 `json:"fuel_efficiency_km_per_liter"`
	CurrentLocation          Point   `json:"current_location"`
	MaxRangeKm               float64 `json:"max_range_km"`
}

type StopRequest struct {
	ID                      string     `json:"id"`
	Point                   Point      `json:"point"`
	Address                 string     `json:"address"`
	Kind                    string     `json:"kind"`
	Priority                int        `json:"priority"`
	WindowStart             *time.Time `json:"window_start"`
	WindowEnd               *time.Time `json:"window_end"`
	EstimatedServiceMinutes float64    `json:"estimated_service_minutes"`
}

type OptimizeRoutesRequest struct {
	Vehicles  []VehicleRequest `json:"vehicles"`
	Stops     []StopRequest    `json:"stops"`
	StartTime *time.Time       `json:"start_time"`
}

type WaypointResponse struct {
	Point     Point     `json:"point"`
	Address   string    `json:"address"`
	Kind      string    `json:"kind"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
}

type RouteResponse struct {
	VehicleID        string             `json:"vehicle_id"`
	OrderedStopIDs   []string           `json:"ordered_stop_ids"`
	TotalDistanceKm  float64            `json:"total_distance_km"`
	TotalTimeMinutes float64            `json:"total_time_minutes"`
	TotalFuelLiters  float64            `json:"total_fuel_liters"`
	EstimatedCostNGN float64            `json:"estimated_cost_ngn"`
	Waypoints        []WaypointResponse `json:"waypoints"`
	FuelSavingsPct   float64            `json:"fuel_savings_pct"`
	TimeSavingsPct   float64            `json:"time_savings_pct"`
	Efficiency       float64            `json:"efficiency"`
}

type OptimizeRoutesResponse struct {
	Routes              []RouteResponse `json:"routes"`
	TotalFuelSavingsPct float64         `json:"total_fuel_savings_pct"`
	TotalTimeSavingsPct float64         `json:"total_time_savings_pct"`
	TotalCostSavingsNGN float64         `json:"total_cost_savings_ngn"`
	Recommendations     []string        `json:"recommendations"`
	Confidence          float64         `json:"confidence"`
}
