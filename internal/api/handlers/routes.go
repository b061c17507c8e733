package handlers

import (
	"net/http"
	"time"

	"moving-dispatch-service/internal/api/dto"
	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"
)

// RouteHandler exposes multi-stop route optimization over HTTP.
type RouteHandler struct {
	Config   services.RoutingConfig
	Baseline ports.BaselineRouter
	Now      func() time.Time
}

func (h *RouteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Optimize handles POST /routes/optimize.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRoutesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Vehicles) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one vehicle is required")
		return
	}

	startTime := h.now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	vehicles := make([]domain.Vehicle, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		vehicles = append(vehicles, toVehicle(v))
	}
	stops := make([]domain.Location, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, toLocation(s))
	}

	result, err := services.OptimizeRoutes(h.Config, vehicles, stops, startTime, h.Baseline)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(result))
}

func toVehicle(v dto.VehicleRequest) domain.Vehicle {
	return domain.Vehicle{
		ID:                       v.ID,
		Type:                     domain.VehicleType(v.Type),
		CapacityVolume:           v.CapacityVolume,
		FuelEfficiencyKmPerLiter: v.FuelEfficiencyKmPerLiter,
		CurrentLocation:          domain.GeoPoint{Lat: v.CurrentLocation.Lat, Lng: v.CurrentLocation.Lng},
		MaxRangeKm:               v.MaxRangeKm,
	}
}

func toLocation(s dto.StopRequest) domain.Location {
	loc := domain.Location{
		ID:                      s.ID,
		Point:                   domain.GeoPoint{Lat: s.Point.Lat, Lng: s.Point.Lng},
		Address:                 s.Address,
		Kind:                    domain.StopKind(s.Kind),
		Priority:                s.Priority,
		EstimatedServiceMinutes: s.EstimatedServiceMinutes,
	}
	if s.WindowStart != nil && s.WindowEnd != nil {
		loc.TimeWindow = &domain.TimeWindow{Start: *s.WindowStart, End: *s.WindowEnd}
	}
	return loc
}

func toOptimizeResponse(result domain.OptimizationResult) dto.OptimizeRoutesResponse {
	res := dto.OptimizeRoutesResponse{
		Routes:              make([]dto.RouteResponse, 0, len(result.Routes)),
		TotalFuelSavingsPct: result.TotalSavings.FuelPct,
		TotalTimeSavingsPct: result.TotalSavings.TimePct,
		TotalCostSavingsNGN: result.TotalSavings.CostAbs,
		Recommendations:     result.Recommendations,
		Confidence:          result.Confidence,
	}

	for _, route := range result.Routes {
		stopIDs := make([]string, 0, len(route.OrderedStops))
		for _, s := range route.OrderedStops {
			stopIDs = append(stopIDs, s.ID)
		}
		waypoints := make([]dto.WaypointResponse, 0, len(route.Waypoints))
		for _, wp := range route.Waypoints {
			waypoints = append(waypoints, dto.WaypointResponse{
				Point:     dto.Point{Lat: wp.Point.Lat, Lng: wp.Point.Lng},
				Address:   wp.Address,
				Kind:      string(wp.Kind),
				Arrival:   wp.Arrival,
				Departure: wp.Departure,
			})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			VehicleID:        route.Vehicle.ID,
			OrderedStopIDs:   stopIDs,
			TotalDistanceKm:  route.TotalDistanceKm,
			TotalTimeMinutes: route.TotalTimeMinutes,
			TotalFuelLiters:  route.TotalFuelLiters,
			EstimatedCostNGN: route.EstimatedCost,
			Waypoints:        waypoints,
			FuelSavingsPct:   route.Optimization.FuelSavingsPct,
			TimeSavingsPct:   route.Optimization.TimeSavingsPct,
			Efficiency:       route.Optimization.Efficiency,
		})
	}
	return res
}
