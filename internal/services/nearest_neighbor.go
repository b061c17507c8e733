package services

import (
	"math"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/geo"
)

// nearestNeighborOrder builds a visiting order using a greedy nearest-neighbor
// heuristic, consuming all pickup stops before any delivery stop.
//
// The algorithm minimizes immediate travel distance at each step. It does not
// attempt global route optimization (e.g., VRP solvers); determinism and
// simplicity win over optimality.
func nearestNeighborOrder(
	start domain.GeoPoint,
	stops []domain.Location,
	at time.Time,
) (ordered []domain.Location, distanceKm, travelMinutes float64) {
	ordered = make([]domain.Location, 0, len(stops))
	pos := start

	for _, kind := range []domain.StopKind{domain.StopPickup, domain.StopDelivery} {
		remaining := make([]domain.Location, 0, len(stops))
		for _, s := range stops {
			if s.Kind == kind {
				remaining = append(remaining, s)
			}
		}

		for len(remaining) > 0 {
			best := -1
			bestDist := math.MaxFloat64

			// Select the closest unvisited stop (greedy step). Tie-breaker on
			// stop ID ensures deterministic ordering for equidistant stops.
			for i, s := range remaining {
				d := geo.DistanceKm(pos, s.Point)
				if d < bestDist || (d == bestDist && (best == -1 || s.ID < remaining[best].ID)) {
					bestDist = d
					best = i
				}
			}

			next := remaining[best]
			traffic := geo.TrafficLevel(pos, next.Point, at)
			travelMinutes += geo.TravelTimeMinutes(pos, next.Point, traffic)
			distanceKm += bestDist

			ordered = append(ordered, next)
			pos = next.Point
			remaining = append(remaining[:best], remaining[best+1:]...)
		}
	}

	return ordered, distanceKm, travelMinutes
}
