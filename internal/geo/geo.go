// Package geo contains pure geographic computation shared by the matching
// and routing engines: great-circle distance, travel-time estimation, and a
// deterministic time-of-day traffic heuristic.
package geo

import (
	"math"
	"time"

	"moving-dispatch-service/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	baseSpeedKmh  = 30.0
)

// DistanceKm returns the Haversine great-circle distance between two points.
// Symmetric; zero for identical points.
func DistanceKm(a, b domain.GeoPoint) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// TravelTimeMinutes estimates door-to-door travel time between two points.
// Traffic slows the 30 km/h base speed by up to 50%; the result is rounded
// to the nearest whole minute and is never negative.
func TravelTimeMinutes(a, b domain.GeoPoint, trafficLevel float64) float64 {
	dist := DistanceKm(a, b)
	if dist == 0 {
		return 0
	}

	if trafficLevel < 0 {
		trafficLevel = 0
	} else if trafficLevel > 1 {
		trafficLevel = 1
	}

	effectiveSpeed := baseSpeedKmh / (1 + trafficLevel*0.5)
	minutes := dist / effectiveSpeed * 60
	return math.Round(minutes)
}

// TrafficLevel returns a [0, 1] congestion estimate for a trip at a given
// time. Rush hour (7-9, 17-19) is high, weekends are light, everything else
// is medium. Deterministic: live telemetry is a collaborator concern.
func TrafficLevel(a, b domain.GeoPoint, at time.Time) float64 {
	hour := at.Hour()
	if (hour >= 7 && hour < 9) || (hour >= 17 && hour < 19) {
		return 0.8
	}
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return 0.3
	}
	return 0.5
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
