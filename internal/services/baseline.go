package services

import (
	"fmt"
	"time"

	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/geo"
	"moving-dispatch-service/internal/ports"
)

// InputOrderBaseline is the default BaselineRouter: it visits stops exactly in
// the order they were submitted, which is what an unoptimized dispatcher would
// drive. Savings reported by the optimizer are measured against this route.
type InputOrderBaseline struct{}

func (InputOrderBaseline) Baseline(
	vehicle domain.Vehicle,
	stops []domain.Location,
	startTime time.Time,
) (ports.BaselineMetrics, error) {
	if err := vehicle.Validate(); err != nil {
		return ports.BaselineMetrics{}, fmt.Errorf("baseline: %w", err)
	}

	var m ports.BaselineMetrics
	pos := vehicle.CurrentLocation
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return ports.BaselineMetrics{}, fmt.Errorf("baseline: %w", err)
		}

		traffic := geo.TrafficLevel(pos, s.Point, startTime)
		m.DistanceKm += geo.DistanceKm(pos, s.Point)
		m.TimeMinutes += geo.TravelTimeMinutes(pos, s.Point, traffic) + s.EstimatedServiceMinutes
		pos = s.Point
	}
	return m, nil
}
