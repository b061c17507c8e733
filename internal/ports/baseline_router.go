package ports

import (
	"time"

	"moving-dispatch-service/internal/domain"
)

// BaselineMetrics are the totals of an unoptimized reference route.
type BaselineMetrics struct {
	DistanceKm  float64
	TimeMinutes float64 // travel plus per-stop service time
}

// Contract for producing the naive route the optimizer's savings are measured
// against. The default implementation visits stops in input order.
type BaselineRouter interface {
	Baseline(vehicle domain.Vehicle, stops []domain.Location, startTime time.Time) (BaselineMetrics, error)
}
