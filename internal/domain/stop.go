package domain

import (
	"fmt"
	"time"
)

// StopKind distinguishes pickup stops from delivery stops.
type StopKind string

const (
	StopPickup   StopKind = "pickup"
	StopDelivery StopKind = "delivery"
)

// TimeWindow is an optional service window for a stop.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Location is a single routable stop.
// Priority runs 1..5 with 1 being the highest.
type Location struct {
	ID                      string
	Point                   GeoPoint
	Address                 string
	Kind                    StopKind
	Priority                int
	TimeWindow              *TimeWindow
	EstimatedServiceMinutes float64
}

// Validate checks the fields the route builder depends on.
func (l Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: stop id must be non-empty", ErrInvalidInput)
	}
	if err := l.Point.Validate(); err != nil {
		return fmt.Errorf("stop %s: %w", l.ID, err)
	}
	switch l.Kind {
	case StopPickup, StopDelivery:
	default:
		return fmt.Errorf("%w: stop %s has unknown kind %q", ErrInvalidInput, l.ID, l.Kind)
	}
	if l.Priority < 1 || l.Priority > 5 {
		return fmt.Errorf("%w: stop %s priority %d out of range [1, 5]", ErrInvalidInput, l.ID, l.Priority)
	}
	if l.EstimatedServiceMinutes < 0 {
		return fmt.Errorf("%w: stop %s service minutes must be >= 0", ErrInvalidInput, l.ID)
	}
	return nil
}
