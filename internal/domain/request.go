package domain

import (
	"fmt"
	"time"
)

// Urgency expresses how quickly the customer needs the move done.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Items describes the cargo of a single customer request.
type Items struct {
	Count               int
	Volume              float64
	WeightKg            float64
	Fragile             bool
	SpecialRequirements []string
}

// CustomerRequest is one booking request supplied by the caller.
type CustomerRequest struct {
	Pickup          GeoPoint
	PickupAddress   string
	Delivery        GeoPoint
	DeliveryAddress string
	Items           Items
	PreferredTime   time.Time
	Budget          float64
	Urgency         Urgency
}

// Validate rejects requests the scoring math cannot handle.
func (r CustomerRequest) Validate() error {
	if err := r.Pickup.Validate(); err != nil {
		return fmt.Errorf("pickup: %w", err)
	}
	if err := r.Delivery.Validate(); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}
	if r.Items.Count <= 0 {
		return fmt.Errorf("%w: item count must be > 0", ErrInvalidInput)
	}
	if r.Items.Volume <= 0 {
		return fmt.Errorf("%w: item volume must be > 0", ErrInvalidInput)
	}
	if r.Items.WeightKg < 0 {
		return fmt.Errorf("%w: item weight must be >= 0", ErrInvalidInput)
	}
	if r.Budget < 0 {
		return fmt.Errorf("%w: budget must be >= 0", ErrInvalidInput)
	}
	switch r.Urgency {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, r.Urgency)
	}
	return nil
}
