package domain

import "fmt"

// Vehicle is a fleet vehicle available for route assignment.
type Vehicle struct {
	ID                       string
	Type                     VehicleType
	CapacityVolume           float64
	FuelEfficiencyKmPerLiter float64
	CurrentLocation          GeoPoint
	MaxRangeKm               float64
}

// Validate checks the fields route optimization depends on.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: vehicle id must be non-empty", ErrInvalidInput)
	}
	if err := v.CurrentLocation.Validate(); err != nil {
		return fmt.Errorf("vehicle %s location: %w", v.ID, err)
	}
	if v.CapacityVolume <= 0 {
		return fmt.Errorf("%w: vehicle %s capacity must be > 0", ErrInvalidInput, v.ID)
	}
	if v.FuelEfficiencyKmPerLiter <= 0 {
		return fmt.Errorf("%w: vehicle %s fuel efficiency must be > 0", ErrInvalidInput, v.ID)
	}
	if v.MaxRangeKm <= 0 {
		return fmt.Errorf("%w: vehicle %s max range must be > 0", ErrInvalidInput, v.ID)
	}
	return nil
}
