package domain

import "fmt"

// VehicleType classifies the cargo capacity band of a vehicle.
type VehicleType string

const (
	VehicleSmall  VehicleType = "small"
	VehicleMedium VehicleType = "medium"
	VehicleLarge  VehicleType = "large"
	VehicleTruck  VehicleType = "truck"
)

// AgentVehicle describes the vehicle an agent operates.
type AgentVehicle struct {
	Type           VehicleType
	CapacityVolume float64
	Features       []string
}

// Agent is a driver or worker eligible for job matching.
// Agents are owned and updated externally; the engines treat every pool
// argument as a fresh read-only snapshot for the duration of one call.
type Agent struct {
	ID                  string
	Name                string
	Location            GeoPoint
	Rating              float64 // 0..5
	TotalJobs           int
	Vehicle             AgentVehicle
	Online              bool
	CurrentJobID        string // empty when idle
	ResponseTimeMinutes float64
	ReliabilityScore    float64 // 0..1
}

// Validate checks the fields the matching score depends on.
func (a Agent) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: agent id must be non-empty", ErrInvalidInput)
	}
	if err := a.Location.Validate(); err != nil {
		return fmt.Errorf("agent %s location: %w", a.ID, err)
	}
	if a.Rating < 0 || a.Rating > 5 {
		return fmt.Errorf("%w: agent %s rating %v out of range [0, 5]", ErrInvalidInput, a.ID, a.Rating)
	}
	if a.TotalJobs < 0 {
		return fmt.Errorf("%w: agent %s totalJobs must be >= 0", ErrInvalidInput, a.ID)
	}
	if a.Vehicle.CapacityVolume <= 0 {
		return fmt.Errorf("%w: agent %s vehicle capacity must be > 0", ErrInvalidInput, a.ID)
	}
	if a.ResponseTimeMinutes < 0 {
		return fmt.Errorf("%w: agent %s response time must be >= 0", ErrInvalidInput, a.ID)
	}
	if a.ReliabilityScore < 0 || a.ReliabilityScore > 1 {
		return fmt.Errorf("%w: agent %s reliability %v out of range [0, 1]", ErrInvalidInput, a.ID, a.ReliabilityScore)
	}
	return nil
}
