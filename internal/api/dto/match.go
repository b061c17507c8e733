package dto

import "time"

type MatchItems struct {
	Count               int      `json:"count"`
	Volume              float64  `json:"volume"`
	WeightKg            float64  `json:"weight_kg"`
	Fragile             bool     `json:"fragile"`
	SpecialRequirements []string `json:"special_requirements"`
}

type MatchRequest struct {
	Pickup          Point      `json:"pickup"`
	PickupAddress   string     `json:"pickup_address"`
	Delivery        Point      `json:"delivery"`
	DeliveryAddress string     `json:"delivery_address"`
	Items           MatchItems `json:"items"`
	PreferredTime   *time.Time `json:"preferred_time"`
	Budget          float64    `json:"budget"`
	Urgency         string     `json:"urgency"`
	MaxResults      int        `json:"max_results"`
}

type MatchCandidate struct {
	AgentID                 string   `json:"agent_id"`
	AgentName               string   `json:"agent_name"`
	VehicleType             string   `json:"vehicle_type"`
	Score                   float64  `json:"score"`
	EstimatedArrivalMinutes float64  `json:"estimated_arrival_minutes"`
	EstimatedCostNGN        float64  `json:"estimated_cost_ngn"`
	Confidence              float64  `json:"confidence"`
	Reasons                 []string `json:"reasons"`
}

type ListMatchesResponse struct {
	Matches []MatchCandidate `json:"matches"`
}

// InstantMatchResponse carries a null match when no candidate clears the
// instant-booking thresholds.
type InstantMatchResponse struct {
	Match *MatchCandidate `json:"match"`
}
