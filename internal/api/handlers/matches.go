package handlers

import (
	"net/http"
	"time"

	"moving-dispatch-service/internal/api/dto"
	"moving-dispatch-service/internal/domain"
	"moving-dispatch-service/internal/ports"
	"moving-dispatch-service/internal/services"
)

// MatchHandler exposes agent matching over HTTP. The agent pool comes from
// the injected provider; scoring stays in the services layer.
type MatchHandler struct {
	Agents ports.AgentProvider
	Config services.MatchingConfig
	Now    func() time.Time
}

func (h *MatchHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Find handles POST /matches: ranked candidates for one customer request.
func (h *MatchHandler) Find(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 5
	}
	if maxResults < 1 || maxResults > 20 {
		writeError(w, r, http.StatusBadRequest, "max_results must be between 1 and 20")
		return
	}

	pool, err := h.Agents.FetchAvailableAgents(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	matches, err := services.FindBestMatches(h.Config, toCustomerRequest(req, h.now()), pool, maxResults, h.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListMatchesResponse{Matches: make([]dto.MatchCandidate, 0, len(matches))}
	for _, m := range matches {
		res.Matches = append(res.Matches, toMatchCandidate(m))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Instant handles POST /matches/instant: the single best candidate, or a null
// match when nobody clears the auto-booking thresholds.
func (h *MatchHandler) Instant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pool, err := h.Agents.FetchAvailableAgents(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	match, err := services.InstantMatch(h.Config, toCustomerRequest(req, h.now()), pool, h.now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.InstantMatchResponse{}
	if match != nil {
		candidate := toMatchCandidate(*match)
		res.Match = &candidate
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toCustomerRequest(req dto.MatchRequest, now time.Time) domain.CustomerRequest {
	preferred := now
	if req.PreferredTime != nil {
		preferred = *req.PreferredTime
	}

	return domain.CustomerRequest{
		Pickup:          domain.GeoPoint{Lat: req.Pickup.Lat, Lng: req.Pickup.Lng},
		PickupAddress:   req.PickupAddress,
		Delivery:        domain.GeoPoint{Lat: req.Delivery.Lat, Lng: req.Delivery.Lng},
		DeliveryAddress: req.DeliveryAddress,
		Items: domain.Items{
			Count:               req.Items.Count,
			Volume:              req.Items.Volume,
			WeightKg:            req.Items.WeightKg,
			Fragile:             req.Items.Fragile,
			SpecialRequirements: req.Items.SpecialRequirements,
		},
		PreferredTime: preferred,
		Budget:        req.Budget,
		Urgency:       domain.Urgency(req.Urgency),
	}
}

func toMatchCandidate(m domain.MatchResult) dto.MatchCandidate {
	return dto.MatchCandidate{
		AgentID:                 m.Agent.ID,
		AgentName:               m.Agent.Name,
		VehicleType:             string(m.Agent.Vehicle.Type),
		Score:                   m.Score,
		EstimatedArrivalMinutes: m.EstimatedArrivalMinutes,
		EstimatedCostNGN:        m.EstimatedCost,
		Confidence:              m.Confidence,
		Reasons:                 m.Reasons,
	}
}
