// Package agents provides AgentProvider implementations backed by shared
// infrastructure. Agent profiles are owned by the marketplace; this adapter
// only reads and mirrors them, the matching engine re-filters regardless.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"moving-dispatch-service/internal/domain"
)

const (
	profilesKey = "agents:profiles"
	geoKey      = "agents:geo"
)

// RedisAgentPool stores agent profiles in a Redis hash and mirrors their
// positions into a GEO set for radius queries.
type RedisAgentPool struct {
	redis *redis.Client
}

func NewRedisAgentPool(client *redis.Client) *RedisAgentPool {
	return &RedisAgentPool{redis: client}
}

type agentRecord struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Lat                 float64  `json:"lat"`
	Lng                 float64  `json:"lng"`
	Rating              float64  `json:"rating"`
	TotalJobs           int      `json:"total_jobs"`
	VehicleType         string   `json:"vehicle_type"`
	CapacityVolume      float64  `json:"capacity_volume"`
	Features            []string `json:"features,omitempty"`
	Online              bool     `json:"online"`
	CurrentJobID        string   `json:"current_job_id,omitempty"`
	ResponseTimeMinutes float64  `json:"response_time_minutes"`
	ReliabilityScore    float64  `json:"reliability_score"`
}

func toRecord(a domain.Agent) agentRecord {
	return agentRecord{
		ID:                  a.ID,
		Name:                a.Name,
		Lat:                 a.Location.Lat,
		Lng:                 a.Location.Lng,
		Rating:              a.Rating,
		TotalJobs:           a.TotalJobs,
		VehicleType:         string(a.Vehicle.Type),
		CapacityVolume:      a.Vehicle.CapacityVolume,
		Features:            a.Vehicle.Features,
		Online:              a.Online,
		CurrentJobID:        a.CurrentJobID,
		ResponseTimeMinutes: a.ResponseTimeMinutes,
		ReliabilityScore:    a.ReliabilityScore,
	}
}

func (r agentRecord) toDomain() domain.Agent {
	return domain.Agent{
		ID:       r.ID,
		Name:     r.Name,
		Location: domain.GeoPoint{Lat: r.Lat, Lng: r.Lng},
		Rating:   r.Rating,
		Vehicle: domain.AgentVehicle{
			Type:           domain.VehicleType(r.VehicleType),
			CapacityVolume: r.CapacityVolume,
			Features:       r.Features,
		},
		TotalJobs:           r.TotalJobs,
		Online:              r.Online,
		CurrentJobID:        r.CurrentJobID,
		ResponseTimeMinutes: r.ResponseTimeMinutes,
		ReliabilityScore:    r.ReliabilityScore,
	}
}

// UpsertAgent writes an agent profile and mirrors its position into the GEO set.
func (p *RedisAgentPool) UpsertAgent(ctx context.Context, a domain.Agent) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("upsert agent: %w", err)
	}

	payload, err := json.Marshal(toRecord(a))
	if err != nil {
		return fmt.Errorf("upsert agent %s: marshal: %w", a.ID, err)
	}

	pipe := p.redis.Pipeline()
	pipe.HSet(ctx, profilesKey, a.ID, payload)
	pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      a.ID,
		Longitude: a.Location.Lng,
		Latitude:  a.Location.Lat,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert agent %s: %w", a.ID, err)
	}
	return nil
}

// RemoveAgent deletes an agent's profile and GEO entry.
func (p *RedisAgentPool) RemoveAgent(ctx context.Context, id string) error {
	pipe := p.redis.Pipeline()
	pipe.HDel(ctx, profilesKey, id)
	pipe.ZRem(ctx, geoKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove agent %s: %w", id, err)
	}
	return nil
}

// FetchAvailableAgents returns every stored agent profile.
func (p *RedisAgentPool) FetchAvailableAgents(ctx context.Context) ([]domain.Agent, error) {
	raw, err := p.redis.HGetAll(ctx, profilesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch available agents: %w", err)
	}

	agents := make([]domain.Agent, 0, len(raw))
	for id, payload := range raw {
		var rec agentRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("fetch available agents: unmarshal agent %s: %w", id, err)
		}
		agents = append(agents, rec.toDomain())
	}
	return agents, nil
}

// NearbyAgents returns the profiles of agents within radiusKm of a point,
// closest first.
func (p *RedisAgentPool) NearbyAgents(ctx context.Context, near domain.GeoPoint, radiusKm float64) ([]domain.Agent, error) {
	locations, err := p.redis.GeoRadius(ctx, geoKey, near.Lng, near.Lat, &redis.GeoRadiusQuery{
		Radius: radiusKm,
		Unit:   "km",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("nearby agents: geo query: %w", err)
	}
	if len(locations) == 0 {
		return []domain.Agent{}, nil
	}

	ids := make([]string, len(locations))
	for i, loc := range locations {
		ids[i] = loc.Name
	}

	payloads, err := p.redis.HMGet(ctx, profilesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("nearby agents: fetch profiles: %w", err)
	}

	agents := make([]domain.Agent, 0, len(payloads))
	for i, payload := range payloads {
		s, ok := payload.(string)
		if !ok {
			// GEO entry with no profile: the profile was removed mid-query.
			continue
		}
		var rec agentRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("nearby agents: unmarshal agent %s: %w", ids[i], err)
		}
		agents = append(agents, rec.toDomain())
	}
	return agents, nil
}
