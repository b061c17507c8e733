package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// SeedFromJSON loads agent profiles from a JSON file and upserts them into
// the pool. Used by cmd/dbtool to populate demo data for local runs.
func SeedFromJSON(ctx context.Context, pool *RedisAgentPool, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed agents: read %q: %w", path, err)
	}

	var records []agentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("seed agents: parse %q: %w", path, err)
	}

	for _, rec := range records {
		if err := pool.UpsertAgent(ctx, rec.toDomain()); err != nil {
			return 0, fmt.Errorf("seed agents: %w", err)
		}
	}
	return len(records), nil
}
