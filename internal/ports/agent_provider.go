package ports

import (
	"context"

	"moving-dispatch-service/internal/domain"
)

// Port: a boundary for fetching the pool of plausibly available agents.
// The matching engine re-filters by online status and current job regardless
// of what the provider returns.
type AgentProvider interface {
	FetchAvailableAgents(ctx context.Context) ([]domain.Agent, error)
}
