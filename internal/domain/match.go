package domain

// MatchResult is one ranked candidate produced by the matching engine.
// It is ephemeral planning data: recomputed on every matching call and never
// persisted by the engines themselves.
type MatchResult struct {
	Agent                   Agent
	Score                   float64 // 0..1
	EstimatedArrivalMinutes float64
	EstimatedCost           float64
	Confidence              float64 // 0..1
	Reasons                 []string
}
