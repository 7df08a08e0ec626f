package domain

import (
	"context"
	"time"
)

// DecisionRecorder keeps per-provider routing tallies for the
// decisions-summary admin surface. Recording is best-effort: a recorder
// failure never fails the decision itself.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, decision RouteDecision) error
	Summary(ctx context.Context, from, to time.Time, providerIDs []string) (DecisionSummary, error)
	Purge(ctx context.Context) error
}

// DecisionSummary counts routed decisions per provider plus the number of
// decisions that found no eligible provider, within a time window.
type DecisionSummary struct {
	Providers map[string]int64 `json:"providers"`
	Unrouted  int64            `json:"unrouted"`
}
