package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"payrouter/internal/domain"
	"payrouter/internal/idempotency"
)

type (
	// CatalogSource supplies the read-only provider snapshot per decision.
	CatalogSource interface {
		List() []domain.Provider
	}

	// DecisionEngine computes one routing decision over a snapshot.
	DecisionEngine interface {
		Decide(tx domain.Tx, providers []domain.Provider) domain.RouteDecision
	}
)

// Router drives the decision path: idempotency lookup, catalog snapshot,
// engine invocation, best-effort recording and cache population.
type Router struct {
	catalog  CatalogSource
	engine   DecisionEngine
	cache    *idempotency.Store
	recorder domain.DecisionRecorder
	flight   singleflight.Group
}

func NewRouter(catalog CatalogSource, engine DecisionEngine, cache *idempotency.Store, recorder domain.DecisionRecorder) *Router {
	return &Router{
		catalog:  catalog,
		engine:   engine,
		cache:    cache,
		recorder: recorder,
	}
}

// Decide routes one transaction. Requests without an idempotency key
// bypass the cache entirely and are always re-decided. Keyed requests
// replay the stored decision verbatim; concurrent requests sharing a key
// collapse onto a single computation, so two racing callers never draw two
// different selections.
func (r *Router) Decide(ctx context.Context, tx domain.Tx) domain.RouteDecision {
	key := tx.IdempotencyKey
	if key == "" {
		return r.decide(ctx, tx)
	}

	if prev, ok := r.cache.Get(key); ok {
		return prev
	}

	v, _, _ := r.flight.Do(key, func() (interface{}, error) {
		if prev, ok := r.cache.Get(key); ok {
			return prev, nil
		}
		decision := r.decide(ctx, tx)
		// unrouted decisions stay uncached so a later retry under the
		// same key can see a recovered catalog
		if decision.Routed() {
			r.cache.Put(key, decision)
		}
		return decision, nil
	})
	return v.(domain.RouteDecision)
}

func (r *Router) decide(ctx context.Context, tx domain.Tx) domain.RouteDecision {
	decision := r.engine.Decide(tx, r.catalog.List())
	if err := r.recorder.RecordDecision(ctx, decision); err != nil {
		slog.Warn("failed to record decision", "paymentId", decision.PaymentID, "err", err)
	}
	return decision
}

// Summary reports routing tallies for every cataloged provider in the
// given window.
func (r *Router) Summary(ctx context.Context, from, to time.Time) (domain.DecisionSummary, error) {
	providers := r.catalog.List()
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	return r.recorder.Summary(ctx, from, to, ids)
}

// Purge clears the idempotency cache and the recorded tallies.
func (r *Router) Purge(ctx context.Context) error {
	r.cache.Clear()
	return r.recorder.Purge(ctx)
}

// CachedDecisions reports the idempotency cache size, for the health
// surface.
func (r *Router) CachedDecisions() int {
	return r.cache.Len()
}
