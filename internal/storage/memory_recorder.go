package storage

import (
	"context"
	"sync"
	"time"

	"payrouter/internal/domain"
)

type memoryEntry struct {
	providerID string // empty means unrouted
	at         time.Time
}

// MemoryRecorder is the in-process recorder used when no Redis address is
// configured, and in tests.
type MemoryRecorder struct {
	mu      sync.Mutex
	entries []memoryEntry
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) RecordDecision(_ context.Context, decision domain.RouteDecision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, memoryEntry{
		providerID: decision.ProviderID,
		at:         time.Now().UTC(),
	})
	return nil
}

func (m *MemoryRecorder) Summary(_ context.Context, from, to time.Time, providerIDs []string) (domain.DecisionSummary, error) {
	summary := domain.DecisionSummary{Providers: make(map[string]int64, len(providerIDs))}
	for _, id := range providerIDs {
		summary.Providers[id] = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.at.Before(from) || e.at.After(to) {
			continue
		}
		if e.providerID == "" {
			summary.Unrouted++
			continue
		}
		if _, ok := summary.Providers[e.providerID]; ok {
			summary.Providers[e.providerID]++
		}
	}
	return summary, nil
}

func (m *MemoryRecorder) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
