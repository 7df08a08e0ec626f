package idempotency

import (
	"sync"

	"payrouter/internal/domain"
)

// Store is the process-lifetime idempotency cache: one authoritative
// decision per key, no TTL, no eviction, no persistence. Contents vanish
// on restart; Clear is the only other lifecycle action.
type Store struct {
	mu        sync.RWMutex
	decisions map[string]domain.RouteDecision
}

func NewStore() *Store {
	return &Store{decisions: make(map[string]domain.RouteDecision)}
}

func (s *Store) Get(key string) (domain.RouteDecision, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decisions[key]
	return d, ok
}

// Put stores the decision for key. A later Put with the same key
// overwrites silently; the router only ever calls it once per key.
func (s *Store) Put(key string, decision domain.RouteDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions[key] = decision
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = make(map[string]domain.RouteDecision)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decisions)
}
