package idempotency

import (
	"testing"

	"payrouter/internal/domain"
)

func TestStoreGetPutClear(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get("k1"); ok {
		t.Error("empty store should miss")
	}

	decision := domain.RouteDecision{DecisionID: "d1", PaymentID: "tx-1", ProviderID: "A"}
	store.Put("k1", decision)

	got, ok := store.Get("k1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.DecisionID != "d1" || got.ProviderID != "A" {
		t.Errorf("stored decision mismatch: %+v", got)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", store.Len())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("expected empty store after clear, got %d", store.Len())
	}
	if _, ok := store.Get("k1"); ok {
		t.Error("cleared store should miss")
	}
}

func TestStorePutOverwritesSilently(t *testing.T) {
	store := NewStore()
	store.Put("k", domain.RouteDecision{DecisionID: "first"})
	store.Put("k", domain.RouteDecision{DecisionID: "second"})

	got, _ := store.Get("k")
	if got.DecisionID != "second" {
		t.Errorf("later put should win, got %q", got.DecisionID)
	}
	if store.Len() != 1 {
		t.Errorf("one entry per key, got %d", store.Len())
	}
}
