package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"payrouter/internal/domain"
)

type catalogDocument struct {
	Providers []domain.Provider `json:"providers"`
}

// Registry owns the provider catalog. Reload and Replace build a complete
// new snapshot, validate it and swap it in one step, so in-flight decisions
// holding a List() snapshot never observe a torn mid-reload state. Status
// is the only field mutated in place.
type Registry struct {
	mu        sync.RWMutex
	path      string
	providers []domain.Provider
	index     map[string]int
}

// New loads the catalog document at path. The registry starts empty-handed
// on no snapshot at all, so a failed initial load is fatal to the caller.
func New(path string) (*Registry, error) {
	r := &Registry{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the catalog document and swaps the snapshot wholesale.
// On any parse or validation failure the previous snapshot is retained.
func (r *Registry) Reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrMalformedCatalog, r.path, err)
	}

	var doc catalogDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrMalformedCatalog, r.path, err)
	}

	return r.Replace(doc.Providers)
}

// Replace swaps in a full new provider set, no partial merge.
func (r *Registry) Replace(providers []domain.Provider) error {
	snapshot, index, err := validate(providers)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.providers = snapshot
	r.index = index
	r.mu.Unlock()
	return nil
}

// List returns the current snapshot in catalog document order. Callers get
// their own copy of the provider records; later status toggles or reloads
// do not leak into a snapshot already handed out.
func (r *Registry) List() []domain.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// SetStatus flips one provider between healthy and down.
func (r *Registry) SetStatus(id, status string) error {
	if status != domain.StatusHealthy && status != domain.StatusDown {
		return domain.ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return domain.ErrUnknownProvider
	}
	r.providers[i].Status = status
	return nil
}

// StartAutoRefresh periodically re-loads the catalog document until the
// context is cancelled. A failed refresh keeps the previous snapshot.
func (r *Registry) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Reload(); err != nil {
					slog.Warn("catalog refresh failed, keeping previous snapshot", "path", r.path, "err", err)
				}
			}
		}
	}()
}

func validate(providers []domain.Provider) ([]domain.Provider, map[string]int, error) {
	snapshot := make([]domain.Provider, len(providers))
	copy(snapshot, providers)
	index := make(map[string]int, len(snapshot))

	for i := range snapshot {
		p := &snapshot[i]
		if p.ID == "" {
			return nil, nil, fmt.Errorf("%w: provider %d has empty id", domain.ErrMalformedCatalog, i)
		}
		if _, dup := index[p.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate provider id %q", domain.ErrMalformedCatalog, p.ID)
		}
		if p.BaseWeight <= 0 {
			return nil, nil, fmt.Errorf("%w: provider %q baseWeight must be positive", domain.ErrMalformedCatalog, p.ID)
		}
		if p.CostBps <= 0 {
			return nil, nil, fmt.Errorf("%w: provider %q costBps must be positive", domain.ErrMalformedCatalog, p.ID)
		}
		if p.Status == "" {
			p.Status = domain.StatusHealthy
		}
		if p.Status != domain.StatusHealthy && p.Status != domain.StatusDown {
			return nil, nil, fmt.Errorf("%w: provider %q has status %q", domain.ErrMalformedCatalog, p.ID, p.Status)
		}
		index[p.ID] = i
	}
	return snapshot, index, nil
}
