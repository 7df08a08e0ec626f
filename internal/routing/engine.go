package routing

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"payrouter/internal/domain"
)

// RuleWeightedCost identifies the current selection policy: base weight
// multiplied by cost advantage.
const RuleWeightedCost = "v1_weighted_cost"

// Simulated per-candidate latency ranges, in milliseconds.
const (
	rejectLatencyMin    = 8
	rejectLatencyMax    = 35
	candidateLatencyMin = 10
	candidateLatencyMax = 80
)

// Picker chooses one winner index given the candidate selection weights.
// Implementations must be safe for concurrent use.
type Picker interface {
	Pick(weights []float64) int
}

// WeightedPicker draws one candidate with probability proportional to its
// weight.
type WeightedPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWeightedPicker(seed int64) *WeightedPicker {
	return &WeightedPicker{rng: rand.New(rand.NewSource(seed))}
}

func (w *WeightedPicker) Pick(weights []float64) int {
	total := 0.0
	for _, wt := range weights {
		total += wt
	}
	if total <= 0 {
		return 0
	}

	w.mu.Lock()
	r := w.rng.Float64() * total
	w.mu.Unlock()

	for i, wt := range weights {
		r -= wt
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Engine runs one routing decision over a catalog snapshot: compatibility
// filtering, scoring, a single weighted draw and assembly of the attempt
// audit trail. It is pure bounded computation with no error path; an empty
// candidate set is a normal outcome, not a failure.
type Engine struct {
	ruleID string
	picker Picker
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
}

// NewEngine builds the production engine with the weighted-cost policy.
func NewEngine() *Engine {
	seed := time.Now().UnixNano()
	return NewEngineWith(RuleWeightedCost, NewWeightedPicker(seed), seed)
}

// NewEngineWith lets callers swap the selection policy or inject a
// deterministic picker and latency seed.
func NewEngineWith(ruleID string, picker Picker, seed int64) *Engine {
	return &Engine{
		ruleID: ruleID,
		picker: picker,
		rng:    rand.New(rand.NewSource(seed)),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Decide evaluates every provider in catalog order and returns the full
// decision record. Ineligible providers are recorded first; eligible
// candidates get their attempts appended after the draw, still in catalog
// order, with exactly one outcome=selected entry when a winner exists.
func (e *Engine) Decide(tx domain.Tx, providers []domain.Provider) domain.RouteDecision {
	decision := domain.RouteDecision{
		DecisionID: uuid.NewString(),
		PaymentID:  tx.ID,
		RuleID:     e.ruleID,
		Attempts:   make([]domain.Attempt, 0, len(providers)),
	}

	var candidates []domain.Provider
	for _, p := range providers {
		eligible, reasons := Compatible(p, tx)
		if eligible {
			candidates = append(candidates, p)
			continue
		}
		// unhealthy wins over any co-occurring incompatibility reason
		outcome := domain.OutcomeIncompatible
		if contains(reasons, ReasonUnhealthy) {
			outcome = domain.OutcomeUnhealthy
		}
		decision.Attempts = append(decision.Attempts, domain.Attempt{
			ProviderID: p.ID,
			TS:         e.timestamp(),
			Outcome:    outcome,
			LatencyMs:  e.latency(rejectLatencyMin, rejectLatencyMax),
		})
	}

	if len(candidates) == 0 {
		return decision
	}

	weights := make([]float64, len(candidates))
	for i, p := range candidates {
		weights[i] = Score(p, candidates)
	}
	winner := candidates[e.picker.Pick(weights)].ID

	for _, p := range candidates {
		outcome := domain.OutcomeConsidered
		if p.ID == winner {
			outcome = domain.OutcomeSelected
		}
		decision.Attempts = append(decision.Attempts, domain.Attempt{
			ProviderID: p.ID,
			TS:         e.timestamp(),
			Outcome:    outcome,
			LatencyMs:  e.latency(candidateLatencyMin, candidateLatencyMax),
		})
	}

	decision.ProviderID = winner
	return decision
}

func (e *Engine) timestamp() string {
	return e.now().Format(time.RFC3339Nano)
}

func (e *Engine) latency(min, max int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return min + e.rng.Intn(max-min+1)
}
