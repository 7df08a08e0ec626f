package routing

import (
	"testing"

	"payrouter/internal/domain"
)

// fixedPicker always returns the same index, making decisions deterministic.
type fixedPicker struct {
	index int
}

func (f fixedPicker) Pick(_ []float64) int {
	return f.index
}

func testEngine(p Picker) *Engine {
	return NewEngineWith(RuleWeightedCost, p, 42)
}

func testCatalog() []domain.Provider {
	return []domain.Provider{
		{
			ID: "A", Regions: []string{"ZA"}, Currencies: []string{"ZAR"},
			Schemes: []string{"visa"}, Funding: []string{"debit"},
			BaseWeight: 10, CostBps: 50, Status: domain.StatusHealthy,
		},
		{
			ID: "B", Regions: []string{"ZA"}, Currencies: []string{"ZAR"},
			Schemes: []string{"visa"}, Funding: []string{"debit"},
			BaseWeight: 5, CostBps: 100, Status: domain.StatusHealthy,
		},
	}
}

func TestDecideSingleCandidateAlwaysSelected(t *testing.T) {
	engine := NewEngine()
	catalog := testCatalog()[:1]

	for i := 0; i < 25; i++ {
		decision := engine.Decide(zaTx(), catalog)
		if decision.ProviderID != "A" {
			t.Fatalf("single candidate must always win, got %q", decision.ProviderID)
		}
	}
}

func TestDecideEmptyCatalog(t *testing.T) {
	decision := testEngine(fixedPicker{}).Decide(zaTx(), nil)

	if decision.Routed() {
		t.Errorf("expected no provider, got %q", decision.ProviderID)
	}
	if decision.RuleID != RuleWeightedCost {
		t.Errorf("ruleId must be set even without a winner, got %q", decision.RuleID)
	}
	if decision.PaymentID != "tx-1" {
		t.Errorf("paymentId should mirror the transaction id, got %q", decision.PaymentID)
	}
	if len(decision.Attempts) != 0 {
		t.Errorf("expected no attempts, got %d", len(decision.Attempts))
	}
}

func TestDecideAllIneligible(t *testing.T) {
	catalog := testCatalog()
	catalog[0].Status = domain.StatusDown

	tx := zaTx()
	tx.Currency = "USD"

	decision := testEngine(fixedPicker{}).Decide(tx, catalog)

	if decision.Routed() {
		t.Fatalf("expected no provider, got %q", decision.ProviderID)
	}
	if len(decision.Attempts) != len(catalog) {
		t.Fatalf("expected one attempt per provider, got %d", len(decision.Attempts))
	}
	if decision.Attempts[0].Outcome != domain.OutcomeUnhealthy {
		t.Errorf("down provider must audit as unhealthy, got %q", decision.Attempts[0].Outcome)
	}
	if decision.Attempts[1].Outcome != domain.OutcomeIncompatible {
		t.Errorf("currency mismatch must audit as incompatible, got %q", decision.Attempts[1].Outcome)
	}
	for _, a := range decision.Attempts {
		if a.LatencyMs < 8 || a.LatencyMs > 35 {
			t.Errorf("rejection latency %d out of [8,35]", a.LatencyMs)
		}
		if a.TS == "" {
			t.Error("attempt timestamp must be set")
		}
	}
}

func TestDecideAttemptOrderingAndOutcomes(t *testing.T) {
	catalog := testCatalog()
	// C is first in catalog order but incompatible on currency
	catalog = append([]domain.Provider{{
		ID: "C", Regions: []string{"ZA"}, Currencies: []string{"USD"},
		Schemes: []string{"visa"}, Funding: []string{"debit"},
		BaseWeight: 3, CostBps: 40, Status: domain.StatusHealthy,
	}}, catalog...)

	decision := testEngine(fixedPicker{index: 0}).Decide(zaTx(), catalog)

	if decision.ProviderID != "A" {
		t.Fatalf("picker index 0 should select A, got %q", decision.ProviderID)
	}

	expected := []struct {
		provider string
		outcome  string
	}{
		{"C", domain.OutcomeIncompatible},
		{"A", domain.OutcomeSelected},
		{"B", domain.OutcomeConsidered},
	}
	if len(decision.Attempts) != len(expected) {
		t.Fatalf("expected %d attempts, got %d", len(expected), len(decision.Attempts))
	}
	for i, e := range expected {
		a := decision.Attempts[i]
		if a.ProviderID != e.provider || a.Outcome != e.outcome {
			t.Errorf("attempt %d: expected %s/%s, got %s/%s", i, e.provider, e.outcome, a.ProviderID, a.Outcome)
		}
	}

	selected := 0
	for _, a := range decision.Attempts {
		if a.Outcome == domain.OutcomeSelected {
			selected++
		}
	}
	if selected != 1 {
		t.Errorf("expected exactly one selected attempt, got %d", selected)
	}
}

func TestDecideCandidateLatencyRange(t *testing.T) {
	decision := testEngine(fixedPicker{index: 0}).Decide(zaTx(), testCatalog())

	for _, a := range decision.Attempts {
		if a.LatencyMs < 10 || a.LatencyMs > 80 {
			t.Errorf("candidate latency %d out of [10,80]", a.LatencyMs)
		}
	}
}

func TestDecideWeightedMajority(t *testing.T) {
	// A scores 20, B scores 5; over many draws A must win a clear majority.
	engine := NewEngineWith(RuleWeightedCost, NewWeightedPicker(7), 7)
	catalog := testCatalog()

	const draws = 2000
	wins := map[string]int{}
	for i := 0; i < draws; i++ {
		decision := engine.Decide(zaTx(), catalog)
		wins[decision.ProviderID]++
	}

	if wins["A"]+wins["B"] != draws {
		t.Fatalf("every draw must pick A or B, got %v", wins)
	}
	if wins["A"] <= wins["B"] {
		t.Errorf("A (weight 20) should beat B (weight 5), got A=%d B=%d", wins["A"], wins["B"])
	}
	if wins["A"] < draws*6/10 {
		t.Errorf("A should win a clear majority, got %d of %d", wins["A"], draws)
	}
}

func TestWeightedPickerRespectsWeights(t *testing.T) {
	picker := NewWeightedPicker(99)

	counts := [2]int{}
	for i := 0; i < 5000; i++ {
		counts[picker.Pick([]float64{9, 1})]++
	}
	if counts[0] <= counts[1] {
		t.Errorf("index 0 with weight 9 should dominate, got %v", counts)
	}

	if got := picker.Pick([]float64{0, 0}); got != 0 {
		t.Errorf("degenerate all-zero weights should pick index 0, got %d", got)
	}
}
