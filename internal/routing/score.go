package routing

import (
	"payrouter/internal/domain"
)

// Score assigns a selection weight to an eligible provider. Cost is
// normalized against the most expensive candidate so that the provider at
// maxCost gets a factor of exactly 1.0 and cheaper providers score
// proportionally higher. A zero costBps is treated as cost-neutral rather
// than infinitely preferred.
func Score(p domain.Provider, eligible []domain.Provider) float64 {
	maxCost := p.CostBps
	for _, c := range eligible {
		if c.CostBps > maxCost {
			maxCost = c.CostBps
		}
	}
	costFactor := 1.0
	if p.CostBps > 0 {
		costFactor = float64(maxCost) / float64(p.CostBps)
	}
	return float64(p.BaseWeight) * costFactor
}
