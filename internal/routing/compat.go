package routing

import (
	"payrouter/internal/domain"
)

// Rejection reasons, in evaluation order.
const (
	ReasonUnhealthy = "unhealthy"
	ReasonCurrency  = "currency"
	ReasonScheme    = "scheme"
	ReasonFunding   = "funding"
	ReasonRegion    = "region"
)

// Compatible reports whether the provider can serve the transaction.
// Every check runs even after the first failure so the audit trail carries
// the full list of reasons. Absent optional transaction fields (scheme,
// fundingType) never reject.
func Compatible(p domain.Provider, tx domain.Tx) (bool, []string) {
	var reasons []string
	if !p.Healthy() {
		reasons = append(reasons, ReasonUnhealthy)
	}
	if !contains(p.Currencies, tx.Currency) {
		reasons = append(reasons, ReasonCurrency)
	}
	if tx.Scheme != "" && !contains(p.Schemes, tx.Scheme) {
		reasons = append(reasons, ReasonScheme)
	}
	if tx.FundingType != "" && !contains(p.Funding, tx.FundingType) {
		reasons = append(reasons, ReasonFunding)
	}
	if !contains(p.Regions, RegionOf(tx.DestinationCountry)) {
		reasons = append(reasons, ReasonRegion)
	}
	return len(reasons) == 0, reasons
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
