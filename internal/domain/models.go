package domain

import (
	"errors"
)

const (
	StatusHealthy = "healthy"
	StatusDown    = "down"
)

// Attempt outcomes recorded on the decision audit trail.
const (
	OutcomeConsidered   = "considered"
	OutcomeSelected     = "selected"
	OutcomeSkipped      = "skipped"
	OutcomeUnhealthy    = "unhealthy"
	OutcomeIncompatible = "incompatible"
)

var (
	ErrInvalidTx        = errors.New("invalid transaction")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrInvalidStatus    = errors.New("invalid provider status")
	ErrMalformedCatalog = errors.New("malformed catalog")
	ErrNoProvider       = errors.New("no provider available")
)

var (
	validSchemes = map[string]struct{}{"visa": {}, "mastercard": {}, "amex": {}}
	validFunding = map[string]struct{}{"debit": {}, "credit": {}}
)

// Tx is one inbound transaction to be routed. It stays immutable for the
// duration of a decision. AmountMinor and MCC are carried for audit and
// future rules; no current routing rule inspects them.
type Tx struct {
	ID                 string `json:"id"`
	AmountMinor        int64  `json:"amountMinor"`
	Currency           string `json:"currency"`
	OriginCountry      string `json:"originCountry"`
	DestinationCountry string `json:"destinationCountry"`
	Scheme             string `json:"scheme,omitempty"`
	FundingType        string `json:"fundingType,omitempty"`
	MCC                string `json:"mcc,omitempty"`
	IdempotencyKey     string `json:"idempotencyKey,omitempty"`
}

func (t Tx) Validate() error {
	if t.ID == "" {
		return errors.New("invalid id")
	}
	if t.AmountMinor <= 0 {
		return errors.New("invalid amountMinor")
	}
	if t.Currency == "" {
		return errors.New("invalid currency")
	}
	if t.OriginCountry == "" {
		return errors.New("invalid originCountry")
	}
	if t.DestinationCountry == "" {
		return errors.New("invalid destinationCountry")
	}
	if t.Scheme != "" {
		if _, ok := validSchemes[t.Scheme]; !ok {
			return errors.New("invalid scheme")
		}
	}
	if t.FundingType != "" {
		if _, ok := validFunding[t.FundingType]; !ok {
			return errors.New("invalid fundingType")
		}
	}
	return nil
}

// Provider is one catalog entry. The registry owns these; decision code
// only ever sees read-only snapshot copies.
type Provider struct {
	ID         string   `json:"id"`
	Regions    []string `json:"regions"`
	Currencies []string `json:"currencies"`
	Schemes    []string `json:"schemes"`
	Funding    []string `json:"funding"`
	BaseWeight int      `json:"baseWeight"`
	CostBps    int      `json:"costBps"`
	Status     string   `json:"status"`
}

func (p Provider) Healthy() bool {
	return p.Status == StatusHealthy
}

// Attempt is one audit record for a provider considered during a decision.
// Attempts are append-only within a decision and never mutated afterward.
type Attempt struct {
	ProviderID string `json:"providerId"`
	TS         string `json:"ts"`
	Outcome    string `json:"outcome"`
	LatencyMs  int    `json:"latencyMs"`
}

// RouteDecision is the unit of output and the unit cached for idempotency.
// An empty ProviderID means no eligible provider was found.
type RouteDecision struct {
	DecisionID string    `json:"decisionId"`
	PaymentID  string    `json:"paymentId"`
	ProviderID string    `json:"providerId,omitempty"`
	RuleID     string    `json:"ruleId,omitempty"`
	Attempts   []Attempt `json:"attempts"`
}

func (d RouteDecision) Routed() bool {
	return d.ProviderID != ""
}
