// Package risk implements rule-based fraud scoring for charge requests.
//
// Every charge is evaluated against the configured rule set. Each rule that
// fires contributes its impact weight to the score, a small bounded jitter is
// added, and the result is clamped to [0, 1]. Scores at or above the block
// threshold are rejected before any provider is contacted.
package risk

// Provider identifies one of the payment providers a charge may route to.
type Provider string

const (
	ProviderStripe Provider = "stripe"
	ProviderPayPal Provider = "paypal"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == ProviderStripe || p == ProviderPayPal
}

// Rule identifiers reported in assessment reasons.
const (
	RuleHighAmount       = "high_amount"
	RuleSuspiciousDomain = "suspicious_domain"
)

// ChargeRequest is an incoming payment request. Amounts are integer minor
// currency units. Immutable once constructed.
type ChargeRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Source   string `json:"source"`
	Email    string `json:"email"`
}

// Reason records a single rule that fired and its additive contribution.
type Reason struct {
	Rule   string  `json:"rule"`
	Impact float64 `json:"impact"`
	Detail string  `json:"detail,omitempty"`
}

// Assessment is the result of scoring one charge request. Produced once and
// never mutated afterwards.
type Assessment struct {
	Score             float64  `json:"score"`
	Reasons           []Reason `json:"reasons"`
	PreferredProvider Provider `json:"preferredProvider"`
}
