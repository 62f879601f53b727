package risk

import (
	"fmt"
	"math/rand"
	"strings"

	"payrouter/internal/rules"
)

// JitterSource supplies the random perturbation added to each score.
// Injectable so tests can pin scores deterministically.
type JitterSource interface {
	Float64() float64 // uniform in [0, 1)
}

// processRand draws from the shared math/rand generator, which is safe
// for concurrent use.
type processRand struct{}

func (processRand) Float64() float64 { return rand.Float64() }

// Engine scores charge requests against an immutable rule set.
type Engine struct {
	rules  *rules.Set
	jitter JitterSource
}

// Option configures the engine.
type Option func(*Engine)

// WithJitterSource overrides the default random source.
func WithJitterSource(src JitterSource) Option {
	return func(e *Engine) {
		e.jitter = src
	}
}

// NewEngine creates a scoring engine for the given rule set.
func NewEngine(set *rules.Set, opts ...Option) *Engine {
	e := &Engine{
		rules:  set,
		jitter: processRand{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score evaluates a charge request and returns a risk assessment. Pure
// function of the request and rule set apart from the bounded jitter, which
// keeps visually identical inputs off exact decision boundaries and is never
// reported as a reason.
func (e *Engine) Score(req ChargeRequest) Assessment {
	var reasons []Reason
	score := 0.0

	// Amount rule: threshold is inclusive.
	if req.Amount >= e.rules.AmountHighThreshold {
		reasons = append(reasons, Reason{
			Rule:   RuleHighAmount,
			Impact: e.rules.AmountHighImpact,
			Detail: fmt.Sprintf("amount %d", req.Amount),
		})
		score += e.rules.AmountHighImpact
	}

	// Domain rule: suffix match, first configured match only.
	if domain := EmailDomain(req.Email); domain != "" {
		for _, suspicious := range e.rules.SuspiciousDomains {
			if strings.HasSuffix(domain, suspicious) {
				reasons = append(reasons, Reason{
					Rule:   RuleSuspiciousDomain,
					Impact: e.rules.SuspiciousDomainImpact,
					Detail: domain,
				})
				score += e.rules.SuspiciousDomainImpact
				break
			}
		}
	}

	score += e.jitter.Float64() * e.rules.JitterMax
	score = clamp01(score)

	preferred := ProviderPayPal
	if score < e.rules.PreferThreshold {
		preferred = ProviderStripe
	}

	return Assessment{
		Score:             score,
		Reasons:           reasons,
		PreferredProvider: preferred,
	}
}

// EmailDomain returns the lower-cased domain portion of an email address,
// or "" when no domain is present.
func EmailDomain(email string) string {
	_, domain, found := strings.Cut(strings.ToLower(email), "@")
	if !found {
		return ""
	}
	return domain
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
