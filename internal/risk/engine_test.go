package risk

import (
	"testing"

	"payrouter/internal/rules"
)

// fixedJitter pins the random source so scores are fully deterministic.
type fixedJitter float64

func (f fixedJitter) Float64() float64 { return float64(f) }

func newTestEngine(jitter float64) *Engine {
	return NewEngine(rules.Defaults(), WithJitterSource(fixedJitter(jitter)))
}

func baseRequest() ChargeRequest {
	return ChargeRequest{
		Amount:   1000,
		Currency: "USD",
		Source:   "tok_test",
		Email:    "donor@example.com",
	}
}

func TestScore_CleanRequest(t *testing.T) {
	engine := newTestEngine(0)

	a := engine.Score(baseRequest())
	if a.Score != 0 {
		t.Errorf("clean request should score 0, got %f", a.Score)
	}
	if len(a.Reasons) != 0 {
		t.Errorf("clean request should have no reasons, got %v", a.Reasons)
	}
	if a.PreferredProvider != ProviderStripe {
		t.Errorf("low risk should prefer stripe, got %s", a.PreferredProvider)
	}
}

func TestScore_AmountThresholdInclusive(t *testing.T) {
	engine := newTestEngine(0)

	req := baseRequest()
	req.Amount = rules.DefaultAmountHighThreshold
	a := engine.Score(req)
	if !hasReason(a, RuleHighAmount) {
		t.Error("amount exactly at threshold must trigger high_amount")
	}
	if a.Score != rules.DefaultAmountHighImpact {
		t.Errorf("expected score %f, got %f", rules.DefaultAmountHighImpact, a.Score)
	}

	req.Amount = rules.DefaultAmountHighThreshold - 1
	a = engine.Score(req)
	if hasReason(a, RuleHighAmount) {
		t.Error("one unit below threshold must not trigger high_amount")
	}
}

func TestScore_SuspiciousDomainSuffix(t *testing.T) {
	engine := newTestEngine(0)

	req := baseRequest()
	req.Email = "user@domain.test.com"
	a := engine.Score(req)
	if !hasReason(a, RuleSuspiciousDomain) {
		t.Fatal("domain ending in test.com must trigger suspicious_domain")
	}
	if a.Score != rules.DefaultSuspiciousDomainImpact {
		t.Errorf("expected score %f, got %f", rules.DefaultSuspiciousDomainImpact, a.Score)
	}
}

func TestScore_MultipleSuffixMatchesCountOnce(t *testing.T) {
	set := rules.Defaults()
	set.SuspiciousDomains = []string{".com", "test.com", ".ru"}
	engine := NewEngine(set, WithJitterSource(fixedJitter(0)))

	req := baseRequest()
	req.Email = "user@sketchy.test.com"
	a := engine.Score(req)

	count := 0
	for _, r := range a.Reasons {
		if r.Rule == RuleSuspiciousDomain {
			count++
		}
	}
	if count != 1 {
		t.Errorf("suspicious_domain must be counted exactly once, got %d", count)
	}
	if a.Score != set.SuspiciousDomainImpact {
		t.Errorf("impact must be added once, score %f", a.Score)
	}
}

func TestScore_EmptyDomainNeverMatches(t *testing.T) {
	set := rules.Defaults()
	set.SuspiciousDomains = []string{""} // pathological config
	engine := NewEngine(set, WithJitterSource(fixedJitter(0)))

	req := baseRequest()
	req.Email = "no-at-sign"
	a := engine.Score(req)
	if hasReason(a, RuleSuspiciousDomain) {
		t.Error("missing domain must never match any suffix")
	}
}

func TestScore_CaseInsensitiveDomain(t *testing.T) {
	engine := newTestEngine(0)

	req := baseRequest()
	req.Email = "User@Domain.TEST.COM"
	if a := engine.Score(req); !hasReason(a, RuleSuspiciousDomain) {
		t.Error("domain matching must be case-insensitive")
	}
}

func TestScore_JitterBoundedAndUnreported(t *testing.T) {
	// Jitter at its supremum: contribution approaches JitterMax.
	engine := newTestEngine(0.999)

	a := engine.Score(baseRequest())
	if a.Score >= rules.DefaultJitterMax {
		t.Errorf("jitter contribution must stay below JitterMax, got %f", a.Score)
	}
	if len(a.Reasons) != 0 {
		t.Error("jitter must never appear as a reason")
	}
}

func TestScore_ClampedToOne(t *testing.T) {
	set := rules.Defaults()
	set.AmountHighImpact = 0.9
	set.SuspiciousDomainImpact = 0.9
	engine := NewEngine(set, WithJitterSource(fixedJitter(0.5)))

	req := baseRequest()
	req.Amount = 1_000_000
	req.Email = "user@fraud.ru"
	a := engine.Score(req)
	if a.Score != 1.0 {
		t.Errorf("score must clamp to 1.0, got %f", a.Score)
	}
}

func TestScore_ProviderPreferenceBands(t *testing.T) {
	// Impact 0.3 lands in [0.25, 0.5): paypal territory.
	engine := newTestEngine(0)
	req := baseRequest()
	req.Amount = 10_000
	if a := engine.Score(req); a.PreferredProvider != ProviderPayPal {
		t.Errorf("score in [0.25, 0.5) should prefer paypal, got %s", a.PreferredProvider)
	}

	// Below 0.25: stripe.
	if a := engine.Score(baseRequest()); a.PreferredProvider != ProviderStripe {
		t.Error("score below 0.25 should prefer stripe")
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	engine := NewEngine(rules.Defaults())
	reqs := []ChargeRequest{
		{Amount: 1, Currency: "USD", Source: "tok", Email: "a@b.co"},
		{Amount: 5_000_000, Currency: "USD", Source: "tok", Email: "user@domain.test.com"},
		{Amount: 4999, Currency: "EUR", Source: "tok", Email: "x@mail.ru"},
	}
	for i := 0; i < 100; i++ {
		for _, req := range reqs {
			a := engine.Score(req)
			if a.Score < 0 || a.Score > 1 {
				t.Fatalf("score out of range: %f for %+v", a.Score, req)
			}
		}
	}
}

func TestEmailDomain(t *testing.T) {
	cases := []struct {
		email, want string
	}{
		{"donor@example.com", "example.com"},
		{"UPPER@EXAMPLE.COM", "example.com"},
		{"nodomain", ""},
		{"", ""},
		{"trailing@", ""},
	}
	for _, tc := range cases {
		if got := EmailDomain(tc.email); got != tc.want {
			t.Errorf("EmailDomain(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func hasReason(a Assessment, rule string) bool {
	for _, r := range a.Reasons {
		if r.Rule == rule {
			return true
		}
	}
	return false
}
