// Package explain produces short human-readable rationales for charge
// decisions. Results are cached by a coarse fingerprint of the decision,
// and a deterministic template stands in whenever the text-generation
// backend is absent or fails. Generation failures never leave this package.
package explain

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"payrouter/internal/logging"
	"payrouter/internal/risk"
)

// Outcome labels passed by the pipeline.
const (
	LabelBlocked = "blocked"
	LabelUnknown = "unknown"
)

// Generation parameters for the external backend.
const (
	systemPrompt = "You are a concise risk analyst for a payment router."
	temperature  = 0.3
	maxTokens    = 140
)

// TextGenerator is the external text-generation capability. May be absent
// (nil generator) or fail at any time; both are absorbed here.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
}

// Generator builds explanations with caching and template fallback.
type Generator struct {
	gen            TextGenerator
	blockThreshold float64

	mu    sync.Mutex
	cache map[string]string // fingerprint -> text, no eviction
}

// NewGenerator creates an explanation generator. A nil TextGenerator means
// fallback templates only — no external call is ever attempted.
func NewGenerator(gen TextGenerator, blockThreshold float64) *Generator {
	return &Generator{
		gen:            gen,
		blockThreshold: blockThreshold,
		cache:          make(map[string]string),
	}
}

// Explain returns a rationale for the decision. chosen is "blocked", the
// provider actually used, or "unknown". Never returns an empty string.
func (g *Generator) Explain(ctx context.Context, a risk.Assessment, chosen string, req risk.ChargeRequest) string {
	key := Fingerprint(a, chosen, req)

	g.mu.Lock()
	if text, ok := g.cache[key]; ok {
		g.mu.Unlock()
		cacheHits.Inc()
		return text
	}
	g.mu.Unlock()
	cacheMisses.Inc()

	// The fallback is always computed first: cheap, deterministic, and
	// available regardless of network reachability.
	text := buildFallback(a, chosen, g.blockThreshold)

	if g.gen != nil {
		generated, err := g.gen.Generate(ctx, systemPrompt, buildPrompt(a, chosen, req), temperature, maxTokens)
		if err != nil {
			generationFailures.Inc()
			logging.L(ctx).Debug("explanation generation failed, using fallback", "error", err)
		} else {
			text = generated
		}
	}

	// Concurrent misses on the same fingerprint may both generate; last
	// writer wins. Accepted: keys are coarse and the texts equivalent.
	g.mu.Lock()
	g.cache[key] = text
	g.mu.Unlock()

	return text
}

// CacheSize returns the number of cached explanations.
func (g *Generator) CacheSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cache)
}

// Fingerprint derives the cache key: rounded score, sorted rule names, the
// outcome label, amount, currency, and the email domain. The local part of
// the email never enters the key.
func Fingerprint(a risk.Assessment, chosen string, req risk.ChargeRequest) string {
	names := make([]string, len(a.Reasons))
	for i, r := range a.Reasons {
		names[i] = r.Rule
	}
	sort.Strings(names)

	return fmt.Sprintf("r=%.2f|h=%s|c=%s|a=%d|cur=%s|e=%s",
		math.Round(a.Score*100)/100,
		strings.Join(names, ","),
		chosen,
		req.Amount,
		req.Currency,
		risk.EmailDomain(req.Email),
	)
}

// buildPrompt summarizes the decision for the generation backend.
func buildPrompt(a risk.Assessment, chosen string, req risk.ChargeRequest) string {
	parts := make([]string, len(a.Reasons))
	for i, r := range a.Reasons {
		parts[i] = fmt.Sprintf("%s (+%.2f)", r.Rule, r.Impact)
		if r.Detail != "" {
			parts[i] += ": " + r.Detail
		}
	}

	action := "routed to " + chosen
	if chosen == LabelBlocked {
		action = "blocked for risk"
	}

	return fmt.Sprintf(
		"Amount %d %s; email %s; risk score %.2f. Reasons: %s. "+
			"Explain in one or two sentences why it was %s, in plain language suitable for a support agent.",
		req.Amount, req.Currency, req.Email, a.Score, strings.Join(parts, ", "), action,
	)
}

// buildFallback renders the deterministic template explanation.
func buildFallback(a risk.Assessment, chosen string, blockThreshold float64) string {
	var b strings.Builder
	switch {
	case a.Score >= blockThreshold:
		b.WriteString("The payment was blocked due to elevated fraud risk")
	case chosen == LabelBlocked:
		// Low score but blocked: the provider declined the charge.
		b.WriteString("The payment was declined by the payment provider despite an acceptable risk score")
	default:
		fmt.Fprintf(&b, "This payment was routed to %s based on low to moderate risk", chosen)
	}

	if len(a.Reasons) > 0 {
		names := make([]string, len(a.Reasons))
		for i, r := range a.Reasons {
			names[i] = strings.ReplaceAll(r.Rule, "_", " ")
		}
		fmt.Fprintf(&b, " influenced by: %s.", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, " Risk score: %.2f.", a.Score)
	return b.String()
}
