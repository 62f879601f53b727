// Package pipeline orchestrates one charge decision end to end: score the
// request, route or block it, simulate the provider call, generate an
// explanation, and record the outcome in the ledger.
package pipeline

import (
	"context"
	"time"

	"payrouter/internal/explain"
	"payrouter/internal/idgen"
	"payrouter/internal/ledger"
	"payrouter/internal/logging"
	"payrouter/internal/provider"
	"payrouter/internal/risk"
	"payrouter/internal/rules"
	"payrouter/internal/traces"
)

// ChargeResult mirrors the externally relevant fields of the recorded
// decision. Provider is empty on the blocked path.
type ChargeResult struct {
	TransactionID string        `json:"transactionId"`
	Provider      risk.Provider `json:"provider,omitempty"`
	Status        ledger.Status `json:"status"`
	RiskScore     float64       `json:"riskScore"`
	Explanation   string        `json:"explanation"`
}

// Broadcaster pushes recorded decisions to live subscribers. Optional.
type Broadcaster interface {
	BroadcastDecision(rec ledger.Record)
}

// Pipeline wires the scoring engine, charge simulator, explanation
// generator, and ledger into one decision flow.
type Pipeline struct {
	engine    *risk.Engine
	simulator *provider.Simulator
	explainer *explain.Generator
	store     *ledger.Store
	rules     *rules.Set
	broadcast Broadcaster
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithBroadcaster attaches a live decision feed.
func WithBroadcaster(b Broadcaster) Option {
	return func(p *Pipeline) { p.broadcast = b }
}

// New creates a decision pipeline. All collaborators are injected so tests
// can construct isolated instances.
func New(engine *risk.Engine, sim *provider.Simulator, explainer *explain.Generator, store *ledger.Store, set *rules.Set, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:    engine,
		simulator: sim,
		explainer: explainer,
		store:     store,
		rules:     set,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide runs one charge request through the full pipeline and appends
// exactly one ledger record. Business outcomes (risk block, provider
// decline) come back as results; only contract violations return an error.
func (p *Pipeline) Decide(ctx context.Context, req risk.ChargeRequest) (ChargeResult, error) {
	ctx, span := traces.StartSpan(ctx, "pipeline.decide")
	defer span.End()

	// Scored
	assessment := p.engine.Score(req)
	span.SetAttributes(traces.RiskScore(assessment.Score))
	riskScoreObserved.Observe(assessment.Score)

	// Routed
	status := ledger.StatusSuccess
	var chosen risk.Provider
	if assessment.Score >= p.rules.BlockThreshold {
		status = ledger.StatusBlocked
	} else {
		chosen = assessment.PreferredProvider
	}

	// Charging
	var outcome provider.Outcome
	if status == ledger.StatusSuccess {
		chargeCtx, chargeSpan := traces.StartSpan(ctx, "pipeline.charge", traces.ProviderName(string(chosen)))
		start := time.Now()
		var err error
		outcome, err = p.simulator.Charge(chargeCtx, chosen, req)
		chargeSpan.End()
		if err != nil {
			// Unknown provider or cancelled context: contract violation,
			// not a business outcome.
			return ChargeResult{}, err
		}
		providerLatency.WithLabelValues(string(chosen)).Observe(time.Since(start).Seconds())
		result := "declined"
		if outcome.Success {
			result = "succeeded"
		}
		providerCharges.WithLabelValues(string(outcome.Provider), result).Inc()

		if !outcome.Success {
			// A declined charge folds into blocked; the explanation text
			// keeps the cause distinguishable for operators.
			status = ledger.StatusBlocked
		}
	}

	// Explaining
	label := explain.LabelUnknown
	switch {
	case status == ledger.StatusBlocked:
		label = explain.LabelBlocked
	case chosen != "":
		label = string(outcome.Provider)
	}
	explanation := p.explainer.Explain(ctx, assessment, label, req)

	// Recorded
	rec := ledger.Record{
		ID:          idgen.WithPrefix("txn_"),
		Timestamp:   time.Now().UTC(),
		Request:     req,
		RiskScore:   assessment.Score,
		Reasons:     assessment.Reasons,
		Status:      status,
		Explanation: explanation,
	}
	if chosen != "" {
		// The attempted provider is recorded even on a decline so
		// operators can see who turned the charge down.
		rec.Provider = outcome.Provider
	}
	p.store.Append(rec)
	decisionsTotal.WithLabelValues(string(status)).Inc()

	span.SetAttributes(
		traces.Status(string(status)),
		traces.TransactionID(rec.ID),
	)
	logging.L(ctx).Info("charge decided",
		"transaction_id", rec.ID,
		"status", status,
		"risk_score", assessment.Score,
		"provider", rec.Provider,
	)

	if p.broadcast != nil {
		p.broadcast.BroadcastDecision(rec)
	}

	result := ChargeResult{
		TransactionID: rec.ID,
		Status:        status,
		RiskScore:     assessment.Score,
		Explanation:   explanation,
	}
	if status == ledger.StatusSuccess {
		result.Provider = rec.Provider
	}
	return result, nil
}
