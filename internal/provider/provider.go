// Package provider simulates charge execution against external payment
// providers. A declined charge is a normal business outcome; only contract
// violations (unknown provider) surface as errors.
package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"payrouter/internal/risk"
)

// ErrUnknownProvider indicates a caller contract violation, not a business
// outcome. It is propagated, never folded into a declined charge.
var ErrUnknownProvider = errors.New("unknown payment provider")

// Simulated latency range for a provider round trip.
const (
	MinLatency = 50 * time.Millisecond
	MaxLatency = 150 * time.Millisecond
)

// Per-provider fixed success probabilities.
var successRates = map[risk.Provider]float64{
	risk.ProviderStripe: 0.96,
	risk.ProviderPayPal: 0.94,
}

// Outcome is the result of one attempted charge.
type Outcome struct {
	Provider risk.Provider `json:"provider"`
	Success  bool          `json:"success"`
}

// RandSource supplies the randomness for latency and success draws.
type RandSource interface {
	Float64() float64 // uniform in [0, 1)
}

type processRand struct{}

func (processRand) Float64() float64 { return rand.Float64() }

// Sleeper waits for d or until ctx is cancelled. Injectable so tests run
// without real delays.
type Sleeper func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Simulator fakes provider round trips with randomized latency and
// per-provider success probability.
type Simulator struct {
	rnd   RandSource
	sleep Sleeper
}

// Option configures the simulator.
type Option func(*Simulator)

// WithRandSource overrides the default random source.
func WithRandSource(src RandSource) Option {
	return func(s *Simulator) { s.rnd = src }
}

// WithSleeper overrides the latency wait.
func WithSleeper(sleep Sleeper) Option {
	return func(s *Simulator) { s.sleep = sleep }
}

// NewSimulator creates a charge simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		rnd:   processRand{},
		sleep: defaultSleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge simulates one provider call. The latency wait only blocks the
// calling goroutine; outcomes are drawn independently per call. A failed
// charge returns Success=false with a nil error.
func (s *Simulator) Charge(ctx context.Context, p risk.Provider, req risk.ChargeRequest) (Outcome, error) {
	rate, ok := successRates[p]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}

	latency := MinLatency + time.Duration(s.rnd.Float64()*float64(MaxLatency-MinLatency))
	if err := s.sleep(ctx, latency); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Provider: p,
		Success:  s.rnd.Float64() < rate,
	}, nil
}

// SuccessRate returns the fixed success probability for a provider.
// Exposed for health/info reporting.
func SuccessRate(p risk.Provider) (float64, bool) {
	rate, ok := successRates[p]
	return rate, ok
}
