package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrouter/internal/risk"
)

// seqRand replays a fixed sequence of draws.
type seqRand struct {
	values []float64
	i      int
}

func (s *seqRand) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

// instantSleep records the requested delay without waiting.
func instantSleep(captured *time.Duration) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		if captured != nil {
			*captured = d
		}
		return ctx.Err()
	}
}

func testRequest() risk.ChargeRequest {
	return risk.ChargeRequest{Amount: 1000, Currency: "USD", Source: "tok_test", Email: "donor@example.com"}
}

func TestCharge_Success(t *testing.T) {
	// First draw picks latency, second decides success (0.1 < 0.96).
	sim := NewSimulator(
		WithRandSource(&seqRand{values: []float64{0.5, 0.1}}),
		WithSleeper(instantSleep(nil)),
	)

	out, err := sim.Charge(context.Background(), risk.ProviderStripe, testRequest())
	require.NoError(t, err)
	assert.Equal(t, risk.ProviderStripe, out.Provider)
	assert.True(t, out.Success)
}

func TestCharge_DeclineIsNotAnError(t *testing.T) {
	// Success draw 0.99 >= 0.94: declined.
	sim := NewSimulator(
		WithRandSource(&seqRand{values: []float64{0.5, 0.99}}),
		WithSleeper(instantSleep(nil)),
	)

	out, err := sim.Charge(context.Background(), risk.ProviderPayPal, testRequest())
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, risk.ProviderPayPal, out.Provider)
}

func TestCharge_UnknownProvider(t *testing.T) {
	sim := NewSimulator(WithSleeper(instantSleep(nil)))

	_, err := sim.Charge(context.Background(), risk.Provider("square"), testRequest())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestCharge_LatencyWithinRange(t *testing.T) {
	var captured time.Duration
	sim := NewSimulator(
		WithRandSource(&seqRand{values: []float64{0.0, 0.5, 0.999, 0.5}}),
		WithSleeper(instantSleep(&captured)),
	)

	_, err := sim.Charge(context.Background(), risk.ProviderStripe, testRequest())
	require.NoError(t, err)
	assert.Equal(t, MinLatency, captured, "zero draw pins latency at the minimum")

	_, err = sim.Charge(context.Background(), risk.ProviderStripe, testRequest())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, captured, MinLatency)
	assert.Less(t, captured, MaxLatency)
}

func TestCharge_ContextCancelled(t *testing.T) {
	sim := NewSimulator() // real sleeper, honours cancellation

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Charge(ctx, risk.ProviderStripe, testRequest())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSuccessRate(t *testing.T) {
	rate, ok := SuccessRate(risk.ProviderStripe)
	require.True(t, ok)
	assert.Equal(t, 0.96, rate)

	rate, ok = SuccessRate(risk.ProviderPayPal)
	require.True(t, ok)
	assert.Equal(t, 0.94, rate)

	_, ok = SuccessRate(risk.Provider("venmo"))
	assert.False(t, ok)
}
