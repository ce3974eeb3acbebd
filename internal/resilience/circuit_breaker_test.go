package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("downstream unavailable")

func newTestBreaker() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "test",
		MaxFailures: 3,
		CoolOff:     50 * time.Millisecond,
		HalfOpenMax: 2,
	})
}

func fail(context.Context) error { return errFlaky }
func succeed(context.Context) error { return nil }

func tripBreaker(t *testing.T, cb *CircuitBreaker) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(context.Background(), fail), errFlaky)
	}
	require.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := newTestBreaker()
	ctx := context.Background()

	assert.ErrorIs(t, cb.Execute(ctx, fail), errFlaky)
	assert.ErrorIs(t, cb.Execute(ctx, fail), errFlaky)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, fail), errFlaky)
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker()
	ctx := context.Background()

	cb.Execute(ctx, fail)
	cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, succeed))

	cb.Execute(ctx, fail)
	cb.Execute(ctx, fail)
	assert.Equal(t, StateClosed, cb.State(), "the counter restarts after a success")
}

func TestCircuitBreaker_HalfOpenAfterCoolOff(t *testing.T) {
	cb := newTestBreaker()
	tripBreaker(t, cb)

	time.Sleep(60 * time.Millisecond)

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateHalfOpen, cb.State())
}

func TestCircuitBreaker_ClosesAfterHalfOpenSuccesses(t *testing.T) {
	cb := newTestBreaker()
	tripBreaker(t, cb)
	time.Sleep(60 * time.Millisecond)

	ctx := context.Background()
	require.NoError(t, cb.Execute(ctx, succeed))
	require.NoError(t, cb.Execute(ctx, succeed))

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	cb := newTestBreaker()
	tripBreaker(t, cb)
	time.Sleep(60 * time.Millisecond)

	require.ErrorIs(t, cb.Execute(context.Background(), fail), errFlaky)

	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), succeed), ErrCircuitOpen)
}

func TestCircuitBreaker_CanceledContextCountsAsFailure(t *testing.T) {
	cb := newTestBreaker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "fn must not run once the context is dead")
	assert.Equal(t, 1, cb.Snapshot().Failures)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := newTestBreaker()
	tripBreaker(t, cb)

	cb.Reset()

	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Execute(context.Background(), succeed))
}

func TestCircuitBreaker_Snapshot(t *testing.T) {
	cb := newTestBreaker()
	ctx := context.Background()

	cb.Execute(ctx, fail)
	stats := cb.Snapshot()

	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, 1, stats.Failures)
	assert.False(t, stats.LastFail.IsZero())
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "defaults"})

	assert.Equal(t, 5, cb.maxFailures)
	assert.Equal(t, 30*time.Second, cb.coolOff)
	assert.Equal(t, 3, cb.halfOpenMax)
}
