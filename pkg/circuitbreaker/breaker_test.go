package circuitbreaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/pkg/circuitbreaker"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

var errDown = errors.New("redis down")

func TestBreakerOpensAfterThreshold(t *testing.T) {
	cb := circuitbreaker.New("cache", circuitbreaker.Config{FailureThreshold: 3})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(func() error { return errDown }), errDown)
	}
	require.Equal(t, circuitbreaker.StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	require.False(t, called)
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	cb := circuitbreaker.New("cache", circuitbreaker.Config{FailureThreshold: 2})

	require.Error(t, cb.Execute(func() error { return errDown }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errDown }))
	require.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	clk := &clock{now: time.Unix(1_700_000_000, 0)}
	var transitions []string
	cb := circuitbreaker.New("cache", circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      time.Minute,
		Now:              clk.Now,
		OnStateChange: func(_ string, from, to circuitbreaker.State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	require.Error(t, cb.Execute(func() error { return errDown }))
	require.Equal(t, circuitbreaker.StateOpen, cb.State())

	clk.now = clk.now.Add(time.Minute)
	require.Equal(t, circuitbreaker.StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Equal(t, circuitbreaker.StateHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Equal(t, circuitbreaker.StateClosed, cb.State())

	require.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	clk := &clock{now: time.Unix(1_700_000_000, 0)}
	cb := circuitbreaker.New("cache", circuitbreaker.Config{
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		Now:              clk.Now,
	})

	require.Error(t, cb.Execute(func() error { return errDown }))
	clk.now = clk.now.Add(time.Second)
	require.Error(t, cb.Execute(func() error { return errDown }))
	require.Equal(t, circuitbreaker.StateOpen, cb.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	cb := circuitbreaker.New("cache", circuitbreaker.Config{FailureThreshold: 1})

	require.Panics(t, func() {
		_ = cb.Execute(func() error { panic("boom") })
	})
	require.Equal(t, circuitbreaker.StateOpen, cb.State())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unknown", circuitbreaker.State(42).String())
}
