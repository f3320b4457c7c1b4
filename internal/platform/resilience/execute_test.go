package resilience

import (
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient")
	errRejected  = errors.New("rejected")
)

func TestExecute_OnlyCountedFailuresTrip(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreakerFromConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	isTransient := func(err error) bool { return errors.Is(err, errTransient) }

	for i := 0; i < 5; i++ {
		if err := Execute(breaker, func() error { return errRejected }, isTransient); !errors.Is(err, errRejected) {
			t.Fatalf("expected rejected error, got %v", err)
		}
	}
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("non-transient errors should not open the breaker, got %s", breaker.State())
	}

	for i := 0; i < 2; i++ {
		_ = Execute(breaker, func() error { return errTransient }, isTransient)
	}
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", breaker.State())
	}

	called := false
	err := Execute(breaker, func() error {
		called = true
		return nil
	}, isTransient)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run while breaker is open")
	}
}

func TestExecute_DisabledBreakerRunsDirectly(t *testing.T) {
	t.Parallel()

	breaker := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false})
	if breaker != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	calls := 0
	for i := 0; i < 10; i++ {
		_ = Execute(breaker, func() error {
			calls++
			return errTransient
		}, nil)
	}
	if calls != 10 {
		t.Fatalf("expected 10 calls, got %d", calls)
	}
}
