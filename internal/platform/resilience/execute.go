package resilience

// Execute runs fn behind the breaker. Only errors accepted by countsAsFailure
// trip the breaker; a nil breaker runs fn directly.
func Execute(b *CircuitBreaker, fn func() error, countsAsFailure func(error) bool) error {
	if b == nil {
		return fn()
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (countsAsFailure == nil || countsAsFailure(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}
