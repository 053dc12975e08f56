package replay

import (
	"context"
	"time"

	"webhook-verifier/internal/circuitbreaker"
	"webhook-verifier/internal/common/logging"
)

// BreakerGuard stops calling an unhealthy store until it recovers, so that
// a Redis outage costs one fast error per request instead of a timeout.
type BreakerGuard struct {
	next    Guard
	breaker *circuitbreaker.Breaker
}

// NewBreakerGuard wraps next with a circuit breaker.
func NewBreakerGuard(next Guard, config circuitbreaker.Config, logger logging.Logger) *BreakerGuard {
	return &BreakerGuard{
		next:    next,
		breaker: circuitbreaker.New("replay-store", config, logger),
	}
}

// Seen implements Guard.
func (g *BreakerGuard) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	var seen bool
	err := g.breaker.Execute(func() error {
		var err error
		seen, err = g.next.Seen(ctx, key, ttl)
		return err
	})
	return seen, err
}
