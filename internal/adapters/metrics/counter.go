// Package metrics provides request observers: an in-process counter, a
// Prometheus exporter and a fan-out combinator.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// Counter keeps running totals per outcome.
type Counter struct {
	total         atomic.Int64
	ok            atomic.Int64
	invalidFormat atomic.Int64
	invalidJSON   atomic.Int64
	serverError   atomic.Int64
}

// NewCounter creates a zeroed Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Observe implements ports.Observer.
func (c *Counter) Observe(outcome domain.Outcome, _ time.Duration) {
	c.total.Add(1)
	if n := c.counterFor(outcome); n != nil {
		n.Add(1)
	}
}

// Total returns the number of requests observed.
func (c *Counter) Total() int64 {
	return c.total.Load()
}

// Count returns the number of requests observed with outcome.
func (c *Counter) Count(outcome domain.Outcome) int64 {
	if n := c.counterFor(outcome); n != nil {
		return n.Load()
	}
	return 0
}

func (c *Counter) counterFor(outcome domain.Outcome) *atomic.Int64 {
	switch outcome {
	case domain.OutcomeOK:
		return &c.ok
	case domain.OutcomeInvalidFormat:
		return &c.invalidFormat
	case domain.OutcomeInvalidJSON:
		return &c.invalidJSON
	case domain.OutcomeServerError:
		return &c.serverError
	default:
		return nil
	}
}

// Multi fans every observation out to all observers in order.
type Multi []ports.Observer

// Observe implements ports.Observer.
func (m Multi) Observe(outcome domain.Outcome, elapsed time.Duration) {
	for _, o := range m {
		o.Observe(outcome, elapsed)
	}
}

// Nop discards observations.
type Nop struct{}

// Observe implements ports.Observer.
func (Nop) Observe(domain.Outcome, time.Duration) {}
