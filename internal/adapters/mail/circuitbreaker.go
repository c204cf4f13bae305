package mail

import (
	"sync"
	"time"
)

// breakerState is the circuit state guarding the SMTP relay.
type breakerState int

const (
	// breakerClosed is the normal state. Sends go through.
	breakerClosed breakerState = iota

	// breakerOpen blocks sends after the relay failed repeatedly,
	// stopping a dead relay from eating every retry budget in a batch.
	breakerOpen

	// breakerHalfOpen lets a limited number of probe sends through to
	// test whether the relay recovered.
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerClosed:
		return "closed"
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// breakerConfig tunes the relay circuit breaker.
type breakerConfig struct {
	// FailureThreshold is the consecutive failures before the circuit
	// opens.
	FailureThreshold int

	// Cooldown is how long the circuit stays open before probing.
	Cooldown time.Duration

	// ProbeQuota is both the concurrent probe limit in half-open state
	// and the consecutive successes required to close again.
	ProbeQuota int
}

// breaker is a three-state circuit breaker.
//
// State transitions:
//   - closed -> open: after FailureThreshold consecutive failures
//   - open -> half-open: after Cooldown has passed
//   - half-open -> closed: after ProbeQuota consecutive successes
//   - half-open -> open: on any failure
type breaker struct {
	mu       sync.Mutex
	state    breakerState
	failures int
	probes   int // in-flight probes while half-open
	streak   int // consecutive probe successes
	openedAt time.Time
	cfg      breakerConfig

	onStateChange func(from, to breakerState)

	now func() time.Time
}

func newBreaker(cfg breakerConfig) *breaker {
	return &breaker{
		state: breakerClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// allow reports whether a send may proceed, transitioning open to
// half-open once the cooldown has passed.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true

	case breakerOpen:
		if b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
			b.transitionTo(breakerHalfOpen)
			b.probes = 1

			return true
		}

		return false

	case breakerHalfOpen:
		if b.probes >= b.cfg.ProbeQuota {
			return false
		}

		b.probes++

		return true

	default:
		return false
	}
}

// recordSuccess resets the failure streak, closing the circuit once
// enough half-open probes succeed.
func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		b.failures = 0

	case breakerHalfOpen:
		b.probes--
		b.streak++

		if b.streak >= b.cfg.ProbeQuota {
			b.transitionTo(breakerClosed)
		}
	}
}

// recordFailure counts a failed send. Any half-open failure reopens the
// circuit immediately.
func (b *breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.openedAt = b.now()

	switch b.state {
	case breakerClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transitionTo(breakerOpen)
		}

	case breakerHalfOpen:
		b.probes--

		b.transitionTo(breakerOpen)
	}
}

func (b *breaker) currentState() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// transitionTo must be called with the lock held.
func (b *breaker) transitionTo(next breakerState) {
	if b.state == next {
		return
	}

	prev := b.state
	b.state = next
	b.failures = 0
	b.streak = 0

	if b.onStateChange != nil {
		// Run outside the lock so a slow callback cannot stall sends.
		go b.onStateChange(prev, next)
	}
}
