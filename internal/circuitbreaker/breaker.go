package circuitbreaker

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Blocking requests
	StateHalfOpen              // Probing recovery
)

type CircuitBreaker struct {
	mutex            sync.Mutex
	state            State
	failures         int
	lastFailure      time.Time
	lastProbe        time.Time
	failureThreshold int
	resetTimeout     time.Duration
	halfOpenAttempts int
	probes           int
}

// NewCircuitBreaker creates a closed breaker that opens after threshold
// failures and permits a single recovery probe per reset timeout.
func NewCircuitBreaker(threshold int, timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreakerWithProbes(threshold, timeout, 1)
}

// NewCircuitBreakerWithProbes allows a bounded number of sequential
// half-open probes before the breaker re-opens. Attempts below 1 are
// treated as 1.
func NewCircuitBreakerWithProbes(threshold int, timeout time.Duration, attempts int) *CircuitBreaker {
	if attempts < 1 {
		attempts = 1
	}

	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: threshold,
		resetTimeout:     timeout,
		halfOpenAttempts: attempts,
	}
}

// Allow reports whether a request may proceed. When the breaker is open
// and the reset timeout has elapsed it transitions to half-open as a side
// effect and permits the probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastFailure) >= cb.resetTimeout {
			cb.state = StateHalfOpen
			cb.probes = 1
			cb.lastProbe = time.Now()
			return true
		}

		return false
	case StateHalfOpen:
		if cb.probes < cb.halfOpenAttempts {
			cb.probes++
			cb.lastProbe = time.Now()
			return true
		}

		// A probe whose outcome was never reported (caller abort)
		// would wedge the breaker here. Once the half-open state is
		// older than the reset timeout, re-admit one probe.
		if time.Since(cb.lastProbe) >= cb.resetTimeout {
			cb.probes = 1
			cb.lastProbe = time.Now()
			return true
		}

		return false
	default:
		return true
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()

	if cb.state == StateHalfOpen {
		if cb.probes >= cb.halfOpenAttempts {
			cb.state = StateOpen
			cb.probes = 0
		}
		return
	}

	if cb.failures >= cb.failureThreshold {
		cb.state = StateOpen
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures = 0
	cb.probes = 0
	cb.state = StateClosed
}

func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Failures returns the current failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.failures
}

// Threshold returns the configured failure threshold.
func (cb *CircuitBreaker) Threshold() int {
	return cb.failureThreshold
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}
