package circuitbreaker

import (
	"sync"
	"time"
)

// Registry hands out one breaker per provider name, all sharing the same
// threshold, reset timeout and probe budget.
type Registry struct {
	mutex            sync.RWMutex
	breakers         map[string]*CircuitBreaker
	threshold        int
	timeout          time.Duration
	halfOpenAttempts int
}

func NewRegistry(threshold int, timeout time.Duration, halfOpenAttempts int) *Registry {
	return &Registry{
		breakers:         make(map[string]*CircuitBreaker),
		threshold:        threshold,
		timeout:          timeout,
		halfOpenAttempts: halfOpenAttempts,
	}
}

func (r *Registry) GetBreaker(provider string) *CircuitBreaker {
	r.mutex.RLock()
	cb, exists := r.breakers[provider]
	r.mutex.RUnlock()

	if exists {
		return cb
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if cb, exists = r.breakers[provider]; exists {
		return cb
	}

	cb = NewCircuitBreakerWithProbes(r.threshold, r.timeout, r.halfOpenAttempts)
	r.breakers[provider] = cb
	return cb
}

func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.breakers = make(map[string]*CircuitBreaker)
}

func (r *Registry) Snapshot() map[string]State {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	states := make(map[string]State, len(r.breakers))
	for provider, cb := range r.breakers {
		states[provider] = cb.State()
	}
	return states
}
