// Package circuitbreaker implements the circuit breaker pattern for provider failover.
//
// A circuit breaker stops sending requests to a failing classification
// provider after repeated failures, then cautiously probes recovery. It has
// three states:
//
//   - CLOSED: Normal operation, requests pass through
//   - OPEN: Provider failing, requests blocked
//   - HALF-OPEN: Testing if the provider recovered
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(5, 60*time.Second, 1)
//	cb := registry.GetBreaker("gemini")
//	if cb.Allow() {
//	    // Call the provider...
//	    if err != nil {
//	        cb.RecordFailure()
//	    } else {
//	        cb.RecordSuccess()
//	    }
//	}
package circuitbreaker
