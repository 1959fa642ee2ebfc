// Package classifier routes support tickets through a priority-ordered
// chain of classification providers.
//
// Each provider is guarded by a circuit breaker. A classification attempt
// walks the chain in priority order, skips disabled providers and open
// breakers, and returns the first successful result. Failures are absorbed
// into the fallback loop; only total exhaustion surfaces to the caller, as
// an AllProvidersUnavailableError listing every attempted provider.
//
// First-success-wins keeps the chain a failover preference list, not an
// ensemble: the cheaper primary provider handles the common case and the
// fallbacks only see traffic when it is down.
package classifier
