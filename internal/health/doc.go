// Package health watches provider availability transitions.
//
// Unlike an active prober, the watcher derives availability from the
// classifier's own breaker and enabled state, so it adds no traffic to the
// upstream providers.
package health
