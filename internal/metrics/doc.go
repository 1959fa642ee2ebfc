// Package metrics collects classification events through a buffered
// channel and serves aggregated snapshots.
//
// Producers emit events without blocking; the collector goroutine folds
// them into per-provider counters and a bounded latency window, and the
// HTTP handler exposes the snapshot as JSON.
package metrics
