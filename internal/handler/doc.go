// Package handler exposes the classification API: single and batch
// classify endpoints plus provider health, usage stats and a metrics
// snapshot.
package handler
