package classifier

import (
	"time"

	"github.com/angeloszaimis/ticket-classifier/internal/circuitbreaker"
)

// ProviderHealth is the read-only health view of one provider.
type ProviderHealth struct {
	Available    bool   `json:"available"`
	CircuitState string `json:"circuit_state"`
	Failures     int    `json:"failure_count"`
	Threshold    int    `json:"failure_threshold"`
}

// ProviderStats is the read-only usage view of one provider.
type ProviderStats struct {
	Successes  int64         `json:"success_count"`
	Failures   int64         `json:"failure_count"`
	AvgLatency time.Duration `json:"avg_latency"`
}

// StatsReport aggregates usage across the failover chain.
type StatsReport struct {
	TotalClassifications int64                    `json:"total_classifications"`
	Providers            map[string]ProviderStats `json:"providers"`
}

// Health derives per-provider availability from the enabled flags and
// circuit breaker states at call time. No side effects.
func (c *Classifier) Health() map[string]ProviderHealth {
	report := make(map[string]ProviderHealth, len(c.providers))

	for _, p := range c.providers {
		cb := p.Breaker()
		state := cb.State()

		report[p.Name()] = ProviderHealth{
			Available:    p.IsEnabled() && state != circuitbreaker.StateOpen,
			CircuitState: state.String(),
			Failures:     cb.Failures(),
			Threshold:    cb.Threshold(),
		}
	}

	return report
}

// Stats returns cumulative usage counters per provider plus the global
// classification count.
func (c *Classifier) Stats() StatsReport {
	report := StatsReport{
		TotalClassifications: c.total.Load(),
		Providers:            make(map[string]ProviderStats, len(c.providers)),
	}

	for _, p := range c.providers {
		counters := p.Counters()
		report.Providers[p.Name()] = ProviderStats{
			Successes:  counters.Successes,
			Failures:   counters.Failures,
			AvgLatency: counters.AvgLatency,
		}
	}

	return report
}
