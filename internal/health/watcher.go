package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/angeloszaimis/ticket-classifier/internal/classifier"
	"github.com/angeloszaimis/ticket-classifier/internal/metrics"
)

// Watch periodically observes provider availability derived from the
// enabled flags and circuit breaker states, logs transitions and emits
// state-change events to the metrics collector.
func Watch(
	ctx context.Context,
	cls *classifier.Classifier,
	interval time.Duration,
	logger *slog.Logger,
	events chan<- metrics.MetricEvent,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Availability watcher stopped")
			return

		case <-ticker.C:
			for name, ph := range cls.Health() {
				previous, seen := last[name]
				if seen && previous == ph.Available {
					continue
				}
				last[name] = ph.Available

				if ph.Available {
					logger.Info("Provider is available",
						slog.String("provider", name),
						slog.String("circuit", ph.CircuitState))
				} else {
					logger.Warn("Provider is unavailable",
						slog.String("provider", name),
						slog.String("circuit", ph.CircuitState),
						slog.Int("failures", ph.Failures))
				}

				emit(events, metrics.MetricEvent{
					Type:      metrics.EventProviderStateChanged,
					Timestamp: time.Now(),
					Provider:  name,
					Available: ph.Available,
				})
			}
		}
	}
}

func emit(events chan<- metrics.MetricEvent, event metrics.MetricEvent) {
	if events == nil {
		return
	}

	select {
	case events <- event:
	default:
	}
}
