package classifier

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/ticket-classifier/internal/metrics"
	"github.com/angeloszaimis/ticket-classifier/internal/provider"
)

// Result is the outcome of one successful classification.
type Result struct {
	Category   string        `json:"category"`
	Confidence float64       `json:"confidence"`
	Priority   string        `json:"priority"`
	Provider   string        `json:"provider"`
	Latency    time.Duration `json:"latency"`
}

// Classifier routes tickets through the configured providers in priority
// order, falling back to the next provider on failure.
type Classifier struct {
	providers []*provider.Provider
	logger    *slog.Logger
	events    chan<- metrics.MetricEvent
	total     atomic.Int64
}

// NewClassifier creates a classifier over the given providers. The list is
// sorted once by priority; registration order breaks ties, so the stable
// sort keeps failover deterministic.
func NewClassifier(providers []*provider.Provider, logger *slog.Logger) *Classifier {
	ordered := make([]*provider.Provider, len(providers))
	copy(ordered, providers)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	return &Classifier{
		providers: ordered,
		logger:    logger,
	}
}

// SetEventChannel makes the classifier emit a provider_attempt event for
// every provider it consults. Emission never blocks; events are dropped
// when the channel is full.
func (c *Classifier) SetEventChannel(events chan<- metrics.MetricEvent) {
	c.events = events
}

func (c *Classifier) emit(event metrics.MetricEvent) {
	if c.events == nil {
		return
	}

	select {
	case c.events <- event:
	default:
	}
}

// Providers returns the failover chain in attempt order.
func (c *Classifier) Providers() []*provider.Provider {
	out := make([]*provider.Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Classify runs the failover chain for a single ticket. The first
// successful provider wins; lower-priority providers are only consulted
// after a failure. Providers whose breaker refuses the attempt are listed
// in the exhaustion error alongside real failures.
func (c *Classifier) Classify(ctx context.Context, ticket string) (*Result, error) {
	attempts := make([]Attempt, 0, len(c.providers))

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !p.IsEnabled() {
			c.logger.Debug("Skipping disabled provider", slog.String("provider", p.Name()))
			continue
		}

		cb := p.Breaker()
		if !cb.Allow() {
			c.logger.Debug("Circuit breaker refused attempt",
				slog.String("provider", p.Name()))
			attempts = append(attempts, Attempt{Provider: p.Name(), Reason: "circuit breaker open"})
			continue
		}

		c.emit(metrics.MetricEvent{
			Type:      metrics.EventProviderAttempt,
			Timestamp: time.Now(),
			Provider:  p.Name(),
		})

		result, latency, err := p.Classify(ctx, ticket)
		if err != nil {
			if ctx.Err() != nil {
				// Caller abort (cancel or deadline), not a provider
				// fault. Nothing is recorded against the breaker.
				return nil, ctx.Err()
			}

			cb.RecordFailure()
			attempts = append(attempts, Attempt{Provider: p.Name(), Reason: err.Error()})

			c.logger.Warn("Provider classification failed",
				slog.String("provider", p.Name()),
				slog.String("kind", string(provider.KindOf(err))),
				slog.Any("err", err))

			if provider.IsNonRetryable(err) {
				if p.SetEnabled(false) {
					c.logger.Warn("Provider disabled after authentication failure",
						slog.String("provider", p.Name()))
				}
			}
			continue
		}

		cb.RecordSuccess()
		c.total.Add(1)

		c.logger.Info("Ticket classified",
			slog.String("provider", p.Name()),
			slog.String("category", result.Category),
			slog.Duration("latency", latency))

		return &Result{
			Category:   result.Category,
			Confidence: result.Confidence,
			Priority:   provider.PriorityFor(result.Category),
			Provider:   p.Name(),
			Latency:    latency,
		}, nil
	}

	c.logger.Error("All providers unavailable",
		slog.Int("attempted", len(attempts)))

	return nil, &AllProvidersUnavailableError{Attempts: attempts}
}
