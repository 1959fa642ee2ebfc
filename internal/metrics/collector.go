package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventClassificationRequested EventType = "classification_requested"
	EventProviderAttempt         EventType = "provider_attempt"
	EventClassificationCompleted EventType = "classification_completed"
	EventProviderStateChanged    EventType = "provider_state_changed"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Provider  string
	Category  string
	Duration  time.Duration
	Success   bool
	Available bool
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// EventChannel returns the channel producers emit into. Producers should
// drop events rather than block when the buffer is full.
func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventClassificationRequested:
		c.metrics.IncrementRequests()

	case EventProviderAttempt:
		c.metrics.RecordAttempt(event.Provider)

	case EventClassificationCompleted:
		c.metrics.RecordCompletion(event.Provider, event.Category, event.Duration, event.Success)

	case EventProviderStateChanged:
		c.metrics.UpdateAvailability(event.Provider, event.Available)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
