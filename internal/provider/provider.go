package provider

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/ticket-classifier/internal/circuitbreaker"
)

// Provider type identifiers used in configuration.
const (
	TypeGemini    = "gemini"
	TypeOpenAI    = "openai"
	TypeAnthropic = "anthropic"
	TypeMock      = "mock"
)

// Config describes a single classification backend.
// Priority orders failover attempts (lower is tried first, ties broken by
// registration order). Enabled may be flipped at runtime.
type Config struct {
	Name     string
	Type     string
	Model    string
	Priority int
	Enabled  bool
	Timeout  time.Duration
}

// Classification is a provider's raw answer before normalization.
type Classification struct {
	Category   string
	Confidence float64
}

// Adapter translates a ticket into a provider-specific API call.
// Implementations must honor ctx cancellation and return *ClassifyError
// for failures they can classify.
type Adapter interface {
	Classify(ctx context.Context, ticket string) (Classification, error)
	Name() string
	Model() string
}

// Provider pairs an adapter with its config, circuit breaker and
// cumulative usage counters.
type Provider struct {
	config  Config
	adapter Adapter
	breaker *circuitbreaker.CircuitBreaker

	mutex        sync.Mutex
	successes    int64
	failures     int64
	totalLatency time.Duration
	attempts     int64

	enabled atomic.Bool
}

// Counters is a point-in-time copy of a provider's usage counters.
type Counters struct {
	Successes  int64
	Failures   int64
	AvgLatency time.Duration
}

func New(cfg Config, adapter Adapter, breaker *circuitbreaker.CircuitBreaker) *Provider {
	p := &Provider{
		config:  cfg,
		adapter: adapter,
		breaker: breaker,
	}
	p.enabled.Store(cfg.Enabled)
	return p
}

func (p *Provider) Name() string {
	return p.config.Name
}

func (p *Provider) Priority() int {
	return p.config.Priority
}

func (p *Provider) Breaker() *circuitbreaker.CircuitBreaker {
	return p.breaker
}

func (p *Provider) IsEnabled() bool {
	return p.enabled.Load()
}

// SetEnabled updates the enabled flag.
// Returns true if the flag changed, false if it was already in that state.
func (p *Provider) SetEnabled(enabled bool) (changed bool) {
	return p.enabled.Swap(enabled) != enabled
}

// Classify runs the adapter under the configured timeout, normalizes the
// returned category and updates the usage counters. The circuit breaker is
// deliberately not touched here; recording outcomes against it is the
// router's call.
func (p *Provider) Classify(ctx context.Context, ticket string) (Classification, time.Duration, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := p.adapter.Classify(ctx, ticket)
	latency := time.Since(start)

	if err != nil {
		p.record(false, latency)
		return Classification{}, latency, err
	}

	category, ok := NormalizeCategory(result.Category)
	if !ok {
		p.record(false, latency)
		return Classification{}, latency, &ClassifyError{
			Provider: p.config.Name,
			Kind:     FailureMalformed,
			Err:      errUnknownCategory(result.Category),
		}
	}

	result.Category = category
	p.record(true, latency)
	return result, latency, nil
}

func (p *Provider) record(success bool, latency time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if success {
		p.successes++
	} else {
		p.failures++
	}
	p.attempts++
	p.totalLatency += latency
}

// Counters returns the cumulative usage counters. The average latency
// covers all attempts, successful or not.
func (p *Provider) Counters() Counters {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	c := Counters{
		Successes: p.successes,
		Failures:  p.failures,
	}
	if p.attempts > 0 {
		c.AvgLatency = p.totalLatency / time.Duration(p.attempts)
	}
	return c
}
