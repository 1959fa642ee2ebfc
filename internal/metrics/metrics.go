package metrics

import (
	"sort"
	"sync"
	"time"
)

const latencyWindow = 1000

type Metrics struct {
	mutex        sync.RWMutex
	requests     int64
	attempts     map[string]int64
	successes    map[string]int64
	failures     map[string]int64
	latencies    map[string][]time.Duration
	categories   map[string]int64
	availability map[string]bool
	startTime    time.Time
}

type Snapshot struct {
	TotalRequests int64                      `json:"total_requests"`
	Uptime        time.Duration              `json:"uptime"`
	Categories    map[string]int64           `json:"categories"`
	Providers     map[string]ProviderMetrics `json:"providers"`
}

type ProviderMetrics struct {
	Attempts   int64         `json:"attempts"`
	Successes  int64         `json:"successes"`
	Failures   int64         `json:"failures"`
	Available  bool          `json:"available"`
	AvgLatency time.Duration `json:"avg_latency"`
	P50Latency time.Duration `json:"p50_latency"`
	P95Latency time.Duration `json:"p95_latency"`
	P99Latency time.Duration `json:"p99_latency"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		attempts:     make(map[string]int64),
		successes:    make(map[string]int64),
		failures:     make(map[string]int64),
		latencies:    make(map[string][]time.Duration),
		categories:   make(map[string]int64),
		availability: make(map[string]bool),
		startTime:    time.Now(),
	}
}

func (m *Metrics) IncrementRequests() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests++
}

func (m *Metrics) RecordAttempt(provider string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.attempts[provider]++
}

func (m *Metrics) RecordCompletion(provider, category string, duration time.Duration, success bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if success {
		m.successes[provider]++
		m.categories[category]++
	} else {
		m.failures[provider]++
	}

	m.latencies[provider] = append(m.latencies[provider], duration)
	if len(m.latencies[provider]) > latencyWindow {
		m.latencies[provider] = m.latencies[provider][1:]
	}
}

func (m *Metrics) UpdateAvailability(provider string, available bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.availability[provider] = available
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		TotalRequests: m.requests,
		Uptime:        time.Since(m.startTime),
		Categories:    make(map[string]int64, len(m.categories)),
		Providers:     make(map[string]ProviderMetrics),
	}

	for category, count := range m.categories {
		snap.Categories[category] = count
	}

	// Collect all provider names across the maps
	allProviders := make(map[string]bool)
	for p := range m.attempts {
		allProviders[p] = true
	}
	for p := range m.successes {
		allProviders[p] = true
	}
	for p := range m.failures {
		allProviders[p] = true
	}
	for p := range m.availability {
		allProviders[p] = true
	}

	for p := range allProviders {
		pm := ProviderMetrics{
			Attempts:  m.attempts[p],
			Successes: m.successes[p],
			Failures:  m.failures[p],
			Available: m.availability[p],
		}

		durations := m.latencies[p]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			pm.AvgLatency = average(sorted)
			pm.P50Latency = percentile(sorted, 0.50)
			pm.P95Latency = percentile(sorted, 0.95)
			pm.P99Latency = percentile(sorted, 0.99)
		}

		snap.Providers[p] = pm
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
