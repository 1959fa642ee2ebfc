package metrics_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ticket-classifier/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("Snapshot", func() {
		It("should start empty with a running uptime", func() {
			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(BeZero())
			Expect(snap.Categories).To(BeEmpty())
			Expect(snap.Providers).To(BeEmpty())
			Expect(snap.Uptime).To(BeNumerically(">=", 0))
		})

		It("should aggregate counters per provider", func() {
			m.IncrementRequests()
			m.IncrementRequests()
			m.RecordAttempt("gemini")
			m.RecordCompletion("gemini", "Payment Issue", 30*time.Millisecond, true)
			m.RecordCompletion("gemini", "", 50*time.Millisecond, false)
			m.UpdateAvailability("gemini", true)

			snap := m.Snapshot()
			Expect(snap.TotalRequests).To(Equal(int64(2)))
			Expect(snap.Categories["Payment Issue"]).To(Equal(int64(1)))

			pm := snap.Providers["gemini"]
			Expect(pm.Attempts).To(Equal(int64(1)))
			Expect(pm.Successes).To(Equal(int64(1)))
			Expect(pm.Failures).To(Equal(int64(1)))
			Expect(pm.Available).To(BeTrue())
			Expect(pm.AvgLatency).To(Equal(40 * time.Millisecond))
		})

		It("should compute latency percentiles over recorded completions", func() {
			for i := 1; i <= 100; i++ {
				m.RecordCompletion("gemini", "Other", time.Duration(i)*time.Millisecond, true)
			}

			pm := m.Snapshot().Providers["gemini"]
			Expect(pm.P50Latency).To(Equal(51 * time.Millisecond))
			Expect(pm.P95Latency).To(Equal(96 * time.Millisecond))
			Expect(pm.P99Latency).To(Equal(100 * time.Millisecond))
		})

		It("should include providers known only from availability updates", func() {
			m.UpdateAvailability("anthropic", false)

			snap := m.Snapshot()
			Expect(snap.Providers).To(HaveKey("anthropic"))
			Expect(snap.Providers["anthropic"].Available).To(BeFalse())
		})
	})
})

var _ = Describe("Collector handler", func() {
	It("should serve the snapshot as JSON", func() {
		collector := metrics.NewCollector(8, quietLogger())

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		collector.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var snap metrics.Snapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snap)).To(Succeed())
	})
})
