package circuitbreaker_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ticket-classifier/internal/circuitbreaker"
)

var _ = Describe("Registry", func() {
	var registry *circuitbreaker.Registry

	BeforeEach(func() {
		registry = circuitbreaker.NewRegistry(5, 60*time.Second, 1)
	})

	Describe("NewRegistry", func() {
		It("should create a registry", func() {
			Expect(registry).NotTo(BeNil())
		})
	})

	Describe("GetBreaker", func() {
		It("should create a new breaker for an unknown provider", func() {
			cb := registry.GetBreaker("gemini")
			Expect(cb).NotTo(BeNil())
			Expect(cb.State()).To(Equal(circuitbreaker.StateClosed))
		})

		It("should return the same breaker for the same provider", func() {
			cb1 := registry.GetBreaker("gemini")
			cb2 := registry.GetBreaker("gemini")
			Expect(cb1).To(BeIdenticalTo(cb2))
		})

		It("should return different breakers for different providers", func() {
			cb1 := registry.GetBreaker("gemini")
			cb2 := registry.GetBreaker("openai")
			Expect(cb1).NotTo(BeIdenticalTo(cb2))
		})

		It("should use registry threshold for new breakers", func() {
			registry = circuitbreaker.NewRegistry(2, 100*time.Millisecond, 1)
			cb := registry.GetBreaker("gemini")

			// Should open after 2 failures (not default)
			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.State()).To(Equal(circuitbreaker.StateOpen))
		})

		It("should use registry timeout for new breakers", func() {
			registry = circuitbreaker.NewRegistry(2, 50*time.Millisecond, 1)
			cb := registry.GetBreaker("gemini")

			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.Allow()).To(BeFalse())

			time.Sleep(80 * time.Millisecond)
			Expect(cb.Allow()).To(BeTrue())
		})

		It("should be safe under concurrent access", func() {
			var wg sync.WaitGroup
			breakers := make([]*circuitbreaker.CircuitBreaker, 50)

			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					breakers[idx] = registry.GetBreaker("gemini")
				}(i)
			}
			wg.Wait()

			for _, cb := range breakers {
				Expect(cb).To(BeIdenticalTo(breakers[0]))
			}
		})
	})

	Describe("Snapshot", func() {
		It("should report the state of every breaker", func() {
			registry = circuitbreaker.NewRegistry(1, time.Minute, 1)

			registry.GetBreaker("gemini")
			registry.GetBreaker("openai").RecordFailure()

			states := registry.Snapshot()
			Expect(states).To(HaveLen(2))
			Expect(states["gemini"]).To(Equal(circuitbreaker.StateClosed))
			Expect(states["openai"]).To(Equal(circuitbreaker.StateOpen))
		})
	})

	Describe("Reset", func() {
		It("should discard existing breakers", func() {
			cb1 := registry.GetBreaker("gemini")
			registry.Reset()
			cb2 := registry.GetBreaker("gemini")
			Expect(cb1).NotTo(BeIdenticalTo(cb2))
		})
	})
})
