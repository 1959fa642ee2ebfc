// Loadtest drives the classify endpoint concurrently and reports
// throughput, latency percentiles and per-provider distribution.
//
// Usage:
//
//	go run ./scripts/loadtest -url http://localhost:8080/api/v1/classify -concurrency 10 -requests 1000
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var sampleTickets = []string{
	"My wifi keeps dropping every few minutes",
	"I cannot log into my account anymore",
	"I was charged twice for my subscription",
	"Please add dark mode to the dashboard",
	"The app crashes when I open settings",
}

type classifyResponse struct {
	Category string `json:"category"`
	Provider string `json:"provider"`
}

func main() {
	url := flag.String("url", "http://localhost:8080/api/v1/classify", "classify endpoint URL")
	concurrency := flag.Int("concurrency", 10, "number of concurrent workers")
	requests := flag.Int("requests", 100, "total number of requests")
	flag.Parse()

	var (
		mutex     sync.Mutex
		latencies []time.Duration
		providers = make(map[string]int)
		failures  atomic.Int64
		next      atomic.Int64
	)

	client := &http.Client{Timeout: 30 * time.Second}
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				n := next.Add(1)
				if n > int64(*requests) {
					return
				}

				ticket := sampleTickets[int(n)%len(sampleTickets)]
				body, _ := json.Marshal(map[string]string{"ticket": ticket})

				reqStart := time.Now()
				resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
				elapsed := time.Since(reqStart)

				if err != nil {
					failures.Add(1)
					continue
				}

				data, _ := io.ReadAll(resp.Body)
				resp.Body.Close()

				if resp.StatusCode != http.StatusOK {
					failures.Add(1)
					continue
				}

				var parsed classifyResponse
				if err := json.Unmarshal(data, &parsed); err != nil {
					failures.Add(1)
					continue
				}

				mutex.Lock()
				latencies = append(latencies, elapsed)
				providers[parsed.Provider]++
				mutex.Unlock()
			}
		}()
	}

	wg.Wait()
	total := time.Since(start)

	if len(latencies) == 0 {
		fmt.Fprintln(os.Stderr, "no successful requests")
		os.Exit(1)
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	fmt.Printf("requests:    %d (failed: %d)\n", *requests, failures.Load())
	fmt.Printf("duration:    %s (%.1f req/s)\n", total.Round(time.Millisecond),
		float64(len(latencies))/total.Seconds())
	fmt.Printf("p50 latency: %s\n", percentile(latencies, 0.50))
	fmt.Printf("p95 latency: %s\n", percentile(latencies, 0.95))
	fmt.Printf("p99 latency: %s\n", percentile(latencies, 0.99))

	fmt.Println("providers:")
	for name, count := range providers {
		fmt.Printf("  %-12s %d\n", name, count)
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
