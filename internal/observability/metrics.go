package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	path   string
	method string
}

type routeStats struct {
	count   int64
	latency time.Duration
}

// Metrics keeps per-route request and error counters in memory. The request
// logger feeds it on every response; the error middleware on every failure.
type Metrics struct {
	mu       sync.Mutex
	requests map[routeKey]*routeStats
	errors   map[string]int64
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[routeKey]*routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{path: path, method: method}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &routeStats{}
		m.requests[key] = stats
	}
	stats.count++
	stats.latency += duration
}

// RecordError counts a failed request under its error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+" "+method+" "+code]++
}

// RequestCount returns the number of requests seen for a route.
func (m *Metrics) RequestCount(path, method string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stats, ok := m.requests[routeKey{path: path, method: method}]; ok {
		return stats.count
	}
	return 0
}

// ErrorCount returns the number of failures recorded for a route and code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[path+" "+method+" "+code]
}
