package figma

import (
	"context"
	"sync"
	"time"
)

// DispatchState is the terminal state of one dispatch.
type DispatchState string

const (
	StateSucceeded    DispatchState = "succeeded"
	StateFailed       DispatchState = "failed"
	StateCancelled    DispatchState = "cancelled"
	StateDecodeFailed DispatchState = "decode_failed"
)

// DispatchEvent describes one finished dispatch.
type DispatchEvent struct {
	ID         string        `json:"id"`
	Category   Category      `json:"category"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	State      DispatchState `json:"state"`
	StatusCode int           `json:"status_code,omitempty"`
	Attempts   int           `json:"attempts"`
	LeaseWait  time.Duration `json:"lease_wait"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Time       time.Time     `json:"time"`
}

// Observer receives dispatch events. Implementations must not block; they
// are called on the dispatching goroutine.
type Observer interface {
	OnDispatch(ctx context.Context, event DispatchEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event DispatchEvent)

// OnDispatch calls f.
func (f ObserverFunc) OnDispatch(ctx context.Context, event DispatchEvent) {
	f(ctx, event)
}

// Metrics holds aggregate counters for one category.
type Metrics struct {
	TotalRequests       int64
	TotalFailures       int64
	TotalCancelled      int64
	TotalDecodeFailures int64
	TotalAttempts       int64
	TotalLatency        time.Duration
	AverageLatency      time.Duration
	TotalLeaseWait      time.Duration
	LastRequestTime     time.Time
}

// MetricsCollector aggregates dispatch events per category.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[Category]*Metrics
	onChange func(category Category, metrics Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[Category]*Metrics),
	}
}

// SetOnChange sets a callback for when metrics change.
func (m *MetricsCollector) SetOnChange(fn func(category Category, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a copy of the metrics for a category, or nil if the
// category has not been used.
func (m *MetricsCollector) GetMetrics(category Category) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[category]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

// OnDispatch implements Observer.
func (m *MetricsCollector) OnDispatch(_ context.Context, event DispatchEvent) {
	m.mu.Lock()

	metrics, ok := m.metrics[event.Category]
	if !ok {
		metrics = &Metrics{}
		m.metrics[event.Category] = metrics
	}

	metrics.TotalRequests++
	metrics.TotalAttempts += int64(event.Attempts)
	metrics.TotalLatency += event.Duration
	metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	metrics.TotalLeaseWait += event.LeaseWait
	metrics.LastRequestTime = event.Time

	switch event.State {
	case StateFailed:
		metrics.TotalFailures++
	case StateCancelled:
		metrics.TotalCancelled++
	case StateDecodeFailed:
		metrics.TotalDecodeFailures++
	case StateSucceeded:
	}

	snapshot := *metrics
	onChange := m.onChange

	m.mu.Unlock()

	if onChange != nil {
		onChange(event.Category, snapshot)
	}
}
