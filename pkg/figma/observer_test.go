package figma_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := figma.NewMetricsCollector()
	ctx := context.Background()

	assert.Nil(t, collector.GetMetrics(figma.CategoryFile))

	var (
		mu      sync.Mutex
		changes []figma.Category
	)

	collector.SetOnChange(func(category figma.Category, _ figma.Metrics) {
		mu.Lock()
		defer mu.Unlock()

		changes = append(changes, category)
	})

	now := time.Now()

	events := []figma.DispatchEvent{
		{Category: figma.CategoryFile, State: figma.StateSucceeded, Attempts: 1, Duration: 10 * time.Millisecond, Time: now},
		{Category: figma.CategoryFile, State: figma.StateFailed, Attempts: 10, Duration: 30 * time.Millisecond, Time: now},
		{Category: figma.CategoryFile, State: figma.StateDecodeFailed, Attempts: 1, Duration: 20 * time.Millisecond, LeaseWait: time.Second, Time: now},
		{Category: figma.CategoryImage, State: figma.StateCancelled, Time: now},
	}

	for _, event := range events {
		collector.OnDispatch(ctx, event)
	}

	file := collector.GetMetrics(figma.CategoryFile)
	require.NotNil(t, file)
	assert.Equal(t, int64(3), file.TotalRequests)
	assert.Equal(t, int64(1), file.TotalFailures)
	assert.Equal(t, int64(1), file.TotalDecodeFailures)
	assert.Equal(t, int64(12), file.TotalAttempts)
	assert.Equal(t, 60*time.Millisecond, file.TotalLatency)
	assert.Equal(t, 20*time.Millisecond, file.AverageLatency)
	assert.Equal(t, time.Second, file.TotalLeaseWait)

	image := collector.GetMetrics(figma.CategoryImage)
	require.NotNil(t, image)
	assert.Equal(t, int64(1), image.TotalCancelled)

	file.TotalRequests = 100
	assert.Equal(t, int64(3), collector.GetMetrics(figma.CategoryFile).TotalRequests, "GetMetrics returns a copy")

	mu.Lock()
	defer mu.Unlock()

	assert.Len(t, changes, len(events))
}

func TestMetricsCollector_Concurrent(t *testing.T) {
	t.Parallel()

	collector := figma.NewMetricsCollector()

	var waitGroup sync.WaitGroup

	for i := 0; i < 50; i++ {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			collector.OnDispatch(context.Background(), figma.DispatchEvent{Category: figma.CategoryComment, State: figma.StateSucceeded})
		}()
	}

	waitGroup.Wait()

	assert.Equal(t, int64(50), collector.GetMetrics(figma.CategoryComment).TotalRequests)
}

func TestObserverFunc(t *testing.T) {
	t.Parallel()

	var got figma.DispatchEvent

	var observer figma.Observer = figma.ObserverFunc(func(_ context.Context, event figma.DispatchEvent) {
		got = event
	})

	observer.OnDispatch(context.Background(), figma.DispatchEvent{ID: "abc", State: figma.StateSucceeded})
	assert.Equal(t, "abc", got.ID)
}
