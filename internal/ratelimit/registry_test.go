package ratelimit_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/figma/internal/ratelimit"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Defaults(t *testing.T) {
	t.Parallel()

	registry, err := ratelimit.NewRegistry(figma.DefaultBuckets())
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	snapshot := registry.Snapshot()
	require.Len(t, snapshot, len(figma.Categories()))

	for i := 1; i < len(snapshot); i++ {
		assert.Less(t, string(snapshot[i-1].Category), string(snapshot[i].Category))
	}

	file, err := registry.Bucket(figma.CategoryFile)
	require.NoError(t, err)

	status := file.Status()
	assert.Equal(t, 24000, status.Capacity)
	assert.Equal(t, 24000, status.Available, "buckets start full")
	assert.Equal(t, 120, status.TokensPerPeriod)
	assert.Equal(t, time.Minute, status.Period)
}

func TestRegistry_CategoriesAreIndependent(t *testing.T) {
	t.Parallel()

	registry, err := ratelimit.NewRegistry(map[figma.Category]figma.BucketConfig{
		figma.CategoryFile:  {Capacity: 2, TokensPerPeriod: 1, Period: time.Hour, Replenishment: figma.ReplenishPeriodic},
		figma.CategoryImage: {Capacity: 2, TokensPerPeriod: 1, Period: time.Hour, Replenishment: figma.ReplenishPeriodic},
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	file, err := registry.Bucket(figma.CategoryFile)
	require.NoError(t, err)

	image, err := registry.Bucket(figma.CategoryImage)
	require.NoError(t, err)

	for file.TryAcquire().Acquired() {
	}

	assert.Equal(t, 0, file.Available())
	assert.True(t, image.TryAcquire().Acquired())
	assert.Equal(t, 1, image.Available())
}

func TestRegistry_UnknownCategory(t *testing.T) {
	t.Parallel()

	registry, err := ratelimit.NewRegistry(map[figma.Category]figma.BucketConfig{
		figma.CategoryFile: {Capacity: 1, TokensPerPeriod: 1, Period: time.Hour, Replenishment: figma.ReplenishPeriodic},
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	_, err = registry.Bucket(figma.CategoryWebhook)
	require.ErrorIs(t, err, figma.ErrUnknownCategory)
}

func TestRegistry_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := ratelimit.NewRegistry(map[figma.Category]figma.BucketConfig{
		figma.CategoryFile:  {Capacity: 1, TokensPerPeriod: 1, Period: time.Hour, Replenishment: figma.ReplenishPeriodic},
		figma.CategoryImage: {Capacity: 0, TokensPerPeriod: 1, Period: time.Hour, Replenishment: figma.ReplenishPeriodic},
	})
	require.ErrorIs(t, err, figma.ErrInvalidBucketConfig)
}
