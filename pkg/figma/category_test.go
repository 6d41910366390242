package figma_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	t.Parallel()

	categories := figma.Categories()
	assert.Len(t, categories, 10)

	defaults := figma.DefaultBuckets()

	for _, category := range categories {
		assert.True(t, category.Valid(), category)
		assert.Contains(t, defaults, category)
	}

	assert.False(t, figma.Category("unknown").Valid())
	assert.Equal(t, "file_image", figma.CategoryFileImage.String())
}

func TestDefaultBuckets(t *testing.T) {
	t.Parallel()

	defaults := figma.DefaultBuckets()

	assert.Equal(t, figma.BucketConfig{
		Capacity:        6000,
		TokensPerPeriod: 30,
		Period:          time.Minute,
		Replenishment:   figma.ReplenishPeriodic,
	}, defaults[figma.CategoryImage])
	assert.Equal(t, 24000, defaults[figma.CategoryFile].Capacity)
	assert.Equal(t, 600, defaults[figma.CategoryRecentFiles].TokensPerPeriod)

	for category, bucket := range defaults {
		require.NoError(t, bucket.Validate(), category)
	}

	defaults[figma.CategoryImage] = figma.BucketConfig{Capacity: 1}
	assert.Equal(t, 6000, figma.DefaultBuckets()[figma.CategoryImage].Capacity, "callers get a copy")
}

func TestMergeBuckets(t *testing.T) {
	t.Parallel()

	merged, err := figma.MergeBuckets(map[figma.Category]figma.BucketConfig{
		figma.CategoryImage: {Capacity: 10, Replenishment: figma.ReplenishSmooth},
	})
	require.NoError(t, err)

	image := merged[figma.CategoryImage]
	assert.Equal(t, 10, image.Capacity)
	assert.Equal(t, 30, image.TokensPerPeriod, "zero fields inherit the default")
	assert.Equal(t, time.Minute, image.Period)
	assert.Equal(t, figma.ReplenishSmooth, image.Replenishment)

	assert.Equal(t, figma.DefaultBuckets()[figma.CategoryFile], merged[figma.CategoryFile])
}

func TestMergeBuckets_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[figma.Category]figma.BucketConfig
		wantErr   error
	}{
		{
			name:      "unknown category",
			overrides: map[figma.Category]figma.BucketConfig{"teams": {Capacity: 1}},
			wantErr:   figma.ErrUnknownCategory,
		},
		{
			name:      "negative capacity",
			overrides: map[figma.Category]figma.BucketConfig{figma.CategoryFile: {Capacity: -1}},
			wantErr:   figma.ErrInvalidBucketConfig,
		},
		{
			name:      "unknown replenishment",
			overrides: map[figma.Category]figma.BucketConfig{figma.CategoryFile: {Replenishment: "bursty"}},
			wantErr:   figma.ErrInvalidBucketConfig,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := figma.MergeBuckets(tt.overrides)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
