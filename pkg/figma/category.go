package figma

import (
	"fmt"
	"sort"
	"time"
)

// Category names a Figma rate-limit class. Each category owns an
// independent token bucket.
type Category string

const (
	CategoryFile        Category = "file"
	CategoryImage       Category = "image"
	CategoryFileImage   Category = "file_image"
	CategoryWebhook     Category = "webhook"
	CategoryVersion     Category = "version"
	CategoryComment     Category = "comment"
	CategoryTeam        Category = "team"
	CategoryProject     Category = "project"
	CategorySelection   Category = "selection"
	CategoryRecentFiles Category = "recent_files"
)

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryFile,
		CategoryImage,
		CategoryFileImage,
		CategoryWebhook,
		CategoryVersion,
		CategoryComment,
		CategoryTeam,
		CategoryProject,
		CategorySelection,
		CategoryRecentFiles,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := defaultBuckets[c]

	return ok
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Replenishment selects how a bucket refills.
type Replenishment string

const (
	// ReplenishPeriodic adds TokensPerPeriod at every Period boundary.
	ReplenishPeriodic Replenishment = "periodic"
	// ReplenishSmooth spreads TokensPerPeriod evenly across Period.
	ReplenishSmooth Replenishment = "smooth"
)

// BucketConfig describes one category's token bucket.
type BucketConfig struct {
	Capacity        int           `json:"capacity"          yaml:"capacity"          mapstructure:"capacity"`
	TokensPerPeriod int           `json:"tokens_per_period" yaml:"tokens_per_period" mapstructure:"tokens_per_period"`
	Period          time.Duration `json:"period"            yaml:"period"            mapstructure:"period"`
	Replenishment   Replenishment `json:"replenishment"     yaml:"replenishment"     mapstructure:"replenishment"`
}

// Validate checks the bucket parameters.
func (b BucketConfig) Validate() error {
	if b.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidBucketConfig, b.Capacity)
	}

	if b.TokensPerPeriod <= 0 {
		return fmt.Errorf("%w: tokens per period must be positive, got %d", ErrInvalidBucketConfig, b.TokensPerPeriod)
	}

	if b.Period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %s", ErrInvalidBucketConfig, b.Period)
	}

	switch b.Replenishment {
	case ReplenishPeriodic:
	case ReplenishSmooth:
		// A zero interval would make the limiter unbounded.
		if b.Period/time.Duration(b.TokensPerPeriod) <= 0 {
			return fmt.Errorf("%w: period %s is too short for %d tokens", ErrInvalidBucketConfig, b.Period, b.TokensPerPeriod)
		}
	default:
		return fmt.Errorf("%w: unknown replenishment %q", ErrInvalidBucketConfig, b.Replenishment)
	}

	return nil
}

var defaultBuckets = map[Category]BucketConfig{
	CategoryFile:        {Capacity: 24000, TokensPerPeriod: 120, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryImage:       {Capacity: 6000, TokensPerPeriod: 30, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryFileImage:   {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryWebhook:     {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryVersion:     {Capacity: 12000, TokensPerPeriod: 60, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryComment:     {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryTeam:        {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryProject:     {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategorySelection:   {Capacity: 60000, TokensPerPeriod: 300, Period: time.Minute, Replenishment: ReplenishPeriodic},
	CategoryRecentFiles: {Capacity: 12000, TokensPerPeriod: 600, Period: time.Minute, Replenishment: ReplenishPeriodic},
}

// DefaultBuckets returns a fresh copy of the built-in category table.
func DefaultBuckets() map[Category]BucketConfig {
	out := make(map[Category]BucketConfig, len(defaultBuckets))
	for c, b := range defaultBuckets {
		out[c] = b
	}

	return out
}

// MergeBuckets overlays overrides onto the default table. Zero-valued fields
// in an override keep the default. Unknown categories are rejected.
func MergeBuckets(overrides map[Category]BucketConfig) (map[Category]BucketConfig, error) {
	merged := DefaultBuckets()

	keys := make([]string, 0, len(overrides))
	for c := range overrides {
		keys = append(keys, string(c))
	}

	sort.Strings(keys)

	for _, key := range keys {
		category := Category(key)
		override := overrides[category]

		base, ok := merged[category]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, key)
		}

		if override.Capacity != 0 {
			base.Capacity = override.Capacity
		}

		if override.TokensPerPeriod != 0 {
			base.TokensPerPeriod = override.TokensPerPeriod
		}

		if override.Period != 0 {
			base.Period = override.Period
		}

		if override.Replenishment != "" {
			base.Replenishment = override.Replenishment
		}

		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("bucket %s: %w", key, err)
		}

		merged[category] = base
	}

	return merged, nil
}

// BucketStatus is a point-in-time view of one bucket.
type BucketStatus struct {
	Category        Category      `json:"category"          yaml:"category"`
	Capacity        int           `json:"capacity"          yaml:"capacity"`
	Available       int           `json:"available"         yaml:"available"`
	InFlight        int           `json:"in_flight"         yaml:"in_flight"`
	Granted         int64         `json:"granted"           yaml:"granted"`
	TokensPerPeriod int           `json:"tokens_per_period" yaml:"tokens_per_period"`
	Period          time.Duration `json:"period"            yaml:"period"`
	Replenishment   Replenishment `json:"replenishment"     yaml:"replenishment"`
}
