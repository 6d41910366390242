// Package ratelimit implements the per-category token buckets that gate
// every Figma API call.
package ratelimit

import (
	"fmt"
	"sort"

	"github.com/fivetwenty-io/figma/pkg/figma"
)

// Registry owns one Bucket per category. The mapping is fixed at
// construction, so lookups need no locking.
type Registry struct {
	buckets map[figma.Category]*Bucket
}

// NewRegistry builds a bucket for every entry in configs. On error any
// buckets already started are closed.
func NewRegistry(configs map[figma.Category]figma.BucketConfig) (*Registry, error) {
	r := &Registry{buckets: make(map[figma.Category]*Bucket, len(configs))}

	for category, config := range configs {
		bucket, err := NewBucket(category, config)
		if err != nil {
			r.Close()

			return nil, err
		}

		r.buckets[category] = bucket
	}

	return r, nil
}

// Bucket returns the bucket for category.
func (r *Registry) Bucket(category figma.Category) (*Bucket, error) {
	bucket, ok := r.buckets[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", figma.ErrUnknownCategory, category)
	}

	return bucket, nil
}

// Snapshot returns the status of every bucket ordered by category name.
func (r *Registry) Snapshot() []figma.BucketStatus {
	out := make([]figma.BucketStatus, 0, len(r.buckets))
	for _, bucket := range r.buckets {
		out = append(out, bucket.Status())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})

	return out
}

// Close stops every bucket's replenishment.
func (r *Registry) Close() {
	for _, bucket := range r.buckets {
		bucket.Close()
	}
}
