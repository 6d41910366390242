package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"golang.org/x/time/rate"
)

// Bucket is one category's token bucket. Tokens are debited by TryAcquire
// and only ever credited by replenishment.
type Bucket struct {
	category figma.Category
	config   figma.BucketConfig

	// periodic mode
	mu     sync.Mutex
	tokens int

	// smooth mode
	limiter *rate.Limiter

	inFlight atomic.Int64
	granted  atomic.Int64

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewBucket creates a full bucket and, in periodic mode, starts its refill
// ticker. Call Close to stop it.
func NewBucket(category figma.Category, config figma.BucketConfig) (*Bucket, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("bucket %s: %w", category, err)
	}

	b := &Bucket{
		category: category,
		config:   config,
		tokens:   config.Capacity,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if config.Replenishment == figma.ReplenishSmooth {
		interval := config.Period / time.Duration(config.TokensPerPeriod)
		b.limiter = rate.NewLimiter(rate.Every(interval), config.Capacity)
		close(b.done)

		return b, nil
	}

	go b.run(config.Period)

	return b, nil
}

// Category returns the category the bucket serves.
func (b *Bucket) Category() figma.Category {
	return b.category
}

// TryAcquire debits one token if available. The returned lease is never nil;
// check Acquired.
func (b *Bucket) TryAcquire() *Lease {
	if !b.take() {
		return &Lease{}
	}

	b.inFlight.Add(1)
	b.granted.Add(1)

	return &Lease{bucket: b}
}

func (b *Bucket) take() bool {
	if b.limiter != nil {
		return b.limiter.Allow()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens == 0 {
		return false
	}

	b.tokens--

	return true
}

// Refill adds one period's worth of tokens, capped at capacity. The refill
// ticker calls it every period; smooth buckets refill continuously and
// ignore it.
func (b *Bucket) Refill() {
	if b.limiter != nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.tokens+b.config.TokensPerPeriod, b.config.Capacity)
}

// Available returns the number of tokens currently in the bucket.
func (b *Bucket) Available() int {
	if b.limiter != nil {
		return max(int(b.limiter.Tokens()), 0)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tokens
}

// InFlight returns the number of unreleased leases.
func (b *Bucket) InFlight() int {
	return int(b.inFlight.Load())
}

// Status returns a snapshot of the bucket.
func (b *Bucket) Status() figma.BucketStatus {
	return figma.BucketStatus{
		Category:        b.category,
		Capacity:        b.config.Capacity,
		Available:       b.Available(),
		InFlight:        b.InFlight(),
		Granted:         b.granted.Load(),
		TokensPerPeriod: b.config.TokensPerPeriod,
		Period:          b.config.Period,
		Replenishment:   b.config.Replenishment,
	}
}

// Close stops the refill ticker and waits for it to exit. Safe to call more
// than once.
func (b *Bucket) Close() {
	b.closeOnce.Do(func() {
		close(b.stop)
	})

	<-b.done
}

func (b *Bucket) run(period time.Duration) {
	defer close(b.done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.Refill()
		}
	}
}

func (b *Bucket) release() {
	b.inFlight.Add(-1)
}
