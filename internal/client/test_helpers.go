package client

import (
	"context"
	"time"

	"github.com/fivetwenty-io/figma/pkg/figma"
)

// Test timing: small enough that retry and lease waits finish quickly.
const (
	testRetryWaitUnit     = time.Millisecond
	testLeaseWaitInterval = 10 * time.Millisecond
	testRetryMax          = 3
)

// TestConfig returns a client configuration pointed at baseURL with fast
// retry and lease timing.
func TestConfig(baseURL string) *figma.Config {
	return &figma.Config{
		BaseURL:           baseURL,
		APIToken:          "test-token",
		RetryMax:          testRetryMax,
		RetryWaitUnit:     testRetryWaitUnit,
		LeaseWaitInterval: testLeaseWaitInterval,
	}
}

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) (*Client, error) {
	return New(context.Background(), TestConfig(baseURL))
}
