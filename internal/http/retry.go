package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryPolicy bounds the attempts of one exchange. MaxAttempts counts the
// first attempt; the wait before retry n is Unit * 2^n.
type RetryPolicy struct {
	MaxAttempts int
	Unit        time.Duration
}

// DefaultRetryPolicy returns ten attempts with one-second units.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: constants.DefaultRetryMax,
		Unit:        constants.DefaultRetryWaitUnit,
	}
}

// Delay returns the wait before the given retry (1 for the first retry).
func (p RetryPolicy) Delay(retry int) time.Duration {
	return p.Unit << retry
}

// IsSuccess reports whether an exchange needs no retry: a 2xx status with
// content, or 204 No Content.
func IsSuccess(statusCode, bodyLen int) bool {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return false
	}

	return bodyLen > 0 || statusCode == http.StatusNoContent
}

// exchangeState is the per-call retry state carried on the request context.
type exchangeState struct {
	attempts int
}

type exchangeStateKey struct{}

func withExchangeState(ctx context.Context) (context.Context, *exchangeState) {
	state := &exchangeState{}

	return context.WithValue(ctx, exchangeStateKey{}, state), state
}

func exchangeStateFrom(ctx context.Context) *exchangeState {
	if state, ok := ctx.Value(exchangeStateKey{}).(*exchangeState); ok {
		return state
	}

	return &exchangeState{}
}

// checkRetry retries transport errors and any outcome IsSuccess rejects.
// A finished context always stops the loop.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		retry, policyErr := retryablehttp.DefaultRetryPolicy(ctx, nil, err)
		if retry {
			c.logRetry(ctx, 0, err)
		}

		return retry, policyErr
	}

	bodyLen, readErr := bufferBody(resp)
	if readErr != nil {
		c.logRetry(ctx, resp.StatusCode, readErr)

		return true, nil
	}

	if IsSuccess(resp.StatusCode, bodyLen) {
		return false, nil
	}

	c.logRetry(ctx, resp.StatusCode, nil)

	return true, nil
}

func (c *Client) backoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	return c.retry.Delay(attemptNum + 1)
}

func (c *Client) logRetry(ctx context.Context, statusCode int, cause error) {
	state := exchangeStateFrom(ctx)
	if state.attempts >= c.retry.MaxAttempts {
		return
	}

	fields := map[string]interface{}{
		"attempt":      state.attempts,
		"max_attempts": c.retry.MaxAttempts,
		"delay":        c.retry.Delay(state.attempts).String(),
	}

	if statusCode != 0 {
		fields["status"] = statusCode
	}

	if cause != nil {
		fields["error"] = cause.Error()
	}

	c.logger.Info("Retrying request", fields)
}

// bufferBody reads the whole body so its length is known even for chunked
// responses, and replaces it with an in-memory reader.
func bufferBody(resp *http.Response) (int, error) {
	if resp.Body == nil || resp.Body == http.NoBody {
		return 0, nil
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	resp.Body = io.NopCloser(bytes.NewReader(data))

	return len(data), err
}
