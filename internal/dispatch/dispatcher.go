// Package dispatch runs every API call through the same lifecycle: acquire
// a lease from the category's bucket, perform the exchange with retries,
// decode the body, and release the lease.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/figma/internal/constants"
	figmahttp "github.com/fivetwenty-io/figma/internal/http"
	"github.com/fivetwenty-io/figma/internal/ratelimit"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/google/uuid"
)

// Exchanger performs one HTTP exchange including its retries.
type Exchanger interface {
	Do(ctx context.Context, req *figmahttp.Request) (*figmahttp.Response, error)
}

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry  *ratelimit.Registry
	transport Exchanger
	logger    figma.Logger
	observers []figma.Observer
	leaseWait time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger figma.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithObservers adds observers notified once per finished dispatch.
func WithObservers(observers ...figma.Observer) Option {
	return func(d *Dispatcher) {
		for _, observer := range observers {
			if observer != nil {
				d.observers = append(d.observers, observer)
			}
		}
	}
}

// WithLeaseWaitInterval sets the pause between acquisition attempts on an
// empty bucket.
func WithLeaseWaitInterval(interval time.Duration) Option {
	return func(d *Dispatcher) {
		if interval > 0 {
			d.leaseWait = interval
		}
	}
}

// New creates a Dispatcher over registry and transport.
func New(registry *ratelimit.Registry, transport Exchanger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  registry,
		transport: transport,
		logger:    figma.NopLogger{},
		leaseWait: constants.DefaultLeaseWaitInterval,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// call is the state of one dispatch. It is never shared between calls.
type call struct {
	id         string
	desc       Descriptor
	start      time.Time
	leaseWait  time.Duration
	attempts   int
	statusCode int
}

func (c *call) fields() map[string]interface{} {
	return map[string]interface{}{
		"dispatch_id": c.id,
		"category":    string(c.desc.Category),
		"method":      c.desc.Method,
		"path":        figmahttp.RedactURL(c.desc.Path),
	}
}

// Dispatch runs desc to completion. For KindStructured the body is decoded
// into into, which must be a non-nil pointer. The returned error is a
// *figma.TransportError, a *figma.DecodeError, or matches figma.ErrCancelled.
func (d *Dispatcher) Dispatch(ctx context.Context, desc Descriptor, into interface{}) (*Result, error) {
	if desc.Kind == KindStructured && into == nil {
		return nil, figma.ErrDecodeTargetRequired
	}

	bucket, err := d.registry.Bucket(desc.Category)
	if err != nil {
		return nil, fmt.Errorf("dispatching %s %s: %w", desc.Method, desc.Path, err)
	}

	current := &call{id: uuid.NewString(), desc: desc, start: time.Now()}

	lease, err := d.acquire(ctx, bucket, current)
	if err != nil {
		return nil, d.fail(ctx, current, nil, err)
	}
	defer lease.Release()

	resp, err := d.transport.Do(ctx, &figmahttp.Request{
		Method: desc.Method,
		Path:   desc.Path,
		Query:  desc.Query,
		Body:   desc.Body,
	})
	if resp != nil {
		current.attempts = resp.Attempts
		current.statusCode = resp.StatusCode
	}

	if err != nil {
		var transportErr *figma.TransportError
		if errors.As(err, &transportErr) && current.attempts == 0 {
			current.attempts = transportErr.Attempts
		}

		return nil, d.fail(ctx, current, lease, err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Attempts:   resp.Attempts,
		Body:       resp.Body,
	}

	switch desc.Kind {
	case KindRawText:
		result.Text = string(resp.Body)
	case KindStructured:
		if err := json.Unmarshal(resp.Body, into); err != nil {
			return nil, d.fail(ctx, current, lease, &figma.DecodeError{
				URL:  figmahttp.RedactURL(desc.Path),
				Kind: desc.Kind.String(),
				Body: resp.Body,
				Err:  err,
			})
		}
	}

	fields := current.fields()
	fields["attempts"] = current.attempts
	fields["status"] = current.statusCode
	d.logger.Debug("Dispatch succeeded", fields)
	lease.Release()
	d.notify(ctx, current, figma.StateSucceeded, nil)

	return result, nil
}

func (d *Dispatcher) acquire(ctx context.Context, bucket *ratelimit.Bucket, current *call) (*ratelimit.Lease, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lease := bucket.TryAcquire()
		if lease.Acquired() {
			current.leaseWait = time.Since(current.start)

			fields := current.fields()
			fields["lease_wait"] = current.leaseWait.String()
			d.logger.Debug("Lease acquired", fields)

			return lease, nil
		}

		fields := current.fields()
		fields["retry_in"] = d.leaseWait.String()
		d.logger.Info("Bucket empty, waiting for lease", fields)

		timer := time.NewTimer(d.leaseWait)

		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// fail releases lease, classifies err, logs it, notifies observers and
// returns the error the caller sees. lease may be nil.
func (d *Dispatcher) fail(ctx context.Context, current *call, lease *ratelimit.Lease, err error) error {
	lease.Release()

	fields := current.fields()
	fields["attempts"] = current.attempts
	fields["error"] = err.Error()

	if current.statusCode != 0 {
		fields["status"] = current.statusCode
	}

	var decodeErr *figma.DecodeError

	switch {
	case ctx.Err() != nil:
		d.logger.Warn("Dispatch cancelled", fields)
		d.notify(ctx, current, figma.StateCancelled, ctx.Err())

		return figma.NewCancelledError(ctx.Err())
	case errors.As(err, &decodeErr):
		d.logger.Error("Decode failed", fields)
		d.notify(ctx, current, figma.StateDecodeFailed, err)

		return err
	default:
		d.logger.Error("Request failed after retries", fields)
		d.notify(ctx, current, figma.StateFailed, err)

		return err
	}
}

func (d *Dispatcher) notify(ctx context.Context, current *call, state figma.DispatchState, err error) {
	if len(d.observers) == 0 {
		return
	}

	event := figma.DispatchEvent{
		ID:         current.id,
		Category:   current.desc.Category,
		Method:     current.desc.Method,
		Path:       figmahttp.RedactURL(current.desc.Path),
		State:      state,
		StatusCode: current.statusCode,
		Attempts:   current.attempts,
		LeaseWait:  current.leaseWait,
		Duration:   time.Since(current.start),
		Time:       time.Now(),
	}

	if err != nil {
		event.Error = err.Error()
	}

	ctx = context.WithoutCancel(ctx)

	for _, observer := range d.observers {
		observer.OnDispatch(ctx, event)
	}
}

// Structured dispatches desc and decodes the JSON body into a new T.
func Structured[T any](ctx context.Context, d *Dispatcher, desc Descriptor) (*T, error) {
	desc.Kind = KindStructured

	var out T

	if _, err := d.Dispatch(ctx, desc, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RawText dispatches desc and returns the body as a string.
func RawText(ctx context.Context, d *Dispatcher, desc Descriptor) (string, error) {
	desc.Kind = KindRawText

	result, err := d.Dispatch(ctx, desc, nil)
	if err != nil {
		return "", err
	}

	return result.Text, nil
}
