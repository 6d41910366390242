// Package events publishes dispatch outcomes to NATS for diagnostics.
// Publishing is best effort: a failed publish is logged and never affects
// the dispatch that produced the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/nats-io/nats.go"
)

// Static errors for err113 compliance.
var (
	ErrNATSURLRequired = errors.New("NATS URL is required")
)

// Publisher is the subset of *nats.Conn used by the sink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink is a figma.Observer that publishes every DispatchEvent as JSON
// to "<subject>.<category>".
type NATSSink struct {
	publisher Publisher
	conn      *nats.Conn
	subject   string
	logger    figma.Logger
}

// NewNATSSink creates a sink over an existing publisher. An empty subject
// means constants.DefaultNATSSubject.
func NewNATSSink(publisher Publisher, subject string, logger figma.Logger) *NATSSink {
	if subject == "" {
		subject = constants.DefaultNATSSubject
	}

	if logger == nil {
		logger = figma.NopLogger{}
	}

	return &NATSSink{
		publisher: publisher,
		subject:   strings.TrimSuffix(subject, "."),
		logger:    logger,
	}
}

// Connect dials url and returns a sink that owns the connection. The dial
// timeout follows the ctx deadline when one is set.
func Connect(ctx context.Context, url, subject string, logger figma.Logger) (*NATSSink, error) {
	if url == "" {
		return nil, ErrNATSURLRequired
	}

	opts := []nats.Option{
		nats.Name(constants.NATSClientName),
	}

	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(deadline)))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	sink := NewNATSSink(conn, subject, logger)
	sink.conn = conn

	return sink, nil
}

// Subject returns the subject an event for category is published on.
func (s *NATSSink) Subject(category figma.Category) string {
	return s.subject + "." + string(category)
}

// OnDispatch implements figma.Observer.
func (s *NATSSink) OnDispatch(_ context.Context, event figma.DispatchEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to encode dispatch event", map[string]interface{}{
			"dispatch_id": event.ID,
			"error":       err.Error(),
		})

		return
	}

	subject := s.Subject(event.Category)

	if err := s.publisher.Publish(subject, data); err != nil {
		s.logger.Warn("Failed to publish dispatch event", map[string]interface{}{
			"dispatch_id": event.ID,
			"subject":     subject,
			"error":       err.Error(),
		})
	}
}

// Close drains the owned connection. It is a no-op for sinks built with
// NewNATSSink.
func (s *NATSSink) Close() error {
	if s.conn == nil || s.conn.IsClosed() {
		return nil
	}

	if err := s.conn.Drain(); err != nil {
		s.conn.Close()

		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
