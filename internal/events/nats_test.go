package events_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/figma/internal/events"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)

	return args.Error(0)
}

type recordingLogger struct {
	figma.NopLogger

	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warns = append(l.warns, msg)
}

func TestNATSSink_OnDispatch(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{}
	publisher.On("Publish", "figma.dispatch.comment", mock.Anything).Return(nil).Once()

	sink := events.NewNATSSink(publisher, "", nil)

	event := figma.DispatchEvent{
		ID:         "id-1",
		Category:   figma.CategoryComment,
		Method:     "GET",
		Path:       "/v1/files/abc123/comments",
		State:      figma.StateSucceeded,
		StatusCode: 200,
		Attempts:   1,
		Duration:   25 * time.Millisecond,
	}

	sink.OnDispatch(context.Background(), event)

	publisher.AssertExpectations(t)

	data, ok := publisher.Calls[0].Arguments.Get(1).([]byte)
	require.True(t, ok)

	var decoded figma.DispatchEvent

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, figma.StateSucceeded, decoded.State)
	assert.Equal(t, figma.CategoryComment, decoded.Category)
}

func TestNATSSink_Subject(t *testing.T) {
	t.Parallel()

	sink := events.NewNATSSink(&MockPublisher{}, "diagnostics.", nil)
	assert.Equal(t, "diagnostics.image", sink.Subject(figma.CategoryImage))
}

func TestNATSSink_PublishFailureIsLogged(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{}
	publisher.On("Publish", "figma.dispatch.file", mock.Anything).Return(figma.ErrSomeError)

	logger := &recordingLogger{}
	sink := events.NewNATSSink(publisher, "figma.dispatch", logger)

	assert.NotPanics(t, func() {
		sink.OnDispatch(context.Background(), figma.DispatchEvent{Category: figma.CategoryFile, State: figma.StateFailed})
	})

	assert.Equal(t, []string{"Failed to publish dispatch event"}, logger.warns)
}

func TestNATSSink_CloseWithoutConnection(t *testing.T) {
	t.Parallel()

	sink := events.NewNATSSink(&MockPublisher{}, "", nil)
	require.NoError(t, sink.Close())
}

func TestConnect_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := events.Connect(context.Background(), "", "", nil)
	require.ErrorIs(t, err, events.ErrNATSURLRequired)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := events.Connect(ctx, "nats://127.0.0.1:1", "", nil)
	require.Error(t, err)
}
