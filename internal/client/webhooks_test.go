package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/fivetwenty-io/figma/internal/client"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWebhooksClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.Method == http.MethodGet && request.URL.Path == "/v2/teams/team1/webhooks":
			_, _ = writer.Write([]byte(`{"webhooks":[{"id":"w1","event_type":"FILE_UPDATE","team_id":"team1","status":"ACTIVE"}]}`))
		case request.Method == http.MethodGet && request.URL.Path == "/v2/teams/empty/webhooks":
			_, _ = writer.Write([]byte(`{}`))
		case request.Method == http.MethodGet && request.URL.Path == "/v2/webhooks/w1":
			_, _ = writer.Write([]byte(`{"id":"w1","event_type":"FILE_UPDATE","team_id":"team1","status":"ACTIVE","endpoint":"https://example.com/hook"}`))
		case request.Method == http.MethodPost && request.URL.Path == "/v2/webhooks":
			var req figma.WebhookCreateRequest

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&req))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, figma.WebhookEventFileComment, req.EventType)

			_ = json.NewEncoder(writer).Encode(figma.Webhook{
				ID:        "w2",
				EventType: req.EventType,
				TeamID:    req.TeamID,
				Endpoint:  req.Endpoint,
				Status:    figma.WebhookStatusActive,
			})
		case request.Method == http.MethodPut && request.URL.Path == "/v2/webhooks/w1":
			var req figma.WebhookUpdateRequest

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&req))
			_, _ = writer.Write([]byte(`{"id":"w1","status":"` + req.Status + `"}`))
		case request.Method == http.MethodDelete && request.URL.Path == "/v2/webhooks/w1":
			_, _ = writer.Write([]byte(`{"id":"w1"}`))
		default:
			t.Errorf("unexpected %s %s", request.Method, request.URL.Path)
			writer.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewTestClient(server.URL)
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		webhooks, err := c.Webhooks().ListForTeam(ctx, "team1")
		require.NoError(t, err)
		require.Len(t, webhooks, 1)
		assert.Equal(t, "w1", webhooks[0].ID)
	})

	t.Run("list empty is non-nil", func(t *testing.T) {
		t.Parallel()

		webhooks, err := c.Webhooks().ListForTeam(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, webhooks)
		assert.Empty(t, webhooks)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		webhook, err := c.Webhooks().Get(ctx, "w1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/hook", webhook.Endpoint)
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		webhook, err := c.Webhooks().Create(ctx, &figma.WebhookCreateRequest{
			EventType: figma.WebhookEventFileComment,
			TeamID:    "team1",
			Endpoint:  "https://example.com/new",
			Passcode:  "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "w2", webhook.ID)
		assert.Equal(t, "team1", webhook.TeamID)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		webhook, err := c.Webhooks().Update(ctx, "w1", &figma.WebhookUpdateRequest{Status: figma.WebhookStatusPaused})
		require.NoError(t, err)
		assert.Equal(t, figma.WebhookStatusPaused, webhook.Status)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, c.Webhooks().Delete(ctx, "w1"))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		_, err := c.Webhooks().ListForTeam(ctx, "")
		require.ErrorIs(t, err, figma.ErrTeamIDRequired)

		_, err = c.Webhooks().Get(ctx, "")
		require.ErrorIs(t, err, figma.ErrWebhookIDRequired)

		_, err = c.Webhooks().Create(ctx, nil)
		require.ErrorIs(t, err, figma.ErrTeamIDRequired)

		require.ErrorIs(t, c.Webhooks().Delete(ctx, ""), figma.ErrWebhookIDRequired)
	})
}
