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
func TestDevResourcesClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.Method == http.MethodGet && request.URL.Path == "/v1/files/file1/dev_resources":
			assert.Equal(t, "1:2,3:4", request.URL.Query().Get("node_ids"))
			_, _ = writer.Write([]byte(`{"dev_resources":[{"id":"d1","name":"Storybook","url":"https://example.com",` +
				`"file_key":"file1","node_id":"1:2"}]}`))
		case request.Method == http.MethodPost && request.URL.Path == "/v1/dev_resources":
			var payload struct {
				DevResources []figma.DevResourceCreate `json:"dev_resources"`
			}

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			assert.Len(t, payload.DevResources, 2)

			_, _ = writer.Write([]byte(`{"links_created":[{"id":"d2","name":"Docs","file_key":"file1","node_id":"1:2"}],` +
				`"errors":[{"file_key":"file1","node_id":"9:9","error":"node not found"}]}`))
		case request.Method == http.MethodPut && request.URL.Path == "/v1/dev_resources":
			var payload struct {
				DevResources []figma.DevResourceUpdate `json:"dev_resources"`
			}

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			assert.Equal(t, "d1", payload.DevResources[0].ID)

			_, _ = writer.Write([]byte(`{"links_updated":["d1"],"errors":[]}`))
		case request.Method == http.MethodDelete && request.URL.Path == "/v1/files/file1/dev_resources/d1":
			_, _ = writer.Write([]byte(`{"status":200,"error":false}`))
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

		resources, err := c.DevResources().List(ctx, "file1", []string{"1:2", "3:4"})
		require.NoError(t, err)
		require.Len(t, resources.DevResources, 1)
		assert.Equal(t, "Storybook", resources.DevResources[0].Name)
	})

	t.Run("create reports per entry errors", func(t *testing.T) {
		t.Parallel()

		created, err := c.DevResources().Create(ctx, []figma.DevResourceCreate{
			{Name: "Docs", URL: "https://example.com/docs", FileKey: "file1", NodeID: "1:2"},
			{Name: "Broken", URL: "https://example.com/broken", FileKey: "file1", NodeID: "9:9"},
		})
		require.NoError(t, err)
		assert.Len(t, created.LinksCreated, 1)
		require.Len(t, created.Errors, 1)
		assert.Equal(t, "node not found", created.Errors[0].Error)
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		updated, err := c.DevResources().Update(ctx, []figma.DevResourceUpdate{{ID: "d1", Name: "Renamed"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"d1"}, updated.LinksUpdated)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, c.DevResources().Delete(ctx, "file1", "d1"))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		_, err := c.DevResources().List(ctx, "", nil)
		require.ErrorIs(t, err, figma.ErrFileKeyRequired)

		_, err = c.DevResources().Create(ctx, nil)
		require.ErrorIs(t, err, figma.ErrDevResourceRequired)

		_, err = c.DevResources().Update(ctx, nil)
		require.ErrorIs(t, err, figma.ErrDevResourceRequired)

		require.ErrorIs(t, c.DevResources().Delete(ctx, "file1", ""), figma.ErrDevResourceRequired)
	})
}
