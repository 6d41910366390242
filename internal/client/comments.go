package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// CommentsClient implements figma.CommentsClient.
type CommentsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewCommentsClient creates a new comments client.
func NewCommentsClient(dispatcher *dispatch.Dispatcher) *CommentsClient {
	return &CommentsClient{
		dispatcher: dispatcher,
	}
}

// List implements figma.CommentsClient.List.
func (c *CommentsClient) List(ctx context.Context, fileKey string) (*figma.CommentsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	comments, err := dispatch.Structured[figma.CommentsResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey, "comments"),
		Category: figma.CategoryComment,
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}
