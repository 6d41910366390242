package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// ComponentsClient implements figma.ComponentsClient.
type ComponentsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewComponentsClient creates a new components client.
func NewComponentsClient(dispatcher *dispatch.Dispatcher) *ComponentsClient {
	return &ComponentsClient{
		dispatcher: dispatcher,
	}
}

// Get implements figma.ComponentsClient.Get.
func (c *ComponentsClient) Get(ctx context.Context, key string) (*figma.ComponentResponse, error) {
	if key == "" {
		return nil, figma.ErrFileKeyRequired
	}

	component, err := dispatch.Structured[figma.ComponentResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     "/v1/components/" + url.PathEscape(key),
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("getting component: %w", err)
	}

	return component, nil
}

// ListForFile implements figma.ComponentsClient.ListForFile.
func (c *ComponentsClient) ListForFile(ctx context.Context, fileKey string) (*figma.ComponentsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	components, err := dispatch.Structured[figma.ComponentsResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey, "components"),
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("listing file components: %w", err)
	}

	return components, nil
}

// ListSetsForFile implements figma.ComponentsClient.ListSetsForFile.
func (c *ComponentsClient) ListSetsForFile(ctx context.Context, fileKey string) (*figma.ComponentSetsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	sets, err := dispatch.Structured[figma.ComponentSetsResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey, "component_sets"),
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("listing file component sets: %w", err)
	}

	return sets, nil
}
