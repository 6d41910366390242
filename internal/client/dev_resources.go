package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// DevResourcesClient implements figma.DevResourcesClient.
type DevResourcesClient struct {
	dispatcher *dispatch.Dispatcher
}

type devResourcesPayload[T any] struct {
	DevResources []T `json:"dev_resources"`
}

// NewDevResourcesClient creates a new dev resources client.
func NewDevResourcesClient(dispatcher *dispatch.Dispatcher) *DevResourcesClient {
	return &DevResourcesClient{
		dispatcher: dispatcher,
	}
}

// List implements figma.DevResourcesClient.List.
func (c *DevResourcesClient) List(ctx context.Context, fileKey string, nodeIDs []string) (*figma.DevResourcesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	var query url.Values
	if len(nodeIDs) > 0 {
		query = url.Values{"node_ids": []string{strings.Join(nodeIDs, ",")}}
	}

	resources, err := dispatch.Structured[figma.DevResourcesResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey, "dev_resources"),
		Query:    query,
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("listing dev resources: %w", err)
	}

	return resources, nil
}

// Create implements figma.DevResourcesClient.Create.
func (c *DevResourcesClient) Create(ctx context.Context, resources []figma.DevResourceCreate) (*figma.CreateDevResourcesResponse, error) {
	if len(resources) == 0 {
		return nil, figma.ErrDevResourceRequired
	}

	created, err := dispatch.Structured[figma.CreateDevResourcesResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodPost,
		Path:     "/v1/dev_resources",
		Body:     devResourcesPayload[figma.DevResourceCreate]{DevResources: resources},
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("creating dev resources: %w", err)
	}

	return created, nil
}

// Update implements figma.DevResourcesClient.Update.
func (c *DevResourcesClient) Update(ctx context.Context, resources []figma.DevResourceUpdate) (*figma.UpdateDevResourcesResponse, error) {
	if len(resources) == 0 {
		return nil, figma.ErrDevResourceRequired
	}

	updated, err := dispatch.Structured[figma.UpdateDevResourcesResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodPut,
		Path:     "/v1/dev_resources",
		Body:     devResourcesPayload[figma.DevResourceUpdate]{DevResources: resources},
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("updating dev resources: %w", err)
	}

	return updated, nil
}

// Delete implements figma.DevResourcesClient.Delete.
func (c *DevResourcesClient) Delete(ctx context.Context, fileKey, devResourceID string) error {
	if fileKey == "" {
		return figma.ErrFileKeyRequired
	}

	if devResourceID == "" {
		return figma.ErrDevResourceRequired
	}

	_, err := dispatch.RawText(ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodDelete,
		Path:     filePath(fileKey, "dev_resources", url.PathEscape(devResourceID)),
		Category: figma.CategoryFile,
	})
	if err != nil {
		return fmt.Errorf("deleting dev resource: %w", err)
	}

	return nil
}
