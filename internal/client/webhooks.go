package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// WebhooksClient implements figma.WebhooksClient.
type WebhooksClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(dispatcher *dispatch.Dispatcher) *WebhooksClient {
	return &WebhooksClient{
		dispatcher: dispatcher,
	}
}

// ListForTeam implements figma.WebhooksClient.ListForTeam.
func (c *WebhooksClient) ListForTeam(ctx context.Context, teamID string) ([]figma.Webhook, error) {
	if teamID == "" {
		return nil, figma.ErrTeamIDRequired
	}

	list, err := dispatch.Structured[figma.WebhookList](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     "/v2/teams/" + url.PathEscape(teamID) + "/webhooks",
		Category: figma.CategoryWebhook,
	})
	if err != nil {
		return nil, fmt.Errorf("listing team webhooks: %w", err)
	}

	if list.Webhooks == nil {
		return []figma.Webhook{}, nil
	}

	return list.Webhooks, nil
}

// Get implements figma.WebhooksClient.Get.
func (c *WebhooksClient) Get(ctx context.Context, webhookID string) (*figma.Webhook, error) {
	if webhookID == "" {
		return nil, figma.ErrWebhookIDRequired
	}

	webhook, err := dispatch.Structured[figma.Webhook](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     webhookPath(webhookID),
		Category: figma.CategoryWebhook,
	})
	if err != nil {
		return nil, fmt.Errorf("getting webhook: %w", err)
	}

	return webhook, nil
}

// Create implements figma.WebhooksClient.Create.
func (c *WebhooksClient) Create(ctx context.Context, request *figma.WebhookCreateRequest) (*figma.Webhook, error) {
	if request == nil || request.TeamID == "" {
		return nil, figma.ErrTeamIDRequired
	}

	webhook, err := dispatch.Structured[figma.Webhook](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodPost,
		Path:     "/v2/webhooks",
		Body:     request,
		Category: figma.CategoryWebhook,
	})
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	return webhook, nil
}

// Update implements figma.WebhooksClient.Update.
func (c *WebhooksClient) Update(ctx context.Context, webhookID string, request *figma.WebhookUpdateRequest) (*figma.Webhook, error) {
	if webhookID == "" {
		return nil, figma.ErrWebhookIDRequired
	}

	if request == nil {
		request = &figma.WebhookUpdateRequest{}
	}

	webhook, err := dispatch.Structured[figma.Webhook](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodPut,
		Path:     webhookPath(webhookID),
		Body:     request,
		Category: figma.CategoryWebhook,
	})
	if err != nil {
		return nil, fmt.Errorf("updating webhook: %w", err)
	}

	return webhook, nil
}

// Delete implements figma.WebhooksClient.Delete.
func (c *WebhooksClient) Delete(ctx context.Context, webhookID string) error {
	if webhookID == "" {
		return figma.ErrWebhookIDRequired
	}

	_, err := dispatch.RawText(ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodDelete,
		Path:     webhookPath(webhookID),
		Category: figma.CategoryWebhook,
	})
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}

func webhookPath(webhookID string) string {
	return "/v2/webhooks/" + url.PathEscape(webhookID)
}
