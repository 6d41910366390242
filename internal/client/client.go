package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/internal/events"
	"github.com/fivetwenty-io/figma/internal/http"
	"github.com/fivetwenty-io/figma/internal/ratelimit"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// Client implements the figma.Client interface.
type Client struct {
	transport  *http.Client
	registry   *ratelimit.Registry
	dispatcher *dispatch.Dispatcher
	logger     figma.Logger
	sink       *events.NATSSink

	// Resource clients
	comments     figma.CommentsClient
	files        figma.FilesClient
	components   figma.ComponentsClient
	images       figma.ImagesClient
	webhooks     figma.WebhooksClient
	devResources figma.DevResourcesClient
	projects     figma.ProjectsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *figma.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitUnit))
}

// New creates a new Figma API client. Missing or invalid settings fail here
// with a *figma.ConfigurationError rather than at call time.
func New(ctx context.Context, config *figma.Config) (*Client, error) {
	if config == nil {
		return nil, &figma.ConfigurationError{Key: "config", Err: figma.ErrConfigRequired}
	}

	if strings.TrimSpace(config.APIToken) == "" {
		return nil, &figma.ConfigurationError{Key: "api_token", Err: figma.ErrAPITokenRequired}
	}

	if config.RetryMax < 0 {
		return nil, &figma.ConfigurationError{Key: "retry_max", Err: fmt.Errorf("must not be negative, got %d", config.RetryMax)}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	buckets, err := figma.MergeBuckets(config.Buckets)
	if err != nil {
		return nil, &figma.ConfigurationError{Key: "buckets", Err: err}
	}

	transport, err := http.NewClient(baseURL, config.APIToken, createHTTPClientOptions(config)...)
	if err != nil {
		return nil, &figma.ConfigurationError{Key: "base_url", Err: err}
	}

	logger := config.Logger
	if logger == nil {
		logger = figma.NopLogger{}
	}

	observers := append([]figma.Observer(nil), config.Observers...)

	var sink *events.NATSSink

	if config.NATSURL != "" {
		sink, err = events.Connect(ctx, config.NATSURL, config.NATSSubject, logger)
		if err != nil {
			return nil, &figma.ConfigurationError{Key: "nats_url", Err: err}
		}

		observers = append(observers, sink)
	}

	registry, err := ratelimit.NewRegistry(buckets)
	if err != nil {
		if sink != nil {
			_ = sink.Close()
		}

		return nil, &figma.ConfigurationError{Key: "buckets", Err: err}
	}

	dispatcher := dispatch.New(registry, transport,
		dispatch.WithLogger(logger),
		dispatch.WithObservers(observers...),
		dispatch.WithLeaseWaitInterval(config.LeaseWaitInterval),
	)

	client := &Client{
		transport:  transport,
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger,
		sink:       sink,
	}

	client.initializeResourceClients()

	logger.Debug("Figma client initialized", map[string]interface{}{
		"base_url":     transport.BaseURL(),
		"max_attempts": transport.MaxAttempts(),
		"categories":   len(buckets),
	})

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.comments = NewCommentsClient(c.dispatcher)
	c.files = NewFilesClient(c.dispatcher)
	c.components = NewComponentsClient(c.dispatcher)
	c.images = NewImagesClient(c.dispatcher, c.logger)
	c.webhooks = NewWebhooksClient(c.dispatcher)
	c.devResources = NewDevResourcesClient(c.dispatcher)
	c.projects = NewProjectsClient(c.dispatcher)
}

// Comments implements figma.Client.Comments.
func (c *Client) Comments() figma.CommentsClient {
	return c.comments
}

// Files implements figma.Client.Files.
func (c *Client) Files() figma.FilesClient {
	return c.files
}

// Components implements figma.Client.Components.
func (c *Client) Components() figma.ComponentsClient {
	return c.components
}

// Images implements figma.Client.Images.
func (c *Client) Images() figma.ImagesClient {
	return c.images
}

// Webhooks implements figma.Client.Webhooks.
func (c *Client) Webhooks() figma.WebhooksClient {
	return c.webhooks
}

// DevResources implements figma.Client.DevResources.
func (c *Client) DevResources() figma.DevResourcesClient {
	return c.devResources
}

// Projects implements figma.Client.Projects.
func (c *Client) Projects() figma.ProjectsClient {
	return c.projects
}

// Buckets implements figma.Client.Buckets.
func (c *Client) Buckets() []figma.BucketStatus {
	return c.registry.Snapshot()
}

// Close implements figma.Client.Close.
func (c *Client) Close() error {
	c.registry.Close()

	var errs []error

	if c.sink != nil {
		if err := c.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing event sink: %w", err))
		}
	}

	return errors.Join(errs...)
}

// filePath builds /v1/files/{key}[/segments...].
func filePath(fileKey string, segments ...string) string {
	parts := append([]string{"/v1/files", url.PathEscape(fileKey)}, segments...)

	return strings.Join(parts, "/")
}
