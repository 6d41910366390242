package figma

import (
	"context"
	"time"
)

// CommentsClient defines operations on file comments.
type CommentsClient interface {
	List(ctx context.Context, fileKey string) (*CommentsResponse, error)
}

// FilesClient defines operations on files.
type FilesClient interface {
	Get(ctx context.Context, fileKey string, opts *FileOptions) (*FileResponse, error)
	ListVersions(ctx context.Context, fileKey string) (*VersionsResponse, error)
}

// ComponentsClient defines operations on published components.
type ComponentsClient interface {
	Get(ctx context.Context, key string) (*ComponentResponse, error)
	ListForFile(ctx context.Context, fileKey string) (*ComponentsResponse, error)
	ListSetsForFile(ctx context.Context, fileKey string) (*ComponentSetsResponse, error)
}

// ImagesClient defines image rendering operations.
type ImagesClient interface {
	Export(ctx context.Context, fileKey string, nodeIDs []string, opts *ImageOptions) (*ImageResponse, error)
	// SVGURL returns the signed render URL for one node, or "" when Figma
	// did not render it.
	SVGURL(ctx context.Context, fileKey, nodeID string, opts *ImageOptions) (string, error)
	// SVGSource downloads and validates the SVG markup for one node. It
	// returns "" with a nil error when the node has no render.
	SVGSource(ctx context.Context, fileKey, nodeID string, opts *ImageOptions) (string, error)
}

// WebhooksClient defines operations on team webhooks.
type WebhooksClient interface {
	ListForTeam(ctx context.Context, teamID string) ([]Webhook, error)
	Get(ctx context.Context, webhookID string) (*Webhook, error)
	Create(ctx context.Context, request *WebhookCreateRequest) (*Webhook, error)
	Update(ctx context.Context, webhookID string, request *WebhookUpdateRequest) (*Webhook, error)
	Delete(ctx context.Context, webhookID string) error
}

// DevResourcesClient defines operations on dev resources.
type DevResourcesClient interface {
	List(ctx context.Context, fileKey string, nodeIDs []string) (*DevResourcesResponse, error)
	Create(ctx context.Context, resources []DevResourceCreate) (*CreateDevResourcesResponse, error)
	Update(ctx context.Context, resources []DevResourceUpdate) (*UpdateDevResourcesResponse, error)
	Delete(ctx context.Context, fileKey, devResourceID string) error
}

// ProjectsClient defines operations on team projects.
type ProjectsClient interface {
	ListForTeam(ctx context.Context, teamID string) (*TeamProjectsResponse, error)
	ListFiles(ctx context.Context, projectID string) (*ProjectFilesResponse, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Comments() CommentsClient
	Files() FilesClient
	Components() ComponentsClient
	Images() ImagesClient
	Webhooks() WebhooksClient
	DevResources() DevResourcesClient
	Projects() ProjectsClient
}

// Client is the Figma API client.
type Client interface {
	ResourceClients

	// Buckets reports the state of every rate-limit bucket.
	Buckets() []BucketStatus
	// Close stops bucket replenishment and releases event sinks. Leases
	// still held by in-flight calls are not revoked.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// Config represents client configuration for building a figma.Client.
//
// Every field is read once by the constructor. Changing a Config after the
// client is built has no effect.
type Config struct {
	// BaseURL: root of the REST API. figmaclient.New trims a trailing slash
	// and adds "https://" if no scheme is present. Defaults to
	// https://api.figma.com.
	BaseURL string
	// APIToken: personal access token sent as X-FIGMA-TOKEN. When empty,
	// figmaclient.New falls back to FIGMA_API_TOKEN and fails if both are
	// empty.
	APIToken string

	// RetryMax: total attempts per dispatch, including the first. Defaults
	// to 10.
	RetryMax int
	// RetryWaitUnit: backoff before retry n is RetryWaitUnit * 2^n.
	// Defaults to one second.
	RetryWaitUnit time.Duration
	// HTTPTimeout: bound on a single HTTP exchange. Defaults to five minutes.
	HTTPTimeout time.Duration
	// LeaseWaitInterval: pause before retrying acquisition on an empty
	// bucket. Defaults to one minute.
	LeaseWaitInterval time.Duration
	// Buckets: per-category overrides merged over DefaultBuckets.
	Buckets map[Category]BucketConfig

	// Logger: optional structured logger. Nil disables logging.
	Logger Logger
	// Debug: enables request/response logging.
	Debug bool
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Observers receive one event per finished dispatch.
	Observers []Observer

	// NATSURL: when set, dispatch events are also published to NATS.
	NATSURL string
	// NATSSubject: subject prefix for published events.
	NATSSubject string
}
