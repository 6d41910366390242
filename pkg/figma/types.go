package figma

import (
	"encoding/json"
	"time"
)

// Response is the status envelope embedded in most Figma responses.
type Response struct {
	Status int    `json:"status,omitempty" yaml:"status,omitempty"`
	Error  bool   `json:"error,omitempty"  yaml:"error,omitempty"`
	Err    string `json:"err,omitempty"    yaml:"err,omitempty"`
}

// User is a Figma account as it appears on comments and components.
type User struct {
	ID     string `json:"id"      yaml:"id"`
	Handle string `json:"handle"  yaml:"handle"`
	ImgURL string `json:"img_url" yaml:"img_url"`
}

// Vector is a position on the canvas.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ClientMeta locates a comment on the canvas.
type ClientMeta struct {
	X          float64 `json:"x,omitempty"           yaml:"x,omitempty"`
	Y          float64 `json:"y,omitempty"           yaml:"y,omitempty"`
	NodeID     string  `json:"node_id,omitempty"     yaml:"node_id,omitempty"`
	NodeOffset *Vector `json:"node_offset,omitempty" yaml:"node_offset,omitempty"`
}

// Comment is a single comment on a file.
type Comment struct {
	ID         string      `json:"id"                    yaml:"id"`
	FileKey    string      `json:"file_key"              yaml:"file_key"`
	ParentID   string      `json:"parent_id,omitempty"   yaml:"parent_id,omitempty"`
	User       User        `json:"user"                  yaml:"user"`
	CreatedAt  time.Time   `json:"created_at"            yaml:"created_at"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
	Message    string      `json:"message"               yaml:"message"`
	ClientMeta *ClientMeta `json:"client_meta,omitempty" yaml:"client_meta,omitempty"`
	OrderID    string      `json:"order_id,omitempty"    yaml:"order_id,omitempty"`
}

// CommentsResponse is returned by GET /v1/files/{key}/comments.
type CommentsResponse struct {
	Comments []Comment `json:"comments" yaml:"comments"`
}

// Node is a document node. Only the fields needed for navigation are typed.
type Node struct {
	ID       string `json:"id"                 yaml:"id"`
	Name     string `json:"name"               yaml:"name"`
	Type     string `json:"type"               yaml:"type"`
	Visible  *bool  `json:"visible,omitempty"  yaml:"visible,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// FrameInfo describes the frame containing a published component.
type FrameInfo struct {
	NodeID          string `json:"nodeId,omitempty"          yaml:"nodeId,omitempty"`
	Name            string `json:"name,omitempty"            yaml:"name,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	PageID          string `json:"pageId,omitempty"          yaml:"pageId,omitempty"`
	PageName        string `json:"pageName,omitempty"        yaml:"pageName,omitempty"`
}

// Component is a published component or component set.
type Component struct {
	Key             string     `json:"key"                        yaml:"key"`
	FileKey         string     `json:"file_key"                   yaml:"file_key"`
	NodeID          string     `json:"node_id"                    yaml:"node_id"`
	ThumbnailURL    string     `json:"thumbnail_url"              yaml:"thumbnail_url"`
	Name            string     `json:"name"                       yaml:"name"`
	Description     string     `json:"description"                yaml:"description"`
	CreatedAt       time.Time  `json:"created_at"                 yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"                 yaml:"updated_at"`
	ContainingFrame *FrameInfo `json:"containing_frame,omitempty" yaml:"containing_frame,omitempty"`
	User            *User      `json:"user,omitempty"             yaml:"user,omitempty"`
}

// FileComponent is a component entry keyed by node id inside a file.
type FileComponent struct {
	Key         string `json:"key"                    yaml:"key"`
	Name        string `json:"name"                   yaml:"name"`
	Description string `json:"description"            yaml:"description"`
	SetID       string `json:"componentSetId,omitempty" yaml:"componentSetId,omitempty"`
}

// Branch is a branch of a file.
type Branch struct {
	Key          string `json:"key"           yaml:"key"`
	Name         string `json:"name"          yaml:"name"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
	LastModified string `json:"last_modified" yaml:"last_modified"`
	LinkAccess   string `json:"link_access"   yaml:"link_access"`
}

// FileResponse is returned by GET /v1/files/{key}.
type FileResponse struct {
	Response

	Name          string                     `json:"name"                    yaml:"name"`
	Role          string                     `json:"role"                    yaml:"role"`
	LastModified  time.Time                  `json:"lastModified"            yaml:"lastModified"`
	EditorType    string                     `json:"editorType"              yaml:"editorType"`
	ThumbnailURL  string                     `json:"thumbnailUrl"            yaml:"thumbnailUrl"`
	Version       string                     `json:"version"                 yaml:"version"`
	Document      *Node                      `json:"document,omitempty"      yaml:"document,omitempty"`
	Components    map[string]FileComponent   `json:"components,omitempty"    yaml:"components,omitempty"`
	ComponentSets map[string]FileComponent   `json:"componentSets,omitempty" yaml:"componentSets,omitempty"`
	SchemaVersion int                        `json:"schemaVersion"           yaml:"schemaVersion"`
	Styles        map[string]json.RawMessage `json:"styles,omitempty"        yaml:"-"`
	MainFileKey   string                     `json:"mainFileKey,omitempty"   yaml:"mainFileKey,omitempty"`
	Branches      []Branch                   `json:"branches,omitempty"      yaml:"branches,omitempty"`
}

// FileOptions tunes Files.Get.
type FileOptions struct {
	Version  string
	IDs      []string
	Depth    int
	Geometry string
	Branches bool
}

// Version is a saved version of a file.
type Version struct {
	ID          string    `json:"id"          yaml:"id"`
	CreatedAt   time.Time `json:"created_at"  yaml:"created_at"`
	Label       string    `json:"label"       yaml:"label"`
	Description string    `json:"description" yaml:"description"`
	User        User      `json:"user"        yaml:"user"`
}

// VersionsResponse is returned by GET /v1/files/{key}/versions.
type VersionsResponse struct {
	Versions   []Version       `json:"versions"             yaml:"versions"`
	Pagination json.RawMessage `json:"pagination,omitempty" yaml:"-"`
}

// ComponentResponse is returned by GET /v1/components/{key}.
type ComponentResponse struct {
	Response

	Meta Component `json:"meta" yaml:"meta"`
}

// ComponentsResponse is returned by GET /v1/files/{key}/components.
type ComponentsResponse struct {
	Response

	Meta struct {
		Components []Component `json:"components" yaml:"components"`
	} `json:"meta" yaml:"meta"`
}

// ComponentSetsResponse is returned by GET /v1/files/{key}/component_sets.
type ComponentSetsResponse struct {
	Response

	Meta struct {
		ComponentSets []Component `json:"component_sets" yaml:"component_sets"`
	} `json:"meta" yaml:"meta"`
}

// Image formats accepted by the images endpoint.
const (
	ImageFormatJPG = "jpg"
	ImageFormatPNG = "png"
	ImageFormatSVG = "svg"
	ImageFormatPDF = "pdf"
)

// ImageOptions tunes image rendering. A nil *ImageOptions means
// DefaultImageOptions.
type ImageOptions struct {
	Scale             float64 `json:"scale"               yaml:"scale"               mapstructure:"scale"`
	Format            string  `json:"format"              yaml:"format"              mapstructure:"format"`
	SVGOutlineText    bool    `json:"svg_outline_text"    yaml:"svg_outline_text"    mapstructure:"svg_outline_text"`
	SVGIncludeID      bool    `json:"svg_include_id"      yaml:"svg_include_id"      mapstructure:"svg_include_id"`
	SVGIncludeNodeID  bool    `json:"svg_include_node_id" yaml:"svg_include_node_id" mapstructure:"svg_include_node_id"`
	SVGSimplifyStroke bool    `json:"svg_simplify_stroke" yaml:"svg_simplify_stroke" mapstructure:"svg_simplify_stroke"`
	ContentsOnly      bool    `json:"contents_only"       yaml:"contents_only"       mapstructure:"contents_only"`
	UseAbsoluteBounds bool    `json:"use_absolute_bounds" yaml:"use_absolute_bounds" mapstructure:"use_absolute_bounds"`
	Version           string  `json:"version,omitempty"   yaml:"version,omitempty"   mapstructure:"version"`
}

// DefaultImageOptions returns the render settings Figma documents as its
// defaults, with SVG as the format.
func DefaultImageOptions() *ImageOptions {
	return &ImageOptions{
		Scale:             1,
		Format:            ImageFormatSVG,
		SVGOutlineText:    true,
		SVGSimplifyStroke: true,
		ContentsOnly:      true,
	}
}

// ImageResponse maps node ids to signed render URLs. A node that failed to
// render maps to an empty string.
type ImageResponse struct {
	Response

	Images map[string]string `json:"images" yaml:"images"`
}

// Webhook event types.
const (
	WebhookEventPing              = "PING"
	WebhookEventFileUpdate        = "FILE_UPDATE"
	WebhookEventFileVersionUpdate = "FILE_VERSION_UPDATE"
	WebhookEventFileDelete        = "FILE_DELETE"
	WebhookEventLibraryPublish    = "LIBRARY_PUBLISH"
	WebhookEventFileComment       = "FILE_COMMENT"
)

// Webhook statuses.
const (
	WebhookStatusActive = "ACTIVE"
	WebhookStatusPaused = "PAUSED"
)

// Webhook is a team webhook registration.
type Webhook struct {
	ID          string `json:"id"                    yaml:"id"`
	EventType   string `json:"event_type"            yaml:"event_type"`
	TeamID      string `json:"team_id"               yaml:"team_id"`
	Status      string `json:"status"                yaml:"status"`
	ClientID    string `json:"client_id,omitempty"   yaml:"client_id,omitempty"`
	Passcode    string `json:"passcode,omitempty"    yaml:"passcode,omitempty"`
	Endpoint    string `json:"endpoint"              yaml:"endpoint"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WebhookList is returned by GET /v2/teams/{team_id}/webhooks.
type WebhookList struct {
	Webhooks []Webhook `json:"webhooks" yaml:"webhooks"`
}

// WebhookCreateRequest registers a new webhook.
type WebhookCreateRequest struct {
	EventType   string `json:"event_type"            yaml:"event_type"`
	TeamID      string `json:"team_id"               yaml:"team_id"`
	Endpoint    string `json:"endpoint"              yaml:"endpoint"`
	Passcode    string `json:"passcode"              yaml:"passcode"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WebhookUpdateRequest changes an existing webhook. Empty fields are left
// unchanged.
type WebhookUpdateRequest struct {
	EventType   string `json:"event_type,omitempty"  yaml:"event_type,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"    yaml:"endpoint,omitempty"`
	Passcode    string `json:"passcode,omitempty"    yaml:"passcode,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WebhookPayload is the body Figma posts to a webhook endpoint.
type WebhookPayload struct {
	EventType string    `json:"event_type"          yaml:"event_type"`
	FileKey   string    `json:"file_key,omitempty"  yaml:"file_key,omitempty"`
	FileName  string    `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Passcode  string    `json:"passcode"            yaml:"passcode"`
	Timestamp time.Time `json:"timestamp"           yaml:"timestamp"`
	WebhookID string    `json:"webhook_id"          yaml:"webhook_id"`
}

// DevResource links a node to an external resource.
type DevResource struct {
	ID      string `json:"id"       yaml:"id"`
	Name    string `json:"name"     yaml:"name"`
	URL     string `json:"url"      yaml:"url"`
	FileKey string `json:"file_key" yaml:"file_key"`
	NodeID  string `json:"node_id"  yaml:"node_id"`
}

// DevResourcesResponse is returned by GET /v1/files/{key}/dev_resources.
type DevResourcesResponse struct {
	Response

	DevResources []DevResource `json:"dev_resources" yaml:"dev_resources"`
}

// DevResourceCreate is one entry of a bulk create.
type DevResourceCreate struct {
	Name    string `json:"name"     yaml:"name"`
	URL     string `json:"url"      yaml:"url"`
	FileKey string `json:"file_key" yaml:"file_key"`
	NodeID  string `json:"node_id"  yaml:"node_id"`
}

// DevResourceUpdate is one entry of a bulk update.
type DevResourceUpdate struct {
	ID   string `json:"id"             yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	URL  string `json:"url,omitempty"  yaml:"url,omitempty"`
}

// DevResourceError reports a per-entry failure of a bulk call.
type DevResourceError struct {
	ID      string `json:"id,omitempty"       yaml:"id,omitempty"`
	FileKey string `json:"file_key,omitempty" yaml:"file_key,omitempty"`
	NodeID  string `json:"node_id,omitempty"  yaml:"node_id,omitempty"`
	Error   string `json:"error"              yaml:"error"`
}

// CreateDevResourcesResponse is returned by POST /v1/dev_resources.
type CreateDevResourcesResponse struct {
	Response

	LinksCreated []DevResource      `json:"links_created" yaml:"links_created"`
	Errors       []DevResourceError `json:"errors"        yaml:"errors"`
}

// UpdateDevResourcesResponse is returned by PUT /v1/dev_resources.
type UpdateDevResourcesResponse struct {
	Response

	LinksUpdated []string           `json:"links_updated" yaml:"links_updated"`
	Errors       []DevResourceError `json:"errors"        yaml:"errors"`
}

// Project is a team project.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TeamProjectsResponse is returned by GET /v1/teams/{team_id}/projects.
type TeamProjectsResponse struct {
	Name     string    `json:"name"     yaml:"name"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// ProjectFile is a file inside a project.
type ProjectFile struct {
	Key          string    `json:"key"           yaml:"key"`
	Name         string    `json:"name"          yaml:"name"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// ProjectFilesResponse is returned by GET /v1/projects/{project_id}/files.
type ProjectFilesResponse struct {
	Name  string        `json:"name"  yaml:"name"`
	Files []ProjectFile `json:"files" yaml:"files"`
}
