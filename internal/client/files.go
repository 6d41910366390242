package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// FilesClient implements figma.FilesClient.
type FilesClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewFilesClient creates a new files client.
func NewFilesClient(dispatcher *dispatch.Dispatcher) *FilesClient {
	return &FilesClient{
		dispatcher: dispatcher,
	}
}

// Get implements figma.FilesClient.Get.
func (c *FilesClient) Get(ctx context.Context, fileKey string, opts *figma.FileOptions) (*figma.FileResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	file, err := dispatch.Structured[figma.FileResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey),
		Query:    fileQuery(opts),
		Category: figma.CategoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	return file, nil
}

// ListVersions implements figma.FilesClient.ListVersions.
func (c *FilesClient) ListVersions(ctx context.Context, fileKey string) (*figma.VersionsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	versions, err := dispatch.Structured[figma.VersionsResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     filePath(fileKey, "versions"),
		Category: figma.CategoryVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("listing file versions: %w", err)
	}

	return versions, nil
}

func fileQuery(opts *figma.FileOptions) url.Values {
	query := url.Values{}
	depth := constants.DefaultFileDepth

	if opts != nil {
		if opts.Depth > 0 {
			depth = opts.Depth
		}

		if opts.Version != "" {
			query.Set("version", opts.Version)
		}

		if len(opts.IDs) > 0 {
			query.Set("ids", strings.Join(opts.IDs, ","))
		}

		if opts.Geometry != "" {
			query.Set("geometry", opts.Geometry)
		}

		if opts.Branches {
			query.Set("branch_data", "true")
		}
	}

	query.Set("depth", strconv.Itoa(depth))

	return query
}
