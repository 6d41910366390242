package client

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/internal/dispatch"
	figmahttp "github.com/fivetwenty-io/figma/internal/http"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// ImagesClient implements figma.ImagesClient.
type ImagesClient struct {
	dispatcher *dispatch.Dispatcher
	logger     figma.Logger
}

// NewImagesClient creates a new images client.
func NewImagesClient(dispatcher *dispatch.Dispatcher, logger figma.Logger) *ImagesClient {
	if logger == nil {
		logger = figma.NopLogger{}
	}

	return &ImagesClient{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Export implements figma.ImagesClient.Export.
func (c *ImagesClient) Export(ctx context.Context, fileKey string, nodeIDs []string, opts *figma.ImageOptions) (*figma.ImageResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrFileKeyRequired
	}

	if len(nodeIDs) == 0 {
		return nil, figma.ErrNodeIDRequired
	}

	if opts == nil {
		opts = figma.DefaultImageOptions()
	}

	query, err := imageQuery(nodeIDs, opts)
	if err != nil {
		return nil, err
	}

	images, err := dispatch.Structured[figma.ImageResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     "/v1/images/" + url.PathEscape(fileKey),
		Query:    query,
		Category: figma.CategoryImage,
	})
	if err != nil {
		return nil, fmt.Errorf("exporting images: %w", err)
	}

	if images.Images == nil {
		images.Images = map[string]string{}
	}

	return images, nil
}

// SVGURL implements figma.ImagesClient.SVGURL.
func (c *ImagesClient) SVGURL(ctx context.Context, fileKey, nodeID string, opts *figma.ImageOptions) (string, error) {
	if nodeID == "" {
		return "", figma.ErrNodeIDRequired
	}

	svgOpts := figma.DefaultImageOptions()
	if opts != nil {
		copied := *opts
		svgOpts = &copied
	}

	svgOpts.Format = figma.ImageFormatSVG

	images, err := c.Export(ctx, fileKey, []string{nodeID}, svgOpts)
	if err != nil {
		return "", err
	}

	signed := images.Images[nodeID]
	if signed == "" {
		c.logger.Warn("SVG node not found", map[string]interface{}{
			"file_key": fileKey,
			"node_id":  nodeID,
		})

		return "", nil
	}

	return signed, nil
}

// SVGSource implements figma.ImagesClient.SVGSource.
func (c *ImagesClient) SVGSource(ctx context.Context, fileKey, nodeID string, opts *figma.ImageOptions) (string, error) {
	signed, err := c.SVGURL(ctx, fileKey, nodeID, opts)
	if err != nil || signed == "" {
		return "", err
	}

	markup, err := dispatch.RawText(ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     signed,
		Category: figma.CategoryFileImage,
	})
	if err != nil {
		return "", fmt.Errorf("downloading SVG: %w", err)
	}

	if err := validateSVG(markup); err != nil {
		c.logger.Error("Invalid SVG document", map[string]interface{}{
			"file_key": fileKey,
			"node_id":  nodeID,
			"error":    err.Error(),
		})

		return "", &figma.DecodeError{
			URL:  figmahttp.RedactURL(signed),
			Kind: "svg",
			Body: []byte(markup),
			Err:  err,
		}
	}

	return markup, nil
}

func imageQuery(nodeIDs []string, opts *figma.ImageOptions) (url.Values, error) {
	if opts.Scale < constants.MinImageScale || opts.Scale > constants.MaxImageScale {
		return nil, fmt.Errorf("%w: %v", figma.ErrInvalidImageScale, opts.Scale)
	}

	switch opts.Format {
	case figma.ImageFormatJPG, figma.ImageFormatPNG, figma.ImageFormatSVG, figma.ImageFormatPDF:
	default:
		return nil, fmt.Errorf("%w: %q", figma.ErrInvalidImageFormat, opts.Format)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(nodeIDs, ","))
	query.Set("scale", strconv.FormatFloat(opts.Scale, 'f', -1, 64))
	query.Set("format", opts.Format)
	query.Set("contents_only", strconv.FormatBool(opts.ContentsOnly))
	query.Set("use_absolute_bounds", strconv.FormatBool(opts.UseAbsoluteBounds))

	if opts.Format == figma.ImageFormatSVG {
		query.Set("svg_outline_text", strconv.FormatBool(opts.SVGOutlineText))
		query.Set("svg_include_id", strconv.FormatBool(opts.SVGIncludeID))
		query.Set("svg_include_node_id", strconv.FormatBool(opts.SVGIncludeNodeID))
		query.Set("svg_simplify_stroke", strconv.FormatBool(opts.SVGSimplifyStroke))
	}

	if opts.Version != "" {
		query.Set("version", opts.Version)
	}

	return query, nil
}

// validateSVG requires a well-formed XML document with a single svg root
// and nothing but whitespace, comments or processing instructions after it.
func validateSVG(markup string) error {
	decoder := xml.NewDecoder(strings.NewReader(markup))
	decoder.Strict = true

	var (
		depth    int
		rootSeen bool
		rootDone bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("%w: %w", figma.ErrInvalidSVGDocument, err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if rootDone {
				return fmt.Errorf("%w: content after root element", figma.ErrInvalidSVGDocument)
			}

			if !rootSeen {
				if tok.Name.Local != "svg" {
					return fmt.Errorf("%w: root element is %q", figma.ErrInvalidSVGDocument, tok.Name.Local)
				}

				rootSeen = true
			}

			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootDone = true
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(tok)) > 0 {
				return fmt.Errorf("%w: text outside root element", figma.ErrInvalidSVGDocument)
			}
		}
	}

	if !rootSeen {
		return fmt.Errorf("%w: no root element", figma.ErrInvalidSVGDocument)
	}

	return nil
}
