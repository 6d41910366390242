// Package figmaclient provides the main entry point for creating Figma API clients.
package figmaclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/figma/internal/client"
	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// New creates a new Figma API client. The credential comes from
// config.APIToken or, when that is empty, the FIGMA_API_TOKEN environment
// variable. The caller's config is not modified.
func New(ctx context.Context, config *figma.Config) (figma.Client, error) {
	if config == nil {
		return nil, &figma.ConfigurationError{Key: "config", Err: figma.ErrConfigRequired}
	}

	resolved := *config
	resolved.BaseURL = normalizeBaseURL(resolved.BaseURL)

	if strings.TrimSpace(resolved.APIToken) == "" {
		resolved.APIToken = strings.TrimSpace(os.Getenv(constants.EnvAPIToken))
	}

	if resolved.APIToken == "" {
		return nil, &figma.ConfigurationError{Key: "api_token", Err: figma.ErrAPITokenRequired}
	}

	c, err := client.New(ctx, &resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
