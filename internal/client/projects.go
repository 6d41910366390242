package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/figma/internal/dispatch"
	"github.com/fivetwenty-io/figma/pkg/figma"
)

// ProjectsClient implements figma.ProjectsClient.
type ProjectsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(dispatcher *dispatch.Dispatcher) *ProjectsClient {
	return &ProjectsClient{
		dispatcher: dispatcher,
	}
}

// ListForTeam implements figma.ProjectsClient.ListForTeam.
func (c *ProjectsClient) ListForTeam(ctx context.Context, teamID string) (*figma.TeamProjectsResponse, error) {
	if teamID == "" {
		return nil, figma.ErrTeamIDRequired
	}

	projects, err := dispatch.Structured[figma.TeamProjectsResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     "/v1/teams/" + url.PathEscape(teamID) + "/projects",
		Category: figma.CategoryTeam,
	})
	if err != nil {
		return nil, fmt.Errorf("listing team projects: %w", err)
	}

	return projects, nil
}

// ListFiles implements figma.ProjectsClient.ListFiles.
func (c *ProjectsClient) ListFiles(ctx context.Context, projectID string) (*figma.ProjectFilesResponse, error) {
	if projectID == "" {
		return nil, figma.ErrProjectIDRequired
	}

	files, err := dispatch.Structured[figma.ProjectFilesResponse](ctx, c.dispatcher, dispatch.Descriptor{
		Method:   http.MethodGet,
		Path:     "/v1/projects/" + url.PathEscape(projectID) + "/files",
		Category: figma.CategoryProject,
	})
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}

	return files, nil
}
