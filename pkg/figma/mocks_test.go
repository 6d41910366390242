package figma_test

import (
	"context"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/mock"
)

// MockClient implements figma.Client for testing
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Comments() figma.CommentsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.CommentsClient)
}

func (m *MockClient) Files() figma.FilesClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.FilesClient)
}

func (m *MockClient) Components() figma.ComponentsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.ComponentsClient)
}

func (m *MockClient) Images() figma.ImagesClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.ImagesClient)
}

func (m *MockClient) Webhooks() figma.WebhooksClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.WebhooksClient)
}

func (m *MockClient) DevResources() figma.DevResourcesClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.DevResourcesClient)
}

func (m *MockClient) Projects() figma.ProjectsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(figma.ProjectsClient)
}

func (m *MockClient) Buckets() []figma.BucketStatus {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]figma.BucketStatus)
}

func (m *MockClient) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockFilesClient implements figma.FilesClient for testing
type MockFilesClient struct {
	mock.Mock
}

func (m *MockFilesClient) Get(ctx context.Context, fileKey string, opts *figma.FileOptions) (*figma.FileResponse, error) {
	args := m.Called(ctx, fileKey, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*figma.FileResponse), args.Error(1)
}

func (m *MockFilesClient) ListVersions(ctx context.Context, fileKey string) (*figma.VersionsResponse, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*figma.VersionsResponse), args.Error(1)
}

// MockCommentsClient implements figma.CommentsClient for testing
type MockCommentsClient struct {
	mock.Mock
}

func (m *MockCommentsClient) List(ctx context.Context, fileKey string) (*figma.CommentsResponse, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*figma.CommentsResponse), args.Error(1)
}

// MockImagesClient implements figma.ImagesClient for testing
type MockImagesClient struct {
	mock.Mock
}

func (m *MockImagesClient) Export(ctx context.Context, fileKey string, nodeIDs []string, opts *figma.ImageOptions) (*figma.ImageResponse, error) {
	args := m.Called(ctx, fileKey, nodeIDs, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*figma.ImageResponse), args.Error(1)
}

func (m *MockImagesClient) SVGURL(ctx context.Context, fileKey, nodeID string, opts *figma.ImageOptions) (string, error) {
	args := m.Called(ctx, fileKey, nodeID, opts)

	return args.String(0), args.Error(1)
}

func (m *MockImagesClient) SVGSource(ctx context.Context, fileKey, nodeID string, opts *figma.ImageOptions) (string, error) {
	args := m.Called(ctx, fileKey, nodeID, opts)

	return args.String(0), args.Error(1)
}
