package figma_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	files := &MockFilesClient{}
	comments := &MockCommentsClient{}
	images := &MockImagesClient{}

	client := &MockClient{}
	client.On("Files").Return(files)
	client.On("Comments").Return(comments)
	client.On("Images").Return(images)

	files.On("Get", mock.Anything, "file1", (*figma.FileOptions)(nil)).
		Return(&figma.FileResponse{Name: "Design"}, nil)
	files.On("ListVersions", mock.Anything, "file1").
		Return(&figma.VersionsResponse{Versions: []figma.Version{{ID: "v1"}}}, nil)
	comments.On("List", mock.Anything, "broken").
		Return(nil, &figma.TransportError{Method: "GET", URL: "/v1/files/broken/comments", StatusCode: 500, Attempts: 3})
	images.On("Export", mock.Anything, "file1", []string{"1:2"}, (*figma.ImageOptions)(nil)).
		Return(&figma.ImageResponse{Images: map[string]string{"1:2": "https://cdn/1.svg"}}, nil)
	images.On("SVGURL", mock.Anything, "file1", "1:2", (*figma.ImageOptions)(nil)).
		Return("https://cdn/1.svg", nil)
	images.On("SVGSource", mock.Anything, "file1", "9:9", (*figma.ImageOptions)(nil)).
		Return("", nil)

	operations := figma.NewBatchBuilder().
		AddGetFile("file", "file1", nil).
		AddListVersions("versions", "file1").
		AddListComments("comments", "broken").
		AddExportImages("images", "file1", []string{"1:2"}, nil).
		AddSVGURL("svg-url", "file1", "1:2", nil).
		AddSVGSource("svg", "file1", "9:9", nil).
		AddOperation(figma.BatchOperation{ID: "unknown", Resource: "teams"}).
		Build()

	var callbacks atomic.Int32

	for index := range operations {
		operations[index].Callback = func(*figma.BatchResult) { callbacks.Add(1) }
	}

	executor := figma.NewBatchExecutor(client, 2)
	results := executor.Execute(context.Background(), operations)

	require.Len(t, results, len(operations))

	for index, result := range results {
		assert.Equal(t, operations[index].ID, result.ID, "results keep input order")
	}

	assert.True(t, results[0].Success)
	assert.Equal(t, "Design", results[0].Data.(*figma.FileResponse).Name)

	assert.True(t, results[1].Success)

	assert.False(t, results[2].Success, "one failure does not abort the others")
	assert.True(t, figma.IsTransportFailure(results[2].Error))

	assert.True(t, results[3].Success)
	assert.True(t, results[4].Success)
	assert.Equal(t, "https://cdn/1.svg", results[4].Data)

	assert.True(t, results[5].Success, "a node without a render is not an error")
	assert.Empty(t, results[5].Data)

	assert.False(t, results[6].Success)
	require.ErrorIs(t, results[6].Error, figma.ErrInvalidBatchResource)

	assert.Equal(t, int32(len(operations)), callbacks.Load())

	files.AssertExpectations(t)
	comments.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestBatchExecutor_SVGNeedsOneNode(t *testing.T) {
	t.Parallel()

	executor := figma.NewBatchExecutor(&MockClient{}, 0)
	results := executor.Execute(context.Background(), []figma.BatchOperation{
		{ID: "svg", Resource: figma.BatchResourceSVG, FileKey: "file1", NodeIDs: []string{"1:2", "3:4"}},
	})

	require.Len(t, results, 1)
	require.ErrorIs(t, results[0].Error, figma.ErrInvalidBatchResource)
}

func TestBatchExecutor_Timeout(t *testing.T) {
	t.Parallel()

	comments := &MockCommentsClient{}
	client := &MockClient{}
	client.On("Comments").Return(comments)

	comments.On("List", mock.Anything, "slow").
		Run(func(args mock.Arguments) {
			ctx, ok := args.Get(0).(context.Context)
			if ok {
				<-ctx.Done()
			}
		}).
		Return(nil, figma.NewCancelledError(context.DeadlineExceeded))

	executor := figma.NewBatchExecutor(client, 1)
	executor.SetTimeout(20 * time.Millisecond)

	start := time.Now()
	results := executor.Execute(context.Background(), figma.NewBatchBuilder().AddListComments("slow", "slow").Build())

	require.Len(t, results, 1)
	assert.True(t, figma.IsCancelled(results[0].Error))
	assert.Less(t, time.Since(start), time.Second)
}

func TestBatchExecutor_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := figma.NewBatchExecutor(&MockClient{}, 1)
	results := executor.Execute(ctx, []figma.BatchOperation{
		{ID: "a", Resource: figma.BatchResourceComments, FileKey: "file1"},
		{ID: "b", Resource: figma.BatchResourceComments, FileKey: "file1"},
	})

	require.Len(t, results, 2)

	for _, result := range results {
		assert.False(t, result.Success)
		assert.True(t, figma.IsCancelled(result.Error))
	}
}
