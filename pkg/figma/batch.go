package figma

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/figma/internal/constants"
)

// Batch resources.
const (
	BatchResourceFile     = "file"
	BatchResourceVersions = "versions"
	BatchResourceComments = "comments"
	BatchResourceImage    = "image"
	BatchResourceSVGURL   = "svg_url"
	BatchResourceSVG      = "svg"
)

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	ID       string
	Resource string // "file", "versions", "comments", "image", "svg_url", "svg"
	FileKey  string
	NodeIDs  []string
	Image    *ImageOptions
	File     *FileOptions
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs resource client operations concurrently. A failed operation is
// recorded in its result and never aborts the others.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultBatchTimeout,
	}
}

// SetTimeout sets the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations. Results are returned in input order.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			if err := ctx.Err(); err != nil {
				results[index] = BatchResult{ID: operation.ID, Error: NewCancelledError(err)}

				return
			}

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index] = BatchResult{ID: operation.ID, Error: NewCancelledError(ctx.Err())}

				return
			}

			defer func() { <-semaphore }()

			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	var (
		data interface{}
		err  error
	)

	switch operation.Resource {
	case BatchResourceFile:
		data, err = b.client.Files().Get(ctx, operation.FileKey, operation.File)
	case BatchResourceVersions:
		data, err = b.client.Files().ListVersions(ctx, operation.FileKey)
	case BatchResourceComments:
		data, err = b.client.Comments().List(ctx, operation.FileKey)
	case BatchResourceImage:
		data, err = b.client.Images().Export(ctx, operation.FileKey, operation.NodeIDs, operation.Image)
	case BatchResourceSVGURL, BatchResourceSVG:
		data, err = b.executeSVG(ctx, operation)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidBatchResource, operation.Resource)
	}

	result.Success = err == nil
	result.Data = data
	result.Error = err

	return result
}

func (b *BatchExecutor) executeSVG(ctx context.Context, operation BatchOperation) (string, error) {
	if len(operation.NodeIDs) != 1 {
		return "", fmt.Errorf("%w: %s expects exactly one node id", ErrInvalidBatchResource, operation.Resource)
	}

	if operation.Resource == BatchResourceSVGURL {
		return b.client.Images().SVGURL(ctx, operation.FileKey, operation.NodeIDs[0], operation.Image)
	}

	return b.client.Images().SVGSource(ctx, operation.FileKey, operation.NodeIDs[0], operation.Image)
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// AddGetFile adds a file fetch.
func (b *BatchBuilder) AddGetFile(id, fileKey string, opts *FileOptions) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Resource: BatchResourceFile, FileKey: fileKey, File: opts})
}

// AddListVersions adds a version history fetch.
func (b *BatchBuilder) AddListVersions(id, fileKey string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Resource: BatchResourceVersions, FileKey: fileKey})
}

// AddListComments adds a comments listing.
func (b *BatchBuilder) AddListComments(id, fileKey string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Resource: BatchResourceComments, FileKey: fileKey})
}

// AddExportImages adds a render request for several nodes.
func (b *BatchBuilder) AddExportImages(id, fileKey string, nodeIDs []string, opts *ImageOptions) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Resource: BatchResourceImage,
		FileKey:  fileKey,
		NodeIDs:  nodeIDs,
		Image:    opts,
	})
}

// AddSVGURL adds a signed SVG URL lookup for one node.
func (b *BatchBuilder) AddSVGURL(id, fileKey, nodeID string, opts *ImageOptions) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Resource: BatchResourceSVGURL,
		FileKey:  fileKey,
		NodeIDs:  []string{nodeID},
		Image:    opts,
	})
}

// AddSVGSource adds an SVG download for one node.
func (b *BatchBuilder) AddSVGSource(id, fileKey, nodeID string, opts *ImageOptions) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Resource: BatchResourceSVG,
		FileKey:  fileKey,
		NodeIDs:  []string{nodeID},
		Image:    opts,
	})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
