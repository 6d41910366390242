// Package figma provides types, interfaces, and helpers for working with the
// Figma REST API.
//
// # Overview
//
// The figma package defines the domain types (Comment, FileResponse,
// Component, Webhook, DevResource, ...) and the interfaces for resource
// clients (CommentsClient, FilesClient, ImagesClient, ...). The concrete
// implementation is built by the figmaclient package, which wires
// configuration, rate limiting, retries and transport.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/figma/pkg/figma"
//	  "github.com/fivetwenty-io/figma/pkg/figmaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := figmaclient.New(ctx, &figma.Config{APIToken: "figd_..."})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  comments, err := cli.Comments().List(ctx, "abc123")
//	  if err != nil { log.Fatal(err) }
//	  _ = comments
//	}
//
// # Rate limits
//
// Every call is charged to one Category. Each category owns an independent
// token bucket (see DefaultBuckets); a call waits for a token rather than
// failing when its bucket is empty, and an exhausted category never delays
// calls in another. Buckets can be tuned through Config.Buckets.
//
// # Errors
//
// Calls return typed failures: TransportError once retries are exhausted,
// DecodeError when a successful response has the wrong shape, and an error
// matching ErrCancelled when the context ends. Helpers such as IsNotFound,
// IsRateLimited and IsDecodeFailure branch on common cases.
//
// # Observation and batches
//
// Observers receive one DispatchEvent per finished call; MetricsCollector is
// a ready-made observer. BatchExecutor runs many operations concurrently and
// reports each result independently.
package figma
