package dispatch

import (
	"net/url"

	"github.com/fivetwenty-io/figma/pkg/figma"
)

// ResponseKind selects how a successful response body is decoded.
type ResponseKind int

const (
	// KindStructured decodes the body as JSON into the caller's target.
	KindStructured ResponseKind = iota
	// KindRawText returns the body unmodified as a string.
	KindRawText
)

// String implements fmt.Stringer.
func (k ResponseKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindRawText:
		return "raw_text"
	default:
		return "unknown"
	}
}

// Descriptor is one request as built by a resource client. It is not modified
// after it is handed to the Dispatcher.
type Descriptor struct {
	Method   string
	Path     string
	Query    url.Values
	Category figma.Category
	Body     interface{}
	Kind     ResponseKind
}

// Result is what a finished dispatch produced.
type Result struct {
	StatusCode int
	Attempts   int
	Body       []byte
	// Text is set for KindRawText dispatches.
	Text string
}
