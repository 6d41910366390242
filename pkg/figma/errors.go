package figma

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every error returned by a dispatch matches exactly one of
// these with errors.Is.
var (
	ErrTransport     = errors.New("transport failure")
	ErrDecode        = errors.New("decode failure")
	ErrCancelled     = errors.New("dispatch cancelled")
	ErrConfiguration = errors.New("configuration failure")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrAPITokenRequired     = errors.New("API token is required")
	ErrUnknownCategory      = errors.New("unknown rate limit category")
	ErrInvalidBucketConfig  = errors.New("invalid bucket configuration")
	ErrDecodeTargetRequired = errors.New("structured dispatch requires a decode target")
	ErrFileKeyRequired      = errors.New("file key is required")
	ErrNodeIDRequired       = errors.New("node id is required")
	ErrTeamIDRequired       = errors.New("team id is required")
	ErrProjectIDRequired    = errors.New("project id is required")
	ErrWebhookIDRequired    = errors.New("webhook id is required")
	ErrDevResourceRequired  = errors.New("at least one dev resource is required")
	ErrInvalidImageScale    = errors.New("image scale must be between 0.01 and 4")
	ErrInvalidImageFormat   = errors.New("image format must be one of jpg, png, svg, pdf")
	ErrInvalidSVGDocument   = errors.New("asset is not a well-formed SVG document")
	ErrInvalidBatchResource = errors.New("invalid batch resource")
	ErrNoHostInURL          = errors.New("no host specified in URL")
)

// APIError is the error envelope Figma returns on failed calls.
type APIError struct {
	Status  int    `json:"status" yaml:"status"`
	Message string `json:"err"    yaml:"err"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("figma: %s (status: %d)", e.Message, e.Status)
}

// ParseAPIError parses a Figma error envelope. It returns nil when the body
// is not one.
func ParseAPIError(data []byte) *APIError {
	var envelope struct {
		Status  int    `json:"status"`
		Err     string `json:"err"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil
	}

	msg := envelope.Err
	if msg == "" {
		msg = envelope.Message
	}

	if envelope.Status == 0 && msg == "" {
		return nil
	}

	return &APIError{Status: envelope.Status, Message: msg}
}

// TransportError is returned when an exchange did not produce a successful
// response within the retry budget.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Attempts   int
	API        *APIError
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s failed after %d attempt(s): %v", e.Method, e.URL, e.Attempts, e.Err)
	case e.API != nil:
		return fmt.Sprintf("%s %s failed after %d attempt(s): %s", e.Method, e.URL, e.Attempts, e.API.Error())
	case e.StatusCode >= http.StatusOK && e.StatusCode < http.StatusMultipleChoices:
		return fmt.Sprintf("%s %s returned no content after %d attempt(s)", e.Method, e.URL, e.Attempts)
	default:
		return fmt.Sprintf("%s %s failed after %d attempt(s): status %d", e.Method, e.URL, e.Attempts, e.StatusCode)
	}
}

// Unwrap exposes the failure kind, the underlying cause and the API envelope.
func (e *TransportError) Unwrap() []error {
	errs := []error{ErrTransport}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	if e.API != nil {
		errs = append(errs, e.API)
	}

	return errs
}

// DecodeError is returned when a successful response could not be turned
// into the requested shape. It is never retried.
type DecodeError struct {
	URL  string
	Kind string
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response from %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap exposes the failure kind and the decoder error.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// ConfigurationError is returned by constructors when required settings are
// missing or invalid.
type ConfigurationError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %v", e.Key, e.Err)
}

// Unwrap exposes the failure kind and the cause.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

// NewCancelledError wraps a context error so it matches both ErrCancelled
// and the original context error.
func NewCancelledError(cause error) error {
	return errors.Join(ErrCancelled, cause)
}

// IsTransportFailure reports whether err is a TransportError.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecodeFailure reports whether err is a DecodeError.
func IsDecodeFailure(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsCancelled reports whether the dispatch was abandoned because its
// context ended.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsConfigurationFailure reports whether err is a ConfigurationError.
func IsConfigurationFailure(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if Figma rejected the call with 429.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) && apiErr.Status == status {
		return true
	}

	transportErr := &TransportError{}
	if errors.As(err, &transportErr) {
		return transportErr.StatusCode == status
	}

	return false
}

// Test error variables for test files to comply with err113.
var (
	ErrSomeError = errors.New("some error")
)
