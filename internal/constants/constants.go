package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint and authentication.
const (
	// DefaultBaseURL is the Figma REST API root.
	DefaultBaseURL = "https://api.figma.com"

	// APITokenHeader carries the personal access token.
	APITokenHeader = "X-FIGMA-TOKEN"

	// EnvAPIToken is read when no token is configured explicitly.
	EnvAPIToken = "FIGMA_API_TOKEN"

	// EnvPrefix is the viper environment prefix used by the CLI.
	EnvPrefix = "FIGMA"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "figma-go-client/1.0"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds a single HTTP exchange.
	DefaultHTTPTimeout = 5 * time.Minute

	// DefaultLeaseWaitInterval is the pause between lease attempts on an empty bucket.
	DefaultLeaseWaitInterval = time.Minute

	// DefaultBatchTimeout bounds a single operation inside a batch.
	DefaultBatchTimeout = 10 * time.Minute
)

// Retry limits.
const (
	// DefaultRetryMax is the default total number of attempts per dispatch.
	DefaultRetryMax = 10

	// DefaultRetryWaitUnit is the unit the exponential backoff is expressed in.
	DefaultRetryWaitUnit = time.Second

	// ExponentialBackoffBase is the base for exponential backoff calculations.
	ExponentialBackoffBase = 2
)

// Rate limit replenishment.
const (
	// DefaultReplenishPeriod is the interval tokens are added on.
	DefaultReplenishPeriod = time.Minute
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3
)

// Figma query defaults.
const (
	// DefaultFileDepth is the document depth requested by Files.Get.
	DefaultFileDepth = 2

	// MinImageScale is the smallest render scale Figma accepts.
	MinImageScale = 0.01

	// MaxImageScale is the largest render scale Figma accepts.
	MaxImageScale = 4.0
)

// Event publishing.
const (
	// DefaultNATSSubject is the subject prefix dispatch events are published under.
	DefaultNATSSubject = "figma.dispatch"

	// NATSClientName identifies the connection on the server.
	NATSClientName = "figma-client"
)

// Output formats.
const (
	// FormatTable renders results as a table.
	FormatTable = "table"

	// FormatJSON renders results as indented JSON.
	FormatJSON = "json"

	// FormatYAML renders results as YAML.
	FormatYAML = "yaml"
)

// Display constants.
const (
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// StringTruncationLength is the default length for truncating strings.
	StringTruncationLength = 60

	// TokenMaskVisible is the number of token characters left unmasked.
	TokenMaskVisible = 4
)
