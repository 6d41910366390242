package constants

import "errors"

// Configuration errors.
var (
	ErrNoConfigFile     = errors.New("no configuration file found, use 'figma config set-token' to create one")
	ErrEmptyToken       = errors.New("token must not be empty")
	ErrTokenNotTerminal = errors.New("stdin is not a terminal, pass the token with --token")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrUnknownCategory     = errors.New("unknown rate limit category")
	ErrEventsRequired      = errors.New("at least one --event is required")
	ErrEndpointRequired    = errors.New("--endpoint flag is required")
	ErrPasscodeRequired    = errors.New("--passcode flag is required")
	ErrNodeIDsRequired     = errors.New("at least one node id is required")
)
