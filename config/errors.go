package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	ErrInvalidPort          = errors.New("invalid port: must be between 1 and 65535")
	ErrInvalidUploadLimit   = errors.New("invalid max upload bytes: must be positive")
	ErrInvalidTimeout       = errors.New("invalid timeout: must be positive")
	ErrMissingModelPath     = errors.New("missing detection model path")
	ErrInvalidThreshold     = errors.New("invalid threshold: must be in (0, 1]")
	ErrInvalidInputSize     = errors.New("invalid model input size: must be a positive multiple of 32")
	ErrInvalidLogFormat     = errors.New("invalid log format: must be text or json")
	ErrInvalidProvider      = errors.New("invalid execution provider")
	ErrInvalidSamplingParam = errors.New("invalid generation parameters")

	// ErrConfigNotFound is returned when an explicitly given configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
