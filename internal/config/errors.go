package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid API client settings
	// (for example, missing base address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or an in-memory DSN for a persistent cache).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidIPCConfigs indicates the IPC bridge is enabled without a
	// channel id.
	ErrInvalidIPCConfigs = errors.New("invalid ipc configuration")
	// ErrInvalidServerConfigs indicates missing mock API server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// ErrReadingEnv is returned when an environment variable cannot be parsed
// into its config field, e.g. a malformed duration.
var ErrReadingEnv = errors.New("error getting env configs")
