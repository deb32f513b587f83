// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by all
// binaries. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as logging and version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the local cache database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds settings of the outbound LMS API client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background sync jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// IPC holds settings of the debug inter-process bridge.
	IPC IPC `envPrefix:"IPC_"`

	// Server holds settings of the mock LMS API server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is the file the client logger appends to. Empty means a "logs"
	// file next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for local storage backends.
type Storage struct {
	// DB holds the local SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN is the SQLite data source name, usually a file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds settings of the outbound LMS API client.
type Adapter struct {
	// HTTPAddress is the LMS base URL (e.g. "https://lms.example.edu").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// AccessToken is the bearer token sent with every API request.
	// Env: ADAPTER_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// RequestTimeout is the maximum duration of a single API request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PerPage is the page size requested from paginated endpoints.
	// Env: ADAPTER_PER_PAGE
	PerPage int `env:"PER_PAGE"`

	// Retries is how many times a failed request is retried. Negative
	// disables retries.
	// Env: ADAPTER_RETRIES
	Retries int `env:"RETRIES"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background full sync.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// IPC holds settings of the debug inter-process bridge.
type IPC struct {
	// Enabled turns on the app-side IPC server and request forwarding.
	// Env: IPC_ENABLED
	Enabled bool `env:"ENABLED"`

	// ID is the test-run or device identifier channel names derive from.
	// Env: IPC_ID
	ID string `env:"ID"`

	// SocketDir is the directory holding the channel sockets.
	// Env: IPC_SOCKET_DIR
	SocketDir string `env:"SOCKET_DIR"`

	// ConnectTimeout is how long a client keeps polling for a server.
	// Env: IPC_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`

	// ForwardRequests routes the app's API traffic through the driver.
	// Env: IPC_FORWARD_REQUESTS
	ForwardRequests bool `env:"FORWARD_REQUESTS"`
}

// Server holds settings of the mock LMS API server.
type Server struct {
	// HTTPAddress is the TCP address the mock API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// FixturesPath is the JSON fixture file served by the mock API and the
	// driver.
	// Env: SERVER_FIXTURES
	FixturesPath string `env:"FIXTURES"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
