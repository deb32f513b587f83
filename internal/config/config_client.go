package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultPerPage        = 50
	defaultRetries        = 2
	defaultSyncInterval   = 5 * time.Minute
	defaultConnectTimeout = 60 * time.Second
	defaultLogLevel       = "info"
)

// ClientApp holds client process settings.
type ClientApp struct {
	Version  string
	LogLevel string
	LogFile  string
}

// ClientAdapter holds settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the LMS base URL.
	HTTPAddress string
	// AccessToken is the bearer token attached to API requests.
	AccessToken string
	// RequestTimeout is the default timeout for outbound API requests.
	RequestTimeout time.Duration
	// PerPage is the page size requested from paginated endpoints.
	PerPage int
	// Retries is how many times a failed request is retried.
	Retries int
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background full sync runs.
	SyncInterval time.Duration
}

// ClientIPC contains the debug bridge settings.
type ClientIPC struct {
	Enabled         bool
	ID              string
	SocketDir       string
	ConnectTimeout  time.Duration
	ForwardRequests bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	IPC     ClientIPC
}

// DriverConfig configures the UI-test driver process.
type DriverConfig struct {
	LogLevel     string
	IPC          ClientIPC
	FixturesPath string
}

// MockAPIConfig configures the fixture-backed mock LMS API server.
type MockAPIConfig struct {
	LogLevel     string
	HTTPAddress  string
	FixturesPath string
	PerPage      int
	// AccessToken, when set, is the only bearer token the mock API accepts.
	AccessToken string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// GetDriverConfig builds the driver config from env, the caller's CLI
// overrides, and an optional JSON file.
func GetDriverConfig(overrides *StructuredConfig) (*DriverConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withOverrides(overrides).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	driverCfg := &DriverConfig{
		LogLevel:     withDefault(cfg.App.LogLevel, defaultLogLevel),
		IPC:          newClientIPC(cfg.IPC),
		FixturesPath: cfg.Server.FixturesPath,
	}

	return driverCfg, driverCfg.validate()
}

// GetMockAPIConfig builds the mock API server config.
func GetMockAPIConfig(args []string) (*MockAPIConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	perPage := cfg.Adapter.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	apiCfg := &MockAPIConfig{
		LogLevel:     withDefault(cfg.App.LogLevel, defaultLogLevel),
		HTTPAddress:  cfg.Server.HTTPAddress,
		FixturesPath: cfg.Server.FixturesPath,
		PerPage:      perPage,
		AccessToken:  cfg.Adapter.AccessToken,
	}

	return apiCfg, apiCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	requestTimeout := cfg.Adapter.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	perPage := cfg.Adapter.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	retries := cfg.Adapter.Retries
	switch {
	case retries == 0:
		retries = defaultRetries
	case retries < 0:
		retries = 0
	}
	syncInterval := cfg.Workers.SyncInterval
	if syncInterval == 0 {
		syncInterval = defaultSyncInterval
	}

	return &ClientConfig{
		App: ClientApp{
			Version:  cfg.App.Version,
			LogLevel: withDefault(cfg.App.LogLevel, defaultLogLevel),
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			AccessToken:    cfg.Adapter.AccessToken,
			RequestTimeout: requestTimeout,
			PerPage:        perPage,
			Retries:        retries,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{SyncInterval: syncInterval},
		IPC:     newClientIPC(cfg.IPC),
	}
}

func newClientIPC(cfg IPC) ClientIPC {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	return ClientIPC{
		Enabled:         cfg.Enabled,
		ID:              cfg.ID,
		SocketDir:       withDefault(cfg.SocketDir, os.TempDir()),
		ConnectTimeout:  connectTimeout,
		ForwardRequests: cfg.ForwardRequests,
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
