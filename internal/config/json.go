package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
		LogFile  string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		AccessToken    string   `json:"access_token"`
		RequestTimeout Duration `json:"request_timeout"`
		PerPage        int      `json:"per_page"`
		Retries        int      `json:"retries"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	IPC struct {
		Enabled         bool     `json:"enabled"`
		ID              string   `json:"id"`
		SocketDir       string   `json:"socket_dir"`
		ConnectTimeout  Duration `json:"connect_timeout"`
		ForwardRequests bool     `json:"forward_requests"`
	} `json:"ipc,omitempty"`

	Server struct {
		HTTPAddress  string `json:"http_address"`
		FixturesPath string `json:"fixtures"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			AccessToken:    jsonCfg.Adapter.AccessToken,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			PerPage:        jsonCfg.Adapter.PerPage,
			Retries:        jsonCfg.Adapter.Retries,
		},
		Workers: Workers{SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval)},
		IPC: IPC{
			Enabled:         jsonCfg.IPC.Enabled,
			ID:              jsonCfg.IPC.ID,
			SocketDir:       jsonCfg.IPC.SocketDir,
			ConnectTimeout:  time.Duration(jsonCfg.IPC.ConnectTimeout),
			ForwardRequests: jsonCfg.IPC.ForwardRequests,
		},
		Server: Server{
			HTTPAddress:  jsonCfg.Server.HTTPAddress,
			FixturesPath: jsonCfg.Server.FixturesPath,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
