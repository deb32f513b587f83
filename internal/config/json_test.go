package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_FullFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"version": "1.0.0", "log_level": "warn"},
		"storage": map[string]any{"db": map[string]any{"dsn": "cache.db"}},
		"adapter": map[string]any{"http_address": "https://lms.test", "access_token": "t", "request_timeout": "30s", "per_page": 100},
		"workers": map[string]any{"sync_interval": "10m"},
		"ipc":     map[string]any{"enabled": true, "id": "dev", "connect_timeout": "5s"},
		"server":  map[string]any{"http_address": "localhost:9000", "fixtures": "fx.json"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "cache.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 100, cfg.Adapter.PerPage)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	assert.True(t, cfg.IPC.Enabled)
	assert.Equal(t, 5*time.Second, cfg.IPC.ConnectTimeout)
	assert.Equal(t, "fx.json", cfg.Server.FixturesPath)
}

func TestParseJSON_BadJSON(t *testing.T) {
	path := writeTempJSONConfig(t, "not an object")
	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	b, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(b))
}
