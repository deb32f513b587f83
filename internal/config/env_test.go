package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom(t *testing.T) {
	environ := map[string]string{
		"STORAGE_DB_DSN":          "cache.db",
		"ADAPTER_ADDRESS":         "https://lms.example.edu",
		"ADAPTER_REQUEST_TIMEOUT": "30s",
		"ADAPTER_RETRIES":         "-1",
		"IPC_ENABLED":             "true",
		"IPC_ID":                  "run-7",
		"SERVER_FIXTURES":         "lms.json",
		"CONFIG":                  "config.json",
	}

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, environ))

	assert.Equal(t, "cache.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://lms.example.edu", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, -1, cfg.Adapter.Retries)
	assert.True(t, cfg.IPC.Enabled)
	assert.Equal(t, "run-7", cfg.IPC.ID)
	assert.Equal(t, "lms.json", cfg.Server.FixturesPath)
	assert.Equal(t, "config.json", cfg.JSONFilePath)
}

func TestParseEnvFrom_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{name: "duration", environ: map[string]string{"WORKERS_SYNC_INTERVAL": "soon"}},
		{name: "bool", environ: map[string]string{"IPC_ENABLED": "maybe"}},
		{name: "int", environ: map[string]string{"ADAPTER_PER_PAGE": "ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseEnvFrom(&StructuredConfig{}, tt.environ)
			assert.ErrorIs(t, err, ErrReadingEnv)
		})
	}
}
