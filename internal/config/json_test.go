package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"log_file": "/var/log/sessionsync.log",
			"reserved_tags": ["Regular", "Temp"],
			"store_error_mode": "propagate"
		},
		"webdav": {
			"url": "https://dav.example.com/sessions/",
			"username": "alice",
			"password": "secret",
			"request_timeout": "30s",
			"conditional_writes": false,
			"conflict_retries": 4,
			"allowed_origins": ["https://dav.example.com/*"]
		},
		"storage": {
			"db": { "dsn": "/tmp/sessions.db" }
		},
		"workers": {
			"sync_interval": "10m"
		},
		"tracing": {
			"exporter": "otlp",
			"otlp_endpoint": "localhost:4318",
			"sample_rate": 0.25
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/log/sessionsync.log", cfg.App.LogFile)
	assert.Equal(t, []string{"Regular", "Temp"}, cfg.App.ReservedTags)
	assert.Equal(t, "propagate", cfg.App.StoreErrorMode)

	assert.Equal(t, "https://dav.example.com/sessions/", cfg.WebDAV.URL)
	assert.Equal(t, "alice", cfg.WebDAV.Username)
	assert.Equal(t, "secret", cfg.WebDAV.Password)
	assert.Equal(t, 30*time.Second, cfg.WebDAV.RequestTimeout)
	require.NotNil(t, cfg.WebDAV.ConditionalWrites)
	assert.False(t, *cfg.WebDAV.ConditionalWrites)
	assert.Equal(t, 4, cfg.WebDAV.ConflictRetries)
	assert.Equal(t, []string{"https://dav.example.com/*"}, cfg.WebDAV.AllowedOrigins)

	assert.Equal(t, "/tmp/sessions.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)

	assert.Equal(t, "otlp", cfg.Tracing.Exporter)
	assert.Equal(t, "localhost:4318", cfg.Tracing.OTLPEndpoint)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRate, 1e-9)

	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad_duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"workers": {"sync_interval": "soon"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "numeric.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"webdav": {"request_timeout": 1000000000}}`), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.WebDAV.RequestTimeout)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.WebDAV.URL)
	assert.Nil(t, cfg.WebDAV.ConditionalWrites)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

func TestParseJSON_PartialObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"webdav": {"url": "https://dav.example.com/"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://dav.example.com/", cfg.WebDAV.URL)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Tracing.Exporter)
}
