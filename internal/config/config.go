// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-session-sync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log file, the
	// host-supplied reserved tag names and the local-store error policy.
	App App `envPrefix:"APP_"`

	// WebDAV holds the remote endpoint, credentials and transport tuning.
	WebDAV WebDAV `envPrefix:"WEBDAV_"`

	// Storage holds configuration for the local session database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Tracing selects the OpenTelemetry exporter for WebDAV request spans.
	Tracing Tracing `envPrefix:"TRACING_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogFile is the path of the rotating client log file. Empty means
	// stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// ReservedTags lists additional tag names a user may not add manually,
	// typically the localized display names of the system tags.
	// Env: APP_RESERVED_TAGS (comma separated)
	ReservedTags []string `env:"RESERVED_TAGS" envSeparator:","`

	// StoreErrorMode is either "best-effort" (local-store failures are
	// logged and swallowed) or "propagate".
	// Env: APP_STORE_ERROR_MODE
	StoreErrorMode string `env:"STORE_ERROR_MODE"`
}

// WebDAV holds the remote endpoint settings.
type WebDAV struct {
	// URL is the WebDAV directory that holds the index and session files.
	// Env: WEBDAV_URL
	URL string `env:"URL"`

	// Username is the Basic-Auth user name.
	// Env: WEBDAV_USERNAME
	Username string `env:"USERNAME"`

	// Password is the Basic-Auth password.
	// Env: WEBDAV_PASSWORD
	Password string `env:"PASSWORD"`

	// RequestTimeout bounds a single WebDAV request. Zero means no timeout.
	// Env: WEBDAV_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ConditionalWrites enables If-Match / If-None-Match on index writes.
	// Nil means "use the default" (enabled).
	// Env: WEBDAV_CONDITIONAL_WRITES
	ConditionalWrites *bool `env:"CONDITIONAL_WRITES"`

	// ConflictRetries is how many times an index read-modify-write is
	// retried after a precondition failure.
	// Env: WEBDAV_CONFLICT_RETRIES
	ConflictRetries int `env:"CONFLICT_RETRIES"`

	// AllowedOrigins lists the origins ("scheme://host/*") the host grants
	// network permission for. Empty grants every origin.
	// Env: WEBDAV_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Storage groups the configuration for the local storage backends.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local session database.
type DB struct {
	// DSN is the SQLite file path, or ":memory:" for an in-process store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background full sync runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Tracing configures span export for WebDAV requests.
type Tracing struct {
	// Exporter is one of "none", "stdout" or "otlp".
	// Env: TRACING_EXPORTER
	Exporter string `env:"EXPORTER"`

	// OTLPEndpoint is the collector host:port for the otlp exporter.
	// Env: TRACING_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// SampleRate is the fraction of traces sampled (0..1).
	// Env: TRACING_SAMPLE_RATE
	SampleRate float64 `env:"SAMPLE_RATE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (when flags is non-nil)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}
