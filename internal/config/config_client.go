package config

import (
	"fmt"
	"time"
)

// Store error modes accepted by [App.StoreErrorMode].
const (
	StoreErrorsBestEffort = "best-effort"
	StoreErrorsPropagate  = "propagate"
)

// Tracing exporters accepted by [Tracing.Exporter].
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Defaults applied by [GetClientConfig] to fields left empty by every source.
const (
	DefaultDSN             = "sessionsync.db"
	DefaultSyncInterval    = 5 * time.Minute
	DefaultConflictRetries = 3
	DefaultSampleRate      = 1.0
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// LogFile is the rotating log file path; empty means stdout.
	LogFile string
	// ReservedTags lists host-supplied reserved tag names.
	ReservedTags []string
	// PropagateStoreErrors is true when local-store failures must be
	// returned to callers instead of being swallowed.
	PropagateStoreErrors bool
}

// ClientWebDAV holds the remote transport settings used by the client.
type ClientWebDAV struct {
	// URL, Username and Password are the fallback remote configuration used
	// when the settings store holds none.
	URL      string
	Username string
	Password string
	// RequestTimeout bounds a single request; zero means no timeout.
	RequestTimeout time.Duration
	// ConditionalWrites enables If-Match on index writes.
	ConditionalWrites bool
	// ConflictRetries bounds index write retries after a conflict.
	ConflictRetries int
	// AllowedOrigins lists origins the CLI grants permission for.
	AllowedOrigins []string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often client sync workers should run.
	SyncInterval time.Duration
}

// ClientTracing contains span exporter settings.
type ClientTracing struct {
	Exporter     string
	OTLPEndpoint string
	SampleRate   float64
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// WebDAV contains remote transport settings.
	WebDAV ClientWebDAV
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Tracing contains span export settings.
	Tracing ClientTracing
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], applies defaults to
// fields no source provided, and validates the resulting [ClientConfig].
func GetClientConfig(flags *Flags) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	conditional := true
	if cfg.WebDAV.ConditionalWrites != nil {
		conditional = *cfg.WebDAV.ConditionalWrites
	}

	retries := cfg.WebDAV.ConflictRetries
	if retries == 0 {
		retries = DefaultConflictRetries
	}

	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = DefaultDSN
	}

	interval := cfg.Workers.SyncInterval
	if interval == 0 {
		interval = DefaultSyncInterval
	}

	exporter := cfg.Tracing.Exporter
	if exporter == "" {
		exporter = ExporterNone
	}

	sampleRate := cfg.Tracing.SampleRate
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}

	return &ClientConfig{
		App: ClientApp{
			LogFile:              cfg.App.LogFile,
			ReservedTags:         cfg.App.ReservedTags,
			PropagateStoreErrors: cfg.App.StoreErrorMode == StoreErrorsPropagate,
		},
		WebDAV: ClientWebDAV{
			URL:               cfg.WebDAV.URL,
			Username:          cfg.WebDAV.Username,
			Password:          cfg.WebDAV.Password,
			RequestTimeout:    cfg.WebDAV.RequestTimeout,
			ConditionalWrites: conditional,
			ConflictRetries:   retries,
			AllowedOrigins:    cfg.WebDAV.AllowedOrigins,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: dsn},
		},
		Workers: ClientWorkers{SyncInterval: interval},
		Tracing: ClientTracing{
			Exporter:     exporter,
			OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
			SampleRate:   sampleRate,
		},
	}
}
