package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidWebDAVConfigs indicates invalid remote transport settings
	// (for example, a negative request timeout or retry count).
	ErrInvalidWebDAVConfigs = errors.New("invalid webdav configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown store error mode).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidTracingConfigs indicates an unknown exporter or a sample
	// rate outside [0, 1].
	ErrInvalidTracingConfigs = errors.New("invalid tracing configuration")
)
