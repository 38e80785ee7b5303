// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// source-independent invariants before defaults are applied.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.StoreErrorMode {
	case "", StoreErrorsBestEffort, StoreErrorsPropagate:
	default:
		return fmt.Errorf("%w: unknown store error mode %q", ErrInvalidAppConfigs, cfg.App.StoreErrorMode)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.WebDAV.RequestTimeout < 0 || cfg.WebDAV.ConflictRetries < 0 {
		return ErrInvalidWebDAVConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.Tracing.Exporter {
	case ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if cfg.Tracing.OTLPEndpoint == "" {
			return ErrInvalidTracingConfigs
		}
	default:
		return ErrInvalidTracingConfigs
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return ErrInvalidTracingConfigs
	}

	return nil
}
