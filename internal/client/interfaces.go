// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// RunDaemon runs background synchronization and blocks until ctx is
	// cancelled.
	RunDaemon(ctx context.Context) error

	// Close releases storages and flushes pending spans.
	Close(ctx context.Context) error
}
