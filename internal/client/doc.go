// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line host of the session sync
// engine.
//
// It plays the part a browser extension plays for the engine: it supplies
// the WebDAV configuration, grants network permission for the configured
// origin, triggers saves, imports, tag edits and syncs, and runs the
// periodic sync in daemon mode.
package client
