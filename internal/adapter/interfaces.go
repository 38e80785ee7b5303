// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the WebDAV transport of the session sync engine.
//
// [NewSession] turns raw configuration into a validated [Session] (base URL
// and Basic-Auth header). [WebDAVAdapter] ensures the remote directory
// exists, reads and writes the manifest ("index.json") and moves individual
// session payload files. Listing the directory is never used; the manifest is
// the only enumeration of remote sessions.
//
// Every error wraps one of the failure kinds in errors.go so callers can use
// [errors.Is] or [Kind] (e.g. [ErrUnauthorized] for 401 and 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-session-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/webdav_adapter_mock.go -package=mock

// ManifestStore reads and writes the remote index.
type ManifestStore interface {
	// ReadManifest fetches the index. An absent index is an empty manifest
	// with Exists=false, not an error. Entries are normalized so legacy
	// formats stay usable.
	ReadManifest(ctx context.Context, sess Session) (models.Manifest, error)

	// WriteManifest replaces the whole index with m.Files and a fresh
	// updatedAt stamp. With conditional writes enabled it fails with
	// [ErrConflict] when the index changed since m was read.
	WriteManifest(ctx context.Context, sess Session, m models.Manifest) error
}

// WebDAVAdapter is the complete remote transport.
type WebDAVAdapter interface {
	ManifestStore

	// Dial validates cfg and ensures the remote directory exists.
	// Calling it repeatedly is harmless.
	Dial(ctx context.Context, cfg models.WebDAVConfig) (Session, error)

	// EnsureDirectory probes the directory with a depth-0 PROPFIND and
	// creates it with MKCOL when absent.
	EnsureDirectory(ctx context.Context, sess Session) error

	// Touch issues a best-effort HEAD on the index. Failures are ignored.
	Touch(ctx context.Context, sess Session)

	// PutSession uploads the full session payload to its per-id file.
	PutSession(ctx context.Context, sess Session, s models.Session) error

	// GetSession downloads the payload of the session with the given id.
	// An absent file is [ErrUnreachable].
	GetSession(ctx context.Context, sess Session, id string) (models.Session, error)

	// DeleteSession removes the payload file. An absent file is success.
	DeleteSession(ctx context.Context, sess Session, id string) error
}
