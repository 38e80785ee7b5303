// Package service implements the session sync engine on top of the WebDAV
// adapter and the local stores: remote file CRUD with manifest upkeep, the
// import reconciler, the tag manager, the local session wrapper, the
// connection lifecycle and the periodic full sync.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-session-sync/models"
)

// ConfigProvider supplies the raw WebDAV configuration. It is consulted for
// every remote operation so settings changes take effect immediately.
type ConfigProvider interface {
	WebDAVConfig(ctx context.Context) (models.WebDAVConfig, error)
}

// Notifier broadcasts local mutation events. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, event models.Event)
}

// PermissionGranter asks the host for permission to contact origin
// ("scheme://host/*").
type PermissionGranter interface {
	RequestOrigin(ctx context.Context, origin string) (bool, error)
}

// RemoteSessionService moves session payload files and keeps the remote
// manifest consistent with them.
type RemoteSessionService interface {
	// Upload stores s under its per-id file and replaces its manifest entry.
	// A failed file write leaves the manifest untouched.
	Upload(ctx context.Context, s models.Session) error

	// Download fetches the payload of the session with the given id.
	Download(ctx context.Context, id string) (models.Session, error)

	// Delete removes the per-id file (an absent file is fine) and drops the
	// manifest entry.
	Delete(ctx context.Context, id string) error

	// List returns the manifest entries. An empty directory yields an empty
	// slice.
	List(ctx context.Context) ([]models.ManifestEntry, error)

	// DeleteAll deletes every listed session one after another and stops at
	// the first failure.
	DeleteAll(ctx context.Context) error
}

// ImportService merges externally supplied sessions into the local store.
type ImportService interface {
	// Import skips every session the local store already holds in an equal
	// or newer edit, stamps the rest with the current time and saves them
	// concurrently. It returns the number of sessions enqueued for saving.
	Import(ctx context.Context, sessions []models.Session) (int, error)
}

// TagService mutates and queries session tags.
type TagService interface {
	// AddTag sanitizes tag and appends it. Empty, reserved and duplicate
	// tags and unknown sessions are silently ignored.
	AddTag(ctx context.Context, id, tag string) error

	// RemoveTag drops tag from the session, persisting only when it was
	// present.
	RemoveTag(ctx context.Context, id, tag string) error

	// ListByTag returns the sessions carrying tag, newest first. The tag
	// and date members are always included in the projection.
	ListByTag(ctx context.Context, tag string, fields ...string) ([]models.Session, error)
}

// SessionService wraps the local session store, stamping edits and
// broadcasting events.
type SessionService interface {
	Save(ctx context.Context, s models.Session) error
	Update(ctx context.Context, s models.Session) error
	Remove(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) error
	RemoveAll(ctx context.Context) error
	Get(ctx context.Context, id string) (models.Session, error)
	GetAll(ctx context.Context, fields ...string) ([]models.Session, error)
}

// ConnectionService manages the WebDAV connection state.
type ConnectionService interface {
	// Connect validates the configuration, obtains host permission, ensures
	// the remote directory exists and marks the sync state connected.
	Connect(ctx context.Context) (SyncStatus, error)

	// Disconnect clears the sync state.
	Disconnect(ctx context.Context) error

	// Status returns the persisted sync state.
	Status(ctx context.Context) (SyncStatus, error)
}

// SyncService plans a bidirectional sync from remote and local session
// states.
type SyncService interface {
	// BuildSyncPlan compares remote and local states by lastEditedTime.
	BuildSyncPlan(ctx context.Context, remote, local []models.SessionState) (models.SyncPlan, error)
}

// ClientSyncService runs a full sync between the local store and the
// remote directory.
type ClientSyncService interface {
	// FullSync flushes the removal queue, plans the sync and executes it.
	// It does nothing while disconnected.
	FullSync(ctx context.Context) error

	// ExecutePlan downloads and uploads the sessions listed in plan.
	ExecutePlan(ctx context.Context, plan models.SyncPlan) error
}

// ClientSyncJob runs FullSync periodically in the background.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to DefaultSyncInterval when interval is not positive. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
