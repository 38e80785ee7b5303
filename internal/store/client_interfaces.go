package store

import (
	"context"

	"github.com/MKhiriev/go-session-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository is the local session store.
type SessionRepository interface {
	// Get returns the session with the given id or [ErrSessionNotFound].
	Get(ctx context.Context, id string) (models.Session, error)

	// Put inserts s or replaces the stored session with the same id.
	Put(ctx context.Context, s models.Session) error

	// Delete removes the session with the given id. Deleting an absent id
	// is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every session.
	DeleteAll(ctx context.Context) error

	// GetAll returns every session. When fields are given only those
	// members are guaranteed to be populated; id always is.
	GetAll(ctx context.Context, fields ...string) ([]models.Session, error)

	// Search returns the full sessions whose field equals value.
	Search(ctx context.Context, field string, value any) ([]models.Session, error)
}

// SettingsRepository is the local key-value settings store. Values are
// stored as JSON.
type SettingsRepository interface {
	// Get decodes the value stored under key into dst and reports whether
	// the key existed.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value any) error
}
