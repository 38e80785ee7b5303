package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/logger"
)

// ClientStorages groups the local repositories the service layer runs on.
type ClientStorages struct {
	// SessionRepository holds the saved sessions.
	SessionRepository SessionRepository

	// SettingsRepository holds connection state and other settings.
	SettingsRepository SettingsRepository

	closer io.Closer
}

// NewClientStorages initialises the client storage layer. A DSN ending in
// ".json" (or [MemoryFileDSN]) selects the JSON [FileStorage]; anything else
// is opened as SQLite and migrated.
//
// Returns an error if the database cannot be opened or migrated.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	if cfg.DB.DSN == MemoryFileDSN || strings.HasSuffix(cfg.DB.DSN, ".json") {
		fs, err := NewFileStorage(cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		return &ClientStorages{
			SessionRepository:  fs.Sessions(),
			SettingsRepository: fs.Settings(),
		}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository:  NewLocalSessionRepository(db, logger),
		SettingsRepository: NewLocalSettingsRepository(db, logger),
		closer:             db,
	}, nil
}

// Close releases the underlying database, if any.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
