package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-sync/internal/logger"
)

type localSettingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSettingsRepository returns the SQLite-backed [SettingsRepository].
func NewLocalSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &localSettingsRepository{DB: db, logger: logger}
}

func (l *localSettingsRepository) Get(ctx context.Context, key string, dst any) (bool, error) {
	query, args, err := buildSelectSettingQuery(key)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	if err = l.DB.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "localSettingsRepository.Get").
			Str("key", key).
			Msg("failed to read setting")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("%w: setting %s: %w", ErrDecodingPayload, key, err)
	}

	return true, nil
}

func (l *localSettingsRepository) Set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}

	query, args, err := buildUpsertSettingQuery(key, string(encoded))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localSettingsRepository.Set").
			Str("key", key).
			Msg("failed to write setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
