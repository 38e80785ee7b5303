package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/models"
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSessionRepository returns the SQLite-backed [SessionRepository].
func NewLocalSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localSessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSessionQuery(id)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	if err = l.DB.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		log.Err(err).
			Str("func", "localSessionRepository.Get").
			Str("id", id).
			Msg("failed to query session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var s models.Session
	if err = json.Unmarshal([]byte(payload), &s); err != nil {
		return models.Session{}, fmt.Errorf("%w: session %s: %w", ErrDecodingPayload, id, err)
	}

	return s, nil
}

func (l *localSessionRepository) Put(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx)

	tag := s.Tag
	if tag == nil {
		tag = []string{}
	}
	tagJSON, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("encode tags of session %s: %w", s.ID, err)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	query, args, err := buildUpsertSessionQuery(s, string(tagJSON), string(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.Put").
			Str("id", s.ID).
			Msg("failed to execute upsert for session")
		return fmt.Errorf("%w: save session %s: %w", ErrExecutingStatement, s.ID, err)
	}

	return nil
}

func (l *localSessionRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.Delete").
			Str("id", id).
			Msg("failed to delete session")
		return fmt.Errorf("%w: delete session %s: %w", ErrExecutingStatement, id, err)
	}

	return nil
}

func (l *localSessionRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAllSessionsQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "localSessionRepository.DeleteAll").Msg("failed to delete sessions")
		return fmt.Errorf("%w: delete all sessions: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localSessionRepository) GetAll(ctx context.Context, fields ...string) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	p := newProjection(fields)
	query, args, err := buildSelectSessionsQuery(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.GetAll").
			Strs("fields", fields).
			Msg("failed to execute query for getting all sessions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		s, scanErr := scanProjected(rows, p)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localSessionRepository.GetAll").
				Msg("failed to scan session row")
			return nil, scanErr
		}
		sessions = append(sessions, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localSessionRepository.GetAll").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return sessions, nil
}

func (l *localSessionRepository) Search(ctx context.Context, field string, value any) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchSessionsQuery(field, value)
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.Search").
			Str("field", field).
			Msg("failed to execute session search")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		var s models.Session
		if err = json.Unmarshal([]byte(payload), &s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
		}
		sessions = append(sessions, s)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return sessions, nil
}

func scanProjected(rows *sql.Rows, p projection) (models.Session, error) {
	var (
		s       models.Session
		tagJSON string
		payload string
	)

	dest := make([]any, 0, len(p.fields)+1)
	for _, f := range p.fields {
		switch f {
		case models.FieldID:
			dest = append(dest, &s.ID)
		case models.FieldName:
			dest = append(dest, &s.Name)
		case models.FieldDate:
			dest = append(dest, &s.Date)
		case models.FieldLastEditedTime:
			dest = append(dest, &s.LastEditedTime)
		case models.FieldTag:
			dest = append(dest, &tagJSON)
		case models.FieldTabsNumber:
			dest = append(dest, &s.TabsNumber)
		case models.FieldWindowsNumber:
			dest = append(dest, &s.WindowsNumber)
		}
	}
	if p.payload {
		dest = append(dest, &payload)
	}

	if err := rows.Scan(dest...); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if p.payload {
		var full models.Session
		if err := json.Unmarshal([]byte(payload), &full); err != nil {
			return models.Session{}, fmt.Errorf("%w: session %s: %w", ErrDecodingPayload, s.ID, err)
		}
		if len(p.extra) > 0 || len(p.fields) > 1 {
			full.Extra = keepMembers(full.Extra, p.extra)
		}
		return full, nil
	}

	if tagJSON != "" {
		if err := json.Unmarshal([]byte(tagJSON), &s.Tag); err != nil {
			return models.Session{}, fmt.Errorf("%w: tags of session %s: %w", ErrDecodingPayload, s.ID, err)
		}
	}

	return s, nil
}

func keepMembers(extra map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	if len(extra) == 0 || len(keys) == 0 {
		return nil
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := extra[k]; ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
