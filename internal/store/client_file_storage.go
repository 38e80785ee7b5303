// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-session-sync/models"
)

// MemoryFileDSN selects a [FileStorage] that is never written to disk.
const MemoryFileDSN = "memory"

// FileStorage keeps sessions and settings in memory and persists them as a
// single JSON document. It implements both [SessionRepository] and
// [SettingsRepository].
type FileStorage struct {
	path     string
	inMemory bool

	mu       sync.RWMutex
	sessions map[string]models.Session
	settings map[string]json.RawMessage
}

type filePersistedState struct {
	Sessions map[string]models.Session  `json:"sessions"`
	Settings map[string]json.RawMessage `json:"settings"`
}

// NewFileStorage loads the storage at path. An empty path or
// [MemoryFileDSN] yields a purely in-memory storage.
func NewFileStorage(path string) (*FileStorage, error) {
	s := &FileStorage{
		path:     path,
		inMemory: path == "" || path == MemoryFileDSN,
		sessions: make(map[string]models.Session),
		settings: make(map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Sessions returns the storage as a [SessionRepository].
func (s *FileStorage) Sessions() SessionRepository { return fileSessions{s} }

// Settings returns the storage as a [SettingsRepository].
func (s *FileStorage) Settings() SettingsRepository { return fileSettings{s} }

func (s *FileStorage) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}

	if st.Sessions != nil {
		s.sessions = st.Sessions
	}
	if st.Settings != nil {
		s.settings = st.Settings
	}

	return nil
}

// persist must be called with mu held.
func (s *FileStorage) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	state := filePersistedState{Sessions: s.sessions, Settings: s.settings}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}

	return nil
}

type fileSessions struct{ *FileStorage }

func (s fileSessions) Get(_ context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.sessions[id]
	if !ok {
		return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return item.Clone(), nil
}

func (s fileSessions) Put(_ context.Context, item models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[item.ID] = item.Clone()
	return s.persist()
}

func (s fileSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return nil
	}
	delete(s.sessions, id)
	return s.persist()
}

func (s fileSessions) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]models.Session)
	return s.persist()
}

func (s fileSessions) GetAll(_ context.Context, fields ...string) ([]models.Session, error) {
	p := newProjection(fields)

	s.mu.RLock()
	out := make([]models.Session, 0, len(s.sessions))
	for _, item := range s.sessions {
		c := item.Clone()
		if !p.payload {
			c.Extra = nil
		} else if len(fields) > 0 {
			c.Extra = keepMembers(c.Extra, p.extra)
		}
		out = append(out, c)
	}
	s.mu.RUnlock()

	sortByDateDesc(out)
	return out, nil
}

func (s fileSessions) Search(_ context.Context, field string, value any) ([]models.Session, error) {
	if !searchableFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	want := fmt.Sprint(value)

	s.mu.RLock()
	out := make([]models.Session, 0)
	for _, item := range s.sessions {
		if fieldString(item, field) == want {
			out = append(out, item.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Session) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func fieldString(s models.Session, field string) string {
	switch field {
	case models.FieldID:
		return s.ID
	case models.FieldName:
		return s.Name
	case models.FieldDate:
		return strconv.FormatInt(s.Date, 10)
	case models.FieldLastEditedTime:
		return strconv.FormatInt(s.LastEditedTime, 10)
	case models.FieldTabsNumber:
		return strconv.Itoa(s.TabsNumber)
	case models.FieldWindowsNumber:
		return strconv.Itoa(s.WindowsNumber)
	}
	return ""
}

func sortByDateDesc(sessions []models.Session) {
	slices.SortStableFunc(sessions, func(a, b models.Session) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

type fileSettings struct{ *FileStorage }

func (s fileSettings) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.settings[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: setting %s: %w", ErrDecodingPayload, key, err)
	}
	return true, nil
}

func (s fileSettings) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = raw
	return s.persist()
}
