package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-session-sync/internal/store"
)

// Settings keys holding the sync state.
const (
	KeyConnected        = "webdavConnected"
	KeySignedInIdentity = "signedInEmail"
	KeyLastSyncTime     = "lastSyncTime"
	KeyRemovedQueue     = "removedQueue"
)

// SyncStatus is a snapshot of the persisted sync state.
type SyncStatus struct {
	Connected        bool     `json:"connected"`
	SignedInIdentity string   `json:"signedInIdentity"`
	LastSyncTime     int64    `json:"lastSyncTime"`
	RemovedQueue     []string `json:"removedQueue"`
}

// SyncState is the process-wide connection state, persisted in the settings
// store. It is passed explicitly to every component that reads or changes it.
type SyncState struct {
	settings store.SettingsRepository

	// serializes read-modify-write of the removal queue
	mu sync.Mutex
}

// NewSyncState returns the sync state backed by settings.
func NewSyncState(settings store.SettingsRepository) *SyncState {
	return &SyncState{settings: settings}
}

// Load reads every state member. Missing members keep their zero value.
func (s *SyncState) Load(ctx context.Context) (SyncStatus, error) {
	var st SyncStatus

	if _, err := s.settings.Get(ctx, KeyConnected, &st.Connected); err != nil {
		return SyncStatus{}, fmt.Errorf("read %s: %w", KeyConnected, err)
	}
	if _, err := s.settings.Get(ctx, KeySignedInIdentity, &st.SignedInIdentity); err != nil {
		return SyncStatus{}, fmt.Errorf("read %s: %w", KeySignedInIdentity, err)
	}
	if _, err := s.settings.Get(ctx, KeyLastSyncTime, &st.LastSyncTime); err != nil {
		return SyncStatus{}, fmt.Errorf("read %s: %w", KeyLastSyncTime, err)
	}
	queue, err := s.RemovedQueue(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	st.RemovedQueue = queue

	return st, nil
}

// Connected reports whether remote sync is enabled.
func (s *SyncState) Connected(ctx context.Context) (bool, error) {
	var connected bool
	if _, err := s.settings.Get(ctx, KeyConnected, &connected); err != nil {
		return false, fmt.Errorf("read %s: %w", KeyConnected, err)
	}
	return connected, nil
}

// MarkConnected enables sync for identity and resets the watermark and the
// removal queue.
func (s *SyncState) MarkConnected(ctx context.Context, identity string) error {
	return s.reset(ctx, true, identity)
}

// MarkDisconnected disables sync and clears every other member.
func (s *SyncState) MarkDisconnected(ctx context.Context) error {
	return s.reset(ctx, false, "")
}

func (s *SyncState) reset(ctx context.Context, connected bool, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := []struct {
		key   string
		value any
	}{
		{KeyConnected, connected},
		{KeySignedInIdentity, identity},
		{KeyLastSyncTime, int64(0)},
		{KeyRemovedQueue, []string{}},
	}
	for _, v := range values {
		if err := s.settings.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("write %s: %w", v.key, err)
		}
	}
	return nil
}

// LastSyncTime returns the sync watermark in epoch milliseconds.
func (s *SyncState) LastSyncTime(ctx context.Context) (int64, error) {
	var ts int64
	if _, err := s.settings.Get(ctx, KeyLastSyncTime, &ts); err != nil {
		return 0, fmt.Errorf("read %s: %w", KeyLastSyncTime, err)
	}
	return ts, nil
}

// SetLastSyncTime stores the sync watermark. Zero forces a full resync.
func (s *SyncState) SetLastSyncTime(ctx context.Context, ts int64) error {
	if err := s.settings.Set(ctx, KeyLastSyncTime, ts); err != nil {
		return fmt.Errorf("write %s: %w", KeyLastSyncTime, err)
	}
	return nil
}

// RemovedQueue returns the ids of sessions deleted locally and not yet
// deleted remotely.
func (s *SyncState) RemovedQueue(ctx context.Context) ([]string, error) {
	queue := []string{}
	if _, err := s.settings.Get(ctx, KeyRemovedQueue, &queue); err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyRemovedQueue, err)
	}
	if queue == nil {
		queue = []string{}
	}
	return queue, nil
}

// EnqueueRemoval appends id to the removal queue unless already queued.
func (s *SyncState) EnqueueRemoval(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, err := s.RemovedQueue(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(queue, id) {
		return nil
	}

	if err = s.settings.Set(ctx, KeyRemovedQueue, append(queue, id)); err != nil {
		return fmt.Errorf("write %s: %w", KeyRemovedQueue, err)
	}
	return nil
}

// DequeueRemovals drops done from the removal queue, keeping ids enqueued
// meanwhile.
func (s *SyncState) DequeueRemovals(ctx context.Context, done []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, err := s.RemovedQueue(ctx)
	if err != nil {
		return err
	}
	queue = slices.DeleteFunc(queue, func(id string) bool { return slices.Contains(done, id) })

	if err = s.settings.Set(ctx, KeyRemovedQueue, queue); err != nil {
		return fmt.Errorf("write %s: %w", KeyRemovedQueue, err)
	}
	return nil
}
