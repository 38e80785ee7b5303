package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

const testNowMs = int64(1_700_000_000_000)

func fixedNow() time.Time { return time.UnixMilli(testNowMs) }

func newMemoryStorage(t *testing.T) *store.FileStorage {
	t.Helper()
	fs, err := store.NewFileStorage(store.MemoryFileDSN)
	require.NoError(t, err)
	return fs
}

func newConnectedState(t *testing.T, settings store.SettingsRepository) *SyncState {
	t.Helper()
	state := NewSyncState(settings)
	require.NoError(t, state.MarkConnected(context.Background(), "alice"))
	return state
}

// collectEvents возвращает функцию, которая вычитывает накопленные события
func collectEvents(t *testing.T, b *Broadcaster) func() []models.Event {
	t.Helper()
	ch, unsubscribe := b.Subscribe(64)
	t.Cleanup(unsubscribe)

	return func() []models.Event {
		var out []models.Event
		for {
			select {
			case e := <-ch:
				out = append(out, e)
			default:
				return out
			}
		}
	}
}
