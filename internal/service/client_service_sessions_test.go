package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-session-sync/internal/mock"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

func newTestSessions(t *testing.T, connected bool) (*sessionService, store.SessionRepository, *SyncState, func() []models.Event) {
	t.Helper()

	fs := newMemoryStorage(t)
	state := NewSyncState(fs.Settings())
	if connected {
		state = newConnectedState(t, fs.Settings())
	}

	b := NewBroadcaster()
	events := collectEvents(t, b)

	svc := NewSessionService(fs.Sessions(), b, state, MustPropagate).(*sessionService)
	svc.now = fixedNow

	return svc, fs.Sessions(), state, events
}

// ── Save / Update ───────────────────────────────────────────────────────────

func TestSessionService_Save_StampsUnsetTimestamp(t *testing.T) {
	svc, repo, _, events := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, models.Session{ID: "a", Date: 1}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, testNowMs, got.LastEditedTime)
	assert.Equal(t, []models.Event{{Name: models.EventSaveSession, ID: "a"}}, events())
}

func TestSessionService_Save_KeepsGivenTimestamp(t *testing.T) {
	svc, repo, _, _ := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, models.Session{ID: "a", Date: 1, LastEditedTime: 77}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(77), got.LastEditedTime)
}

func TestSessionService_Update_AlwaysStamps(t *testing.T) {
	svc, repo, _, events := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, models.Session{ID: "a", Date: 1, LastEditedTime: 77}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, testNowMs, got.LastEditedTime)
	assert.Equal(t, []models.Event{{Name: models.EventUpdateSession, ID: "a"}}, events())
}

// ── Store policy ────────────────────────────────────────────────────────────

func TestSessionService_Save_StorePolicy(t *testing.T) {
	putErr := errors.New("quota exceeded")

	tests := []struct {
		name    string
		policy  StorePolicy
		wantErr bool
	}{
		{"best effort swallows", BestEffort, false},
		{"propagate returns", MustPropagate, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockSessionRepository(ctrl)
			repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(putErr)

			b := NewBroadcaster()
			events := collectEvents(t, b)
			svc := NewSessionService(repo, b, nil, tc.policy)

			err := svc.Save(context.Background(), models.Session{ID: "a"})
			if tc.wantErr {
				assert.ErrorIs(t, err, putErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Empty(t, events(), "failed writes are not announced")
		})
	}
}

// ── Remove ──────────────────────────────────────────────────────────────────

func TestSessionService_Remove_QueuesWhenConnected(t *testing.T) {
	svc, repo, state, events := newTestSessions(t, true)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a"}))
	require.NoError(t, svc.Remove(ctx, "a"))
	require.NoError(t, svc.Remove(ctx, "a"))

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	queue, err := state.RemovedQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, queue)

	assert.Equal(t, []models.Event{
		{Name: models.EventDeleteSession, ID: "a"},
		{Name: models.EventDeleteSession, ID: "a"},
	}, events())
}

func TestSessionService_Remove_NoQueueWhenDisconnected(t *testing.T) {
	svc, repo, state, _ := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a"}))
	require.NoError(t, svc.Remove(ctx, "a"))

	queue, err := state.RemovedQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestSessionService_Remove_NilState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	repo.EXPECT().Delete(gomock.Any(), "a").Return(nil)

	svc := NewSessionService(repo, nil, nil, MustPropagate)
	assert.NoError(t, svc.Remove(context.Background(), "a"))
}

// ── Rename ──────────────────────────────────────────────────────────────────

func TestSessionService_Rename(t *testing.T) {
	svc, repo, _, events := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a", Name: "old", LastEditedTime: 5}))
	require.NoError(t, svc.Rename(ctx, "a", "  new name \t"))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new name", got.Name)
	assert.Equal(t, testNowMs, got.LastEditedTime)
	assert.Equal(t, []models.Event{{Name: models.EventUpdateSession, ID: "a"}}, events())
}

func TestSessionService_Rename_UnknownID(t *testing.T) {
	svc, _, _, events := newTestSessions(t, false)

	assert.NoError(t, svc.Rename(context.Background(), "missing", "x"))
	assert.Empty(t, events())
}

// ── RemoveAll / reads ───────────────────────────────────────────────────────

func TestSessionService_RemoveAll(t *testing.T) {
	svc, repo, _, events := newTestSessions(t, false)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a", Date: 1}))
	require.NoError(t, repo.Put(ctx, models.Session{ID: "b", Date: 2}))
	require.NoError(t, svc.RemoveAll(ctx))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, []models.Event{{Name: models.EventDeleteAll}}, events())
}

func TestSessionService_GetAll_PassesFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	repo.EXPECT().GetAll(gomock.Any(), models.FieldName, models.FieldDate).
		Return([]models.Session{{ID: "a"}}, nil)

	svc := NewSessionService(repo, nil, nil, BestEffort)
	got, err := svc.GetAll(context.Background(), models.FieldName, models.FieldDate)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
