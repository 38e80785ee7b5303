// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/davtest"
	"github.com/MKhiriev/go-session-sync/internal/mock"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

type syncFixture struct {
	svc    *clientSyncService
	remote *remoteSessionService
	srv    *davtest.Server
	local  store.SessionRepository
	state  *SyncState
}

func newSyncFixture(t *testing.T, connected bool) *syncFixture {
	t.Helper()

	remote, srv, _ := newTestRemote(t, 3)
	fs := newMemoryStorage(t)

	state := NewSyncState(fs.Settings())
	if connected {
		state = newConnectedState(t, fs.Settings())
	}

	sessions := NewSessionService(fs.Sessions(), nil, state, MustPropagate)
	svc := NewClientSyncService(remote, fs.Sessions(), sessions, state).(*clientSyncService)
	svc.now = fixedNow

	return &syncFixture{svc: svc, remote: remote, srv: srv, local: fs.Sessions(), state: state}
}

// ── FullSync ────────────────────────────────────────────────────────────────

func TestClientSyncService_FullSync_NotConnected(t *testing.T) {
	f := newSyncFixture(t, false)

	require.NoError(t, f.svc.FullSync(context.Background()))
	assert.Empty(t, f.srv.Requests(), "disconnected sync must not touch the network")
}

func TestClientSyncService_FullSync_Converges(t *testing.T) {
	f := newSyncFixture(t, true)
	ctx := context.Background()

	// remote: "r" только на сервере, "both" старее локальной копии
	require.NoError(t, f.remote.Upload(ctx, newSession("r", "Remote", 1, 100)))
	require.NoError(t, f.remote.Upload(ctx, newSession("both", "Old", 2, 200)))

	// local: "l" только локально, "both" новее
	require.NoError(t, f.local.Put(ctx, newSession("l", "Local", 3, 50)))
	require.NoError(t, f.local.Put(ctx, newSession("both", "New", 2, 300)))

	require.NoError(t, f.svc.FullSync(ctx))

	got, err := f.local.Get(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.Name)
	assert.Equal(t, int64(100), got.LastEditedTime, "downloaded sessions keep the remote timestamp")

	index := readIndex(t, f.srv)
	l, ok := index.Find("l")
	require.True(t, ok)
	assert.Equal(t, int64(50), l.AppProperties.LastEditedTime)

	both, ok := index.Find("both")
	require.True(t, ok)
	assert.Equal(t, int64(300), both.AppProperties.LastEditedTime)
	assert.Equal(t, "New", both.AppProperties.Name)
	assert.Len(t, index.Files, 3)

	ts, err := f.state.LastSyncTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNowMs, ts)
}

func TestClientSyncService_FullSync_SecondRunIsIdle(t *testing.T) {
	f := newSyncFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.remote.Upload(ctx, newSession("r", "Remote", 1, 100)))
	require.NoError(t, f.local.Put(ctx, newSession("l", "Local", 2, 50)))
	require.NoError(t, f.svc.FullSync(ctx))

	putsBefore := f.srv.CountRequests(http.MethodPut, ".json")
	getsBefore := f.srv.CountRequests(http.MethodGet, "r.json")

	require.NoError(t, f.svc.FullSync(ctx))
	assert.Equal(t, putsBefore, f.srv.CountRequests(http.MethodPut, ".json"), "nothing to upload")
	assert.Equal(t, getsBefore, f.srv.CountRequests(http.MethodGet, "r.json"), "nothing to download")
}

func TestClientSyncService_FullSync_FlushesRemovalQueue(t *testing.T) {
	f := newSyncFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.remote.Upload(ctx, newSession("gone", "Gone", 1, 100)))
	require.NoError(t, f.state.EnqueueRemoval(ctx, "gone"))

	require.NoError(t, f.svc.FullSync(ctx))

	assert.False(t, f.srv.Exists("gone.json"))
	_, ok := readIndex(t, f.srv).Find("gone")
	assert.False(t, ok)

	queue, err := f.state.RemovedQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, queue)

	// сессия не должна вернуться обратно
	_, err = f.local.Get(ctx, "gone")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestClientSyncService_FullSync_RemovalFailureKeepsQueue(t *testing.T) {
	f := newSyncFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.remote.Upload(ctx, newSession("a", "A", 1, 100)))
	require.NoError(t, f.remote.Upload(ctx, newSession("b", "B", 2, 100)))
	require.NoError(t, f.state.EnqueueRemoval(ctx, "a"))
	require.NoError(t, f.state.EnqueueRemoval(ctx, "b"))

	f.srv.Fail(http.MethodDelete, "b.json", http.StatusInternalServerError, 0)

	err := f.svc.FullSync(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrDeleteFailed)

	queue, err := f.state.RemovedQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, queue)

	ts, err := f.state.LastSyncTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts, "failed sync leaves the watermark alone")
}

func TestClientSyncService_FullSync_ListFailure(t *testing.T) {
	f := newSyncFixture(t, true)
	f.srv.Fail(http.MethodGet, adapter.IndexFileName, http.StatusInternalServerError, 0)

	err := f.svc.FullSync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list remote sessions")
}

// ── ExecutePlan ─────────────────────────────────────────────────────────────

func TestClientSyncService_ExecutePlan_DownloadFailure(t *testing.T) {
	f := newSyncFixture(t, true)

	err := f.svc.ExecutePlan(context.Background(), models.SyncPlan{Download: []string{"missing"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrUnreachable)
}

func TestClientSyncService_ExecutePlan_UploadMissingLocal(t *testing.T) {
	f := newSyncFixture(t, true)

	err := f.svc.ExecutePlan(context.Background(), models.SyncPlan{Upload: []string{"missing"}})
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestClientSyncService_FullSync_LocalReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, true)

	local := mock.NewMockSessionRepository(ctrl)
	local.EXPECT().GetAll(gomock.Any(), models.FieldDate, models.FieldLastEditedTime).
		Return(nil, errors.New("db is locked"))
	f.svc.local = local

	err := f.svc.FullSync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get local states")
}
