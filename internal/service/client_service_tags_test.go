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

func newTestTags(t *testing.T) (TagService, store.SessionRepository) {
	t.Helper()

	repo := newMemoryStorage(t).Sessions()
	sessions := NewSessionService(repo, nil, nil, MustPropagate)
	sessions.(*sessionService).now = fixedNow

	return NewTagService(repo, sessions, []string{"Временная", " "}, MustPropagate), repo
}

// ── SanitizeTag ─────────────────────────────────────────────────────────────

func TestSanitizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"work", "work"},
		{"  work  ", "work"},
		{"my   new    tag", "my new tag"},
		{"　　仕事　", "仕事"},
		{"   ", ""},
		{"　", ""},
		{"", ""},
		{"a\tb", "a\tb"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeTag(tc.in))
		})
	}
}

// ── AddTag ──────────────────────────────────────────────────────────────────

func TestTagService_AddTag(t *testing.T) {
	svc, repo := newTestTags(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a", Tag: []string{"_user"}, LastEditedTime: 5}))
	require.NoError(t, svc.AddTag(ctx, "a", "  my   tag "))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"_user", "my tag"}, got.Tag)
	assert.Equal(t, testNowMs, got.LastEditedTime)
}

func TestTagService_AddTag_Ignored(t *testing.T) {
	tests := []struct {
		name string
		tag  string
	}{
		{"empty", ""},
		{"spaces only", "    "},
		{"ideographic spaces only", "　　"},
		{"system tag", "regular"},
		{"hidden system tag", "_displayAll"},
		{"localized reserved tag", "Временная"},
		{"duplicate", "work"},
		{"duplicate after sanitize", "  work "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestTags(t)
			ctx := context.Background()

			require.NoError(t, repo.Put(ctx, models.Session{ID: "a", Tag: []string{"work"}, LastEditedTime: 5}))
			require.NoError(t, svc.AddTag(ctx, "a", tc.tag))

			got, err := repo.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []string{"work"}, got.Tag)
			assert.Equal(t, int64(5), got.LastEditedTime, "ignored tags must not touch the session")
		})
	}
}

func TestTagService_AddTag_MissingSession(t *testing.T) {
	svc, repo := newTestTags(t)
	ctx := context.Background()

	require.NoError(t, svc.AddTag(ctx, "missing", "work"))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTagService_AddTag_StorePolicy(t *testing.T) {
	getErr := errors.New("db is locked")

	for _, policy := range []StorePolicy{BestEffort, MustPropagate} {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockSessionRepository(ctrl)
		repo.EXPECT().Get(gomock.Any(), "a").Return(models.Session{}, getErr)

		svc := NewTagService(repo, NewSessionService(repo, nil, nil, policy), nil, policy)
		err := svc.AddTag(context.Background(), "a", "work")

		if policy.Propagate {
			assert.ErrorIs(t, err, getErr)
		} else {
			assert.NoError(t, err)
		}
	}
}

// ── RemoveTag ───────────────────────────────────────────────────────────────

func TestTagService_RemoveTag(t *testing.T) {
	svc, repo := newTestTags(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "a", Tag: []string{"work", "_user", "work"}, LastEditedTime: 5}))
	require.NoError(t, svc.RemoveTag(ctx, "a", "work"))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"_user"}, got.Tag)
	assert.Equal(t, testNowMs, got.LastEditedTime)
}

func TestTagService_RemoveTag_AbsentIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "a").Return(models.Session{ID: "a", Tag: []string{"work"}}, nil)
	// Put не ожидается

	svc := NewTagService(repo, NewSessionService(repo, nil, nil, MustPropagate), nil, MustPropagate)
	assert.NoError(t, svc.RemoveTag(context.Background(), "a", "home"))
}

func TestTagService_RemoveTag_MissingSession(t *testing.T) {
	svc, _ := newTestTags(t)
	assert.NoError(t, svc.RemoveTag(context.Background(), "missing", "work"))
}

// ── ListByTag ───────────────────────────────────────────────────────────────

func TestTagService_ListByTag(t *testing.T) {
	svc, repo := newTestTags(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Session{ID: "old", Name: "Old", Date: 1, Tag: []string{"work"}}))
	require.NoError(t, repo.Put(ctx, models.Session{ID: "new", Name: "New", Date: 3, Tag: []string{"work", "_user"}}))
	require.NoError(t, repo.Put(ctx, models.Session{ID: "other", Name: "Other", Date: 2, Tag: []string{"home"}}))

	got, err := svc.ListByTag(ctx, "work")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)

	none, err := svc.ListByTag(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTagService_ListByTag_AddsProjectionFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	repo.EXPECT().GetAll(gomock.Any(), models.FieldName, models.FieldTag, models.FieldDate).Return([]models.Session{
		{ID: "a", Name: "A", Date: 1, Tag: []string{"work"}},
		{ID: "b", Name: "B", Date: 2, Tag: []string{"work"}},
	}, nil)

	svc := NewTagService(repo, NewSessionService(repo, nil, nil, BestEffort), nil, BestEffort)
	got, err := svc.ListByTag(context.Background(), "work", models.FieldName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
}

func TestTagService_ListByTag_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	getAllErr := errors.New("db is locked")
	repo.EXPECT().GetAll(gomock.Any()).Return(nil, getAllErr)

	svc := NewTagService(repo, NewSessionService(repo, nil, nil, BestEffort), nil, BestEffort)
	_, err := svc.ListByTag(context.Background(), "work")
	assert.ErrorIs(t, err, getAllErr)
}
