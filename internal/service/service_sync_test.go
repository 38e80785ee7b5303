// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-sync/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────────────────────────────────────

// st is a shorthand constructor for SessionState used only in tests.
func st(id string, edited int64) models.SessionState {
	return models.SessionState{ID: id, Date: 1, LastEditedTime: edited}
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSyncPlan — decision matrix (table-driven)
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_BuildSyncPlan_DecisionMatrix(t *testing.T) {
	const id = "session-1"

	tests := []struct {
		name     string
		remote   []models.SessionState
		local    []models.SessionState
		wantPlan models.SyncPlan
	}{
		{
			name:     "RemoteOnly → Download",
			remote:   []models.SessionState{st(id, 5)},
			wantPlan: models.SyncPlan{Download: []string{id}},
		},
		{
			name:     "LocalOnly → Upload",
			local:    []models.SessionState{st(id, 5)},
			wantPlan: models.SyncPlan{Upload: []string{id}},
		},
		{
			name:     "RemoteNewer → Download",
			remote:   []models.SessionState{st(id, 7)},
			local:    []models.SessionState{st(id, 5)},
			wantPlan: models.SyncPlan{Download: []string{id}},
		},
		{
			name:     "LocalNewer → Upload",
			remote:   []models.SessionState{st(id, 5)},
			local:    []models.SessionState{st(id, 7)},
			wantPlan: models.SyncPlan{Upload: []string{id}},
		},
		{
			name:     "SameEdit → NoAction",
			remote:   []models.SessionState{st(id, 5)},
			local:    []models.SessionState{st(id, 5)},
			wantPlan: models.SyncPlan{},
		},
		{
			// дубликаты в манифесте учитываются один раз
			name:     "DuplicateRemoteEntry → single Download",
			remote:   []models.SessionState{st(id, 7), st(id, 9)},
			local:    []models.SessionState{st(id, 5)},
			wantPlan: models.SyncPlan{Download: []string{id}},
		},
	}

	svc := NewSyncService()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := svc.BuildSyncPlan(context.Background(), tc.remote, tc.local)

			require.NoError(t, err)
			assert.Equal(t, tc.wantPlan.Download, plan.Download, "Download mismatch")
			assert.Equal(t, tc.wantPlan.Upload, plan.Upload, "Upload mismatch")
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSyncPlan — edge cases
// ─────────────────────────────────────────────────────────────────────────────

func TestSyncService_BuildSyncPlan_BothEmpty(t *testing.T) {
	plan, err := NewSyncService().BuildSyncPlan(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.Nil(t, plan.Download)
	assert.Nil(t, plan.Upload)
}

func TestSyncService_BuildSyncPlan_ContextCancelled(t *testing.T) {
	remote := make([]models.SessionState, 1000)
	for i := range remote {
		remote[i] = st("id", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSyncService().BuildSyncPlan(ctx, remote, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSyncPlan — realistic mixed scenario
// ─────────────────────────────────────────────────────────────────────────────

// TestSyncService_BuildSyncPlan_MixedScenario:
//
//	"s-1"  remote 3, local 3   → NoAction  (in sync)
//	"s-2"  remote 4, local 2   → Download  (remote newer)
//	"s-3"  remote 2, local 5   → Upload    (offline edit)
//	"s-4"  remote only         → Download  (new on another device)
//	"s-5"  local only          → Upload    (new here)
func TestSyncService_BuildSyncPlan_MixedScenario(t *testing.T) {
	remote := []models.SessionState{st("s-1", 3), st("s-2", 4), st("s-3", 2), st("s-4", 1)}
	local := []models.SessionState{st("s-1", 3), st("s-2", 2), st("s-3", 5), st("s-5", 1)}

	plan, err := NewSyncService().BuildSyncPlan(context.Background(), remote, local)

	require.NoError(t, err)
	assert.Equal(t, []string{"s-2", "s-4"}, plan.Download)
	assert.Equal(t, []string{"s-3", "s-5"}, plan.Upload)
}
