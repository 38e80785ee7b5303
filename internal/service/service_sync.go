package service

import (
	"context"

	"github.com/MKhiriev/go-session-sync/models"
)

// syncService is the concrete implementation of SyncService.
// It performs a purely in-memory comparison of remote and local
// SessionState slices; no storage layer or logger is required
// because the operation is stateless and produces no side effects.
type syncService struct{}

// NewSyncService constructs a SyncService ready for use.
func NewSyncService() SyncService {
	return &syncService{}
}

// BuildSyncPlan implements SyncService.
//
// It builds O(1) lookup indexes from the input slices, then makes two
// linear passes, last-writer-wins by LastEditedTime:
//
//   - Pass 1 (over remote): sessions missing locally or newer remotely
//     are downloaded; sessions newer locally are uploaded.
//   - Pass 2 (over local): sessions the manifest does not list are
//     uploaded.
//
// Equal timestamps need no action. ctx cancellation is checked at the
// start of each iteration.
func (s *syncService) BuildSyncPlan(ctx context.Context, remote, local []models.SessionState) (models.SyncPlan, error) {
	var plan models.SyncPlan

	localIndex := make(map[string]models.SessionState, len(local))
	for _, l := range local {
		localIndex[l.ID] = l
	}

	remoteIndex := make(map[string]struct{}, len(remote))

	// ── Pass 1: remote entries ──────────────────────────────────────────────
	for _, r := range remote {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}
		if _, dup := remoteIndex[r.ID]; dup {
			continue
		}
		remoteIndex[r.ID] = struct{}{}

		l, existsLocally := localIndex[r.ID]
		switch {
		case !existsLocally, r.LastEditedTime > l.LastEditedTime:
			plan.Download = append(plan.Download, r.ID)
		case r.LastEditedTime < l.LastEditedTime:
			plan.Upload = append(plan.Upload, r.ID)
		}
	}

	// ── Pass 2: local-only sessions ─────────────────────────────────────────
	for _, l := range local {
		if err := ctx.Err(); err != nil {
			return models.SyncPlan{}, err
		}
		if _, existsRemotely := remoteIndex[l.ID]; !existsRemotely {
			plan.Upload = append(plan.Upload, l.ID)
		}
	}

	return plan, nil
}
