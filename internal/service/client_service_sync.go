package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

type clientSyncService struct {
	remote   RemoteSessionService
	local    store.SessionRepository
	sessions SessionService
	state    *SyncState
	planner  SyncService
	now      func() time.Time
}

// NewClientSyncService returns the [ClientSyncService]. Downloaded sessions
// are saved through sessions with their remote timestamps so both sides
// converge.
func NewClientSyncService(remote RemoteSessionService, local store.SessionRepository, sessions SessionService, state *SyncState) ClientSyncService {
	return &clientSyncService{
		remote:   remote,
		local:    local,
		sessions: sessions,
		state:    state,
		planner:  NewSyncService(),
		now:      time.Now,
	}
}

func (s *clientSyncService) FullSync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	connected, err := s.state.Connected(ctx)
	if err != nil {
		return fmt.Errorf("read sync state: %w", err)
	}
	if !connected {
		log.Debug().Str("func", "clientSyncService.FullSync").Msg("not connected, sync skipped")
		return nil
	}

	if err = s.flushRemovals(ctx); err != nil {
		return err
	}

	entries, err := s.remote.List(ctx)
	if err != nil {
		return fmt.Errorf("list remote sessions: %w", err)
	}
	remoteStates := make([]models.SessionState, 0, len(entries))
	for _, e := range entries {
		remoteStates = append(remoteStates, models.SessionState{
			ID:             e.ID,
			Date:           e.AppProperties.Date,
			LastEditedTime: e.AppProperties.LastEditedTime,
		})
	}

	localSessions, err := s.local.GetAll(ctx, models.FieldDate, models.FieldLastEditedTime)
	if err != nil {
		return fmt.Errorf("get local states: %w", err)
	}
	localStates := make([]models.SessionState, 0, len(localSessions))
	for _, l := range localSessions {
		localStates = append(localStates, models.SessionState{ID: l.ID, Date: l.Date, LastEditedTime: l.LastEditedTime})
	}

	plan, err := s.planner.BuildSyncPlan(ctx, remoteStates, localStates)
	if err != nil {
		return fmt.Errorf("build sync plan: %w", err)
	}

	if err = s.ExecutePlan(ctx, plan); err != nil {
		return fmt.Errorf("execute sync plan: %w", err)
	}

	if err = s.state.SetLastSyncTime(ctx, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("save last sync time: %w", err)
	}

	log.Info().
		Str("func", "clientSyncService.FullSync").
		Int("downloaded", len(plan.Download)).
		Int("uploaded", len(plan.Upload)).
		Msg("full sync finished")
	return nil
}

// ExecutePlan runs downloads, then uploads, one at a time.
func (s *clientSyncService) ExecutePlan(ctx context.Context, plan models.SyncPlan) error {
	for _, id := range plan.Download {
		item, err := s.remote.Download(ctx, id)
		if err != nil {
			return fmt.Errorf("download session %s: %w", id, err)
		}
		if err = s.sessions.Save(ctx, item); err != nil {
			return fmt.Errorf("save downloaded session %s: %w", id, err)
		}
	}

	for _, id := range plan.Upload {
		item, err := s.local.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get local upload session %s: %w", id, err)
		}
		if err = s.remote.Upload(ctx, item); err != nil {
			return fmt.Errorf("upload session %s: %w", id, err)
		}
	}

	return nil
}

// flushRemovals deletes queued sessions remotely. Ids deleted before a
// failure leave the queue.
func (s *clientSyncService) flushRemovals(ctx context.Context) error {
	queue, err := s.state.RemovedQueue(ctx)
	if err != nil {
		return fmt.Errorf("read removal queue: %w", err)
	}
	if len(queue) == 0 {
		return nil
	}

	done := make([]string, 0, len(queue))
	var deleteErr error
	for _, id := range queue {
		if deleteErr = s.remote.Delete(ctx, id); deleteErr != nil {
			deleteErr = fmt.Errorf("delete queued session %s: %w", id, deleteErr)
			break
		}
		done = append(done, id)
	}

	if err = s.state.DequeueRemovals(ctx, done); err != nil {
		return fmt.Errorf("update removal queue: %w", err)
	}
	return deleteErr
}
