package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

type sessionService struct {
	repo     store.SessionRepository
	notifier Notifier
	state    *SyncState
	policy   StorePolicy
	now      func() time.Time
}

// NewSessionService returns the local [SessionService]. A nil notifier
// drops events; a nil state disables the removal queue.
func NewSessionService(repo store.SessionRepository, notifier Notifier, state *SyncState, policy StorePolicy) SessionService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &sessionService{
		repo:     repo,
		notifier: notifier,
		state:    state,
		policy:   policy,
		now:      time.Now,
	}
}

// Save stores s. LastEditedTime is stamped only when unset so imported
// timestamps survive.
func (s *sessionService) Save(ctx context.Context, item models.Session) error {
	if item.LastEditedTime == 0 {
		item.LastEditedTime = s.now().UnixMilli()
	}
	return s.put(ctx, item, models.EventSaveSession, "sessionService.Save")
}

func (s *sessionService) Update(ctx context.Context, item models.Session) error {
	item.LastEditedTime = s.now().UnixMilli()
	return s.put(ctx, item, models.EventUpdateSession, "sessionService.Update")
}

func (s *sessionService) put(ctx context.Context, item models.Session, event, fn string) error {
	if err := s.repo.Put(ctx, item); err != nil {
		return s.policy.handle(ctx, fmt.Errorf("put session %s: %w", item.ID, err), fn, "failed to store session")
	}

	s.notifier.Notify(ctx, models.Event{Name: event, ID: item.ID})
	return nil
}

func (s *sessionService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.policy.handle(ctx, fmt.Errorf("delete session %s: %w", id, err), "sessionService.Remove", "failed to delete session")
	}
	s.notifier.Notify(ctx, models.Event{Name: models.EventDeleteSession, ID: id})

	if s.state == nil {
		return nil
	}

	connected, err := s.state.Connected(ctx)
	if err == nil && connected {
		err = s.state.EnqueueRemoval(ctx, id)
	}
	return s.policy.handle(ctx, err, "sessionService.Remove", "failed to queue remote removal")
}

// Rename trims name and updates the session. An unknown id is ignored.
func (s *sessionService) Rename(ctx context.Context, id, name string) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			logger.FromContext(ctx).Debug().Str("func", "sessionService.Rename").Str("id", id).Msg("session not found")
			return nil
		}
		return s.policy.handle(ctx, fmt.Errorf("get session %s: %w", id, err), "sessionService.Rename", "failed to load session")
	}

	item.Name = strings.TrimSpace(name)
	return s.Update(ctx, item)
}

func (s *sessionService) RemoveAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return s.policy.handle(ctx, fmt.Errorf("delete all sessions: %w", err), "sessionService.RemoveAll", "failed to delete sessions")
	}

	s.notifier.Notify(ctx, models.Event{Name: models.EventDeleteAll})
	return nil
}

func (s *sessionService) Get(ctx context.Context, id string) (models.Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *sessionService) GetAll(ctx context.Context, fields ...string) ([]models.Session, error) {
	return s.repo.GetAll(ctx, fields...)
}
