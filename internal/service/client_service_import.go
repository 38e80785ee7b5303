package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

type importService struct {
	repo     store.SessionRepository
	sessions SessionService
	state    *SyncState
	policy   StorePolicy
	now      func() time.Time
}

// NewImportService returns the [ImportService]. Saves go through sessions
// so every imported record is broadcast like a local save.
func NewImportService(repo store.SessionRepository, sessions SessionService, state *SyncState, policy StorePolicy) ImportService {
	return &importService{
		repo:     repo,
		sessions: sessions,
		state:    state,
		policy:   policy,
		now:      time.Now,
	}
}

func (i *importService) Import(ctx context.Context, sessions []models.Session) (int, error) {
	log := logger.FromContext(ctx)

	pending := make([]models.Session, 0, len(sessions))
	for _, imported := range sessions {
		skip, err := i.hasSameOrNewer(ctx, imported)
		if err != nil {
			return 0, err
		}
		if skip {
			log.Debug().
				Str("func", "importService.Import").
				Str("id", imported.ID).
				Msg("local copy is the same edit or newer, skipped")
			continue
		}

		item := imported.Clone()
		item.LastEditedTime = i.now().UnixMilli()
		pending = append(pending, item)
	}

	if len(pending) == 0 {
		return 0, nil
	}

	// saves hit the local store only, so they run concurrently; none
	// cancels the others
	var g errgroup.Group
	errs := make([]error, len(pending))
	for n, item := range pending {
		g.Go(func() error {
			errs[n] = i.sessions.Save(ctx, item)
			return errs[n]
		})
	}
	saveErr := g.Wait()

	if err := i.resetWatermark(ctx); err != nil {
		return len(pending), err
	}

	if saveErr != nil {
		return len(pending), fmt.Errorf("%w: %w", ErrImportFailed, errors.Join(errs...))
	}
	return len(pending), nil
}

// hasSameOrNewer searches by date and reports whether the local store holds
// imported in an equal or newer edit.
func (i *importService) hasSameOrNewer(ctx context.Context, imported models.Session) (bool, error) {
	candidates, err := i.repo.Search(ctx, models.FieldDate, imported.Date)
	if err != nil {
		err = i.policy.handle(ctx, fmt.Errorf("search sessions by date: %w", err),
			"importService.hasSameOrNewer", "failed to search local sessions")
		return false, err
	}

	for _, local := range candidates {
		if local.ID == imported.ID && local.LastEditedTime >= imported.LastEditedTime {
			return true, nil
		}
	}
	return false, nil
}

func (i *importService) resetWatermark(ctx context.Context) error {
	if i.state == nil {
		return nil
	}

	connected, err := i.state.Connected(ctx)
	if err == nil && connected {
		err = i.state.SetLastSyncTime(ctx, 0)
	}
	return i.policy.handle(ctx, err, "importService.resetWatermark", "failed to reset last sync time")
}
