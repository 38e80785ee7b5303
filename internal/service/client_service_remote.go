package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/models"
)

// defaultConflictBackoff is the first wait before retrying a manifest
// update rejected with [adapter.ErrConflict].
const defaultConflictBackoff = 50 * time.Millisecond

type remoteSessionService struct {
	adapter adapter.WebDAVAdapter
	config  ConfigProvider

	retries uint64
	backoff time.Duration
}

// NewRemoteSessionService returns the [RemoteSessionService] over webdav.
// Manifest updates rejected as conflicting are retried up to retries times.
func NewRemoteSessionService(webdav adapter.WebDAVAdapter, cfg ConfigProvider, retries int) RemoteSessionService {
	if retries < 0 {
		retries = 0
	}
	return &remoteSessionService{
		adapter: webdav,
		config:  cfg,
		retries: uint64(retries),
		backoff: defaultConflictBackoff,
	}
}

// session re-reads the configuration and dials on every call.
func (r *remoteSessionService) session(ctx context.Context) (adapter.Session, error) {
	cfg, err := r.config.WebDAVConfig(ctx)
	if err != nil {
		return adapter.Session{}, fmt.Errorf("load webdav config: %w", err)
	}
	return r.adapter.Dial(ctx, cfg)
}

func (r *remoteSessionService) Upload(ctx context.Context, s models.Session) error {
	sess, err := r.session(ctx)
	if err != nil {
		return err
	}

	if err = r.adapter.PutSession(ctx, sess, s); err != nil {
		return err
	}

	entry := models.NewManifestEntry(s)
	return r.updateManifest(ctx, sess, func(m models.Manifest) []models.ManifestEntry {
		return m.Upsert(entry)
	})
}

func (r *remoteSessionService) Download(ctx context.Context, id string) (models.Session, error) {
	sess, err := r.session(ctx)
	if err != nil {
		return models.Session{}, err
	}
	return r.adapter.GetSession(ctx, sess, id)
}

func (r *remoteSessionService) Delete(ctx context.Context, id string) error {
	sess, err := r.session(ctx)
	if err != nil {
		return err
	}
	return r.delete(ctx, sess, id)
}

func (r *remoteSessionService) delete(ctx context.Context, sess adapter.Session, id string) error {
	if err := r.adapter.DeleteSession(ctx, sess, id); err != nil {
		return err
	}

	return r.updateManifest(ctx, sess, func(m models.Manifest) []models.ManifestEntry {
		return m.Without(id)
	})
}

func (r *remoteSessionService) List(ctx context.Context) ([]models.ManifestEntry, error) {
	sess, err := r.session(ctx)
	if err != nil {
		return nil, err
	}

	m, err := r.adapter.ReadManifest(ctx, sess)
	if err != nil {
		return nil, err
	}
	return m.Files, nil
}

func (r *remoteSessionService) DeleteAll(ctx context.Context) error {
	files, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, f := range files {
		// sequential: every delete rewrites the shared manifest
		if err = r.Delete(ctx, f.ID); err != nil {
			return fmt.Errorf("delete session %s: %w", f.ID, err)
		}
	}
	return nil
}

// updateManifest reads the manifest, applies mutate and writes it back. The
// whole cycle is repeated when the write reports a conflict.
func (r *remoteSessionService) updateManifest(
	ctx context.Context,
	sess adapter.Session,
	mutate func(models.Manifest) []models.ManifestEntry,
) error {
	log := logger.FromContext(ctx)
	b := retry.WithMaxRetries(r.retries, retry.NewExponential(r.backoff))

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		m, err := r.adapter.ReadManifest(ctx, sess)
		if err != nil {
			return err
		}

		m.Files = mutate(m)
		err = r.adapter.WriteManifest(ctx, sess, m)
		if errors.Is(err, adapter.ErrConflict) {
			log.Debug().
				Str("func", "remoteSessionService.updateManifest").
				Int("attempt", attempt).
				Msg("index changed since read, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
