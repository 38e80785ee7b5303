package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/logger"
)

// DefaultSyncInterval is used when Start gets a non-positive interval.
const DefaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClientSyncJob returns a [ClientSyncJob] driving syncService.FullSync.
// The job is idle until Start.
func NewClientSyncJob(syncService ClientSyncService) ClientSyncJob {
	return &clientSyncJob{syncService: syncService}
}

// Start implements [ClientSyncJob]. A running job is stopped first. The loop
// ends when ctx is cancelled, Stop is called or a sync fails in a way another
// attempt with the same configuration cannot fix.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	j.mu.Lock()
	j.cancel = cancel
	j.done = done
	j.mu.Unlock()

	go j.loop(runCtx, interval, done)
}

func (j *clientSyncJob) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !j.tick(ctx) {
				return
			}
		}
	}
}

// tick runs one sync and reports whether the loop should go on.
func (j *clientSyncJob) tick(ctx context.Context) bool {
	err := j.syncService.FullSync(ctx)
	if err == nil || ctx.Err() != nil {
		return true
	}

	log := logger.FromContext(ctx)
	if isPermanentSyncError(err) {
		log.Error().Err(err).
			Str("func", "clientSyncJob.tick").
			Str("kind", adapter.Kind(err)).
			Msg("periodic sync parked until restarted")
		return false
	}

	log.Warn().Err(err).
		Str("func", "clientSyncJob.tick").
		Str("kind", adapter.Kind(err)).
		Msg("periodic sync failed")
	return true
}

func isPermanentSyncError(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, adapter.ErrMissingConfig) ||
		errors.Is(err, adapter.ErrInvalidConfig)
}

// Stop implements [ClientSyncJob]. It waits for the loop to exit and is a
// no-op on an idle job.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.cancel, j.done = nil, nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
