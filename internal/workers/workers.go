package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns an aggregate running workers in the given order.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// NewClientWorkers returns the background workers of the client daemon.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers) *Workers {
	return NewWorkers(NewSyncWorker(services.SyncJob, cfg.SyncInterval))
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// SyncWorker runs the periodic full sync.
type SyncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func NewSyncWorker(job service.ClientSyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{job: job, interval: interval}
}

func (s *SyncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *SyncWorker) Stop() {
	s.job.Stop()
}
