package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/service"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/internal/tracing"
	"github.com/MKhiriev/go-session-sync/internal/workers"
	"github.com/MKhiriev/go-session-sync/models"
)

// App owns every long-lived component of one CLI invocation.
type App struct {
	cfg      *config.ClientConfig
	build    models.AppBuildInfo
	logger   *logger.Logger
	tracer   *tracing.Tracer
	storages *store.ClientStorages
	events   *service.Broadcaster
	services *service.ClientServices
	workers  *workers.Workers
}

var _ Client = (*App)(nil)

// NewApp wires tracing, the local storages, the WebDAV adapter and the
// services described by cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	tracer, err := tracing.New(ctx, tracing.Config{
		Exporter:     cfg.Tracing.Exporter,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		ServiceName:  "sessionsync",
		Version:      build.BuildVersion(),
		SampleRate:   cfg.Tracing.SampleRate,
		Output:       os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("create tracer: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		_ = tracer.Shutdown(ctx)
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	webdav := adapter.NewWebDAVAdapter(cfg.WebDAV, tracer, log)
	events := service.NewBroadcaster()
	services := service.NewClientServices(storages, webdav, cfg, service.OriginAllowList(cfg.WebDAV.AllowedOrigins), events)

	return &App{
		cfg:      cfg,
		build:    build,
		logger:   log,
		tracer:   tracer,
		storages: storages,
		events:   events,
		services: services,
		workers:  workers.NewClientWorkers(services, cfg.Workers),
	}, nil
}

// Services returns the wired services.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return a.logger.WithContext(ctx)
}

// RunDaemon syncs once, then keeps syncing every configured interval until
// ctx is cancelled. Local mutations are logged as they are broadcast.
func (a *App) RunDaemon(ctx context.Context) error {
	ctx = a.Context(ctx)

	events, unsubscribe := a.events.Subscribe(16)
	defer unsubscribe()
	go a.logEvents(events)

	if err := a.services.SyncService.FullSync(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.RunDaemon").Msg("initial sync failed")
	}

	a.workers.Run(ctx)
	a.logger.Info().
		Str("func", "App.RunDaemon").
		Stringer("build", a.build).
		Dur("interval", a.cfg.Workers.SyncInterval).
		Msg("sync daemon started")

	<-ctx.Done()
	a.workers.Stop()

	a.logger.Info().Str("func", "App.RunDaemon").Msg("sync daemon stopped")
	return nil
}

func (a *App) logEvents(events <-chan models.Event) {
	for e := range events {
		a.logger.Debug().Str("event", e.Name).Str("id", e.ID).Msg("local change")
	}
}

// Close releases the storages and flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.storages.Close(), a.tracer.Shutdown(ctx))
}
