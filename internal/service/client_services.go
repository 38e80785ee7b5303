package service

import (
	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/store"
)

// ClientServices aggregates every service the host wires together.
type ClientServices struct {
	State             *SyncState
	ConfigProvider    *SettingsConfigProvider
	RemoteService     RemoteSessionService
	SessionService    SessionService
	ImportService     ImportService
	TagService        TagService
	ConnectionService ConnectionService
	SyncService       ClientSyncService
	SyncJob           ClientSyncJob
}

// NewClientServices wires the services over the local storages and the
// WebDAV adapter.
func NewClientServices(
	storages *store.ClientStorages,
	webdav adapter.WebDAVAdapter,
	cfg *config.ClientConfig,
	granter PermissionGranter,
	notifier Notifier,
) *ClientServices {
	policy := BestEffort
	if cfg.App.PropagateStoreErrors {
		policy = MustPropagate
	}

	state := NewSyncState(storages.SettingsRepository)
	provider := NewSettingsConfigProvider(storages.SettingsRepository, cfg.WebDAV)

	remoteSvc := NewRemoteSessionService(webdav, provider, cfg.WebDAV.ConflictRetries)
	sessionSvc := NewSessionService(storages.SessionRepository, notifier, state, policy)
	syncSvc := NewClientSyncService(remoteSvc, storages.SessionRepository, sessionSvc, state)

	return &ClientServices{
		State:             state,
		ConfigProvider:    provider,
		RemoteService:     remoteSvc,
		SessionService:    sessionSvc,
		ImportService:     NewImportService(storages.SessionRepository, sessionSvc, state, policy),
		TagService:        NewTagService(storages.SessionRepository, sessionSvc, cfg.App.ReservedTags, policy),
		ConnectionService: NewConnectionService(webdav, provider, granter, state),
		SyncService:       syncSvc,
		SyncJob:           NewClientSyncJob(syncSvc),
	}
}
