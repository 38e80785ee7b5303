package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-session-sync/internal/adapter"
	"github.com/MKhiriev/go-session-sync/internal/logger"
)

type connectionService struct {
	adapter adapter.WebDAVAdapter
	config  ConfigProvider
	granter PermissionGranter
	state   *SyncState
}

// NewConnectionService returns the [ConnectionService].
func NewConnectionService(webdav adapter.WebDAVAdapter, cfg ConfigProvider, granter PermissionGranter, state *SyncState) ConnectionService {
	return &connectionService{
		adapter: webdav,
		config:  cfg,
		granter: granter,
		state:   state,
	}
}

func (c *connectionService) Connect(ctx context.Context) (SyncStatus, error) {
	log := logger.FromContext(ctx)

	cfg, err := c.config.WebDAVConfig(ctx)
	if err != nil {
		return SyncStatus{}, fmt.Errorf("load webdav config: %w", err)
	}

	// validated before anything leaves the process
	sess, err := adapter.NewSession(cfg)
	if err != nil {
		return SyncStatus{}, err
	}

	origin := PermissionOrigin(sess)
	granted, err := c.granter.RequestOrigin(ctx, origin)
	if err != nil {
		return SyncStatus{}, fmt.Errorf("%w: %s: %w", adapter.ErrPermissionDenied, origin, err)
	}
	if !granted {
		return SyncStatus{}, fmt.Errorf("%w: %s", adapter.ErrPermissionDenied, origin)
	}

	if sess, err = c.adapter.Dial(ctx, cfg); err != nil {
		log.Err(err).Str("func", "connectionService.Connect").Msg("failed to reach webdav directory")
		return SyncStatus{}, err
	}
	c.adapter.Touch(ctx, sess)

	identity := sess.Username
	if err = c.state.MarkConnected(ctx, identity); err != nil {
		return SyncStatus{}, fmt.Errorf("save connection state: %w", err)
	}

	log.Info().Str("func", "connectionService.Connect").Str("identity", identity).Msg("webdav sync connected")
	return c.state.Load(ctx)
}

func (c *connectionService) Disconnect(ctx context.Context) error {
	if err := c.state.MarkDisconnected(ctx); err != nil {
		return fmt.Errorf("clear connection state: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "connectionService.Disconnect").Msg("webdav sync disconnected")
	return nil
}

func (c *connectionService) Status(ctx context.Context) (SyncStatus, error) {
	return c.state.Load(ctx)
}

// PermissionOrigin returns the host permission pattern for sess.
func PermissionOrigin(sess adapter.Session) string {
	return sess.Origin() + "/*"
}

// OriginAllowList grants the origins it lists. An empty list grants every
// origin.
type OriginAllowList []string

// RequestOrigin implements [PermissionGranter].
func (l OriginAllowList) RequestOrigin(_ context.Context, origin string) (bool, error) {
	if len(l) == 0 {
		return true, nil
	}

	base := strings.TrimSuffix(origin, "/*")
	return slices.ContainsFunc(l, func(allowed string) bool {
		allowed = strings.TrimSuffix(strings.TrimSpace(allowed), "/")
		return strings.EqualFold(strings.TrimSuffix(allowed, "/*"), base)
	}), nil
}
