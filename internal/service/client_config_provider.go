package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

// Settings keys holding the WebDAV configuration.
const (
	KeyWebDAVURL      = "webdavUrl"
	KeyWebDAVUsername = "webdavUsername"
	KeyWebDAVPassword = "webdavPassword"
)

// SettingsConfigProvider reads the WebDAV configuration from the settings
// store. Members absent from the store fall back to the static
// configuration.
type SettingsConfigProvider struct {
	settings store.SettingsRepository
	fallback models.WebDAVConfig
}

// NewSettingsConfigProvider returns a provider over settings with cfg as
// fallback.
func NewSettingsConfigProvider(settings store.SettingsRepository, cfg config.ClientWebDAV) *SettingsConfigProvider {
	return &SettingsConfigProvider{
		settings: settings,
		fallback: models.WebDAVConfig{URL: cfg.URL, Username: cfg.Username, Password: cfg.Password},
	}
}

// WebDAVConfig implements [ConfigProvider].
func (p *SettingsConfigProvider) WebDAVConfig(ctx context.Context) (models.WebDAVConfig, error) {
	cfg := p.fallback

	members := []struct {
		key string
		dst *string
	}{
		{KeyWebDAVURL, &cfg.URL},
		{KeyWebDAVUsername, &cfg.Username},
		{KeyWebDAVPassword, &cfg.Password},
	}
	for _, m := range members {
		var v string
		ok, err := p.settings.Get(ctx, m.key, &v)
		if err != nil {
			return models.WebDAVConfig{}, fmt.Errorf("read %s: %w", m.key, err)
		}
		if ok {
			*m.dst = v
		}
	}

	return cfg, nil
}

// Save stores cfg in the settings store.
func (p *SettingsConfigProvider) Save(ctx context.Context, cfg models.WebDAVConfig) error {
	for key, value := range map[string]string{
		KeyWebDAVURL:      cfg.URL,
		KeyWebDAVUsername: cfg.Username,
		KeyWebDAVPassword: cfg.Password,
	} {
		if err := p.settings.Set(ctx, key, value); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

// StaticConfigProvider always returns the same configuration.
type StaticConfigProvider models.WebDAVConfig

// WebDAVConfig implements [ConfigProvider].
func (p StaticConfigProvider) WebDAVConfig(context.Context) (models.WebDAVConfig, error) {
	return models.WebDAVConfig(p), nil
}
