package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-session-sync/models"
	"github.com/go-resty/resty/v2"
)

// ReadManifest implements [ManifestStore].
func (a *webDAVAdapter) ReadManifest(ctx context.Context, sess Session) (models.Manifest, error) {
	resp, err := a.send(ctx, sess, http.MethodGet, sess.IndexURL(), nil)
	if err != nil {
		return models.Manifest{}, mapTransportError(err, "read WebDAV index")
	}

	if resp.StatusCode() == http.StatusNotFound {
		return models.Manifest{Files: []models.ManifestEntry{}}, nil
	}
	if err = mapHTTPError(resp, ErrUnreachable, "failed to read WebDAV index"); err != nil {
		return models.Manifest{}, err
	}

	var m models.Manifest
	if err = json.Unmarshal(resp.Body(), &m); err != nil {
		return models.Manifest{}, fmt.Errorf("%w: decode WebDAV index: %w", ErrUnreachable, err)
	}
	m.ETag = resp.Header().Get("ETag")
	m.Exists = true

	if m.Skipped > 0 {
		a.logger.Warn().
			Str("func", "webDAVAdapter.ReadManifest").
			Int("skipped", m.Skipped).
			Msg("malformed index entries dropped")
	}

	return m, nil
}

// WriteManifest implements [ManifestStore].
func (a *webDAVAdapter) WriteManifest(ctx context.Context, sess Session, m models.Manifest) error {
	files := m.Files
	if files == nil {
		files = []models.ManifestEntry{}
	}

	body, err := json.Marshal(models.Manifest{Files: files, UpdatedAt: a.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("%w: encode WebDAV index: %w", ErrWriteFailed, err)
	}

	resp, err := a.send(ctx, sess, http.MethodPut, sess.IndexURL(), func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
		if !a.conditionalWrites {
			return
		}
		// If-Match compares strongly, so a weak tag can never match and
		// the write goes out unconditionally instead
		switch {
		case !m.Exists:
			r.SetHeader("If-None-Match", "*")
		case isStrongETag(m.ETag):
			r.SetHeader("If-Match", m.ETag)
		}
	})
	if err != nil {
		return mapTransportError(err, "write WebDAV index")
	}

	if resp.StatusCode() == http.StatusPreconditionFailed {
		return fmt.Errorf("%w: index %s", ErrConflict, sess.IndexURL())
	}

	return mapHTTPError(resp, ErrWriteFailed, "failed to update WebDAV index")
}

func isStrongETag(tag string) bool {
	return tag != "" && !strings.HasPrefix(tag, "W/")
}
