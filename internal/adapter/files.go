package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-session-sync/models"
	"github.com/go-resty/resty/v2"
)

// PutSession implements [WebDAVAdapter].
func (a *webDAVAdapter) PutSession(ctx context.Context, sess Session, s models.Session) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode session %s: %w", ErrWriteFailed, s.ID, err)
	}

	resp, err := a.send(ctx, sess, http.MethodPut, sess.FileURL(s.ID), func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	})
	if err != nil {
		return mapTransportError(err, "upload session")
	}

	return mapHTTPError(resp, ErrWriteFailed, "failed to upload session")
}

// GetSession implements [WebDAVAdapter].
func (a *webDAVAdapter) GetSession(ctx context.Context, sess Session, id string) (models.Session, error) {
	resp, err := a.send(ctx, sess, http.MethodGet, sess.FileURL(id), nil)
	if err != nil {
		return models.Session{}, mapTransportError(err, "download session")
	}
	if err = mapHTTPError(resp, ErrUnreachable, "failed to download session"); err != nil {
		return models.Session{}, err
	}

	var s models.Session
	if err = json.Unmarshal(resp.Body(), &s); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode session %s: %w", ErrUnreachable, id, err)
	}

	return s, nil
}

// DeleteSession implements [WebDAVAdapter].
func (a *webDAVAdapter) DeleteSession(ctx context.Context, sess Session, id string) error {
	resp, err := a.send(ctx, sess, http.MethodDelete, sess.FileURL(id), nil)
	if err != nil {
		return mapTransportError(err, "delete session")
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}

	return mapHTTPError(resp, ErrDeleteFailed, "failed to delete session")
}
