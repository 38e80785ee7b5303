package adapter

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/tracing"
	"github.com/MKhiriev/go-session-sync/internal/utils"
	"github.com/MKhiriev/go-session-sync/models"
	"github.com/go-resty/resty/v2"
)

// WebDAV methods resty has no helpers for.
const (
	MethodPropfind = "PROPFIND"
	MethodMkcol    = "MKCOL"
)

type webDAVAdapter struct {
	client *utils.HTTPClient
	tracer *tracing.Tracer

	conditionalWrites bool
	now               func() time.Time

	logger *logger.Logger
}

// NewWebDAVAdapter constructs the resty-backed [WebDAVAdapter]. A zero
// cfg.RequestTimeout leaves requests unbounded; callers bound them through
// ctx. A nil tracer disables spans.
func NewWebDAVAdapter(cfg config.ClientWebDAV, tracer *tracing.Tracer, logger *logger.Logger) WebDAVAdapter {
	client := utils.NewHTTPClient(cfg.RequestTimeout)

	if tracer == nil {
		tracer = tracing.Nop()
	}

	return &webDAVAdapter{
		client:            client,
		tracer:            tracer,
		conditionalWrites: cfg.ConditionalWrites,
		now:               time.Now,
		logger:            logger,
	}
}

// Dial implements [WebDAVAdapter].
func (a *webDAVAdapter) Dial(ctx context.Context, cfg models.WebDAVConfig) (Session, error) {
	sess, err := NewSession(cfg)
	if err != nil {
		return Session{}, err
	}
	if err = a.EnsureDirectory(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// EnsureDirectory implements [WebDAVAdapter].
func (a *webDAVAdapter) EnsureDirectory(ctx context.Context, sess Session) error {
	resp, err := a.send(ctx, sess, MethodPropfind, sess.BaseURL, func(r *resty.Request) {
		r.SetHeader("Depth", "0")
	})
	if err != nil {
		return mapTransportError(err, "WebDAV directory probe")
	}

	if resp.StatusCode() == http.StatusNotFound {
		return a.createDirectory(ctx, sess)
	}

	return mapHTTPError(resp, ErrUnreachable, "WebDAV directory probe failed")
}

func (a *webDAVAdapter) createDirectory(ctx context.Context, sess Session) error {
	resp, err := a.send(ctx, sess, MethodMkcol, sess.BaseURL, nil)
	if err != nil {
		return mapTransportError(err, "create WebDAV directory")
	}

	// 405: the collection already exists or the method is not applicable
	if resp.StatusCode() == http.StatusMethodNotAllowed {
		return nil
	}

	return mapHTTPError(resp, ErrCreateFailed, "failed to create WebDAV directory")
}

// Touch implements [WebDAVAdapter].
func (a *webDAVAdapter) Touch(ctx context.Context, sess Session) {
	if _, err := a.send(ctx, sess, http.MethodHead, sess.IndexURL(), nil); err != nil {
		a.logger.Debug().Err(err).Str("func", "webDAVAdapter.Touch").Msg("index touch failed")
	}
}

// send executes one request carrying the session headers inside a client
// span. A nil error means a response was received, whatever its status.
func (a *webDAVAdapter) send(ctx context.Context, sess Session, method, target string, prepare func(*resty.Request)) (*resty.Response, error) {
	ctx, span := a.tracer.StartRequestSpan(ctx, method, target)

	req := a.client.R().SetContext(ctx)
	for key := range sess.Header {
		req.SetHeader(key, sess.Header.Get(key))
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		span.EndWithError(err)
		a.logger.Debug().Err(err).
			Str("method", method).
			Str("url", target).
			Msg("webdav request failed")
		return nil, err
	}

	span.SetStatusCode(resp.StatusCode())
	span.End()
	a.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("webdav request")

	return resp, nil
}
