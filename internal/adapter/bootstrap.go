package adapter

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-session-sync/models"
)

// IndexFileName is the manifest object inside the WebDAV directory.
const IndexFileName = "index.json"

// Session is the validated remote configuration for one operation: the
// normalized directory URL and the headers every request carries.
type Session struct {
	// BaseURL always ends with "/".
	BaseURL string

	// Header carries the Basic-Auth Authorization header.
	Header http.Header

	// Username is the configured WebDAV user.
	Username string
}

// IndexURL returns the manifest address.
func (s Session) IndexURL() string {
	return s.BaseURL + IndexFileName
}

// FileURL returns the payload address of the session with the given id.
func (s Session) FileURL(id string) string {
	return s.BaseURL + url.PathEscape(id) + ".json"
}

// Origin returns "scheme://host", the unit hosts grant network permission
// for.
func (s Session) Origin() string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// NewSession validates cfg and builds the request session. It performs no
// network call.
func NewSession(cfg models.WebDAVConfig) (Session, error) {
	if cfg.URL == "" {
		return Session{}, fmt.Errorf("%w: WebDAV URL is empty", ErrMissingConfig)
	}
	if cfg.Username == "" {
		return Session{}, fmt.Errorf("%w: WebDAV username is empty", ErrMissingConfig)
	}

	baseURL, err := NormalizeBaseURL(cfg.URL)
	if err != nil {
		return Session{}, err
	}

	header := make(http.Header)
	header.Set("Authorization", "Basic "+EncodeBasicAuth(cfg.Username, cfg.Password))

	return Session{BaseURL: baseURL, Header: header, Username: cfg.Username}, nil
}

// NormalizeBaseURL trims raw, validates it as an absolute http(s) URL,
// lower-cases scheme and host and forces a trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: WebDAV URL is empty", ErrMissingConfig)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: WebDAV URL is invalid: %w", ErrInvalidConfig, err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: WebDAV URL is invalid", ErrInvalidConfig)
	}

	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	normalized := u.String()
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized, nil
}

// EncodeBasicAuth returns base64 of the UTF-8 bytes of "username:password".
func EncodeBasicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
