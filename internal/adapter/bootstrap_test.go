package adapter

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-session-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── NormalizeBaseURL ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "adds trailing slash", raw: "https://dav.example.com/remote.php/sessions", want: "https://dav.example.com/remote.php/sessions/"},
		{name: "keeps trailing slash", raw: "https://dav.example.com/s/", want: "https://dav.example.com/s/"},
		{name: "host only", raw: "https://dav.example.com", want: "https://dav.example.com/"},
		{name: "trims and lower-cases", raw: "  HTTPS://DAV.Example.com/Dir  ", want: "https://dav.example.com/Dir/"},
		{name: "empty", raw: "", wantErr: ErrMissingConfig},
		{name: "blank", raw: "   ", wantErr: ErrMissingConfig},
		{name: "no scheme", raw: "dav.example.com/s", wantErr: ErrInvalidConfig},
		{name: "unsupported scheme", raw: "ftp://dav.example.com/", wantErr: ErrInvalidConfig},
		{name: "unparsable", raw: "http://[::1", wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── EncodeBasicAuth ─────────────────────────────────────────────────────────

func TestEncodeBasicAuth_UTF8(t *testing.T) {
	encoded := EncodeBasicAuth("юзер", "pässwörd")

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "юзер:pässwörd", string(raw))
}

func TestEncodeBasicAuth_EmptyPassword(t *testing.T) {
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("alice:")), EncodeBasicAuth("alice", ""))
}

// ── NewSession ──────────────────────────────────────────────────────────────

func TestNewSession_Success(t *testing.T) {
	sess, err := NewSession(models.WebDAVConfig{URL: "https://dav.example.com/s", Username: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "https://dav.example.com/s/", sess.BaseURL)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "Basic "+EncodeBasicAuth("alice", "pw"), sess.Header.Get("Authorization"))
	assert.Equal(t, "https://dav.example.com/s/index.json", sess.IndexURL())
	assert.Equal(t, "https://dav.example.com", sess.Origin())
}

func TestNewSession_MissingConfig(t *testing.T) {
	_, err := NewSession(models.WebDAVConfig{Username: "alice"})
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "URL is empty")

	_, err = NewSession(models.WebDAVConfig{URL: "https://dav.example.com/"})
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "username is empty")
}

func TestSession_FileURLEscapesID(t *testing.T) {
	sess := Session{BaseURL: "https://dav.example.com/s/"}

	assert.Equal(t, "https://dav.example.com/s/abc.json", sess.FileURL("abc"))
	assert.Equal(t, "https://dav.example.com/s/a%2Fb%20c.json", sess.FileURL("a/b c"))
}

// ── Kind ────────────────────────────────────────────────────────────────────

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "", Kind(assert.AnError))
	assert.Equal(t, KindUnreachable, Kind(mapTransportError(assert.AnError, "x")))
	assert.Equal(t, KindMissingConfig, Kind(fmt.Errorf("connect: %w", ErrMissingConfig)))
	assert.Equal(t, KindConflict, Kind(fmt.Errorf("%w: index", ErrConflict)))
	assert.Equal(t, KindPermissionDenied, Kind(ErrPermissionDenied))
}
