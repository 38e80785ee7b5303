package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the sync engine to WebDAV servers.
const UserAgent = "go-session-sync"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(30 * time.Second)
//	resp, err := client.R().SetHeader("Depth", "0").Execute("PROPFIND", url)
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient whose requests are bounded by timeout.
// A zero timeout leaves them unbounded.
//
// Each call returns an independent client with its own connection pool.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
