package adapter

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for a 2xx response, [ErrUnauthorized] for 401 and
// 403, and failure wrapped with what and the status code otherwise.
func mapHTTPError(resp *resty.Response, failure error, what string) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (%d)", ErrUnauthorized, what, code)
	default:
		return fmt.Errorf("%w: %s (%d)", failure, what, code)
	}
}

// mapTransportError wraps a request that never produced a response.
func mapTransportError(err error, what string) error {
	return fmt.Errorf("%w: %s: %w", ErrUnreachable, what, err)
}
