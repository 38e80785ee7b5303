// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Failure kinds of the remote layer. Every error returned by this package
// wraps exactly one of them, so callers can branch with [errors.Is] or
// [Kind].
var (
	ErrMissingConfig    = errors.New("webdav configuration missing")
	ErrInvalidConfig    = errors.New("webdav configuration invalid")
	ErrUnauthorized     = errors.New("webdav authorization failed")
	ErrUnreachable      = errors.New("webdav unreachable")
	ErrCreateFailed     = errors.New("webdav directory create failed")
	ErrWriteFailed      = errors.New("webdav write failed")
	ErrDeleteFailed     = errors.New("webdav delete failed")
	ErrPermissionDenied = errors.New("permission to contact webdav endpoint denied")

	// ErrConflict reports a conditional index write rejected because the
	// index changed since it was read.
	ErrConflict = errors.New("webdav index changed since read")
)

// Kind codes returned by [Kind].
const (
	KindMissingConfig    = "missing_config"
	KindInvalidConfig    = "invalid_config"
	KindUnauthorized     = "unauthorized"
	KindUnreachable      = "unreachable"
	KindCreateFailed     = "create_failed"
	KindWriteFailed      = "write_failed"
	KindDeleteFailed     = "delete_failed"
	KindPermissionDenied = "permission_denied"
	KindConflict         = "conflict"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrMissingConfig, KindMissingConfig},
	{ErrInvalidConfig, KindInvalidConfig},
	{ErrUnauthorized, KindUnauthorized},
	{ErrPermissionDenied, KindPermissionDenied},
	{ErrConflict, KindConflict},
	{ErrCreateFailed, KindCreateFailed},
	{ErrWriteFailed, KindWriteFailed},
	{ErrDeleteFailed, KindDeleteFailed},
	{ErrUnreachable, KindUnreachable},
}

// Kind returns the failure kind code of err, or "" when err carries none.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}
