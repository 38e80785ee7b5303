// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-visible status keys shared by the CLI host
// and anything else that renders sync state.
//
// Keys are message identifiers, not text: the host looks them up in its own
// message catalogue.
package app

import (
	"github.com/MKhiriev/go-session-sync/internal/adapter"
)

const (
	// StatusConnected is shown while remote sync is enabled.
	StatusConnected = "webdavConnectedLabel"

	// StatusDisconnected is shown while remote sync is disabled.
	StatusDisconnected = "webdavDisconnectedLabel"

	// StatusMissingConfig is shown when the URL or the username is empty.
	StatusMissingConfig = "webdavMissingConfigLabel"

	// StatusPermissionError is shown when the host refused network access
	// to the WebDAV origin.
	StatusPermissionError = "webdavPermissionErrorLabel"

	// StatusUnauthorized is shown when the server answered 401 or 403.
	StatusUnauthorized = "webdavUnauthorizedLabel"

	// StatusConnectionError covers every other remote failure.
	StatusConnectionError = "webdavConnectionErrorLabel"
)

// StatusKey returns the status key describing err. A nil err means the
// connection is up.
func StatusKey(err error) string {
	if err == nil {
		return StatusConnected
	}

	switch adapter.Kind(err) {
	case adapter.KindMissingConfig:
		return StatusMissingConfig
	case adapter.KindPermissionDenied:
		return StatusPermissionError
	case adapter.KindUnauthorized:
		return StatusUnauthorized
	default:
		return StatusConnectionError
	}
}

// ConnectionKey returns the status key for the persisted connection flag.
func ConnectionKey(connected bool) string {
	if connected {
		return StatusConnected
	}
	return StatusDisconnected
}
