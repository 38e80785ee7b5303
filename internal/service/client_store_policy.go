// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-session-sync/internal/logger"
)

// StorePolicy decides what happens to local-store failures inside the
// session wrapper, the tag manager and the import reconciler.
type StorePolicy struct {
	// Propagate returns failures to the caller. When false they are logged
	// and swallowed.
	Propagate bool
}

// BestEffort swallows local-store failures after logging them.
var BestEffort = StorePolicy{}

// MustPropagate returns local-store failures to the caller.
var MustPropagate = StorePolicy{Propagate: true}

// handle logs err and returns it only in must-propagate mode.
func (p StorePolicy) handle(ctx context.Context, err error, fn, msg string) error {
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	if p.Propagate {
		log.Err(err).Str("func", fn).Msg(msg)
		return err
	}

	log.Warn().Err(err).Str("func", fn).Msg(msg + " (ignored)")
	return nil
}
