// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	cleanupMu     sync.Mutex
	lastCleanupAt time.Time
)

// DoCleanup starts a background sweep of idle limiters at most once per
// CleanupInterval. It is called from Evaluate, so no extra goroutine has to
// be managed.
func DoCleanup() {
	now := timeNow()

	cleanupMu.Lock()

	if lastCleanupAt.IsZero() {
		lastCleanupAt = now
		cleanupMu.Unlock()

		return
	}

	if now.Sub(lastCleanupAt) < CleanupInterval {
		cleanupMu.Unlock()

		return
	}

	lastCleanupAt = now
	cleanupMu.Unlock()

	go func() {
		cleanupExpiredLimiters()

		log.Debug().Time("start", now).Dur("dur", time.Since(now)).Msg("limiter cleanup")
	}()
}
