// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"testing"
	"time"
)

// setupLimiterTest freezes the limiter clock and applies perSecond and burst.
// Advance the clock through the returned pointer.
func setupLimiterTest(t *testing.T, perSecond float64, burst int) *time.Time {
	t.Helper()

	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	origNow := timeNow
	timeNow = func() time.Time { return now }

	Configure(perSecond, burst)

	t.Cleanup(func() {
		timeNow = origNow

		limiters.Clear()

		cleanupMu.Lock()
		lastCleanupAt = time.Time{}
		cleanupMu.Unlock()
	})

	return &now
}
