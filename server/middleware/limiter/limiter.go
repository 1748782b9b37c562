// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/pixivfe/errorpage/config"
)

const (
	LimiterExpiryDuration = time.Hour       // How long to keep idle limiters in memory.
	CleanupInterval       = 5 * time.Minute // Interval between limiter cleanup runs.
	IPv4Prefix            = 32
	IPv6Prefix            = 64
)

var (
	limiters sync.Map   // network string -> *limiterWrapper
	timeNow  = time.Now // Wrapper for time.Now, which allows us to mock it in tests.

	settingsMu   sync.RWMutex
	currentRate  = rate.Limit(5)
	currentBurst = 50
)

// limiterWrapper holds a rate limiter and the last time it was used.
type limiterWrapper struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Init applies the configured rate and burst and forgets existing clients.
func Init() {
	Configure(config.Global.Limiter.Rate, config.Global.Limiter.Burst)

	log.Info().
		Float64("rate", config.Global.Limiter.Rate).
		Int("burst", config.Global.Limiter.Burst).
		Msg("Limiter enabled")
}

// Configure sets the token rate (per second) and burst for new limiters and
// drops all existing ones.
func Configure(perSecond float64, burst int) {
	settingsMu.Lock()
	currentRate = rate.Limit(perSecond)
	currentBurst = burst
	settingsMu.Unlock()

	limiters.Clear()
}

// Fini drops all limiters.
func Fini() {
	count := 0

	limiters.Range(func(_, _ any) bool {
		count++

		return true
	})

	limiters.Clear()

	log.Info().Int("count", count).Msg("Limiter stopped")
}

// getOrCreateLimiter returns the limiterWrapper for network, creating it
// with the current settings if needed.
func getOrCreateLimiter(network string) *limiterWrapper {
	if v, ok := limiters.Load(network); ok {
		if lw, ok := v.(*limiterWrapper); ok {
			return lw
		}
	}

	settingsMu.RLock()
	lw := &limiterWrapper{
		limiter:    rate.NewLimiter(currentRate, currentBurst),
		lastAccess: timeNow(),
	}
	settingsMu.RUnlock()

	actual, _ := limiters.LoadOrStore(network, lw)

	return actual.(*limiterWrapper) //nolint:forcetypeassert // only *limiterWrapper is stored
}

// allow consumes one token. When it fails, it also returns how long until
// the next token is available.
func (lw *limiterWrapper) allow() (bool, time.Duration) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	now := timeNow()
	lw.lastAccess = now

	if lw.limiter.AllowN(now, 1) {
		return true, 0
	}

	return false, lw.untilNextToken(now)
}

// status reports the remaining whole tokens and the time until the bucket
// is full again.
func (lw *limiterWrapper) status() (int, time.Duration) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	now := timeNow()
	tokens := lw.limiter.TokensAt(now)
	burst := float64(lw.limiter.Burst())

	remaining := max(0, int(min(burst, tokens)))

	limit := float64(lw.limiter.Limit())
	if tokens >= burst || limit <= 0 {
		return remaining, 0
	}

	return remaining, time.Duration((burst - tokens) / limit * float64(time.Second))
}

// untilNextToken requires lw.mu to be held.
func (lw *limiterWrapper) untilNextToken(now time.Time) time.Duration {
	limit := float64(lw.limiter.Limit())
	if limit <= 0 {
		return 0
	}

	deficit := 1 - lw.limiter.TokensAt(now)
	if deficit <= 0 {
		return 0
	}

	return time.Duration(deficit / limit * float64(time.Second))
}

// cleanupExpiredLimiters removes limiters that haven't been accessed for the
// expiry duration.
func cleanupExpiredLimiters() int {
	now := timeNow()
	expired := 0

	limiters.Range(func(key, value any) bool {
		lw, ok := value.(*limiterWrapper)
		if !ok {
			limiters.Delete(key)

			return true
		}

		lw.mu.Lock()
		lastAccess := lw.lastAccess
		lw.mu.Unlock()

		if now.Sub(lastAccess) > LimiterExpiryDuration {
			limiters.Delete(key)

			expired++
		}

		return true
	})

	if expired > 0 {
		log.Info().Int("count", expired).
			Msg("Cleaned up expired limiters")
	}

	return expired
}
