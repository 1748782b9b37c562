// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
	"codeberg.org/pixivfe/errorpage/server/routes"
)

// Evaluate is the limiter middleware. Requests over the limit are answered
// with a 429 error page and a Retry-After header; the rest get RateLimit
// headers and pass through.
//
// Requests whose client address cannot be determined are not limited.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	DoCleanup()

	network := networkKey(getClientIP(r))
	if network == "" {
		log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Could not determine client network")
		next.ServeHTTP(w, r)

		return
	}

	lw := getOrCreateLimiter(network)

	allowed, retryAfter := lw.allow()
	if !allowed {
		log.Warn().
			Str("network", network).
			Msg("Rate limit exceeded")

		ctx := request_context.FromRequest(r)
		ctx.StatusCode = http.StatusTooManyRequests

		w.Header().Set("Retry-After", strconv.FormatInt(ceilSeconds(retryAfter), 10))
		routes.RenderError(w, r, http.StatusTooManyRequests, errorview.Context{
			Response: &errorview.Response{StatusCode: http.StatusTooManyRequests},
		})

		return
	}

	addRateLimitHeaders(w, lw)
	next.ServeHTTP(w, r)
}

// addRateLimitHeaders adds rate limiting information to the response headers.
func addRateLimitHeaders(w http.ResponseWriter, lw *limiterWrapper) {
	remaining, reset := lw.status()

	headers := w.Header()
	headers.Set("RateLimit-Limit", strconv.Itoa(lw.limiter.Burst()))
	headers.Set("RateLimit-Remaining", strconv.Itoa(remaining))
	headers.Set("RateLimit-Reset", strconv.FormatInt(ceilSeconds(reset), 10))
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int64 {
	return int64(math.Ceil(d.Seconds()))
}
