// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import "net/http"

// Middleware runs around next and decides whether and how to call it.
type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Wrap adapts m and next into a single handler.
func Wrap(m Middleware, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m(w, r, next)
	}
}
