// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"

	"codeberg.org/pixivfe/errorpage/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Errorpage-Version and Errorpage-Revision are added in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"no-referrer"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Permissions-Policy":      {strings.Join(defaultPermissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join(baseCSP, "; ") + ";"},
	}

	// baseCSP only allows the inline styles the error page is made of.
	baseCSP = []string{
		"default-src 'none'",
		"style-src 'unsafe-inline'",
		"img-src data:",
		"base-uri 'none'",
		"form-action 'none'",
		"frame-ancestors 'none'",
	}

	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	headers.Set("Errorpage-Version", config.BuildVersion)

	if revision := config.Global.Build.Revision(); revision != "" {
		headers.Set("Errorpage-Revision", revision)
	}

	next.ServeHTTP(w, r)
}
