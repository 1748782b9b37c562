// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// NewCompress returns a middleware that gzips responses for clients that
// accept it. Small bodies are sent as-is.
//
// The gzip configuration and writer pools are built here once and shared by
// every request.
func NewCompress() (Middleware, error) {
	wrap, err := gzhttp.NewWrapper()
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		wrap(next).ServeHTTP(w, r)
	}, nil
}
