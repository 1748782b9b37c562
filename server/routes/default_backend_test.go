// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
)

func TestDefaultBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		wantCode int
		wantErr  error
	}{
		{"no header", "", http.StatusNotFound, ErrNoRoute},
		{"forwarded 503", "503", http.StatusServiceUnavailable, ErrUpstream},
		{"forwarded 404", " 404 ", http.StatusNotFound, ErrUpstream},
		{"not a number", "oops", http.StatusNotFound, ErrNoRoute},
		{"success code", "200", http.StatusNotFound, ErrNoRoute},
		{"out of range", "600", http.StatusNotFound, ErrNoRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/missing?x=1", nil)
			if tt.code != "" {
				req.Header.Set(CodeHeader, tt.code)
			}

			err := DefaultBackend(httptest.NewRecorder(), req)
			require.Error(t, err)

			assert.Equal(t, tt.wantCode, errorview.StatusFromError(err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "/missing?x=1")
		})
	}
}

func TestDefaultBackend_ForwardedRequestData(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(request_context.WithRequestContext(req.Context(), req))
	req.Header.Set(CodeHeader, "502")
	req.Header.Set(OriginalURIHeader, "/api/orders")
	req.Header.Set(RequestIDHeader, "abc123")

	err := DefaultBackend(httptest.NewRecorder(), req)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "/api/orders")
	assert.Equal(t, "abc123", request_context.FromRequest(req).RequestID)
}
