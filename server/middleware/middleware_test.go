// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/errorpage/config"
)

func TestCompress(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("fallback error page ", 512)

	compress, err := NewCompress()
	require.NoError(t, err)

	handler := Wrap(compress, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	assert.Equal(t, body, gunzip(t, rr.Body))
}

func TestCompress_ReusedAcrossRequests(t *testing.T) {
	t.Parallel()

	compress, err := NewCompress()
	require.NoError(t, err)

	for _, body := range []string{strings.Repeat("a", 2048), strings.Repeat("b", 4096)} {
		handler := Wrap(compress, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, body)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		assert.Equal(t, body, gunzip(t, rr.Body))
	}
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()

	zr, err := gzip.NewReader(r)
	require.NoError(t, err)

	decoded, err := io.ReadAll(zr)
	require.NoError(t, err)

	return string(decoded)
}

func TestCompress_PlainWithoutAcceptEncoding(t *testing.T) {
	t.Parallel()

	compress, err := NewCompress()
	require.NoError(t, err)

	handler := Wrap(compress, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 4096))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, 4096, rr.Body.Len())
}

func TestSetResponseHeaders(t *testing.T) {
	t.Parallel()

	nextCalled := false
	handler := Wrap(SetResponseHeaders, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, nextCalled)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rr.Header().Get("Referrer-Policy"))
	assert.Equal(t, config.BuildVersion, rr.Header().Get("Errorpage-Version"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestWithServerTiming(t *testing.T) {
	t.Parallel()

	handler := Wrap(WithServerTiming, CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)

		return nil
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Server-Timing"), "render")
}
