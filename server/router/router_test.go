// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/server/routes"
)

// newTestRouter builds a fully wired router after cfg adjusts the defaults.
func newTestRouter(t *testing.T, cfg func(*config.ServerConfig)) *Router {
	t.Helper()

	orig := config.Global
	origPage := routes.Page

	t.Cleanup(func() {
		config.Global = orig
		routes.Page = origPage
	})

	config.Global.SetDefaults()
	config.Global.Response.Compression = false

	if cfg != nil {
		cfg(&config.Global)
	}

	router := NewRouter()
	router.DefineRoutes()
	require.NoError(t, router.RegisterMiddleware())

	return router
}

func serve(router *Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, config.BuildVersion, rr.Header().Get("Errorpage-Version"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "style-src 'unsafe-inline'")
	assert.Contains(t, rr.Header().Get("Server-Timing"), "render")
}

func TestRouter_DefaultBackend(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "This page could not be found.")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(routes.CodeHeader, "503")

	rr = serve(router, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestRouter_ConfiguredTitle(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.ServerConfig) {
		cfg.ErrorPage.Title = "We will be right back"
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(routes.CodeHeader, "502")

	rr := serve(router, req)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "We will be right back.")
}

func TestRouter_PreviewRoutesOnlyInDevelopment(t *testing.T) {
	prod := newTestRouter(t, nil)

	rr := serve(prod, httptest.NewRequest(http.MethodGet, "/_error/500", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	dev := newTestRouter(t, func(cfg *config.ServerConfig) {
		cfg.Development.InDevelopment = true
	})

	rr = serve(dev, httptest.NewRequest(http.MethodGet, "/_error/500", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal Server Error.")
}

func TestRouter_Limiter(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.ServerConfig) {
		cfg.Limiter.Enabled = true
		cfg.Limiter.Rate = 0.001
		cfg.Limiter.Burst = 1
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "198.51.100.20:5555"

		return serve(router, req)
	}

	assert.Equal(t, http.StatusOK, send().Code)

	rr := send()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}
