// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http/pprof"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/server/routes"
)

// DefineRoutes sets up all the routes and points routes.Page at the
// configured error page.
func (router *Router) DefineRoutes() {
	routes.Page = config.Global.Page()

	router.HandleFallible("GET /healthz", routes.Healthz)

	if config.Global.Development.InDevelopment {
		router.HandleFallible("GET /_error", routes.PreviewError)
		router.HandleFallible("GET /_error/{status}", routes.PreviewError)

		registerDebugRoutes(router)
	}

	// Everything else is a failed request forwarded by the proxy.
	router.HandleFallible("/", routes.DefaultBackend)
}

func registerDebugRoutes(router *Router) {
	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}
