// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/server/middleware"
	"codeberg.org/pixivfe/errorpage/server/middleware/limiter"
	"codeberg.org/pixivfe/errorpage/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain selected by config.Global.
func (router *Router) RegisterMiddleware() error {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)

	if config.Global.Response.Compression {
		compress, err := middleware.NewCompress()
		if err != nil {
			return fmt.Errorf("failed to set up compression: %w", err)
		}

		router.Use(compress)
	}

	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)
	}

	return nil
}
