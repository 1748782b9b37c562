// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	defaultReadHeaderTimeout = 15 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultShutdownDeadline  = 5 * time.Second

	// Per-client request budget: 5 per second, bursting to 50.
	defaultLimiterRate  = 5.0
	defaultLimiterBurst = 50
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8080"

	cfg.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	cfg.Server.WriteTimeout = defaultWriteTimeout
	cfg.Server.ShutdownDeadline = defaultShutdownDeadline

	cfg.Response.Compression = true

	cfg.ErrorPage.Title = ""
	cfg.ErrorPage.GuidanceURL = ""
	cfg.ErrorPage.Styles = nil

	cfg.Development.InDevelopment = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
}
