// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/errorview"
)

// validation errors.
var (
	errInvalidPort        = errors.New("basic.port must be a number between 0 and 65535")
	errInvalidLogLevel    = errors.New("invalid log.logLevel value")
	errInvalidLogFormat   = errors.New("invalid log.logFormat value")
	errInvalidGuidanceURL = errors.New("errorPage.guidanceUrl must be an absolute http(s) URL")
	errInvalidLimiterRate = errors.New("limiter.rate must be greater than 0")
	errInvalidBurst       = errors.New("limiter.burst must be at least 1")
	errInvalidTimeout     = errors.New("server timeouts must not be negative")
)

const maxPort = 65535

// validateAndSet validates the server configuration and fills empty fields.
func (cfg *ServerConfig) validateAndSet() error {
	if cfg.Basic.Host == "" {
		cfg.Basic.Host = "localhost"
		log.Info().
			Str("host", cfg.Basic.Host).
			Msg("Binding to default host")
	}

	if cfg.Basic.Port == "" {
		cfg.Basic.Port = "8080"
		log.Info().
			Str("port", cfg.Basic.Port).
			Msg("Using default port")
	}

	if port, err := strconv.Atoi(cfg.Basic.Port); err != nil || port < 0 || port > maxPort {
		return fmt.Errorf("%w: %q", errInvalidPort, cfg.Basic.Port)
	}

	if cfg.Server.ReadHeaderTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownDeadline < 0 {
		return errInvalidTimeout
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.ErrorPage.GuidanceURL != "" {
		u, err := url.Parse(cfg.ErrorPage.GuidanceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidGuidanceURL, cfg.ErrorPage.GuidanceURL)
		}
	}

	// Unknown slots are ignored at render time; warn here so typos are visible.
	for slot := range cfg.ErrorPage.Styles {
		if !errorview.Slot(slot).Valid() {
			log.Warn().
				Str("slot", slot).
				Msg("errorPage.styles names an unknown slot; it will be ignored")
		}
	}

	if !cfg.Limiter.Enabled {
		return nil
	}

	if cfg.Limiter.Rate <= 0 {
		return errInvalidLimiterRate
	}

	if cfg.Limiter.Burst < 1 {
		return errInvalidBurst
	}

	return nil
}
