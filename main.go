// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Errorpage is a default backend that answers failed requests with a minimal
fallback error page.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/core/audit"
	"codeberg.org/pixivfe/errorpage/i18n"
	"codeberg.org/pixivfe/errorpage/server/middleware/limiter"
	"codeberg.org/pixivfe/errorpage/server/router"
)

const (
	// Values for http.Server timeouts not covered by the configuration.
	// ref: gosec: G112
	readTimeout time.Duration = 15 * time.Second
	idleTimeout time.Duration = 30 * time.Second
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run starts the server and blocks until ctx is cancelled or the server
// fails, then shuts it down gracefully.
func run(ctx context.Context) error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	logLanguages()

	router := router.NewRouter()
	router.DefineRoutes()

	if err := router.RegisterMiddleware(); err != nil {
		return fmt.Errorf("failed to register middleware: %w", err)
	}

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: config.Global.Server.ReadHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      config.Global.Server.WriteTimeout,
		IdleTimeout:       idleTimeout,
	}

	listener, err := chooseListener(ctx)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		log.Info().Msg("Shutting down server...")

		// groupCtx is already done; the deadline needs a fresh context.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.Global.Server.ShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	if config.Global.Limiter.Enabled {
		limiter.Fini()
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

func chooseListener(ctx context.Context) (net.Listener, error) {
	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://localhost:%v/", port)).
		Msg("Listening on address")

	return tcpListener, nil
}

func logLanguages() {
	log.Info().
		Strs("languages", languageNames()).
		Msg("Languages available")
}

func languageNames() []string {
	tags := i18n.Languages()
	names := make([]string, 0, len(tags))

	for _, t := range tags {
		names = append(names, t.String())
	}

	return names
}
