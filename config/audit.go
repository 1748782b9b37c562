// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// logLevels maps log.logLevel values to zerolog levels.
var logLevels = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// setupAudit points the global logger at the configured outputs.
//
// Development mode always logs at debug level.
func (cfg *ServerConfig) setupAudit() {
	level, ok := logLevels[cfg.Log.Level]
	if !ok {
		level = zerolog.InfoLevel
	}

	if cfg.Development.InDevelopment {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{}

	for _, output := range cfg.Log.Outputs {
		switch output {
		case "/dev/stdout":
			writers = append(writers, cfg.streamWriter(os.Stdout))
		case "/dev/stderr":
			writers = append(writers, cfg.streamWriter(os.Stderr))
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				// The logger is being replaced, so report on stderr directly.
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			writers = append(writers, cfg.streamWriter(file))
		}
	}

	if len(writers) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

// streamWriter returns f as-is for JSON logging, or wrapped in a console writer.
func (cfg *ServerConfig) streamWriter(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// ConsoleWriter returns a human-readable zerolog writer for f, coloured only
// when f is a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// request logs read as "[404] GET /missing"
			if sys, ok := m["sys"]; ok && sys == "http" {
				m["message"] = fmt.Sprintf("[%v] %-5s %s", m["status_code"], m["method"], m["url"])
				delete(m, "sys")
				delete(m, "method")
				delete(m, "status_code")
				delete(m, "url")
			}

			return nil
		}
	}

	return w
}
