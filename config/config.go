// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"codeberg.org/pixivfe/errorpage/errorview"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host string `env:"ERRORPAGE_HOST,overwrite" yaml:"host"`
		Port string `env:"ERRORPAGE_PORT,overwrite" yaml:"port"`
	} `yaml:"basic"`

	Server struct {
		ReadHeaderTimeout time.Duration `env:"ERRORPAGE_READ_HEADER_TIMEOUT,overwrite" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `env:"ERRORPAGE_WRITE_TIMEOUT,overwrite" yaml:"writeTimeout"`
		ShutdownDeadline  time.Duration `env:"ERRORPAGE_SHUTDOWN_DEADLINE,overwrite" yaml:"shutdownDeadline"`
	} `yaml:"server"`

	Response struct {
		Compression bool `env:"ERRORPAGE_COMPRESSION,overwrite" yaml:"compression"`
	} `yaml:"response"`

	ErrorPage struct {
		// Title replaces the status phrase on every rendered page.
		Title       string `env:"ERRORPAGE_TITLE,overwrite" yaml:"title"`
		GuidanceURL string `env:"ERRORPAGE_GUIDANCE_URL,overwrite" yaml:"guidanceUrl"`

		// Styles maps slot name (error, desc, h1, h2) to CSS property overrides.
		Styles map[string]map[string]string `yaml:"styles"`
	} `yaml:"errorPage"`

	Development struct {
		InDevelopment bool `env:"ERRORPAGE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"ERRORPAGE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"ERRORPAGE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"ERRORPAGE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled bool    `env:"ERRORPAGE_LIMITER,overwrite" yaml:"enabled"`
		Rate    float64 `env:"ERRORPAGE_LIMITER_RATE,overwrite" yaml:"rate"`
		Burst   int     `env:"ERRORPAGE_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`
}

// LoadConfig loads the configuration from various sources.
//
// Later sources win: defaults, the YAML file, a .env file, then the
// environment itself.
func (cfg *ServerConfig) LoadConfig() error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath()); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// configFilePath picks the YAML file to read:
//  1. the -config flag, if set explicitly
//  2. ERRORPAGE_CONFIGFILE
//  3. ./config.yaml, or ./config.yml when only that exists
func configFilePath() string {
	parsed := parseCommandLineArgs()

	userSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			userSet = true
		}
	})

	if userSet {
		return parsed
	}

	if envVar := os.Getenv("ERRORPAGE_CONFIGFILE"); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(parsed); os.IsNotExist(err) {
		if _, statErr := os.Stat("./config.yml"); statErr == nil {
			return "./config.yml"
		}
	}

	return parsed
}

// Page returns the error page configured by the ErrorPage section.
func (cfg *ServerConfig) Page() errorview.Page {
	return errorview.Page{
		Title:          cfg.ErrorPage.Title,
		GuidanceURL:    cfg.ErrorPage.GuidanceURL,
		StyleOverrides: errorview.OverridesFromMap(cfg.ErrorPage.Styles),
	}
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
