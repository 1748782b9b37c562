// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting errorpage")

	configYAML, err := cfg.MarshalYAMLIndented()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().
		Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// MarshalYAMLIndented renders cfg as YAML with human-readable durations.
func (cfg *ServerConfig) MarshalYAMLIndented() ([]byte, error) {
	out, err := yaml.MarshalWithOptions(
		cfg,
		GetDurationEncoderOption(),
		yaml.Indent(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return out, nil
}
