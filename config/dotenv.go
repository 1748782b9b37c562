// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// useDotEnv loads a .env file from the working directory, or failing that,
// from the directory of the running binary.
//
// Variables already present in the environment are kept. A missing .env file
// is not an error.
func useDotEnv() error {
	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, ".env"))
	} else {
		log.Warn().Err(err).Msg("Could not get current working directory")
	}

	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}

	for _, envPath := range candidates {
		err := godotenv.Load(envPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to load %s: %w", envPath, err)
		}

		log.Info().
			Str("path", envPath).
			Msg("Loaded configuration from .env file")

		return nil
	}

	log.Debug().Msg("No .env file found, skipping")

	return nil
}
