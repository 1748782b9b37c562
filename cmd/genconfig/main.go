// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Genconfig writes the example configuration files under deploy/ from the
built-in defaults.

	go run ./cmd/genconfig
*/
package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/config.yaml.example"
	filePerm       = 0o644

	envFileHeader = `# errorpage configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
# Error page styles can only be set in the YAML configuration file.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# errorpage configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	stylesYAMLComment = `  # -- Per-slot CSS overrides. Slots: error, desc, h1, h2.
  # styles:
  #   h1:
  #     font-size: 32px
  #   desc:
  #     line-height: 64px`
)

func main() {
	audit.SetDefaultLogger()

	writeFile(envOutputFile, envFile())
	writeFile(yamlOutputFile, yamlFile())
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write example file")
	}

	log.Info().Str("path", path).Msg("Successfully generated example file")
}

// envFile renders the .env example, one commented line per env-tagged field.
func envFile() string {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case envVarName == "ERRORPAGE_PORT" || envVarName == "ERRORPAGE_HOST":
				// Uncomment essential fields.
				fmt.Fprintf(&sb, "%s=\"%v\"\n", envVarName, value.Interface())
			case value.Kind() == reflect.Slice:
				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, joinSlice(value))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Configuration file\n# ERRORPAGE_CONFIGFILE=./config.yaml\n")

	return sb.String()
}

// joinSlice renders a slice the way the env reader splits it.
func joinSlice(value reflect.Value) string {
	parts := make([]string, value.Len())
	for i := range value.Len() {
		parts[i] = fmt.Sprint(value.Index(i).Interface())
	}

	return strings.Join(parts, ",")
}

// yamlFile renders the YAML example with every value commented out.
func yamlFile() string {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	out, err := yaml.MarshalWithOptions(cfg, config.GetDurationEncoderOption(), yaml.Indent(2))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(string(out), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "basic:") become commented section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n# %s\n", line)

			continue
		}

		// The styles map is empty by default; show an example instead.
		if strings.HasPrefix(trimmed, "styles:") {
			sb.WriteString(stylesYAMLComment + "\n")

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String()
}
