// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "config" flag.
func parseCommandLineArgs() string {
	if flag.Lookup("config") == nil {
		flag.String("config", "./config.yaml", "Path to an errorpage configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return flag.Lookup("config").Value.String()
}
