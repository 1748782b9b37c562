// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"

	"golang.org/x/text/language"
)

// BaseLocale is the locale the msgids are written in.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// Languages returns the supported language tags, sorted by tag string.
//
// The returned slice is a copy. Before Setup it holds only the base locale.
func Languages() []language.Tag {
	mu.RLock()
	defer mu.RUnlock()

	if len(supportedTags) == 0 {
		return []language.Tag{baseTag}
	}

	out := slices.Clone(supportedTags)

	slices.SortFunc(out, func(a, b language.Tag) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})

	return out
}
