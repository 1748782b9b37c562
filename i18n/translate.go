// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Tr returns the translation of msgid for the locale in ctx.
//
// If no translation exists, or Setup has not run, msgid is returned unchanged.
func Tr(ctx context.Context, msgid string) string {
	loc, matched, logger := resolveLocale(TagFrom(ctx))
	if loc == nil || !loc.IsTranslatedD(poDomain, msgid) {
		if matched != baseTag {
			logger.Debug().
				Str("locale", matched.String()).
				Str("key", msgid).
				Msg("Missing i18n translation")
		}

		return msgid
	}

	return loc.GetD(poDomain, msgid)
}

// resolveLocale matches t to one of the loaded locales and returns the
// corresponding gotext.Locale, the matched tag and the package logger, all
// read under mu.
// If no matcher or no locale is found, it returns nil and baseTag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag, zerolog.Logger) {
	mu.RLock()
	defer mu.RUnlock()

	if matcher == nil {
		return nil, baseTag, Logger
	}

	matched, _ := language.MatchStrings(matcher, t.String())

	return localesByTag[strippedTagString(matched)], matched, Logger
}

// strippedTagString removes variants and the -u- extension the matcher adds,
// leaving base, script and region.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}
