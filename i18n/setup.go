// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed po/*.po
var catalogues embed.FS

// poDomain is the gettext domain to load under each locale.
const poDomain = "errorpage"

var (
	// Logger is the logger used by package i18n.
	Logger = log.Logger

	mu sync.RWMutex

	// localesByTag maps canonical BCP 47 tags to their loaded gotext.Locale.
	localesByTag map[string]*gotext.Locale

	// supportedTags holds the base tag followed by every loaded locale.
	supportedTags []language.Tag

	// matcher is derived from supportedTags; nil until Setup succeeds.
	matcher language.Matcher
)

// Setup loads the embedded catalogues and builds the language matcher.
//
// Catalogues live at po/<locale>.po; the locale part may use hyphens or
// underscores ("pt-BR.po", "pt_BR.po"). Calling Setup again replaces the
// previously loaded locales.
func Setup() error {
	return setupFS(catalogues, "po")
}

func setupFS(fsys fs.FS, dir string) error {
	logger := log.With().Str("sys", "i18n").Logger()

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	loaded := make(map[string]*gotext.Locale)

	var tags []language.Tag

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			continue
		}

		fileName := entry.Name()
		localeName := strings.TrimSuffix(fileName, ".po")

		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join(dir, fileName))

		loc := gotext.NewLocale("", canonical) // Base path is unused when manually adding translators.
		loc.AddTranslator(poDomain, po)

		loaded[canonical] = loc

		tags = append(tags, t)

		logger.Debug().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	// baseTag goes first so it is the matcher's fallback.
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	all := make([]language.Tag, 0, len(tags)+1)
	all = append(all, baseTag)

	for _, t := range tags {
		if t != baseTag {
			all = append(all, t)
		}
	}

	mu.Lock()
	Logger = logger
	localesByTag = loaded
	supportedTags = all
	matcher = language.NewMatcher(all)
	mu.Unlock()

	logger.Info().Int("locales", len(loaded)).Msg("Initialized i18n engine")

	return nil
}

