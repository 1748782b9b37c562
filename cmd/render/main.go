// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Render writes static error pages for web servers that serve error documents
from disk instead of proxying to a default backend.

	go run ./cmd/render -status 404 -lang ja -out 404.html
	go run ./cmd/render -dir public/errors

Without -config the built-in page is used; with it, the errorPage section of
the configuration file applies.
*/
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/errorpage/config"
	"codeberg.org/pixivfe/errorpage/core/audit"
	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/i18n"
)

func main() {
	status := flag.Int("status", 404, "status code to render; 0 renders the client-side exception page")
	title := flag.String("title", "", "heading text replacing the status phrase")
	lang := flag.String("lang", i18n.BaseLocale, "language tag to render in")
	out := flag.String("out", "", "output file; stdout when empty")
	dir := flag.String("dir", "", "write <status>.html for every common error status into this directory")
	flag.String("config", "./config.yaml", "Path to an errorpage configuration file in YAML format.")
	flag.Parse()

	audit.SetDefaultLogger()

	if err := i18n.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize i18n engine")
	}

	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatal().Err(err).Str("lang", *lang).Msg("Invalid language tag")
	}

	page := errorview.Page{}

	if configFlagSet() {
		if err := config.Global.LoadConfig(); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		page = config.Global.Page()
	}

	r := renderer{page: page, tag: tag}

	if *dir != "" {
		if err := r.writeDir(*dir, commonStatuses); err != nil {
			log.Fatal().Err(err).Msg("Failed to render error pages")
		}

		return
	}

	w := os.Stdout

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("Failed to create output file")
		}
		defer f.Close()

		w = f
	}

	if err := r.render(w, *status, *title); err != nil {
		log.Fatal().Err(err).Msg("Failed to render error page")
	}
}

func configFlagSet() bool {
	set := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			set = true
		}
	})

	return set
}
