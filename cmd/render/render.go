// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/head"
	"codeberg.org/pixivfe/errorpage/i18n"
)

// commonStatuses are the pages written by -dir.
var commonStatuses = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusMethodNotAllowed,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type renderer struct {
	page errorview.Page
	tag  language.Tag
}

// render writes the full document for status and title to w.
func (r renderer) render(w io.Writer, status int, title string) error {
	ctx := i18n.WithTag(context.Background(), r.tag)

	page := r.page
	page.InitialProps = errorview.StaticProps(errorview.Props{StatusCode: status, Title: title})

	props, err := page.Resolve(ctx, errorview.Context{})
	if err != nil {
		return err
	}

	if err := head.Document(i18n.BaseString(r.tag), page.Component(props)).Render(ctx, w); err != nil {
		return fmt.Errorf("render %d: %w", status, err)
	}

	return nil
}

// writeDir writes <status>.html for each status into dir, creating it if needed.
func (r renderer) writeDir(dir string, statuses []int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, status := range statuses {
		path := filepath.Join(dir, strconv.Itoa(status)+".html")

		if err := r.writeFile(path, status); err != nil {
			return err
		}

		log.Info().Str("path", path).Int("status", status).Msg("Rendered error page")
	}

	return nil
}

func (r renderer) writeFile(path string, status int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := r.render(f, status, ""); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
