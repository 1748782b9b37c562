// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/head"
	"codeberg.org/pixivfe/errorpage/i18n"
	"codeberg.org/pixivfe/errorpage/server/request_context"
)

// FallibleHandler is a handler whose failures are turned into error pages by
// middleware.CatchError.
type FallibleHandler func(w http.ResponseWriter, r *http.Request) error

// Page is the error page rendered for failed requests.
//
// router.DefineRoutes sets it from the configuration; the zero value is the
// built-in fallback page.
var Page errorview.Page

// ErrorPage renders Page for the failure recorded in the request context and
// returns the number of body bytes written.
func ErrorPage(w http.ResponseWriter, r *http.Request) int {
	ctx := request_context.FromRequest(r)

	return RenderError(w, r, ctx.StatusCode, errorview.Context{
		Response: &errorview.Response{StatusCode: ctx.StatusCode},
		Err:      ctx.RequestError,
	})
}

// RenderError resolves Page for ec and writes it with the given HTTP status.
//
// If the page's initial-props hook fails, the built-in fallback page is
// rendered instead, so a broken customisation never hides the original error.
func RenderError(w http.ResponseWriter, r *http.Request, status int, ec errorview.Context) int {
	page := Page

	props, err := page.Resolve(r.Context(), ec)
	if err != nil {
		log.Err(err).
			Str("page", page.DisplayName()).
			Msg("Error page hook failed, rendering the fallback page")

		page = errorview.Page{}
		props, _ = page.Resolve(r.Context(), ec)
	}

	return RenderProps(w, r, status, page, props)
}

// RenderProps writes page for props as an HTML document, or as JSON when the
// client asks for it. Error pages are never cached.
func RenderProps(w http.ResponseWriter, r *http.Request, status int, page errorview.Page, props errorview.Props) int {
	status = writableStatus(status)

	w.Header().Set("Cache-Control", "no-store")

	if WantsJSON(r) {
		return writeJSON(w, r, status, props)
	}

	var buf bytes.Buffer

	lang := i18n.BaseString(i18n.TagFrom(r.Context()))
	if err := head.Document(lang, page.Component(props)).Render(r.Context(), &buf); err != nil {
		log.Err(err).
			Str("page", page.DisplayName()).
			Msg("Failed to render error page")

		http.Error(w, http.StatusText(status), status)

		return 0
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	n, err := buf.WriteTo(w)
	if err != nil {
		log.Err(err).Msg("Failed to write error page")
	}

	return int(n)
}

// writableStatus maps codes net/http refuses to send onto 500.
func writableStatus(status int) int {
	if status < 100 || status > 999 {
		return http.StatusInternalServerError
	}

	return status
}
