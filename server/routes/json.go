// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"

	"github.com/golang/gddo/httputil"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
)

// FormatHeader is set by ingress controllers to the content type the
// original client asked for.
const FormatHeader = "X-Format"

const (
	mimeHTML = "text/html"
	mimeJSON = "application/json"
)

// offers lists the error page formats; HTML is preferred on ties.
var offers = []string{mimeHTML, mimeJSON}

// errorBody is the JSON rendition of an error page.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Title      string `json:"title"`
	RequestID  string `json:"requestId,omitempty"`
}

// WantsJSON reports whether the client prefers a JSON error body.
//
// X-Format carries the original client's Accept value and wins when present;
// otherwise Accept is used. Quality values are honoured, and ties or
// wildcards resolve to HTML.
func WantsJSON(r *http.Request) bool {
	accept := r.Header
	if format := r.Header.Get(FormatHeader); format != "" {
		accept = http.Header{"Accept": {format}}
	}

	return httputil.NegotiateContentType(&http.Request{Header: accept}, offers, mimeHTML) == mimeJSON
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, props errorview.Props) int {
	title := errorview.ResolveTitle(props.StatusCode, props.Title)
	if props.StatusCode == 0 && props.Title == "" {
		title = errorview.ClientExceptionText
	}

	body, err := json.Marshal(errorBody{
		StatusCode: props.StatusCode,
		Title:      title,
		RequestID:  request_context.FromRequest(r).RequestID,
	})
	if err != nil {
		log.Err(err).Msg("Failed to encode error body")

		http.Error(w, http.StatusText(status), status)

		return 0
	}

	w.Header().Set("Content-Type", mimeJSON)
	w.WriteHeader(status)

	n, err := w.Write(body)
	if err != nil {
		log.Err(err).Msg("Failed to write error body")
	}

	return n
}
