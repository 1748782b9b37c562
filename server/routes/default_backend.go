// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
)

// Headers a reverse proxy sets when it forwards a failed request here.
const (
	CodeHeader        = "X-Code"
	OriginalURIHeader = "X-Original-URI"
	RequestIDHeader   = "X-Request-ID"
)

var (
	ErrNoRoute  = errors.New("no route")
	ErrUpstream = errors.New("upstream failed")
)

// DefaultBackend fails every request it receives.
//
// The status comes from the X-Code header when it names a 4xx or 5xx code,
// and is 404 otherwise, so the server also works as a plain catch-all.
func DefaultBackend(_ http.ResponseWriter, r *http.Request) error {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		request_context.FromRequest(r).RequestID = id
	}

	uri := r.Header.Get(OriginalURIHeader)
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	code, ok := forwardedStatus(r.Header.Get(CodeHeader))
	if !ok {
		return errorview.NewStatusError(http.StatusNotFound, fmt.Errorf("%w: %s", ErrNoRoute, uri))
	}

	return errorview.NewStatusError(code, fmt.Errorf("%w: %s", ErrUpstream, uri))
}

// forwardedStatus parses an X-Code value. Only client and server error codes
// are accepted.
func forwardedStatus(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	code, err := strconv.Atoi(raw)
	if err != nil || code < http.StatusBadRequest || code > 599 {
		log.Debug().
			Str("header", CodeHeader).
			Str("value", raw).
			Msg("Ignoring invalid forwarded status")

		return 0, false
	}

	return code, true
}
