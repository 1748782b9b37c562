// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"codeberg.org/pixivfe/errorpage/errorview"
)

// ErrInvalidStatus is returned for a preview of a status outside 100 to 999.
var ErrInvalidStatus = errors.New("invalid status code")

// PreviewError renders the error page for the {status} path value with a 200
// response, for checking styles and translations during development.
//
// Without a {status} the client-side exception variant is shown. The title
// query parameter overrides the derived title.
func PreviewError(w http.ResponseWriter, r *http.Request) error {
	code := 0

	if raw := r.PathValue("status"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 100 || parsed > 999 {
			return errorview.NewStatusError(http.StatusBadRequest, fmt.Errorf("%w: %q", ErrInvalidStatus, raw))
		}

		code = parsed
	}

	// Replace the hook so the exact preview props survive, while page
	// defaults still apply.
	page := Page
	page.InitialProps = errorview.StaticProps(errorview.Props{
		StatusCode: code,
		Title:      r.URL.Query().Get("title"),
	})

	props, err := page.Resolve(r.Context(), errorview.Context{})
	if err != nil {
		return err
	}

	RenderProps(w, r, http.StatusOK, page, props)

	return nil
}
