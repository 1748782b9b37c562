// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/errorpage/core/audit"
	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
	"codeberg.org/pixivfe/errorpage/server/routes"
)

// CatchError wraps handlers that return an error, providing centralized error
// handling, response buffering, and request logging.
//
// The handler's output is buffered in an httptest.ResponseRecorder and any
// error it returns is stored in the request context. Then:
//   - If the handler returned an error without writing an error status, the
//     buffer is discarded and the error page is rendered with the status the
//     error carries (see errorview.StatusCoder), or 500 if it carries none.
//   - If the handler wrote 404, or any error status with an empty body, the
//     buffer is discarded and the error page is rendered with that status.
//   - Otherwise the buffered response is written to the client.
//
// Finally, the request is logged via the audit package.
func CatchError(handler routes.FallibleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			RequestID: ctx.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))
		defer span.End()

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)

		ctx.RequestError = err

		span.End()

		switch {
		case err != nil && recorder.Code < http.StatusBadRequest:
			ctx.StatusCode = errorStatus(err)
			span.Page = routes.Page.DisplayName()
			span.Size = routes.ErrorPage(w, r)

		case recorder.Code == http.StatusNotFound ||
			(recorder.Code >= http.StatusBadRequest && recorder.Body.Len() == 0):
			ctx.StatusCode = recorder.Code
			span.Page = routes.Page.DisplayName()
			span.Size = routes.ErrorPage(w, r)

		default:
			ctx.StatusCode = recorder.Code

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			n, err := recorder.Body.WriteTo(w)
			if err != nil {
				log.Err(err).Msg("Failed to write response body")
			}

			span.Size = int(n)
		}

		span.RequestID = ctx.RequestID
		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		span.Log()
	}
}

// errorStatus picks the response status for a handler error.
func errorStatus(err error) int {
	code := errorview.StatusFromError(err)
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusInternalServerError
	}

	return code
}
