// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"errors"
	"net/http"

	"codeberg.org/pixivfe/errorpage/i18n"
)

// FallbackStatusText is shown for status codes missing from the status table.
const FallbackStatusText = "An unexpected error has occurred"

// statusTexts maps the status codes the page knows how to describe.
var statusTexts = map[int]i18n.MsgKey{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "This page could not be found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusInternalServerError: "Internal Server Error",
}

// StatusText returns the phrase for code, and whether the table has one.
func StatusText(code int) (string, bool) {
	text, ok := statusTexts[code]

	return string(text), ok
}

// ResolveTitle returns the text shown as the page heading.
//
// An explicit title wins; otherwise the status table is consulted, falling
// back to [FallbackStatusText].
func ResolveTitle(statusCode int, title string) string {
	if title != "" {
		return title
	}

	if text, ok := statusTexts[statusCode]; ok {
		return string(text)
	}

	return FallbackStatusText
}

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// StatusError attaches an HTTP status code to an error.
type StatusError struct {
	Code int
	Err  error
}

// NewStatusError returns an error carrying code.
//
// err may be nil, in which case the status text is used as the message.
func NewStatusError(code int, err error) *StatusError {
	return &StatusError{Code: code, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	if text := http.StatusText(e.Code); text != "" {
		return text
	}

	return FallbackStatusText
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode implements [StatusCoder].
func (e *StatusError) StatusCode() int {
	return e.Code
}

// StatusFromError returns the status code carried anywhere in err's chain,
// or 0 if there is none.
func StatusFromError(err error) int {
	var coder StatusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}

	return 0
}
