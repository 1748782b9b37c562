// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"context"
	"net/http"
)

// Context describes the failure an error page is rendered for.
//
// Response is set when a server response exists; Err is set when an
// exception occurred. Both may be nil.
type Context struct {
	Response *Response
	Err      error
}

// Response is the part of a server response the error page looks at.
type Response struct {
	StatusCode int
}

// Props is the resolved input to [View].
type Props struct {
	// StatusCode is the HTTP status. Zero means no status is known, which is
	// the case for a client-side exception.
	StatusCode int

	// Title replaces the phrase from the status table when non-empty.
	Title string

	StyleOverrides StyleOverrides

	// GuidanceURL is linked from the client-side exception message.
	// Empty means [DefaultGuidanceURL].
	GuidanceURL string
}

// InitialPropsFunc derives Props for a failed request.
type InitialPropsFunc func(ctx context.Context, ec Context) (Props, error)

// GetInitialProps is the default initial-props hook.
//
// The status code is taken, in order, from a non-zero response status, from
// the error (0 when the error carries no status, see [StatusCoder]), and
// finally defaults to 404. It never returns an error.
func GetInitialProps(_ context.Context, ec Context) (Props, error) {
	var statusCode int

	switch {
	case ec.Response != nil && ec.Response.StatusCode != 0:
		statusCode = ec.Response.StatusCode
	case ec.Err != nil:
		statusCode = StatusFromError(ec.Err)
	default:
		statusCode = http.StatusNotFound
	}

	return Props{StatusCode: statusCode}, nil
}

// OrigGetInitialProps is kept for hosts that look up the hook by its legacy
// name. It is the same function as [GetInitialProps].
var OrigGetInitialProps InitialPropsFunc = GetInitialProps

// StaticProps returns a hook that ignores the failure and yields props as
// given. Previews and pre-rendered pages use it to pin the exact status.
func StaticProps(props Props) InitialPropsFunc {
	return func(context.Context, Context) (Props, error) {
		return props, nil
	}
}
