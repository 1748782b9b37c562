// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"codeberg.org/pixivfe/errorpage/core/idgen"
	"codeberg.org/pixivfe/errorpage/i18n"
)

// RequestContext carries request-scoped data through the middleware chain.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds the error that interrupted request processing, if any.
	//
	// Populated by middleware.CatchError when handlers return errors.
	RequestError error

	// HTTP status code sent in the response. Defaults to 200 OK.
	StatusCode int

	// T is the language the response is rendered in.
	T language.Tag
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context, along with the request's language.
func WithRequestContext(ctx context.Context, r *http.Request) context.Context {
	ctx = i18n.WithRequest(ctx, r)

	rc := RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		T:          i18n.TagFrom(ctx),
	}

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a fresh zero-value instance.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{}
}

// FromRequest is shorthand for FromContext(r.Context()).
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
