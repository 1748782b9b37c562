// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// LangParam is the URL query parameter holding a preferred UI language as a
// BCP 47 tag.
const LangParam = "lang"

// WithTag stores t in ctx and returns a derived context that carries it.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag].
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromRequest returns the best supported language for r, looking at the
// [LangParam] query parameter first and the Accept-Language header second.
//
// A [LangParam] of "auto" is ignored. If r is nil, or Setup has not run,
// the tag for [BaseLocale] is returned.
func FromRequest(r *http.Request) language.Tag {
	mu.RLock()
	m := matcher
	mu.RUnlock()

	if r == nil || m == nil {
		return baseTag
	}

	preferred := make([]string, 0, 2)

	if q := r.URL.Query().Get(LangParam); q != "" && !strings.EqualFold(q, "auto") {
		preferred = append(preferred, q)
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	tag, _ := language.MatchStrings(m, preferred...)

	return tag
}

// WithRequest is shorthand for WithTag(ctx, FromRequest(r)).
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}

// BaseString returns the tag without matcher extensions, suitable for an
// html lang attribute.
func BaseString(t language.Tag) string {
	return strippedTagString(t)
}
