// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/pixivfe/errorpage/head"
	"codeberg.org/pixivfe/errorpage/i18n"
)

const (
	// ClientExceptionText is shown when no status code is known.
	ClientExceptionText = "Application error: a client-side exception has occurred"

	// DefaultGuidanceURL explains client-side exceptions to developers.
	DefaultGuidanceURL = "https://nextjs.org/docs/messages/client-side-exception-occurred"

	guidanceLinkText = "developer guidance"

	// globalStyleReset is injected into the body; repeating it is harmless.
	globalStyleReset = "body { margin: 0 }"
)

// DocumentTitle returns the text of the document's <title> element.
func DocumentTitle(statusCode int, title string) string {
	if statusCode != 0 {
		return strconv.Itoa(statusCode) + ": " + title
	}

	return ClientExceptionText
}

// View renders the fallback error page body for props.
//
// The document title is registered with the head collector in ctx (see
// [head.Document]); without a collector it is dropped.
func View(props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		styles := MergeStyles(DefaultStyles(), props.StyleOverrides)
		title := localizedTitle(ctx, props)

		documentTitle := i18n.Tr(ctx, ClientExceptionText)
		if props.StatusCode != 0 {
			documentTitle = DocumentTitle(props.StatusCode, title)
		}

		if err := head.Title(documentTitle).Render(ctx, w); err != nil {
			return err
		}

		var sb strings.Builder

		sb.WriteString(`<div style="` + templ.EscapeString(styles.Error.String()) + `">`)
		sb.WriteString(`<div><style>` + globalStyleReset + `</style>`)

		if props.StatusCode != 0 {
			sb.WriteString(`<h1 style="` + templ.EscapeString(styles.H1.String()) + `">`)
			sb.WriteString(strconv.Itoa(props.StatusCode))
			sb.WriteString(`</h1>`)
		}

		sb.WriteString(`<div style="` + templ.EscapeString(styles.Desc.String()) + `">`)
		sb.WriteString(`<h2 style="` + templ.EscapeString(styles.H2.String()) + `">`)

		if props.Title != "" || props.StatusCode != 0 {
			sb.WriteString(templ.EscapeString(title))
		} else {
			guidanceURL := props.GuidanceURL
			if guidanceURL == "" {
				guidanceURL = DefaultGuidanceURL
			}

			sb.WriteString(templ.EscapeString(i18n.Tr(ctx, ClientExceptionText)))
			sb.WriteString(` (<a href="` + templ.EscapeString(string(templ.URL(guidanceURL))) + `">`)
			sb.WriteString(templ.EscapeString(i18n.Tr(ctx, guidanceLinkText)))
			sb.WriteString(`</a>)`)
		}

		sb.WriteString(`.</h2></div></div></div>`)

		_, err := io.WriteString(w, sb.String())

		return err
	})
}

// localizedTitle resolves the heading text, translating phrases from the
// status table. An explicit title is used as given.
func localizedTitle(ctx context.Context, props Props) string {
	if props.Title != "" {
		return props.Title
	}

	if text, ok := StatusText(props.StatusCode); ok {
		return i18n.Tr(ctx, text)
	}

	return i18n.Tr(ctx, FallbackStatusText)
}
