// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/errorpage/head"
)

// renderDocument renders props as a full document and parses the result.
func renderDocument(t *testing.T, props Props) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, head.Document("en", View(props)).Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	return doc
}

func TestViewNotFound(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{StatusCode: http.StatusNotFound})

	assert.Equal(t, "404: This page could not be found", doc.Find("head > title").Text())

	h1 := doc.Find("h1")
	require.Equal(t, 1, h1.Length())
	assert.Equal(t, "404", h1.Text())

	style, _ := h1.Attr("style")
	assert.Equal(t, DefaultStyles().H1.String(), style)

	assert.Equal(t, "This page could not be found.", doc.Find("h2").Text())
	assert.Equal(t, 0, doc.Find("h2 a").Length())
	assert.Equal(t, "body { margin: 0 }", doc.Find("body style").Text())
}

func TestViewClientSideException(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{})

	assert.Equal(t, ClientExceptionText, doc.Find("head > title").Text())
	assert.Equal(t, 0, doc.Find("h1").Length())

	h2 := doc.Find("h2")
	assert.Equal(t, ClientExceptionText+" (developer guidance).", h2.Text())

	href, ok := h2.Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, DefaultGuidanceURL, href)
}

func TestViewClientSideExceptionCustomGuidance(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{GuidanceURL: "https://example.com/help"})

	href, _ := doc.Find("h2 a").Attr("href")
	assert.Equal(t, "https://example.com/help", href)
}

func TestViewExplicitTitleWithoutStatus(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{Title: "Offline"})

	assert.Equal(t, ClientExceptionText, doc.Find("head > title").Text())
	assert.Equal(t, 0, doc.Find("h1").Length())
	assert.Equal(t, "Offline.", doc.Find("h2").Text())
	assert.Equal(t, 0, doc.Find("h2 a").Length())
}

func TestViewExplicitTitle(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{StatusCode: http.StatusForbidden, Title: "Members <only>"})

	assert.Equal(t, "403: Members <only>", doc.Find("head > title").Text())
	assert.Equal(t, "403", doc.Find("h1").Text())
	assert.Equal(t, "Members <only>.", doc.Find("h2").Text())
}

func TestViewUnknownStatus(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{StatusCode: http.StatusBadGateway})

	assert.Equal(t, "502: An unexpected error has occurred", doc.Find("head > title").Text())
	assert.Equal(t, "An unexpected error has occurred.", doc.Find("h2").Text())
}

func TestViewStyleOverrides(t *testing.T) {
	t.Parallel()

	doc := renderDocument(t, Props{
		StatusCode:     http.StatusInternalServerError,
		StyleOverrides: StyleOverrides{SlotH1: {"fontSize": "10px"}},
	})

	want := DefaultStyles().H1
	want["font-size"] = "10px"

	style, _ := doc.Find("h1").Attr("style")
	assert.Equal(t, want.String(), style)

	style, _ = doc.Find("h2").Attr("style")
	assert.Equal(t, DefaultStyles().H2.String(), style)

	style, _ = doc.Find("body > div").First().Attr("style")
	assert.Equal(t, DefaultStyles().Error.String(), style)
}

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "500: Internal Server Error", DocumentTitle(http.StatusInternalServerError, "Internal Server Error"))
	assert.Equal(t, ClientExceptionText, DocumentTitle(0, "ignored"))
}
