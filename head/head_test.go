// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package head

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleWithoutCollectorWritesNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Title("ignored").Render(context.Background(), &buf))
	assert.Zero(t, buf.Len())
}

func TestLastTitleWins(t *testing.T) {
	t.Parallel()

	ctx, c := WithCollector(context.Background())

	require.NoError(t, Title("first").Render(ctx, io.Discard))
	require.NoError(t, Title("second").Render(ctx, io.Discard))

	assert.Equal(t, "second", c.TitleText())
}

func TestDocument(t *testing.T) {
	t.Parallel()

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := Title("404: <missing>").Render(ctx, w); err != nil {
			return err
		}

		if err := Meta("robots", "noindex").Render(ctx, w); err != nil {
			return err
		}

		if err := Meta("robots", "noindex, nofollow").Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "<p>body</p>")

		return err
	})

	var buf bytes.Buffer

	require.NoError(t, Document("ja", body).Render(context.Background(), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "ja", lang)
	assert.Equal(t, "404: <missing>", doc.Find("head > title").Text())
	assert.Equal(t, 1, doc.Find("head > title").Length())

	robots := doc.Find(`head > meta[name="robots"]`)
	require.Equal(t, 1, robots.Length())

	content, _ := robots.Attr("content")
	assert.Equal(t, "noindex, nofollow", content)
	assert.Equal(t, "body", doc.Find("body > p").Text())
}
