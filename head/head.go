// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package head collects document head elements from components rendered in the
body.

Components call [Title] or [Meta] wherever they are; the elements are
gathered by the [Collector] in the render context and written out by
[Document] once the body has finished rendering.
*/
package head

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sync"

	"github.com/a-h/templ"
)

// Collector gathers head elements during a render pass.
//
// It is safe for concurrent use by components rendered in parallel.
type Collector struct {
	mu    sync.Mutex
	title string
	metas []meta
}

type meta struct {
	name    string
	content string
}

type collectorKeyType struct{}

var collectorKey = collectorKeyType{}

// WithCollector returns a context carrying a new, empty Collector.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}

	return context.WithValue(ctx, collectorKey, c), c
}

// FromContext returns the Collector in ctx, or nil.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey).(*Collector)

	return c
}

// Title returns a component setting the document title.
//
// It writes nothing where it is rendered. The last title rendered wins.
func Title(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, _ io.Writer) error {
		if c := FromContext(ctx); c != nil {
			c.mu.Lock()
			c.title = text
			c.mu.Unlock()
		}

		return nil
	})
}

// Meta returns a component adding a <meta name content> element.
// A later meta with the same name replaces an earlier one.
func Meta(name, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, _ io.Writer) error {
		c := FromContext(ctx)
		if c == nil {
			return nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		if i := slices.IndexFunc(c.metas, func(m meta) bool { return m.name == name }); i >= 0 {
			c.metas[i].content = content

			return nil
		}

		c.metas = append(c.metas, meta{name: name, content: content})

		return nil
	})
}

// TitleText returns the collected title.
func (c *Collector) TitleText() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.title
}

// writeTo writes the collected elements as HTML.
func (c *Collector) writeTo(buf *bytes.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.title != "" {
		buf.WriteString("<title>" + templ.EscapeString(c.title) + "</title>")
	}

	for _, m := range c.metas {
		buf.WriteString(`<meta name="` + templ.EscapeString(m.name) + `" content="` + templ.EscapeString(m.content) + `">`)
	}
}

// Document renders body inside a complete HTML document whose head holds the
// elements body registered.
//
// lang is written to the html element when non-empty.
func Document(lang string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx, c := WithCollector(ctx)

		var bodyBuf bytes.Buffer
		if err := body.Render(ctx, &bodyBuf); err != nil {
			return err
		}

		var doc bytes.Buffer

		doc.WriteString("<!DOCTYPE html>")

		if lang != "" {
			doc.WriteString(`<html lang="` + templ.EscapeString(lang) + `">`)
		} else {
			doc.WriteString("<html>")
		}

		doc.WriteString(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width">`)
		c.writeTo(&doc)
		doc.WriteString("</head><body>")
		doc.Write(bodyBuf.Bytes())
		doc.WriteString("</body></html>")

		_, err := doc.WriteTo(w)

		return err
	})
}
