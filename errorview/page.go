// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// DefaultPageName is the display name of the built-in error page.
const DefaultPageName = "ErrorPage"

// Page is an error page as seen by the host server.
//
// The zero value is the built-in fallback page. Applications customise it by
// replacing the initial-props hook, the renderer, or both, and may set
// defaults that apply whenever the hook leaves them empty.
type Page struct {
	Name string

	// InitialProps derives props for a failure. Nil means [GetInitialProps].
	InitialProps InitialPropsFunc

	// Render builds the component for resolved props. Nil means [View].
	Render func(Props) templ.Component

	// Page-wide defaults layered under the props returned by InitialProps.
	Title          string
	GuidanceURL    string
	StyleOverrides StyleOverrides
}

// DisplayName returns the page name, defaulting to [DefaultPageName].
func (p Page) DisplayName() string {
	if p.Name == "" {
		return DefaultPageName
	}

	return p.Name
}

// HasCustomInitialProps reports whether p replaces the default hook.
func (p Page) HasCustomInitialProps() bool {
	return p.InitialProps != nil
}

// Resolve runs the page's initial-props hook for ec and applies page defaults.
//
// Errors only come from custom hooks; the default hook cannot fail.
func (p Page) Resolve(ctx context.Context, ec Context) (Props, error) {
	hook := p.InitialProps
	if hook == nil {
		hook = GetInitialProps
	}

	props, err := hook(ctx, ec)
	if err != nil {
		return Props{}, fmt.Errorf("%s: initial props: %w", p.DisplayName(), err)
	}

	if props.Title == "" {
		props.Title = p.Title
	}

	if props.GuidanceURL == "" {
		props.GuidanceURL = p.GuidanceURL
	}

	props.StyleOverrides = p.StyleOverrides.Merge(props.StyleOverrides)

	return props, nil
}

// Component returns the component rendering props.
func (p Page) Component(props Props) templ.Component {
	if p.Render == nil {
		return View(props)
	}

	return p.Render(props)
}
