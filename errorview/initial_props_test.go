// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInitialProps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ec   Context
		want int
	}{
		{
			name: "response takes precedence",
			ec: Context{
				Response: &Response{StatusCode: http.StatusInternalServerError},
				Err:      NewStatusError(http.StatusNotFound, nil),
			},
			want: http.StatusInternalServerError,
		},
		{
			name: "error status without response",
			ec:   Context{Err: NewStatusError(http.StatusForbidden, nil)},
			want: http.StatusForbidden,
		},
		{
			name: "zero response status falls through to error",
			ec: Context{
				Response: &Response{},
				Err:      NewStatusError(http.StatusForbidden, nil),
			},
			want: http.StatusForbidden,
		},
		{
			name: "error without status is a client-side exception",
			ec:   Context{Err: errors.New("boom")},
			want: 0,
		},
		{
			name: "nothing known",
			ec:   Context{},
			want: http.StatusNotFound,
		},
		{
			name: "zero response status and no error",
			ec:   Context{Response: &Response{}},
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			props, err := GetInitialProps(context.Background(), tt.ec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, props.StatusCode)
			assert.Empty(t, props.Title)
		})
	}
}

func TestOrigGetInitialPropsIsAlias(t *testing.T) {
	t.Parallel()

	ec := Context{Response: &Response{StatusCode: http.StatusMethodNotAllowed}}

	want, err := GetInitialProps(context.Background(), ec)
	require.NoError(t, err)

	got, err := OrigGetInitialProps(context.Background(), ec)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestStaticProps(t *testing.T) {
	t.Parallel()

	page := Page{
		InitialProps: StaticProps(Props{StatusCode: 0}),
		Title:        "",
		GuidanceURL:  "https://example.com/help",
	}

	props, err := page.Resolve(context.Background(), Context{
		Response: &Response{StatusCode: http.StatusInternalServerError},
	})
	require.NoError(t, err)

	assert.Zero(t, props.StatusCode)
	assert.Equal(t, "https://example.com/help", props.GuidanceURL)
	assert.True(t, page.HasCustomInitialProps())
}
