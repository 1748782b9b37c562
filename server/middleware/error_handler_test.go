// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/errorpage/errorview"
	"codeberg.org/pixivfe/errorpage/server/request_context"
	"codeberg.org/pixivfe/errorpage/server/routes"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	return req.WithContext(request_context.WithRequestContext(req.Context(), req))
}

// usePage swaps routes.Page for the duration of the test.
func usePage(t *testing.T, page errorview.Page) {
	t.Helper()

	orig := routes.Page
	routes.Page = page

	t.Cleanup(func() { routes.Page = orig })
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)

	return doc
}

func TestCatchError_Success(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("X-Test", "kept")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status": "success"}`))

		return err
	})

	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "success"}`, rr.Body.String())
	assert.Equal(t, "kept", rr.Header().Get("X-Test"))

	ctx := request_context.FromRequest(req)
	assert.NoError(t, ctx.RequestError)
	assert.Equal(t, http.StatusOK, ctx.StatusCode)
}

func TestCatchError_HandlerError(t *testing.T) {
	testError := errors.New("test handler error")
	handler := CatchError(func(http.ResponseWriter, *http.Request) error {
		return testError
	})

	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := parseBody(t, rr)
	assert.Equal(t, "500", doc.Find("h1").Text())
	assert.Equal(t, "Internal Server Error.", doc.Find("h2").Text())
	assert.Equal(t, "500: Internal Server Error", doc.Find("head > title").Text())

	ctx := request_context.FromRequest(req)
	assert.ErrorIs(t, ctx.RequestError, testError)
	assert.Equal(t, http.StatusInternalServerError, ctx.StatusCode)
}

func TestCatchError_StatusCarryingError(t *testing.T) {
	handler := CatchError(func(http.ResponseWriter, *http.Request) error {
		return errorview.NewStatusError(http.StatusForbidden, errors.New("denied"))
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusForbidden, rr.Code)

	doc := parseBody(t, rr)
	assert.Equal(t, "403", doc.Find("h1").Text())
	assert.Equal(t, errorview.FallbackStatusText+".", doc.Find("h2").Text())
}

func TestCatchError_NotFoundIsReplaced(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		http.NotFound(w, r)

		return nil
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "404 page not found")
	assert.Equal(t, "This page could not be found.", parseBody(t, rr).Find("h2").Text())
}

func TestCatchError_EmptyErrorStatusIsReplaced(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusServiceUnavailable)

		return nil
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "503", parseBody(t, rr).Find("h1").Text())
}

func TestCatchError_HandledErrorPassesThrough(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusBadRequest)
		_, err := w.Write([]byte("bad input"))

		return err
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "bad input", rr.Body.String())
}

func TestCatchError_JSON(t *testing.T) {
	handler := CatchError(func(http.ResponseWriter, *http.Request) error {
		return errorview.NewStatusError(http.StatusBadRequest, nil)
	})

	req := createTestRequest(t)
	req.Header.Set("Accept", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.EqualValues(t, http.StatusBadRequest, body["statusCode"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, request_context.FromRequest(req).RequestID, body["requestId"])
}

func TestCatchError_ConfiguredPage(t *testing.T) {
	usePage(t, errorview.Page{
		Title: "Something broke",
		StyleOverrides: errorview.StyleOverrides{
			errorview.SlotH1: {"fontSize": "10px"},
		},
	})

	handler := CatchError(func(http.ResponseWriter, *http.Request) error {
		return errors.New("boom")
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	doc := parseBody(t, rr)
	assert.Equal(t, "Something broke.", doc.Find("h2").Text())

	style, _ := doc.Find("h1").Attr("style")
	assert.Contains(t, style, "font-size:10px")
	assert.Contains(t, style, "font-weight:500")
}

func TestCatchError_FailingHookFallsBack(t *testing.T) {
	usePage(t, errorview.Page{
		Name: "BrokenPage",
		InitialProps: func(context.Context, errorview.Context) (errorview.Props, error) {
			return errorview.Props{}, errors.New("hook failed")
		},
	})

	handler := CatchError(func(http.ResponseWriter, *http.Request) error {
		return errorview.NewStatusError(http.StatusBadGateway, nil)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, createTestRequest(t))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "502", parseBody(t, rr).Find("h1").Text())
}
