// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog/log"
)

// serverTimingMetric is the Server-Timing metric name for rendered responses.
const serverTimingMetric = "render"

// Span represents an HTTP request in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Error      error
	Size       int

	// Page is the name of the error page that replaced the response, if any.
	Page string
}

// Begin starts timing the span and opens a runtime/trace task and, when the
// request carries Server-Timing state, a metric.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http.request")
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(serverTimingMetric).WithDesc(span.Method)
	}

	return ctx
}

// End stops the span. Calling it more than once is harmless.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration returns the time between Begin and End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span as a single debug event.
func (span *Span) Log() {
	event := log.Debug().
		Str("sys", "http").
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Str("request_id", span.RequestID)

	if span.Page != "" {
		event.Str("page", span.Page)
	}

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	case x < bytesInGB:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	default:
		return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
	}
}
