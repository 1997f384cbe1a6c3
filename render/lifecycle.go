// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"cdr.dev/slog"
	"github.com/vdobler/viewtest/response"
)

type state int

const (
	stateNew state = iota
	stateStarted
	stateDestroyed
)

// lifecycle drives a servlet through Init, Service and Destroy with the
// mock context and request. It is shared by ServletRenderer and WebView.
type lifecycle struct {
	servlet Servlet
	context *Context
	request *Request
	settings

	state   state
	renders int
}

func newLifecycle(s Servlet, opts []Option) lifecycle {
	ctx := NewContext()
	l := lifecycle{
		servlet:  s,
		context:  ctx,
		request:  NewRequest(ctx),
		settings: newSettings(opts),
	}
	if l.servletName == "" {
		l.servletName = nameOf(s)
	}
	l.logger = l.logger.Named("render").With(slog.F("servlet", l.servletName))
	return l
}

// applyStrategies runs the configured strategies against setter, which
// is the renderer embedding l.
func (l *lifecycle) applyStrategies(setter AttributeSetter) {
	for _, s := range l.strategies {
		s.Apply(setter)
	}
}

func (l *lifecycle) fail(op string, err error) error {
	return &Error{Op: op, Servlet: l.servletName, Err: err}
}

// Start initializes the servlet. Starting a started servlet does nothing.
func (l *lifecycle) Start() error {
	switch l.state {
	case stateStarted:
		return nil
	case stateDestroyed:
		return l.fail("init", ErrDestroyed)
	}
	if err := l.request.SetURL(l.url); err != nil {
		return l.fail("init", err)
	}
	config := &Config{
		ServletName: l.servletName,
		Context:     l.context,
		InitParams:  l.initParams,
	}
	if err := safely(func() error { return l.servlet.Init(config) }); err != nil {
		l.logger.Debug(context.Background(), "init failed", slog.Error(err))
		return l.fail("init", err)
	}
	l.state = stateStarted
	l.logger.Debug(context.Background(), "servlet started")
	return nil
}

// Stop destroys a started servlet. Stop is idempotent; stopping a
// servlet which was never started does not call Destroy. A panic in
// Destroy is logged, not propagated.
func (l *lifecycle) Stop() {
	started := l.state == stateStarted
	l.state = stateDestroyed
	if !started {
		return
	}
	err := safely(func() error {
		l.servlet.Destroy()
		return nil
	})
	if err != nil {
		l.logger.Error(context.Background(), "destroy failed", slog.Error(l.fail("destroy", err)))
		return
	}
	l.logger.Debug(context.Background(), "servlet destroyed", slog.F("renders", l.renders))
}

// Setup starts the servlet and stops it once tb and its subtests are
// complete. A failing start is fatal to tb.
func (l *lifecycle) Setup(tb testing.TB) {
	tb.Helper()
	if err := l.Start(); err != nil {
		tb.Fatalf("%s", err)
	}
	tb.Cleanup(l.Stop)
}

// Context returns the servlet context.
func (l *lifecycle) Context() *Context { return l.context }

// Request returns the request used for each rendering.
func (l *lifecycle) Request() *Request { return l.request }

// Renders returns the number of successful renderings.
func (l *lifecycle) Renders() int { return l.renders }

// AddContextAttribute sets an attribute on the servlet context.
func (l *lifecycle) AddContextAttribute(name string, value interface{}) {
	l.context.SetAttribute(name, value)
}

// AddRequestAttribute sets an attribute on the request.
func (l *lifecycle) AddRequestAttribute(name string, value interface{}) {
	l.request.SetAttribute(name, value)
}

// AddRequestParameter sets a request parameter.
func (l *lifecycle) AddRequestParameter(name, value string) {
	l.request.SetParameter(name, value)
}

// service runs one Service call against a fresh response.
func (l *lifecycle) service(ctx context.Context) (*response.Response, error) {
	switch l.state {
	case stateNew:
		return nil, l.fail("service", ErrNotStarted)
	case stateDestroyed:
		return nil, l.fail("service", ErrDestroyed)
	}

	req, err := l.request.HTTPRequest(ctx)
	if err != nil {
		return nil, l.fail("service", err)
	}
	rec := httptest.NewRecorder()
	start := time.Now()
	err = safely(func() error { return l.servlet.Service(rec, req) })
	if err != nil {
		l.logger.Debug(ctx, "service failed", slog.Error(err))
		return nil, l.fail("service", err)
	}
	resp := response.FromRecorder(rec, time.Since(start))
	l.renders++
	l.logger.Info(ctx, "rendered",
		slog.F("url", req.URL.String()),
		slog.F("status", resp.StatusCode),
		slog.F("bytes", len(resp.Body)),
		slog.F("duration", resp.Duration),
	)
	return resp, nil
}
