// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"errors"

	"cdr.dev/slog"
	"github.com/vdobler/viewtest/browser"
	"github.com/vdobler/viewtest/check"
)

// WebView renders a servlet and loads the output into a browser so that
// tests can make assertions on the resulting DOM.
//
//     v := render.ForServlet(myServlet, tiles.Strategy{})
//     v.Setup(t)
//     v.AddRequestAttribute("user", user)
//     page, err := v.Render()
//     ... page.Find("h1").Text() ...
type WebView struct {
	lifecycle
	conn *browser.Connection
}

// New returns a WebView for s. Strategies given as options are applied
// before it is returned.
func New(s Servlet, opts ...Option) *WebView {
	v := &WebView{
		lifecycle: newLifecycle(s, opts),
		conn:      browser.NewConnection(),
	}
	v.applyStrategies(v)
	return v
}

// ForServlet returns a WebView for s with the given strategies applied.
func ForServlet(s Servlet, strategies ...Strategy) *WebView {
	return New(s, WithStrategies(strategies...))
}

// ForFactory returns a WebView for the servlet produced by f.
func ForFactory(f Factory, strategies ...Strategy) (*WebView, error) {
	if f == nil {
		return nil, errors.New("render: nil factory")
	}
	s := f()
	if s == nil {
		return nil, errors.New("render: factory returned nil servlet")
	}
	return ForServlet(s, strategies...), nil
}

// SetStrategy applies s to v.
func (v *WebView) SetStrategy(s Strategy) {
	s.Apply(v)
}

// SetStrategies applies all strategies to v in order.
func (v *WebView) SetStrategies(strategies ...Strategy) {
	for _, s := range strategies {
		v.SetStrategy(s)
	}
}

// Connection returns the in-memory connection the browser loads from.
func (v *WebView) Connection() *browser.Connection { return v.conn }

// Render services the servlet and returns the page the browser made from
// its output.
func (v *WebView) Render() (*browser.Page, error) {
	return v.RenderContext(context.Background())
}

// RenderContext is Render with a context for the request and the browser.
func (v *WebView) RenderContext(ctx context.Context) (*browser.Page, error) {
	resp, err := v.service(ctx)
	if err != nil {
		return nil, err
	}
	if err := v.conn.SetResponse(v.request.URL(), resp); err != nil {
		return nil, v.fail("load", err)
	}
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}
	page, err := v.browser.Load(ctx, v.conn, v.request.URL())
	if err != nil {
		return nil, v.fail("load", err)
	}
	v.logger.Debug(ctx, "page loaded", slog.F("title", page.Title()))
	return page, nil
}

// Check renders the view and runs checks on the page. A failed rendering
// is returned as is, failed checks are returned as an errorlist.List.
func (v *WebView) Check(ctx context.Context, checks ...check.Check) error {
	page, err := v.RenderContext(ctx)
	if err != nil {
		return err
	}
	return check.Run(page, checks...)
}
