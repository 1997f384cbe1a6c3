// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"
	"time"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/slogtest"
	"github.com/vdobler/viewtest/browser"
	"github.com/vdobler/viewtest/internal/env"
)

// settings collects what Options configure.
type settings struct {
	url         string
	servletName string
	initParams  map[string]string
	browser     browser.Browser
	logger      slog.Logger
	timeout     time.Duration
	strategies  []Strategy
}

// Option configures a renderer.
type Option func(*settings)

// WithURL sets the URL the view is rendered for. It must be absolute.
func WithURL(rawurl string) Option {
	return func(s *settings) { s.url = rawurl }
}

// WithServletName overrides the servlet name passed in Config.
func WithServletName(name string) Option {
	return func(s *settings) { s.servletName = name }
}

// WithInitParameter sets a servlet init parameter.
func WithInitParameter(name, value string) Option {
	return func(s *settings) { s.initParams[name] = value }
}

// WithBrowser sets the browser of a WebView.
func WithBrowser(b browser.Browser) Option {
	return func(s *settings) { s.browser = b }
}

// WithLogger sets the logger.
func WithLogger(l slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithTB logs into tb. Error level logs do not fail the test.
func WithTB(tb testing.TB) Option {
	return func(s *settings) {
		s.logger = slogtest.Make(tb, &slogtest.Options{IgnoreErrors: true})
	}
}

// WithTimeout limits loading a page. Negative values are clamped to 0
// (no timeout).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		d = 0
	}
	return func(s *settings) { s.timeout = d }
}

// WithStrategies adds strategies applied at construction time.
func WithStrategies(strategies ...Strategy) Option {
	return func(s *settings) { s.strategies = append(s.strategies, strategies...) }
}

// newSettings applies opts on top of the defaults. The defaults honour
// VIEWTEST_BROWSER, VIEWTEST_TIMEOUT and VIEWTEST_DEBUG.
func newSettings(opts []Option) settings {
	s := settings{
		url:        DefaultURL,
		initParams: make(map[string]string),
		logger:     slog.Make(),
	}
	if d, ok := env.Timeout(); ok {
		s.timeout = d
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.browser == nil {
		if env.Browser() == "chrome" {
			s.browser = &browser.Chrome{Timeout: s.timeout}
		} else {
			s.browser = browser.Static{}
		}
	}
	if env.Debug() {
		s.logger = s.logger.Leveled(slog.LevelDebug)
	}
	return s
}
