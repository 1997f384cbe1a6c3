// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"oss.terrastruct.com/xdefer"
)

// Chrome is a Browser driving a headless Chrome. The Connection is served
// from a loopback server for the duration of one Load; requests arrive at
// the Connection with the host of the requested URL.
type Chrome struct {
	// JavaScript enables script execution. It is off by default.
	JavaScript bool

	// Timeout limits one Load. Zero means no limit besides ctx.
	Timeout time.Duration

	// AllocatorOptions replace chromedp.DefaultExecAllocatorOptions.
	AllocatorOptions []chromedp.ExecAllocatorOption
}

// Load implements Browser.
func (c *Chrome) Load(ctx context.Context, conn *Connection, rawurl string) (p *Page, err error) {
	defer xdefer.Errorf(&err, "chrome failed to load %s", rawurl)

	target, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Scheme = target.Scheme
		r.URL.Host = target.Host
		r.Host = target.Host
		conn.ServeHTTP(w, r)
	}))
	defer srv.Close()

	opts := c.AllocatorOptions
	if opts == nil {
		opts = chromedp.DefaultExecAllocatorOptions[:]
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	if c.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		bctx, cancelTimeout = context.WithTimeout(bctx, c.Timeout)
		defer cancelTimeout()
	}

	scripts := chromedp.ActionFunc(func(ctx context.Context) error {
		if c.JavaScript {
			return nil
		}
		return emulation.SetScriptExecutionDisabled(true).Do(ctx)
	})
	if err := chromedp.Run(bctx, scripts); err != nil {
		return nil, err
	}
	resp, err := chromedp.RunResponse(bctx, chromedp.Navigate(srv.URL+target.RequestURI()))
	if err != nil {
		return nil, err
	}

	var outer string
	if err := chromedp.Run(bctx, chromedp.OuterHTML("html", &outer, chromedp.ByQuery)); err != nil {
		return nil, err
	}

	header := http.Header{}
	for name, v := range resp.Headers {
		header.Set(name, fmt.Sprint(v))
	}
	return NewPage(target, int(resp.Status), header, []byte(outer))
}
