// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package browser turns raw servlet output into parsed HTML pages.
//
// A Browser loads an URL through a Connection. The Connection never
// touches the network: it hands out responses registered on it, typically
// the output of a single servlet rendering. Two browsers are provided:
//
//     Static   parses the delivered HTML, no scripts are run
//     Chrome   loads the page into headless Chrome via chromedp
//
// Both produce a Page whose Document is a goquery document suitable for
// DOM level assertions.
package browser

import (
	"context"
	"io"
	"net/http"

	"oss.terrastruct.com/xdefer"
)

// Browser loads pages.
type Browser interface {
	// Load requests rawurl via conn and returns the resulting page.
	Load(ctx context.Context, conn *Connection, rawurl string) (*Page, error)
}

// Static is a Browser without scripting. Redirects registered on the
// Connection are followed.
type Static struct {
	// Header is sent with each request.
	Header http.Header
}

// Load implements Browser.
func (b Static) Load(ctx context.Context, conn *Connection, rawurl string) (p *Page, err error) {
	defer xdefer.Errorf(&err, "failed to load %s", rawurl)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range b.Header {
		req.Header[name] = append([]string(nil), values...)
	}
	client := &http.Client{Transport: conn}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return NewPage(resp.Request.URL, resp.StatusCode, resp.Header, body)
}
