// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package browser

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vdobler/viewtest/response"
)

// Connection is an in-memory web connection: instead of talking to a
// server it answers requests with responses registered beforehand.
//
// Responses are registered per URL. The path of the URL can be a Gorilla
// mux style path template, e.g. "http://localhost/{page}.jsp". Query
// strings and fragments are ignored: registering a response for a scheme,
// host and path already known replaces the old response. Paths are matched
// as sent, "/a//b.jsp" is not redirected to "/a/b.jsp".
type Connection struct {
	entries  []entry
	fallback *response.Response
	router   *mux.Router

	requests    int
	lastRequest *http.Request
}

type entry struct {
	key     string
	url     *url.URL
	resp    *response.Response
}

// NewConnection returns an empty Connection. Unknown URLs are answered
// with 404 until a default response is set.
func NewConnection() *Connection {
	return &Connection{}
}

// SetResponse registers resp as the answer to requests for rawurl.
func (c *Connection) SetResponse(rawurl string, resp *response.Response) error {
	u, err := url.Parse(rawurl)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("browser: url %q has no host", rawurl)
	}
	c.router = nil
	key := u.Scheme + "://" + u.Host + routePath(u)
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries[i].url = u
			c.entries[i].resp = resp
			return nil
		}
	}
	c.entries = append(c.entries, entry{key: key, url: u, resp: resp})
	return nil
}

func routePath(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

// SetDefaultResponse sets the answer for all URLs without a registered
// response.
func (c *Connection) SetDefaultResponse(resp *response.Response) {
	c.fallback = resp
	c.router = nil
}

// RequestCount returns the number of requests served so far.
func (c *Connection) RequestCount() int { return c.requests }

// LastRequest returns the most recent request or nil.
func (c *Connection) LastRequest() *http.Request { return c.lastRequest }

func (c *Connection) routes() *mux.Router {
	if c.router != nil {
		return c.router
	}
	r := mux.NewRouter().SkipClean(true)
	for _, e := range c.entries {
		route := r.NewRoute().Host(e.url.Host)
		if e.url.Scheme != "" {
			route = route.Schemes(e.url.Scheme)
		}
		route.Path(routePath(e.url)).Handler(serve(e.resp))
	}
	if c.fallback != nil {
		r.NotFoundHandler = serve(c.fallback)
	}
	c.router = r
	return r
}

// ServeHTTP implements http.Handler.
func (c *Connection) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c.requests++
	if req.URL.Path == "" {
		req = req.Clone(req.Context())
		req.URL.Path = "/"
	}
	c.lastRequest = req
	c.routes().ServeHTTP(w, req)
}

// RoundTrip implements http.RoundTripper so that a Connection can be
// used as the Transport of a http.Client.
func (c *Connection) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func serve(resp *response.Response) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		for name, values := range resp.Header {
			for _, v := range values {
				w.Header().Add(name, v)
			}
		}
		w.Header().Set("Content-Type", resp.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if req.Method != http.MethodHead {
			w.Write(resp.Body)
		}
	})
}
