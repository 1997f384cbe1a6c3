// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DefaultURL is the URL a view is rendered for unless configured otherwise.
const DefaultURL = "http://localhost/anything.jsp"

// Request is the in-memory request a servlet is serviced with. It is
// reused for every rendering, so attributes a servlet sets during one
// rendering are visible in the next.
type Request struct {
	Method string
	Header http.Header

	url     string
	params  url.Values
	attrs   map[string]interface{}
	context *Context
}

// NewRequest returns a GET request for DefaultURL belonging to ctx.
func NewRequest(ctx *Context) *Request {
	return &Request{
		Method:  http.MethodGet,
		Header:  http.Header{},
		url:     DefaultURL,
		params:  url.Values{},
		attrs:   make(map[string]interface{}),
		context: ctx,
	}
}

// URL returns the request URL.
func (r *Request) URL() string { return r.url }

// SetURL sets the request URL. It must be absolute and its path must be
// clean, browsers would otherwise load a different page than the one
// rendered.
func (r *Request) SetURL(rawurl string) error {
	u, err := url.Parse(rawurl)
	if err != nil {
		return err
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("render: url %q is not absolute", rawurl)
	}
	if p := u.Path; p != "" && cleanPath(p) != p {
		return fmt.Errorf("render: url %q has unclean path, use %q", rawurl, cleanPath(p))
	}
	r.url = rawurl
	return nil
}

// SetAttribute binds value to name. A nil value removes the attribute.
func (r *Request) SetAttribute(name string, value interface{}) {
	if value == nil {
		delete(r.attrs, name)
		return
	}
	r.attrs[name] = value
}

// Attribute returns the named attribute or nil.
func (r *Request) Attribute(name string) interface{} {
	return r.attrs[name]
}

// RemoveAttribute removes the named attribute.
func (r *Request) RemoveAttribute(name string) {
	delete(r.attrs, name)
}

// AttributeNames returns the sorted names of all attributes.
func (r *Request) AttributeNames() []string {
	return sortedKeys(r.attrs)
}

// SetParameter sets the parameter name to the single value, replacing
// any existing values.
func (r *Request) SetParameter(name, value string) {
	r.params.Set(name, value)
}

// AddParameter appends value to the values of parameter name.
func (r *Request) AddParameter(name, value string) {
	r.params.Add(name, value)
}

// Parameter returns the first value of the named parameter.
func (r *Request) Parameter(name string) string {
	return r.params.Get(name)
}

// Parameters returns a copy of all parameters.
func (r *Request) Parameters() url.Values {
	cp := make(url.Values, len(r.params))
	for name, values := range r.params {
		cp[name] = append([]string(nil), values...)
	}
	return cp
}

// HTTPRequest materializes r. Parameters are sent in the query string for
// GET, HEAD and DELETE requests and as an url encoded form otherwise.
// The attributes travel in the context of the returned request.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return nil, err
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	form := r.params.Encode()
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		if form != "" {
			if u.RawQuery != "" {
				u.RawQuery += "&" + form
			} else {
				u.RawQuery = form
			}
		}
	default:
		body = strings.NewReader(form)
	}

	req, err := http.NewRequestWithContext(context.WithValue(ctx, requestKey{}, r), method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for name, values := range r.Header {
		req.Header[name] = append([]string(nil), values...)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.RemoteAddr = "192.0.2.1:1234"
	return req, nil
}

type requestKey struct{}

func fromRequest(r *http.Request) *Request {
	if r == nil {
		return nil
	}
	req, _ := r.Context().Value(requestKey{}).(*Request)
	return req
}

// RequestAttribute returns the named attribute of a request built by
// Request.HTTPRequest. It returns nil for other requests.
func RequestAttribute(r *http.Request, name string) interface{} {
	if req := fromRequest(r); req != nil {
		return req.Attribute(name)
	}
	return nil
}

// SetRequestAttribute sets an attribute on a request built by
// Request.HTTPRequest and reports whether this was possible.
func SetRequestAttribute(r *http.Request, name string, value interface{}) bool {
	req := fromRequest(r)
	if req == nil {
		return false
	}
	req.SetAttribute(name, value)
	return true
}

// RequestAttributeNames returns the sorted attribute names of r.
func RequestAttributeNames(r *http.Request) []string {
	if req := fromRequest(r); req != nil {
		return req.AttributeNames()
	}
	return nil
}

// ServletContext returns the Context of the servlet servicing r.
func ServletContext(r *http.Request) *Context {
	if req := fromRequest(r); req != nil {
		return req.context
	}
	return nil
}

// cleanPath is path.Clean keeping a trailing slash.
func cleanPath(p string) string {
	c := path.Clean(p)
	if strings.HasSuffix(p, "/") && c != "/" {
		c += "/"
	}
	return c
}
