// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package response provides a type for capturing what a servlet wrote to
// its mock response. Its main purpose is breaking an import cycle between
// render and browser.
package response

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"time"
)

// Response captures what a servlet produced during one Service call.
type Response struct {
	// StatusCode is the written status, http.StatusOK if the servlet
	// never called WriteHeader.
	StatusCode int

	// Header is a snapshot of the header at the end of Service.
	Header http.Header

	// Body is everything written to the response.
	Body []byte

	// Duration of the Service call.
	Duration time.Duration
}

// FromRecorder captures rec. The recorder must not be written to afterwards.
func FromRecorder(rec *httptest.ResponseRecorder, d time.Duration) *Response {
	result := rec.Result()
	return &Response{
		StatusCode: result.StatusCode,
		Header:     result.Header,
		Body:       rec.Body.Bytes(),
		Duration:   d,
	}
}

// BodyReader returns a reader of the response body.
func (resp *Response) BodyReader() *bytes.Reader {
	return bytes.NewReader(resp.Body)
}

// ContentAsString returns the body as a string.
func (resp *Response) ContentAsString() string {
	return string(resp.Body)
}

// ContentType returns the Content-Type header, defaulting to
// "text/html; charset=utf-8" as a JSP page would.
func (resp *Response) ContentType() string {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "text/html; charset=utf-8"
}
