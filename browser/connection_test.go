// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package browser

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vdobler/viewtest/response"
)

func htmlResponse(body string) *response.Response {
	return &response.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

var connectionTests = []struct {
	url    string
	status int
	body   string
}{
	{"http://localhost/anything.jsp", 200, "exact"},
	{"http://localhost/anything.jsp?x=1", 200, "exact"},
	{"http://localhost/other.jsp", 200, "template"},
	{"http://localhost/deep/other.jsp", 404, ""},
	{"https://localhost/anything.jsp", 404, ""},
	{"http://example.org/anything.jsp", 404, ""},
}

func TestConnection(t *testing.T) {
	conn := NewConnection()
	if err := conn.SetResponse("http://localhost/anything.jsp", htmlResponse("exact")); err != nil {
		t.Fatal(err)
	}
	if err := conn.SetResponse("http://localhost/{page}.jsp", htmlResponse("template")); err != nil {
		t.Fatal(err)
	}

	for i, tc := range connectionTests {
		req := httptest.NewRequest("GET", tc.url, nil)
		resp, err := conn.RoundTrip(req)
		if err != nil {
			t.Errorf("%d. %s: unexpected error %v", i, tc.url, err)
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tc.status {
			t.Errorf("%d. %s: status %d, want %d", i, tc.url, resp.StatusCode, tc.status)
		}
		if tc.status == 200 && string(body) != tc.body {
			t.Errorf("%d. %s: body %q, want %q", i, tc.url, body, tc.body)
		}
	}
	if got := conn.RequestCount(); got != len(connectionTests) {
		t.Errorf("RequestCount = %d", got)
	}
	if conn.LastRequest() == nil {
		t.Errorf("no last request")
	}
}

func TestConnectionReplaceAndDefault(t *testing.T) {
	conn := NewConnection()
	conn.SetResponse("http://localhost/a.jsp", htmlResponse("first"))
	conn.SetResponse("http://localhost/a.jsp", htmlResponse("second"))
	conn.SetDefaultResponse(&response.Response{StatusCode: http.StatusGone, Body: []byte("fallback")})

	rec := httptest.NewRecorder()
	conn.ServeHTTP(rec, httptest.NewRequest("GET", "http://localhost/a.jsp", nil))
	if rec.Body.String() != "second" {
		t.Errorf("got %q, want second", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type %q", ct)
	}

	rec = httptest.NewRecorder()
	conn.ServeHTTP(rec, httptest.NewRequest("GET", "http://localhost/b.jsp", nil))
	if rec.Code != http.StatusGone || rec.Body.String() != "fallback" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestConnectionBadURL(t *testing.T) {
	conn := NewConnection()
	if err := conn.SetResponse("/no/host", htmlResponse("")); err == nil {
		t.Errorf("missing error for url without host")
	}
	if err := conn.SetResponse("http://[::1", htmlResponse("")); err == nil {
		t.Errorf("missing error for malformed url")
	}
}

func TestConnectionQueryDoesNotAddRoute(t *testing.T) {
	conn := NewConnection()
	conn.SetResponse("http://localhost/a.jsp", htmlResponse("first"))
	conn.SetResponse("http://localhost/a.jsp?x=1", htmlResponse("second"))
	conn.SetResponse("http://localhost/a.jsp#top", htmlResponse("third"))

	for _, u := range []string{"http://localhost/a.jsp", "http://localhost/a.jsp?y=2"} {
		rec := httptest.NewRecorder()
		conn.ServeHTTP(rec, httptest.NewRequest("GET", u, nil))
		if rec.Body.String() != "third" {
			t.Errorf("%s: got %q, want third", u, rec.Body.String())
		}
	}
	if len(conn.entries) != 1 {
		t.Errorf("got %d routes, want 1", len(conn.entries))
	}
}

func TestConnectionUncleanPath(t *testing.T) {
	conn := NewConnection()
	conn.SetResponse("http://localhost/WEB-INF//x.jsp", htmlResponse("unclean"))

	rec := httptest.NewRecorder()
	conn.ServeHTTP(rec, httptest.NewRequest("GET", "http://localhost/WEB-INF//x.jsp", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "unclean" {
		t.Errorf("got %d %q, want 200 unclean", rec.Code, rec.Body.String())
	}
}
