// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package browser

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/viewtest/response"
)

var sampleHTML = `<!doctype html>
<html>
<head><title>  Hello
  Page </title></head>
<body>
<h1 id="mt">FooBar</h1>
<p class="X">Hello <span class="X">World</span><p>
<p class="X" id="end">Thanks!</p>
<div class="WS">
  <p class="em">Inter<em>word</em>emphasis</p>
  <ul class="items"><li>Foo</li><li>Bar</li><li>Waz</li></ul>
</div>
<p class="nfc">Cafe&#x301;</p>
</body>
</html>
`

func samplePage(t *testing.T) *Page {
	u, _ := url.Parse("http://localhost/anything.jsp")
	p, err := NewPage(u, 200, nil, []byte(sampleHTML))
	require.NoError(t, err)
	return p
}

func TestPage(t *testing.T) {
	p := samplePage(t)

	assert.Equal(t, "Hello Page", p.Title())
	assert.Equal(t, []string{"Hello World", "Thanks!"}, p.Texts("p.X"))
	assert.Equal(t, []string{"Interwordemphasis"}, p.Texts("div.WS p.em"))
	assert.Equal(t, []string{"Foo Bar Waz"}, p.Texts("ul.items"))
	assert.Equal(t, "Thanks!", p.ByID("end").Text())
	assert.Equal(t, 0, p.ByID("nope").Length())
	assert.Equal(t, "http://localhost/anything.jsp", p.Document.Url.String())
	assert.NotNil(t, p.Header)
	assert.Contains(t, p.String(), `<h1 id="mt">FooBar</h1>`)
}

func TestTextContentNFC(t *testing.T) {
	p := samplePage(t)
	got := p.Texts("p.nfc")
	if len(got) != 1 || got[0] != "Café" {
		t.Errorf("%s", pretty.Sprintf("got %# v", got))
	}
	raw := TextContent(p.Find("p.nfc").Get(0), true)
	if raw != "Café" {
		t.Errorf("raw text %q", raw)
	}
}

func TestStaticLoad(t *testing.T) {
	conn := NewConnection()
	require.NoError(t, conn.SetResponse("http://localhost/anything.jsp", htmlResponse(sampleHTML)))

	p, err := Static{Header: http.Header{"Accept-Language": {"de"}}}.Load(context.Background(), conn, "http://localhost/anything.jsp")
	require.NoError(t, err)
	assert.Equal(t, 200, p.StatusCode)
	assert.Equal(t, "Hello Page", p.Title())
	assert.Equal(t, "de", conn.LastRequest().Header.Get("Accept-Language"))
}

var htmlRedirect = response.Response{
	StatusCode: http.StatusFound,
	Header:     http.Header{"Location": {"http://localhost/new.jsp"}},
}

func TestStaticLoadRedirect(t *testing.T) {
	conn := NewConnection()
	conn.SetResponse("http://localhost/old.jsp", &htmlRedirect)
	conn.SetResponse("http://localhost/new.jsp", htmlResponse("<title>new</title>"))

	p, err := Static{}.Load(context.Background(), conn, "http://localhost/old.jsp")
	require.NoError(t, err)
	assert.Equal(t, "new", p.Title())
	assert.Equal(t, "/new.jsp", p.URL.Path)
}

func TestStaticLoadBadURL(t *testing.T) {
	_, err := Static{}.Load(context.Background(), NewConnection(), "http://[::1")
	assert.Error(t, err)
}
