// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiles

import (
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/viewtest/render"
)

// setter records what a strategy puts into the request.
type setter struct {
	ctx, req map[string]interface{}
	params   map[string]string
}

func newSetter() *setter {
	return &setter{
		ctx:    map[string]interface{}{},
		req:    map[string]interface{}{},
		params: map[string]string{},
	}
}

func (s *setter) AddContextAttribute(name string, v interface{}) { s.ctx[name] = v }
func (s *setter) AddRequestAttribute(name string, v interface{}) { s.req[name] = v }
func (s *setter) AddRequestParameter(name, v string)            { s.params[name] = v }

func TestStrategyInstallsStubContainer(t *testing.T) {
	s := newSetter()
	Strategy{}.Apply(s)

	c, ok := s.req[CurrentContainerAttribute].(Container)
	require.True(t, ok, "got %v", s.req)
	ac := c.AttributeContext(struct{}{}, "anything", nil)
	require.NotNil(t, ac)
	assert.Empty(t, ac.AttributeNames())
	assert.Same(t, ac, c.AttributeContext())
	assert.Empty(t, s.ctx)
	assert.Empty(t, s.params)
}

func TestStrategyUsesGivenContainer(t *testing.T) {
	c := NewStubContainer(map[string]Attribute{"title": {Value: "Shop"}})
	s := newSetter()
	Strategy{Container: c}.Apply(s)
	assert.Same(t, c, s.req[CurrentContainerAttribute])
}

func TestAttributeContext(t *testing.T) {
	ac := NewAttributeContext(map[string]Attribute{"b": {Value: 2}})
	ac.PutAttribute("a", Attribute{Value: "one", Renderer: "string"})
	assert.Equal(t, []string{"a", "b"}, ac.AttributeNames())

	a, ok := ac.Attribute("b")
	assert.True(t, ok)
	assert.Equal(t, "2", a.String())
	_, ok = ac.Attribute("c")
	assert.False(t, ok)
	assert.Equal(t, "", Attribute{}.String())
}

var layouts = fstest.MapFS{
	"layout.jsp": {Data: []byte(`<html><head><title>{{getAsString "title"}}</title></head>
<body><div id="body">{{insertAttribute "body"}}</div><div id="menu">{{insertAttribute "menu"}}</div></body></html>`)},
}

func TestLayoutRendersInIsolation(t *testing.T) {
	container := NewStubContainer(map[string]Attribute{
		"title": {Value: "Catalog"},
		"body":  {Value: "<p class=\"intro\">Welcome</p>", Renderer: "string"},
	})
	v := render.ForServlet(
		render.NewTemplateServlet(layouts, "layout.jsp", render.WithFuncs(Funcs)),
		Strategy{Container: container})
	v.Setup(t)

	page, err := v.Render()
	require.NoError(t, err)
	assert.Equal(t, "Catalog", page.Title())
	assert.Equal(t, []string{"Welcome"}, page.Texts("#body p.intro"))
	assert.Equal(t, "", page.ByID("menu").Text())

	got, ok := v.Request().Attribute(CurrentContainerAttribute).(Container)
	require.True(t, ok)
	assert.Same(t, container, got)
}

func TestLayoutWithoutContainer(t *testing.T) {
	v := render.ForServlet(render.NewTemplateServlet(layouts, "layout.jsp", render.WithFuncs(Funcs)))
	v.Setup(t)
	_, err := v.Render()
	var rerr *render.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "service", rerr.Op)
}

func TestContainerFrom(t *testing.T) {
	r, _ := http.NewRequest("GET", "http://localhost/", nil)
	_, ok := ContainerFrom(r)
	assert.False(t, ok)
}
