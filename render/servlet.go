// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"net/http"
	"reflect"
	"sort"
)

// Servlet is a unit of server side rendering with a three step lifecycle:
// Init is called once, Service once per rendering and Destroy once at the
// end.
type Servlet interface {
	// Init prepares the servlet. config stays valid until Destroy.
	Init(config *Config) error

	// Service renders one request.
	Service(w http.ResponseWriter, r *http.Request) error

	// Destroy releases everything acquired in Init.
	Destroy()
}

// HandlerServlet adapts a http.Handler. Init and Destroy do nothing.
type HandlerServlet struct {
	Handler http.Handler
}

// Init implements Servlet.
func (HandlerServlet) Init(*Config) error { return nil }

// Service implements Servlet.
func (h HandlerServlet) Service(w http.ResponseWriter, r *http.Request) error {
	h.Handler.ServeHTTP(w, r)
	return nil
}

// Destroy implements Servlet.
func (HandlerServlet) Destroy() {}

// ServletFunc adapts an ordinary function. Init and Destroy do nothing.
type ServletFunc func(w http.ResponseWriter, r *http.Request) error

// Init implements Servlet.
func (ServletFunc) Init(*Config) error { return nil }

// Service implements Servlet.
func (f ServletFunc) Service(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Destroy implements Servlet.
func (ServletFunc) Destroy() {}

// Config is handed to Servlet.Init.
type Config struct {
	// ServletName defaults to the name of the servlet's type.
	ServletName string

	// Context is shared by all renderings of the servlet.
	Context *Context

	InitParams map[string]string
}

// InitParameter returns the named servlet init parameter. Servlet init
// parameters take precedence over the context's.
func (c *Config) InitParameter(name string) string {
	if v, ok := c.InitParams[name]; ok {
		return v
	}
	if c.Context != nil {
		return c.Context.InitParameter(name)
	}
	return ""
}

// Context is the in-memory application context of a servlet. It holds
// named attributes and init parameters.
type Context struct {
	attrs      map[string]interface{}
	initParams map[string]string
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		attrs:      make(map[string]interface{}),
		initParams: make(map[string]string),
	}
}

// SetAttribute binds value to name. A nil value removes the attribute.
func (c *Context) SetAttribute(name string, value interface{}) {
	if value == nil {
		delete(c.attrs, name)
		return
	}
	c.attrs[name] = value
}

// Attribute returns the named attribute or nil.
func (c *Context) Attribute(name string) interface{} {
	return c.attrs[name]
}

// RemoveAttribute removes the named attribute.
func (c *Context) RemoveAttribute(name string) {
	delete(c.attrs, name)
}

// AttributeNames returns the sorted names of all attributes.
func (c *Context) AttributeNames() []string {
	return sortedKeys(c.attrs)
}

// SetInitParameter sets a context init parameter.
func (c *Context) SetInitParameter(name, value string) {
	c.initParams[name] = value
}

// InitParameter returns the named context init parameter.
func (c *Context) InitParameter(name string) string {
	return c.initParams[name]
}

func sortedKeys(m map[string]interface{}) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nameOf returns the name of the type of inst.
func nameOf(inst interface{}) string {
	typ := reflect.TypeOf(inst)
	if typ == nil {
		return "<nil>"
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Name()
}
