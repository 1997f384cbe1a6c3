// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tiles lets views built on a Tiles style layout container render
// in isolation.
//
// Such views look up the current container in a request attribute and ask
// it for the attribute context of the current definition. Strategy puts a
// container there before rendering, by default a StubContainer whose
// attribute context is empty:
//
//     v := render.ForServlet(layoutServlet, tiles.Strategy{})
//
// Prefilled attributes can be provided with NewStubContainer.
package tiles

import (
	"fmt"
	"html/template"
	"net/http"
	"sort"

	"github.com/vdobler/viewtest/render"
)

// CurrentContainerAttribute is the request attribute holding the
// current Container.
const CurrentContainerAttribute = "org.apache.tiles.servlet.context.ServletUtil.CURRENT_CONTAINER_KEY"

// Attribute is one named piece of a layout: a string, a template name or
// a definition name, depending on Renderer.
type Attribute struct {
	Value    interface{}
	Renderer string // "string", "template" or "definition"
	Role     string
}

// String returns the attribute value formatted with %v.
func (a Attribute) String() string {
	if a.Value == nil {
		return ""
	}
	return fmt.Sprint(a.Value)
}

// AttributeContext holds the attributes of the definition being rendered.
type AttributeContext interface {
	Attribute(name string) (Attribute, bool)
	PutAttribute(name string, a Attribute)
	AttributeNames() []string
}

// Container is the layout container views talk to.
type Container interface {
	// AttributeContext returns the attribute context for the request
	// described by requestItems.
	AttributeContext(requestItems ...interface{}) AttributeContext
}

// BasicAttributeContext is a map backed AttributeContext.
type BasicAttributeContext struct {
	attrs map[string]Attribute
}

// NewAttributeContext returns a context holding attrs.
func NewAttributeContext(attrs map[string]Attribute) *BasicAttributeContext {
	c := &BasicAttributeContext{attrs: make(map[string]Attribute, len(attrs))}
	for name, a := range attrs {
		c.attrs[name] = a
	}
	return c
}

// Attribute implements AttributeContext.
func (c *BasicAttributeContext) Attribute(name string) (Attribute, bool) {
	a, ok := c.attrs[name]
	return a, ok
}

// PutAttribute implements AttributeContext.
func (c *BasicAttributeContext) PutAttribute(name string, a Attribute) {
	c.attrs[name] = a
}

// AttributeNames implements AttributeContext.
func (c *BasicAttributeContext) AttributeNames() []string {
	names := make([]string, 0, len(c.attrs))
	for name := range c.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StubContainer answers every AttributeContext call with the same context.
type StubContainer struct {
	Context AttributeContext
}

// NewStubContainer returns a StubContainer whose context holds attrs.
func NewStubContainer(attrs map[string]Attribute) *StubContainer {
	return &StubContainer{Context: NewAttributeContext(attrs)}
}

// AttributeContext implements Container.
func (c *StubContainer) AttributeContext(...interface{}) AttributeContext {
	return c.Context
}

// Strategy puts Container, or an empty StubContainer if nil, into the
// request under CurrentContainerAttribute.
type Strategy struct {
	Container Container
}

// Apply implements render.Strategy.
func (s Strategy) Apply(r render.AttributeSetter) {
	c := s.Container
	if c == nil {
		c = NewStubContainer(nil)
	}
	r.AddRequestAttribute(CurrentContainerAttribute, c)
}

// ContainerFrom returns the current container of r.
func ContainerFrom(r *http.Request) (Container, bool) {
	c, ok := render.RequestAttribute(r, CurrentContainerAttribute).(Container)
	return c, ok
}

// Funcs provides the template functions
//     getAsString NAME       the string value of attribute NAME
//     insertAttribute NAME   the attribute NAME as HTML, empty if missing
// for render.WithFuncs. Both fail if r carries no container.
func Funcs(r *http.Request) template.FuncMap {
	lookup := func(name string) (Attribute, bool, error) {
		c, ok := ContainerFrom(r)
		if !ok {
			return Attribute{}, false, fmt.Errorf("tiles: no container in request")
		}
		a, found := c.AttributeContext(r).Attribute(name)
		return a, found, nil
	}
	return template.FuncMap{
		"getAsString": func(name string) (string, error) {
			a, found, err := lookup(name)
			if err != nil {
				return "", err
			}
			if !found {
				return "", fmt.Errorf("tiles: attribute %q not found", name)
			}
			return a.String(), nil
		},
		"insertAttribute": func(name string) (template.HTML, error) {
			a, _, err := lookup(name)
			if err != nil {
				return "", err
			}
			return template.HTML(a.String()), nil
		},
	}
}
