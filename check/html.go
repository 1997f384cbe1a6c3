// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/vdobler/viewtest/browser"
	"golang.org/x/net/html"
)

func init() {
	RegisterCheck(&HTMLTag{})
	RegisterCheck(&HTMLContains{})
	RegisterCheck(&HTMLAttr{})
	RegisterCheck(&Title{})
	RegisterCheck(StatusCode{})
}

// ----------------------------------------------------------------------------
// HTMLTag

// HTMLTag counts the elements matching Selector. A zero Count requires at
// least one, a negative Count none and a positive Count exactly that many.
type HTMLTag struct {
	Selector string
	Count    int `json:",omitempty"`

	sel cascadia.Selector
}

// Execute implements Check.
func (c *HTMLTag) Execute(p *browser.Page) error {
	if c.sel == nil {
		if err := c.Prepare(); err != nil {
			return err
		}
	}

	matches := c.sel.MatchAll(p.Root())

	switch {
	case c.Count < 0 && len(matches) > 0:
		return ErrFoundForbidden
	case c.Count == 0 && len(matches) == 0:
		return ErrNotFound
	case c.Count > 0:
		if len(matches) != c.Count {
			return WrongCount{Got: len(matches), Want: c.Count}
		}
	}

	return nil
}

// Prepare implements Preparable.
func (c *HTMLTag) Prepare() (err error) {
	c.sel, err = compile(c.Selector)
	return err
}

// ----------------------------------------------------------------------------
// HTMLContains

// HTMLContains requires each of Text to be the text content, as given by
// browser.TextContent, of one element matching Selector. A list rendered
// from a loop is checked with Selector "ul.items li" and the expected
// items in Text.
type HTMLContains struct {
	Selector string
	Text     []string `json:",omitempty"`

	Raw      bool `json:",omitempty"` // compare unnormalized text
	Complete bool `json:",omitempty"` // no elements beyond Text
	InOrder  bool `json:",omitempty"` // elements appear in the order of Text

	sel cascadia.Selector
}

var errTagNotFound = fmt.Errorf("tag not found")

// Execute implements Check.
func (c *HTMLContains) Execute(p *browser.Page) error {
	if c.sel == nil {
		if err := c.Prepare(); err != nil {
			return err
		}
	}

	matches := c.sel.MatchAll(p.Root())
	if len(matches) == 0 {
		return errTagNotFound
	}
	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = browser.TextContent(m, c.Raw)
	}

	from := 0
	for _, want := range c.Text {
		if !c.Raw {
			want = browser.NormalizeText(want)
		}
		i := indexFrom(texts, want, from)
		if i < 0 {
			return fmt.Errorf("missing %q, have %q", want, texts[from:])
		}
		if c.InOrder {
			from = i + 1
		}
	}

	if c.Complete && len(c.Text) != len(matches) {
		return WrongCount{Got: len(matches), Want: len(c.Text)}
	}
	return nil
}

// Prepare implements Preparable.
func (c *HTMLContains) Prepare() (err error) {
	c.sel, err = compile(c.Selector)
	return err
}

// indexFrom returns the index of the first s in list at or after from,
// or -1.
func indexFrom(list []string, s string, from int) int {
	for i := from; i < len(list); i++ {
		if list[i] == s {
			return i
		}
	}
	return -1
}

// ----------------------------------------------------------------------------
// HTMLAttr

// HTMLAttr checks the value of an attribute on all elements selected by
// Selector. Elements lacking the attribute fail the check.
type HTMLAttr struct {
	Selector  string
	Attribute string

	Condition

	sel cascadia.Selector
}

// Execute implements Check.
func (c *HTMLAttr) Execute(p *browser.Page) error {
	if c.sel == nil {
		if err := c.Prepare(); err != nil {
			return err
		}
	}
	matches := c.sel.MatchAll(p.Root())
	if len(matches) == 0 {
		return errTagNotFound
	}
	for i, m := range matches {
		v, ok := attr(m, c.Attribute)
		if !ok {
			return fmt.Errorf("element %d: attribute %s %w", i, c.Attribute, ErrNotFound)
		}
		if err := c.Fulfilled(v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Prepare implements Preparable.
func (c *HTMLAttr) Prepare() (err error) {
	if c.Attribute == "" {
		return MalformedCheck{Err: fmt.Errorf("missing attribute name")}
	}
	c.sel, err = compile(c.Selector)
	if err != nil {
		return err
	}
	return c.Compile()
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ----------------------------------------------------------------------------
// Title

// Title checks the normalized text of the page title.
type Title struct {
	Condition
}

// Execute implements Check.
func (c *Title) Execute(p *browser.Page) error {
	return c.Fulfilled(p.Title())
}

// Prepare implements Preparable.
func (c *Title) Prepare() error {
	return c.Compile()
}

// ----------------------------------------------------------------------------
// StatusCode

// StatusCode checks the status the servlet set on its response.
type StatusCode struct {
	// Expect is the expected status code; zero means 200.
	Expect int
}

// Execute implements Check.
func (c StatusCode) Execute(p *browser.Page) error {
	want := c.Expect
	if want == 0 {
		want = 200
	}
	if p.StatusCode != want {
		return fmt.Errorf("got %d, want %d", p.StatusCode, want)
	}
	return nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, MalformedCheck{Err: err}
	}
	return sel, nil
}
