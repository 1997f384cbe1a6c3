// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vdobler/viewtest/browser"
)

// Condition is a conjunction of tests against a piece of page text such as
// a title or an attribute value.
//
// Unless Raw is set the text and the expected strings are normalized like
// browser.TextContent does: white space is collapsed and trimmed and the
// result is put into Unicode normal form C. A view which indents its title
// over three lines or emits decomposed accents still equals "Café au lait".
// Min and Max count characters, not bytes.
type Condition struct {
	// Equals is the exact text. The other tests are skipped if set.
	Equals string `json:",omitempty"`

	Prefix   string `json:",omitempty"`
	Suffix   string `json:",omitempty"`
	Contains string `json:",omitempty"`
	Regexp   string `json:",omitempty"`

	// Count applies to Contains and Regexp:
	//     0: at least one match
	//   > 0: exactly that many matches
	//   < 0: no match at all
	Count int `json:",omitempty"`

	// Min and Max bound the length in characters; zero disables.
	Min, Max int `json:",omitempty"`

	// Raw compares the text as found in the page.
	Raw bool `json:",omitempty"`

	tests []func(string) error
}

// Compile prepares the tests of c. A malformed Regexp is reported as
// MalformedCheck.
func (c *Condition) Compile() error {
	norm := c.normalize
	c.tests = c.tests[:0]
	if c.Equals != "" {
		want := norm(c.Equals)
		c.tests = append(c.tests, func(s string) error {
			if s != want {
				return fmt.Errorf("unequal, was %q", excerpt(s, utf8.RuneCountInString(want)+10))
			}
			return nil
		})
		return nil
	}

	if c.Prefix != "" {
		want := norm(c.Prefix)
		c.tests = append(c.tests, func(s string) error {
			if !strings.HasPrefix(s, want) {
				return fmt.Errorf("bad prefix, got %q", excerpt(s, utf8.RuneCountInString(want)))
			}
			return nil
		})
	}
	if c.Suffix != "" {
		want := norm(c.Suffix)
		c.tests = append(c.tests, func(s string) error {
			if !strings.HasSuffix(s, want) {
				return fmt.Errorf("bad suffix, got %q", tail(s, utf8.RuneCountInString(want)))
			}
			return nil
		})
	}
	if c.Contains != "" {
		want := norm(c.Contains)
		c.tests = append(c.tests, c.counting(func(s string) int {
			return strings.Count(s, want)
		}))
	}
	if c.Regexp != "" {
		re, err := regexp.Compile(c.Regexp)
		if err != nil {
			c.tests = nil
			return MalformedCheck{Err: err}
		}
		c.tests = append(c.tests, c.counting(func(s string) int {
			return len(re.FindAllStringIndex(s, -1))
		}))
	}
	if c.Min > 0 || c.Max > 0 {
		c.tests = append(c.tests, func(s string) error {
			n := utf8.RuneCountInString(s)
			if c.Min > 0 && n < c.Min {
				return fmt.Errorf("too short, was %d characters", n)
			}
			if c.Max > 0 && n > c.Max {
				return fmt.Errorf("too long, was %d characters", n)
			}
			return nil
		})
	}
	return nil
}

// counting turns a match counter into a test honouring Count.
func (c *Condition) counting(matches func(string) int) func(string) error {
	return func(s string) error {
		n := matches(s)
		switch {
		case c.Count == 0 && n == 0:
			return ErrNotFound
		case c.Count < 0 && n > 0:
			return ErrFoundForbidden
		case c.Count > 0 && n != c.Count:
			return WrongCount{Got: n, Want: c.Count}
		}
		return nil
	}
}

func (c *Condition) normalize(s string) string {
	if c.Raw {
		return s
	}
	return browser.NormalizeText(s)
}

// Fulfilled returns nil if s passes all tests of c.
func (c *Condition) Fulfilled(s string) error {
	if c.tests == nil {
		if err := c.Compile(); err != nil {
			return err
		}
	}
	s = c.normalize(s)
	for _, test := range c.tests {
		if err := test(s); err != nil {
			return err
		}
	}
	return nil
}

// excerpt returns the first n characters of s, marked if cut.
func excerpt(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	end := len(s)
	for ; n > 0 && end > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}
