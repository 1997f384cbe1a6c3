// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check asserts properties of a rendered page's DOM.
//
//     err := check.Run(page,
//         &check.HTMLTag{Selector: "form#login input[type=password]", Count: 1},
//         &check.HTMLTag{Selector: "p.error", Count: -1},
//         &check.Title{Condition: check.Condition{Prefix: "Sign in"}},
//     )
//
// Checks compare normalized page text, so the indentation of a view does
// not leak into the assertions. Failures of all checks are collected into
// one errorlist.List. Checks can be stored as JSON, see CheckList.
package check

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/vdobler/viewtest/browser"
	"github.com/vdobler/viewtest/errorlist"
)

// Check is one assertion on a page.
type Check interface {
	Execute(*browser.Page) error
}

// Preparable checks compile selectors or patterns before the first
// Execute. Run reports a failing Prepare as the check's failure.
type Preparable interface {
	Prepare() error
}

// NameOf returns the name of the type of inst.
func NameOf(inst interface{}) string {
	typ := reflect.TypeOf(inst)
	if typ == nil {
		return "<nil>"
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Name()
}

// Run prepares and executes all checks against page. All failures are
// collected; the result is nil if every check passed.
func Run(page *browser.Page, checks ...Check) error {
	var el errorlist.List
	for _, c := range checks {
		if p, ok := c.(Preparable); ok {
			if err := p.Prepare(); err != nil {
				el = el.Append(fmt.Errorf("%s: %w", NameOf(c), err))
				continue
			}
		}
		if err := c.Execute(page); err != nil {
			el = el.Append(fmt.Errorf("%s: %w", NameOf(c), err))
		}
	}
	return el.AsError()
}

// ----------------------------------------------------------------------------
// Check Registry

// CheckRegistry maps check names, as used in the "Check" field of JSON
// check files, to their types.
var CheckRegistry = make(map[string]reflect.Type)

// RegisterCheck makes check loadable from JSON under its type name.
func RegisterCheck(check Check) {
	name := NameOf(check)
	typ := reflect.TypeOf(check)
	if _, ok := CheckRegistry[name]; ok {
		panic(fmt.Sprintf("Check with name %q already registered.", name))
	}
	CheckRegistry[name] = typ
}

// ----------------------------------------------------------------------------
// Errors

var (
	ErrNotFound       = errors.New("not found")
	ErrFoundForbidden = errors.New("found forbidden")
)

// CantCheck reports a page the check cannot be applied to.
type CantCheck struct {
	Err error
}

func (m CantCheck) Error() string {
	return fmt.Sprintf("cannot do check: %s", m.Err.Error())
}

func (m CantCheck) Unwrap() error { return m.Err }

// WrongCount reports a wrong number of elements or matches.
type WrongCount struct {
	Got, Want int
}

func (m WrongCount) Error() string {
	return fmt.Sprintf("found %d, want %d", m.Got, m.Want)
}

// MalformedCheck reports a bad selector, pattern or missing field.
type MalformedCheck struct {
	Err error
}

func (m MalformedCheck) Error() string {
	return fmt.Sprintf("malformed check: %s", m.Err.Error())
}

func (m MalformedCheck) Unwrap() error { return m.Err }

// ----------------------------------------------------------------------------
// CheckList

// CheckList is the JSON form of a list of checks, as read by viewrender
// -checks:
//     [{"Check": "HTMLTag", "Selector": "h1", "Count": 1},
//      {"Check": "Title", "Prefix": "Shop"}]
type CheckList []Check

// MarshalJSON writes each check as an object tagged with its "Check" name.
func (cl CheckList) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteRune('[')
	for i, check := range cl {
		raw, err := json.Marshal(check)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`{"Check":"`)
		buf.WriteString(NameOf(check))
		buf.WriteByte('"')
		if string(raw) != "{}" {
			buf.WriteRune(',')
			buf.Write(raw[1 : len(raw)-1])
		}
		buf.WriteRune('}')
		if i < len(cl)-1 {
			buf.WriteString(", ")
		}
	}
	buf.WriteRune(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes registered checks.
func (cl *CheckList) UnmarshalJSON(data []byte) error {
	raw := []json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, c := range raw {
		u := struct{ Check string }{}
		if err := json.Unmarshal(c, &u); err != nil {
			return err
		}
		typ, ok := CheckRegistry[u.Check]
		if !ok {
			return fmt.Errorf("check %d: no such check %q", i, u.Check)
		}
		elem := typ
		if typ.Kind() == reflect.Ptr {
			elem = typ.Elem()
		}
		ptr := reflect.New(elem)
		if err := json.Unmarshal(c, ptr.Interface()); err != nil {
			return fmt.Errorf("check %d (%s): %w", i, u.Check, err)
		}
		check := ptr
		if typ.Kind() != reflect.Ptr {
			check = ptr.Elem()
		}
		*cl = append(*cl, check.Interface().(Check))
	}
	return nil
}
