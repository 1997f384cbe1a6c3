// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorlist contains a type to collect the failures of several
// independent steps, e.g. all failing checks on a rendered page.
package errorlist

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// List is a collection of errors.
type List []error

// Append err to el. Nested Lists are flattened, nil errors are dropped.
func (el List) Append(err error) List {
	if err == nil {
		return el
	}
	if list, ok := err.(List); ok {
		return append(el, list...)
	}
	return append(el, err)
}

// Appendf appends a formatted error to el.
func (el List) Appendf(format string, a ...interface{}) List {
	return append(el, fmt.Errorf(format, a...))
}

// Error implements the Error method of error.
func (el List) Error() string {
	return strings.Join(el.AsStrings(), "; ")
}

// AsError returns el properly returning nil for a empty el.
func (el List) AsError() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// AsStrings returns the error list as as string slice.
func (el List) AsStrings() []string {
	s := []string{}
	for _, e := range el {
		if nel, ok := e.(List); ok {
			s = append(s, nel.AsStrings()...)
		} else {
			s = append(s, e.Error())
		}
	}
	return s
}

// Is reports whether any error in el matches target.
func (el List) Is(target error) bool {
	for _, e := range el {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

// Fprint writes err to w. If err is a List it prints one line per error.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	if el, ok := err.(List); ok {
		for _, msg := range el.AsStrings() {
			fmt.Fprintln(w, msg)
		}
	} else {
		fmt.Fprintln(w, err.Error())
	}
}
