// Copyright 2015 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is the cause of rendering before Start.
	ErrNotStarted = errors.New("servlet not started")

	// ErrDestroyed is the cause of using a renderer after Stop.
	ErrDestroyed = errors.New("servlet destroyed")

	// ErrNoSuchServlet is returned when a Registry lookup fails.
	ErrNoSuchServlet = errors.New("no such servlet")
)

// Error is the one kind of failure returned by renderers. Whatever went
// wrong while initializing, servicing or loading the page is kept in Err.
type Error struct {
	Op      string // "init", "service", "load" or "destroy"
	Servlet string // Servlet is the servlet's name.
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render: %s %s: %s", e.Op, e.Servlet, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PanicError is the cause of an Error if the servlet panicked.
type PanicError struct {
	Value interface{}
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// safely calls f turning a panic into a PanicError.
func safely(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r}
		}
	}()
	return f()
}
