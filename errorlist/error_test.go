// Copyright 2017 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errorlist

import (
	"bytes"
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

func TestAppend(t *testing.T) {
	var el List
	el = el.Append(nil)
	if el.AsError() != nil {
		t.Fatalf("empty list must be a nil error, got %v", el)
	}

	el = el.Append(errBoom)
	el = el.Append(List{errors.New("a"), errors.New("b")})
	el = el.Appendf("c%d", 1)
	if len(el) != 4 {
		t.Fatalf("got %d errors, want 4", len(el))
	}
	if got, want := el.Error(), "boom; a; b; c1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !el.Is(errBoom) {
		t.Errorf("Is(errBoom) = false")
	}
	if !errors.Is(el.AsError(), errBoom) {
		t.Errorf("errors.Is does not see errBoom")
	}
}

func TestAsStringsNested(t *testing.T) {
	el := List{List{errors.New("x"), List{errors.New("y")}}, errors.New("z")}
	got := el.AsStrings()
	if len(got) != 3 || got[0] != "x" || got[1] != "y" || got[2] != "z" {
		t.Errorf("got %q", got)
	}
}

func TestFprint(t *testing.T) {
	buf := &bytes.Buffer{}
	Fprint(buf, List{errors.New("x"), errors.New("y")})
	if got := buf.String(); got != "x\ny\n" {
		t.Errorf("got %q", got)
	}
	buf.Reset()
	Fprint(buf, nil)
	if buf.Len() != 0 {
		t.Errorf("nil error printed %q", buf.String())
	}
}
