// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// AttributeSetter is the part of a renderer a Strategy may touch.
// ServletRenderer and WebView implement it.
type AttributeSetter interface {
	AddContextAttribute(name string, value interface{})
	AddRequestAttribute(name string, value interface{})
	AddRequestParameter(name, value string)
}

// Strategy prepares a renderer for a certain framework, e.g. by putting
// framework state into the request before anything is rendered.
type Strategy interface {
	Apply(AttributeSetter)
}

// StrategyFunc adapts a function to a Strategy.
type StrategyFunc func(AttributeSetter)

// Apply implements Strategy.
func (f StrategyFunc) Apply(s AttributeSetter) { f(s) }
