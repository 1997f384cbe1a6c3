// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"

	"github.com/vdobler/viewtest/response"
)

// ServletRenderer services a servlet and hands out its raw response.
//
// Typical use in a test:
//     r := render.NewServletRenderer(myServlet)
//     r.Setup(t)
//     r.AddRequestParameter("id", "42")
//     resp, err := r.Render()
type ServletRenderer struct {
	lifecycle
}

// NewServletRenderer returns a renderer for s. Strategies given as options
// are applied before it is returned.
func NewServletRenderer(s Servlet, opts ...Option) *ServletRenderer {
	r := &ServletRenderer{lifecycle: newLifecycle(s, opts)}
	r.applyStrategies(r)
	return r
}

// Render services the servlet once.
func (r *ServletRenderer) Render() (*response.Response, error) {
	return r.RenderContext(context.Background())
}

// RenderContext services the servlet once with a request carrying ctx.
func (r *ServletRenderer) RenderContext(ctx context.Context) (*response.Response, error) {
	return r.service(ctx)
}
