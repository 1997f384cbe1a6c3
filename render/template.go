// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
)

// FuncsFor returns template functions bound to r. It is called once with
// a nil request when the template is parsed to learn the function names;
// the returned functions are then never called.
type FuncsFor func(r *http.Request) template.FuncMap

// TemplateOption configures a TemplateServlet.
type TemplateOption func(*TemplateServlet)

// WithFuncs adds request bound template functions.
func WithFuncs(f FuncsFor) TemplateOption {
	return func(s *TemplateServlet) { s.funcs = append(s.funcs, f) }
}

// WithPartials parses the files matching patterns in the servlet's file
// system along with the page, e.g. shared layouts or includes.
func WithPartials(patterns ...string) TemplateOption {
	return func(s *TemplateServlet) { s.partials = append(s.partials, patterns...) }
}

// TemplateServlet is a page template compiled into a servlet. The template
// is parsed on Init and executed on every Service with a *View as data.
//
// Besides View's methods these functions are available:
//     attr NAME      the request attribute NAME
//     param NAME     the first value of request parameter NAME
//     ctxattr NAME   the servlet context attribute NAME
type TemplateServlet struct {
	fsys     fs.FS
	file     string
	funcs    []FuncsFor
	partials []string

	tmpl   *template.Template
	config *Config
}

// NewTemplateServlet returns a servlet for the template file in fsys.
func NewTemplateServlet(fsys fs.FS, file string, opts ...TemplateOption) *TemplateServlet {
	s := &TemplateServlet{fsys: fsys, file: file}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View is the data a TemplateServlet's template is executed with.
type View struct {
	Request *http.Request
	Config  *Config
}

// Attr returns the named request attribute.
func (v *View) Attr(name string) interface{} { return RequestAttribute(v.Request, name) }

// Param returns the first value of the named request parameter.
func (v *View) Param(name string) string { return v.Request.FormValue(name) }

// Params returns all values of the named request parameter. A malformed
// query or form body fails the template.
func (v *View) Params(name string) ([]string, error) {
	if err := v.Request.ParseForm(); err != nil {
		return nil, err
	}
	return v.Request.Form[name], nil
}

// ContextAttr returns the named servlet context attribute.
func (v *View) ContextAttr(name string) interface{} {
	if v.Config == nil || v.Config.Context == nil {
		return nil
	}
	return v.Config.Context.Attribute(name)
}

func (s *TemplateServlet) funcMap(r *http.Request) template.FuncMap {
	v := &View{Request: r, Config: s.config}
	fm := template.FuncMap{
		"attr":    v.Attr,
		"param":   v.Param,
		"ctxattr": v.ContextAttr,
	}
	for _, f := range s.funcs {
		for name, fn := range f(r) {
			fm[name] = fn
		}
	}
	return fm
}

// Init implements Servlet.
func (s *TemplateServlet) Init(config *Config) error {
	s.config = config
	patterns := append([]string{s.file}, s.partials...)
	t, err := template.New(path.Base(s.file)).Funcs(s.funcMap(nil)).ParseFS(s.fsys, patterns...)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.file, err)
	}
	s.tmpl = t
	return nil
}

// Service implements Servlet. The page is executed into a buffer so that
// a failing template leaves the response untouched.
func (s *TemplateServlet) Service(w http.ResponseWriter, r *http.Request) error {
	if s.tmpl == nil {
		return errors.New("template servlet not initialized")
	}
	t, err := s.tmpl.Clone()
	if err != nil {
		return err
	}
	t.Funcs(s.funcMap(r))

	buf := &bytes.Buffer{}
	if err := t.ExecuteTemplate(buf, path.Base(s.file), &View{Request: r, Config: s.config}); err != nil {
		return err
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	_, err = buf.WriteTo(w)
	return err
}

// Destroy implements Servlet.
func (s *TemplateServlet) Destroy() {
	s.tmpl = nil
	s.config = nil
}
