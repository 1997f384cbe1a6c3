// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Factory produces a fresh servlet.
type Factory func() Servlet

// jspNameReplacer maps a JSP path to the name the JSP compiler gives the
// generated servlet.
var jspNameReplacer = strings.NewReplacer(
	"_", "_005f",
	"-", "_002d",
	".", "_",
	"/", ".",
)

// ClassName returns the generated servlet name of the page jspName below
// basePackage. jspName normally starts with a slash which becomes the dot
// separating it from basePackage:
//     ClassName("/WEB-INF/jsp/hello_world.jsp", "org.apache.jsp")
//       == "org.apache.jsp.WEB_002dINF.jsp.hello_005fworld_jsp"
func ClassName(jspName, basePackage string) string {
	return basePackage + jspNameReplacer.Replace(jspName)
}

// Registry maps generated servlet names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry is used by the package level functions.
var DefaultRegistry = NewRegistry()

// Register makes f available under name. Registering a name twice panics.
func (r *Registry) Register(name string, f Factory) {
	if _, ok := r.factories[name]; ok {
		panic(fmt.Sprintf("Servlet with name %q already registered.", name))
	}
	r.factories[name] = f
}

// RegisterJSP registers f under the generated name of jspName and returns
// that name.
func (r *Registry) RegisterJSP(jspName, basePackage string, f Factory) string {
	name := ClassName(jspName, basePackage)
	r.Register(name, f)
	return name
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchServlet, name)
	}
	return f, nil
}

// Names returns the sorted names of all registered servlets.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// templateExt lists the file extensions RegisterTemplates compiles.
var templateExt = map[string]bool{
	".jsp":  true,
	".html": true,
	".tmpl": true,
}

// RegisterTemplates registers a TemplateServlet for every page template
// in fsys. The JSP name of a file is its slash rooted path in fsys.
func (r *Registry) RegisterTemplates(fsys fs.FS, basePackage string, opts ...TemplateOption) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !templateExt[path.Ext(p)] {
			return nil
		}
		file := p
		r.RegisterJSP("/"+p, basePackage, func() Servlet {
			return NewTemplateServlet(fsys, file, opts...)
		})
		return nil
	})
}

// ForJSP returns a WebView for the servlet generated from jspName.
func (r *Registry) ForJSP(jspName, basePackage string, strategies ...Strategy) (*WebView, error) {
	f, err := r.Lookup(ClassName(jspName, basePackage))
	if err != nil {
		return nil, err
	}
	return ForFactory(f, strategies...)
}

// Register registers f in the DefaultRegistry.
func Register(name string, f Factory) { DefaultRegistry.Register(name, f) }

// RegisterJSP registers f for jspName in the DefaultRegistry.
func RegisterJSP(jspName, basePackage string, f Factory) string {
	return DefaultRegistry.RegisterJSP(jspName, basePackage, f)
}

// RegisterTemplates registers the templates of fsys in the DefaultRegistry.
func RegisterTemplates(fsys fs.FS, basePackage string, opts ...TemplateOption) error {
	return DefaultRegistry.RegisterTemplates(fsys, basePackage, opts...)
}

// ForJSP returns a WebView for jspName from the DefaultRegistry.
func ForJSP(jspName, basePackage string, strategies ...Strategy) (*WebView, error) {
	return DefaultRegistry.ForJSP(jspName, basePackage, strategies...)
}
