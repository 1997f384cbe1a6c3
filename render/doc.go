// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render renders server side views in isolation.
//
// A view is a Servlet: it is initialized once with a Config, serves any
// number of requests and is destroyed at the end. Rendering builds a
// request from a mock Request and a mock Context, lets the servlet serve
// it into a recorder and returns what was written.
//
// Renderers
//
// Two renderers drive the lifecycle:
//     * ServletRenderer   returns the raw response
//     * WebView           loads the response into a browser and returns
//                         the parsed page for DOM assertions
// Both are started with Start (or Setup inside a test, which stops them
// when the test ends) and stopped with Stop. Attributes and parameters
// set on a renderer persist across renders:
//
//     v := render.ForServlet(servlet)
//     v.Setup(t)
//     v.AddRequestAttribute("user", alice)
//     v.AddRequestParameter("q", "shoes")
//     page, err := v.Render()
//
// Every failure, whether in Init, Service or while loading the page, is
// reported as an *Error. A panicking servlet yields an *Error wrapping a
// PanicError.
//
// Strategies
//
// A Strategy prepares the mocks for a view framework before the first
// render, e.g. tiles.Strategy installs a layout container.
//
// Page templates
//
// TemplateServlet compiles an html/template page into a servlet. Pages are
// registered in a Registry under the name a JSP compiler would give them,
// see ClassName, and looked up with ForJSP:
//
//     render.RegisterTemplates(pages, "org.apache.jsp")
//     v, err := render.ForJSP("/WEB-INF/jsp/hello_world.jsp", "org.apache.jsp")
//
// Environment
//
// VIEWTEST_BROWSER=chrome selects the headless Chrome browser for WebViews
// not configured with WithBrowser, VIEWTEST_TIMEOUT limits page loads to
// the given number of seconds and VIEWTEST_DEBUG enables debug logging.
package render
