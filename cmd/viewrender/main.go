// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// viewrender renders a page template in isolation and prints the result.
//
// Usage:
//
//     viewrender [flags] <page.jsp>
//
// The page is executed as a TemplateServlet with the request parameters,
// request attributes and context attributes given on the command line and
// loaded into the selected browser. Checks read from a JSON file are run
// against the page; viewrender exits with 1 if one fails.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/kr/pretty"

	"github.com/vdobler/viewtest/browser"
	"github.com/vdobler/viewtest/check"
	"github.com/vdobler/viewtest/errorlist"
	"github.com/vdobler/viewtest/render"
	"github.com/vdobler/viewtest/tiles"
)

// cmdlVar captures name=value pairs settable on the command line.
// For this cmdlVar satisfies the flag.Value interface.
type cmdlVar map[string]string

func (v cmdlVar) String() string { return "" }
func (v cmdlVar) Set(s string) error {
	part := strings.SplitN(s, "=", 2)
	if len(part) != 2 {
		return fmt.Errorf("Bad argument '%s', want name=value", s)
	}
	v[part[0]] = part[1]
	return nil
}

// cmdlList collects repeated string flags.
type cmdlList []string

func (l *cmdlList) String() string { return "" }
func (l *cmdlList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// options are the parsed command line.
type options struct {
	params, attrs, ctx cmdlVar
	partials           cmdlList
	url                string
	browser            string
	checks             string
	dump               bool
	tiles              bool
	verbose            bool
	page               string
}

func parse(args []string, stderr io.Writer) (*options, error) {
	o := &options{params: cmdlVar{}, attrs: cmdlVar{}, ctx: cmdlVar{}}
	fs := flag.NewFlagSet("viewrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(o.params, "param", "set request parameter `name=value`")
	fs.Var(o.attrs, "attr", "set request attribute `name=value`")
	fs.Var(o.ctx, "ctx", "set servlet context attribute `name=value`")
	fs.Var(&o.partials, "partials", "also parse templates matching `glob`, relative to the page")
	fs.StringVar(&o.url, "url", render.DefaultURL, "render the page for `URL`")
	fs.StringVar(&o.browser, "browser", "static", "load the page with `browser` (static or chrome)")
	fs.StringVar(&o.checks, "checks", "", "run the checks in `file.json`")
	fs.BoolVar(&o.dump, "dump", false, "dump the loaded page")
	fs.BoolVar(&o.tiles, "tiles", false, "install an empty tiles container")
	fs.BoolVar(&o.verbose, "v", false, "log render steps")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: viewrender [flags] <page>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("need exactly one page, got %d", fs.NArg())
	}
	o.page = fs.Arg(0)
	return o, nil
}

func (o *options) browserImpl() (browser.Browser, error) {
	switch o.browser {
	case "", "static":
		return browser.Static{}, nil
	case "chrome":
		return &browser.Chrome{}, nil
	}
	return nil, fmt.Errorf("unknown browser %q", o.browser)
}

func loadChecks(filename string) (check.CheckList, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var cl check.CheckList
	if err := json.Unmarshal(data, &cl); err != nil {
		return nil, fmt.Errorf("cannot read checks from %s: %w", filename, err)
	}
	return cl, nil
}

// pageDump is what -dump prints.
type pageDump struct {
	URL        string
	StatusCode int
	Header     map[string][]string
	Title      string
	Text       string
}

// run executes viewrender and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parse(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	b, err := o.browserImpl()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := slog.Make(sloghuman.Sink(stderr)).Leveled(slog.LevelWarn)
	if o.verbose {
		logger = logger.Leveled(slog.LevelDebug)
	}

	dir, file := filepath.Split(o.page)
	if dir == "" {
		dir = "."
	}
	servlet := render.NewTemplateServlet(os.DirFS(dir), file,
		render.WithPartials(o.partials...), render.WithFuncs(tiles.Funcs))
	opts := []render.Option{
		render.WithURL(o.url),
		render.WithBrowser(b),
		render.WithLogger(logger),
	}
	if o.tiles {
		opts = append(opts, render.WithStrategies(tiles.Strategy{}))
	}
	v := render.New(servlet, opts...)
	if err := v.Start(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer v.Stop()
	for k, val := range o.ctx {
		v.AddContextAttribute(k, val)
	}
	for k, val := range o.attrs {
		v.AddRequestAttribute(k, val)
	}
	for k, val := range o.params {
		v.AddRequestParameter(k, val)
	}

	page, err := v.RenderContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if o.dump {
		pretty.Fprintf(stdout, "%# v\n", pageDump{
			URL:        page.URL.String(),
			StatusCode: page.StatusCode,
			Header:     page.Header,
			Title:      page.Title(),
			Text:       browser.TextContent(page.Root(), false),
		})
	} else {
		fmt.Fprintf(stdout, "%s\n%s\n", page.Title(), browser.TextContent(page.Root(), false))
	}

	if o.checks == "" {
		return 0
	}
	cl, err := loadChecks(o.checks)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := check.Run(page, cl...); err != nil {
		fmt.Fprintf(stderr, "FAIL %s\n", o.page)
		errorlist.Fprint(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "PASS %d checks\n", len(cl))
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
