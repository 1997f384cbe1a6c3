// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const greetPage = `<html><head><title>Hi {{param "name"}}</title></head>
<body><h1>{{attr "greeting"}} {{param "name"}}</h1><p>{{ctxattr "app"}}</p></body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

var runTests = []struct {
	args   []string
	checks string
	code   int
	stdout []string
	stderr []string
}{
	{
		args:   []string{"-param", "name=Bob", "-attr", "greeting=Hello", "-ctx", "app=shop"},
		stdout: []string{"Hi Bob", "Hello Bob shop"},
	},
	{
		args:   []string{"-param", "name=Bob", "-dump"},
		stdout: []string{"main.pageDump{", `"Hi Bob"`, "200"},
	},
	{
		args:   []string{"-param", "name=Bob"},
		checks: `[{"Check":"HTMLTag","Selector":"h1","Count":1},{"Check":"Title","Prefix":"Hi"}]`,
		stdout: []string{"PASS 2 checks"},
	},
	{
		args:   []string{"-param", "name=Bob"},
		checks: `[{"Check":"HTMLTag","Selector":"h2"},{"Check":"Title","Equals":"Bye"}]`,
		code:   1,
		stderr: []string{"FAIL", "HTMLTag:", "Title:"},
	},
	{
		args:   []string{"-param", "oops"},
		code:   2,
		stderr: []string{"name=value"},
	},
	{
		args:   []string{"-browser", "lynx"},
		code:   2,
		stderr: []string{"unknown browser"},
	},
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "greet.jsp", greetPage)

	for i, tc := range runTests {
		args := append([]string{}, tc.args...)
		if tc.checks != "" {
			args = append(args, "-checks", writeFile(t, dir, "checks.json", tc.checks))
		}
		args = append(args, page)

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		code := run(context.Background(), args, stdout, stderr)
		if code != tc.code {
			t.Errorf("%d. exit code %d, want %d; stderr: %s", i, code, tc.code, stderr)
			continue
		}
		for _, want := range tc.stdout {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("%d. stdout lacks %q:\n%s", i, want, stdout)
			}
		}
		for _, want := range tc.stderr {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("%d. stderr lacks %q:\n%s", i, want, stderr)
			}
		}
	}
}

func TestRunNoPage(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	if code := run(context.Background(), nil, stdout, stderr); code != 2 {
		t.Errorf("got exit code %d", code)
	}
	if !strings.Contains(stderr.String(), "usage: viewrender") {
		t.Errorf("no usage printed: %s", stderr)
	}
}
