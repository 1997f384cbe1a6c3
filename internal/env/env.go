// Copyright 2014 Volker Dobler.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env reads the environment switches of viewtest.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Browser returns the browser requested via VIEWTEST_BROWSER, lower cased.
// The empty string means the default static browser.
func Browser() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("VIEWTEST_BROWSER")))
}

// Debug reports whether debug logging was requested.
func Debug() bool {
	return os.Getenv("VIEWTEST_DEBUG") != ""
}

// Timeout returns the page load timeout from VIEWTEST_TIMEOUT in seconds.
func Timeout() (time.Duration, bool) {
	if s := os.Getenv("VIEWTEST_TIMEOUT"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil && i > 0 {
			return time.Duration(i) * time.Second, true
		}
	}
	return 0, false
}
