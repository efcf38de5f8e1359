// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"fmt"
	"os"
)

// abortFn is the process-wide hook invoked on unrecoverable
// precondition failures inside the core.  It must be installed
// before any solving goroutines are created.
var abortFn = func(msg string) {
	fmt.Fprintf(os.Stderr, "[error] %s\n", msg)
	os.Exit(1)
}

// SetAbortCallback replaces the process-wide abort hook.  The
// default terminates the process.
func SetAbortCallback(f func(msg string)) {
	if f != nil {
		abortFn = f
	}
}

func abort(format string, args ...interface{}) {
	abortFn(fmt.Sprintf(format, args...))
}
