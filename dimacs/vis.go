// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package dimacs

import "github.com/matthewsot/bitwuzla/z"

// Vis is a visitor for DIMACS CNF files.
type Vis interface {
	// Init is called once with the declared number of variables and
	// clauses if the input has a problem line.
	Init(vars, clauses int)

	// Add is called for each clause literal in order; z.LitNull
	// terminates a clause.
	Add(m z.Lit)

	// Eof is called once at end of input.
	Eof()
}
