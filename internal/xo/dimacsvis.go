// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import "github.com/matthewsot/bitwuzla/z"

// DimacsVis builds a solver from a DIMACS CNF stream.  It implements
// dimacs.Vis.
type DimacsVis struct {
	s *S
}

// Init sizes the solver from the problem line.
func (d *DimacsVis) Init(vars, clauses int) {
	d.s = NewSVc(vars+1, clauses+1)
}

// Add streams one clause literal; LitNull terminates the clause.
func (d *DimacsVis) Add(m z.Lit) {
	if d.s == nil {
		d.s = NewS()
	}
	d.s.Add(m)
}

// Eof implements dimacs.Vis.
func (d *DimacsVis) Eof() {}

// S returns the constructed solver.
func (d *DimacsVis) S() *S {
	if d.s == nil {
		d.s = NewS()
	}
	return d.s
}
