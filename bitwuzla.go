// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package bitwuzla exposes the built-in incremental SAT backend the
// rest of the solver core is built on top of, plus the small set of
// free functions (NewDimacs) that only make sense at the root.
//
// The theory layer — terms, sorts, bit-vector and floating-point
// values, the rewriter, the preprocessor and the SolvingContext that
// ties them together — lives in the sibling packages node, bv, fp, rw,
// pp, theory and engine; api wraps engine with the opaque Sort/Term
// handles and the SMT-LIB printer.  Backend here is the concrete
// solver those packages bit-blast into: a from-scratch incremental
// CDCL engine (internal/xo) behind an AIG/CNF front end (logic,
// dimacs).
package bitwuzla

import (
	"io"

	"github.com/matthewsot/bitwuzla/dimacs"
	"github.com/matthewsot/bitwuzla/inter"
	"github.com/matthewsot/bitwuzla/internal/xo"
	"github.com/matthewsot/bitwuzla/z"
)

// Backend is the built-in SAT backend: add/assume/solve/value/failed
// over an incremental CDCL core, usable standalone at the CNF level
// or as the default engine the bit-blast solver (package blast)
// drives.
type Backend struct {
	xo *xo.S
}

func newBackendXo(x *xo.S) *Backend {
	return &Backend{xo: x}
}

// New creates a new Backend.
func New() *Backend {
	return &Backend{xo: xo.NewS()}
}

// NewDimacs creates a new Backend pre-loaded from DIMACS CNF input,
// the interchange format the crisp protocol tooling uses to exchange
// pure-SAT problems.
func NewDimacs(r io.Reader) (*Backend, error) {
	vis := &xo.DimacsVis{}
	if e := dimacs.ReadCnf(r, vis); e != nil {
		return nil, e
	}
	return &Backend{xo: vis.S()}, nil
}

// NewV creates a new Backend with a capacity hint of capHint variables.
func NewV(capHint int) *Backend {
	return &Backend{xo: xo.NewSV(capHint)}
}

// NewVc creates a new Backend with capacity hints for both variables
// and clauses.
func NewVc(vCapHint, cCapHint int) *Backend {
	return &Backend{xo: xo.NewSVc(vCapHint, cCapHint)}
}

// Copy makes a copy of b.
//
// Every bit of b is copied except:
//
//  1. Statistics for reporting, which are reset instead of copied.
//  2. Control mechanisms for in-flight GoSolve() calls, so the copy can
//     make its own calls to GoSolve/Solve without affecting the
//     original.
func (b *Backend) Copy() *Backend {
	return &Backend{xo: b.xo.Copy()}
}

// SCopy implements inter.S.
func (b *Backend) SCopy() inter.S {
	return b.Copy()
}

// MaxVar returns the variable with the highest id ever added.
func (b *Backend) MaxVar() z.Var {
	return b.xo.Vars.Max
}

// Lit implements inter.Liter, returning the positive literal of a
// fresh variable.
func (b *Backend) Lit() z.Lit {
	return b.xo.Lit()
}

// Add implements inter.Adder. To add a clause (x ∨ y ∨ z):
//
//	b.Add(x)
//	b.Add(y)
//	b.Add(z)
//	b.Add(0)
func (b *Backend) Add(m z.Lit) {
	b.xo.Add(m)
}

// Assume causes the solver to assume m is true for the next call to
// Solve or Test.  Solve always consumes and forgets untested
// assumptions; tested assumptions are remembered until popped with
// Untest.
func (b *Backend) Assume(ms ...z.Lit) {
	b.xo.Assume(ms...)
}

// Solve solves the constraints, returning 1 for SAT, -1 for UNSAT
// and 0 if the solve was cancelled.
func (b *Backend) Solve() int {
	return b.xo.Solve()
}

// GoSolve hands back a handle to a Solve running in its own goroutine.
func (b *Backend) GoSolve() inter.Solve {
	return b.xo.GoSolve()
}

// Value returns the truth value of literal m in the model of the most
// recent SAT result.  Undefined if the last result was not SAT.
func (b *Backend) Value(m z.Lit) bool {
	return b.xo.Vars.Vals[m] == 1
}

// Why returns a minimized set of failed assumptions sufficient to
// explain the last UNSAT result from Test or Solve, trying to reuse
// ms for storage.
func (b *Backend) Why(ms []z.Lit) []z.Lit {
	return b.xo.Why(ms)
}

// Test checks whether the current assumptions are consistent under
// unit propagation and opens a scope for further assumptions.
//
// Test returns 1 (SAT), -1 (UNSAT) or 0 (UNKNOWN) plus the literals
// assigned since the previous Test (on SAT/UNKNOWN) or nil (on
// UNSAT), trying to reuse dst.
func (b *Backend) Test(dst []z.Lit) (res int, out []z.Lit) {
	return b.xo.Test(dst)
}

// Untest removes the scope opened by the matching Test call,
// backtracking and discarding its assumptions, and returns whether the
// remaining assumptions are still consistent under propagation.
func (b *Backend) Untest() int {
	return b.xo.Untest()
}

// Reasons returns the literals whose conjunction, via a single clause,
// implies m — only meaningful for m returned by a Test call that
// resulted in SAT or UNKNOWN. Reasons fragments form an acyclic
// implication graph as long as the underlying Test/Solve state doesn't
// change between calls.
func (b *Backend) Reasons(dst []z.Lit, m z.Lit) []z.Lit {
	return b.xo.Reasons(dst, m)
}
