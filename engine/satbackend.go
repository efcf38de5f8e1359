// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla"
	"github.com/matthewsot/bitwuzla/blast"
	"github.com/matthewsot/bitwuzla/crisp"
	"github.com/matthewsot/bitwuzla/z"
)

// newBackend creates the SAT backend selected by the sat-solver
// option, returning the backend and a release function.
func (e *SolverEngine) newBackend() (blast.Solver, func(), error) {
	if e.opts.SatSolver == "crisp" {
		b, err := dialCrisp(e.opts.CrispAddress, e.log)
		if err != nil {
			return nil, nil, err
		}
		return b, b.close, nil
	}
	return bitwuzla.New(), func() {}, nil
}

// crispBackend adapts a crisp client connection to the blast.Solver
// contract, so a remote server can serve as the SAT backend.
// Transport errors degrade the affected call to an unknown result
// and are logged; the engine reports Unknown for that solve.
type crispBackend struct {
	c     *crisp.Client
	log   logr.Logger
	model []bool
	err   error
}

func dialCrisp(addr string, log logr.Logger) (*crispBackend, error) {
	c, err := crisp.Dial(addr)
	if err != nil {
		return nil, Raise("InvalidOption", "cannot reach crisp server %q: %s", addr, err)
	}
	return &crispBackend{c: c, log: log}, nil
}

func (b *crispBackend) fail(err error) {
	if b.err == nil {
		b.err = err
		b.log.Error(err, "crisp backend transport error")
	}
}

func (b *crispBackend) Add(m z.Lit) {
	if b.err != nil {
		return
	}
	if err := b.c.Add(m); err != nil {
		b.fail(err)
	}
}

func (b *crispBackend) Assume(ms ...z.Lit) {
	if b.err != nil || len(ms) == 0 {
		return
	}
	if err := b.c.Assume(ms...); err != nil {
		b.fail(err)
	}
}

func (b *crispBackend) Solve() int {
	b.model = nil
	if b.err != nil {
		return 0
	}
	r, err := b.c.Solve()
	if err != nil {
		b.fail(err)
		return 0
	}
	return r
}

func (b *crispBackend) Value(m z.Lit) bool {
	if b.err != nil {
		return false
	}
	if b.model == nil {
		vs, err := b.c.Model(nil)
		if err != nil {
			b.fail(err)
			return false
		}
		b.model = vs
	}
	v := int(m.Var())
	if v >= len(b.model) {
		return false
	}
	if m.IsPos() {
		return b.model[v]
	}
	return !b.model[v]
}

func (b *crispBackend) Why(dst []z.Lit) []z.Lit {
	if b.err != nil {
		return dst
	}
	ms, err := b.c.Why(dst)
	if err != nil {
		b.fail(err)
		return dst
	}
	return ms
}

func (b *crispBackend) close() {
	if b.c == nil {
		return
	}
	b.c.Quit()
	b.c.Close()
}
