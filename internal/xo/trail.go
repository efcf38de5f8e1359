// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"

	"github.com/matthewsot/bitwuzla/z"
)

// Trail is the assignment trail: the sequence of literals assigned so
// far, in assignment order, together with the propagation queue over
// that sequence.
//
// Tail is always len(D); Head is the index of the first literal whose
// consequences have not yet been propagated.  Decisions and
// assumptions are assigned with reason CLocNull and open a new level.
type Trail struct {
	Cdb   *Cdb
	Guess *Guess

	D     []z.Lit
	Head  int
	Tail  int
	Level int

	Props int64

	stProps   int64
	stAssigns int64
}

// NewTrail creates a trail over cdb using guess for re-inserting
// unassigned variables on backtracking.
func NewTrail(cdb *Cdb, guess *Guess) *Trail {
	return &Trail{
		Cdb:   cdb,
		Guess: guess,
		D:     make([]z.Lit, 0, 1024)}
}

// Assign records m as true with reason p.  A CLocNull reason marks a
// decision or an assumption and opens a new level.
func (t *Trail) Assign(m z.Lit, p CLoc) {
	if p == CLocNull {
		t.Level++
	}
	vars := t.Cdb.Vars
	vars.Vals[m] = 1
	vars.Vals[m.Not()] = -1
	vars.Level[m.Var()] = t.Level
	vars.Reasons[m.Var()] = p
	t.D = append(t.D, m)
	t.Tail = len(t.D)
	t.stAssigns++
}

// Prop propagates all queued assignments to fixpoint.  It returns the
// location of a falsified clause, or CLocNull if no conflict was
// found.
func (t *Trail) Prop() CLoc {
	cdb := t.Cdb
	vals := cdb.Vars.Vals
	for t.Head < t.Tail {
		m := t.D[t.Head]
		t.Head++
		t.Props++
		t.stProps++
		ws := cdb.Watches[m.Not()]
		for _, w := range ws {
			if vals[w.Other()] == 1 {
				continue
			}
			loc := w.CLoc()
			cl := cdb.Clauses[loc]
			if cl == nil || cl.Removed {
				continue
			}
			sat := false
			unit := z.LitNull
			unknown := 0
			for _, q := range cl.Lits {
				switch vals[q] {
				case 1:
					sat = true
				case 0:
					unknown++
					unit = q
				}
				if sat || unknown > 1 {
					break
				}
			}
			if sat || unknown > 1 {
				continue
			}
			if unknown == 0 {
				return loc
			}
			if vals[unit] == 0 {
				t.Assign(unit, loc)
			}
		}
	}
	return CLocNull
}

// Back backtracks to level, unassigning every literal assigned at a
// higher level and returning its variable to the guess queue.
func (t *Trail) Back(level int) {
	if level >= t.Level {
		return
	}
	vars := t.Cdb.Vars
	i := len(t.D)
	for i > 0 {
		m := t.D[i-1]
		if vars.Level[m.Var()] <= level {
			break
		}
		vars.Unset(m.Var())
		t.Guess.Push(m)
		i--
	}
	t.D = t.D[:i]
	t.Tail = len(t.D)
	if t.Head > t.Tail {
		t.Head = t.Tail
	}
	t.Level = level
}

func (t *Trail) growToVar(top z.Var) {
	// D grows with assignments; nothing indexed by variable here.
	_ = top
}

// CopyWith makes a copy of t wired to the given copies of its
// collaborators.
func (t *Trail) CopyWith(cdb *Cdb, guess *Guess) *Trail {
	other := &Trail{
		Cdb:   cdb,
		Guess: guess,
		Head:  t.Head,
		Tail:  t.Tail,
		Level: t.Level,
		Props: t.Props}
	other.D = append([]z.Lit(nil), t.D...)
	return other
}

func (t *Trail) readStats(st *Stats) {
	st.Props += t.stProps
	t.stProps = 0
}

func (t *Trail) String() string {
	return fmt.Sprintf("Trail{level: %d, head: %d, tail: %d}", t.Level, t.Head, t.Tail)
}
