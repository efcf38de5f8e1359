// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"github.com/matthewsot/bitwuzla/z"
)

// Derivation is the result of analyzing one conflict: the asserting
// literal of the learnt clause, the clause's location, and the level
// to backtrack to before asserting it.
type Derivation struct {
	Unit        z.Lit
	P           CLoc
	TargetLevel int
}

// Deriver performs first-UIP conflict analysis over the trail,
// learning one clause per conflict.
type Deriver struct {
	cdb   *Cdb
	guess *Guess
	trail *Trail

	seen []bool
	buf  []z.Lit

	stConflicts int64
	stLearned   int64
	stLitsSeen  int64
}

// NewDeriver creates a deriver over the given collaborators.
func NewDeriver(cdb *Cdb, guess *Guess, trail *Trail) *Deriver {
	return &Deriver{
		cdb:   cdb,
		guess: guess,
		trail: trail,
		seen:  make([]bool, cdb.Vars.Top+1),
		buf:   make([]z.Lit, 0, 64)}
}

// Derive analyzes the conflict at clause x.  The trail must be
// positioned at the conflicting level.  The learnt clause is added to
// the database; the caller backtracks to TargetLevel and asserts Unit
// with reason P.
func (d *Deriver) Derive(x CLoc) *Derivation {
	d.stConflicts++
	trail := d.trail
	vars := d.cdb.Vars
	level := trail.Level

	d.buf = d.buf[:0]
	d.buf = append(d.buf, z.LitNull) // slot 0: asserting literal
	counter := 0
	p := z.LitNull
	confl := x
	idx := len(trail.D) - 1

	for {
		d.cdb.Bump(confl)
		for _, q := range d.cdb.Lits(confl, nil) {
			if q == p {
				continue
			}
			v := q.Var()
			if d.seen[v] || vars.Level[v] == 0 {
				continue
			}
			d.seen[v] = true
			d.stLitsSeen++
			d.guess.Bump(q)
			if vars.Level[v] >= level {
				counter++
			} else {
				d.buf = append(d.buf, q)
			}
		}
		// walk back to the most recently assigned seen literal
		for idx >= 0 && !d.seen[trail.D[idx].Var()] {
			idx--
		}
		if idx < 0 {
			break
		}
		p = trail.D[idx]
		confl = vars.Reasons[p.Var()]
		d.seen[p.Var()] = false
		idx--
		counter--
		if counter <= 0 {
			break
		}
	}
	d.buf[0] = p.Not()

	// clear marks of the remaining literals
	target := 0
	glueLevels := make(map[int]bool, 8)
	for _, q := range d.buf[1:] {
		d.seen[q.Var()] = false
		if l := vars.Level[q.Var()]; l > target {
			target = l
		}
		glueLevels[vars.Level[q.Var()]] = true
	}

	lits := append([]z.Lit(nil), d.buf...)
	loc := d.cdb.Learn(lits, len(glueLevels)+1)
	d.stLearned++
	return &Derivation{
		Unit:        d.buf[0],
		P:           loc,
		TargetLevel: target}
}

func (d *Deriver) growToVar(top z.Var) {
	w := int(top) + 1
	if w <= len(d.seen) {
		return
	}
	seen := make([]bool, w)
	copy(seen, d.seen)
	d.seen = seen
}

// CopyWith makes a copy of d wired to the given copies of its
// collaborators.
func (d *Deriver) CopyWith(cdb *Cdb, guess *Guess, trail *Trail) *Deriver {
	other := &Deriver{
		cdb:   cdb,
		guess: guess,
		trail: trail}
	other.seen = append([]bool(nil), d.seen...)
	other.buf = make([]z.Lit, 0, cap(d.buf))
	return other
}

func (d *Deriver) readStats(st *Stats) {
	st.Conflicts += d.stConflicts
	d.stConflicts = 0
	st.Learned += d.stLearned
	d.stLearned = 0
	st.LitsSeen += d.stLitsSeen
	d.stLitsSeen = 0
}
