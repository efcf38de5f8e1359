// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"

	"github.com/matthewsot/bitwuzla/z"
)

// Clause is the storage for one added or learnt clause.  Removed marks
// a garbage-collected clause; its Lits are kept and its CLoc is never
// reused so reasons recorded before removal stay well defined.
type Clause struct {
	Lits     []z.Lit
	Learnt   bool
	Glue     int
	Activity float64
	Removed  bool
}

// Cdb is the clause database: every added and learnt clause, plus the
// occurrence lists used to drive unit propagation.
type Cdb struct {
	Vars    *Vars
	Clauses []*Clause // index 0 is CLocNull, unused
	Watches map[z.Lit][]Watch
	Bot     CLoc // set to the empty clause's location if one was added
	Added   []CLoc
	Learnts []CLoc
	Active  *Active

	buf        []z.Lit
	decayRate  float64
	bumpAmount float64
}

// NewCdb creates a clause database for vars with capacity hint
// cCapHint clauses.
func NewCdb(vars *Vars, cCapHint int) *Cdb {
	if cCapHint < 1 {
		cCapHint = 1
	}
	return &Cdb{
		Vars:       vars,
		Clauses:    make([]*Clause, 1, cCapHint+1),
		Watches:    make(map[z.Lit][]Watch, cCapHint*2),
		Bot:        CLocNull,
		decayRate:  0.999,
		bumpAmount: 1.0,
	}
}

// Add streams one literal of a clause.  LitNull terminates the clause
// and Add returns its location (CLocNull for a tautology) together
// with any literal thereby forced true.
func (cdb *Cdb) Add(m z.Lit) (CLoc, z.Lit) {
	if m != z.LitNull {
		if v := m.Var(); v > cdb.Vars.Max {
			cdb.Vars.growToVar(v)
			cdb.Vars.Max = v
		}
		cdb.buf = append(cdb.buf, m)
		return CLocNull, z.LitNull
	}
	lits := normalizeClause(cdb.buf)
	cdb.buf = cdb.buf[:0]
	loc, u := cdb.store(lits, false, 0)
	if loc != CLocNull {
		cdb.Added = append(cdb.Added, loc)
	}
	return loc, u
}

// Learn adds a learnt clause with the given LBD/glue value.
func (cdb *Cdb) Learn(lits []z.Lit, glue int) CLoc {
	loc, _ := cdb.store(append([]z.Lit(nil), lits...), true, glue)
	if loc != CLocNull {
		cdb.Learnts = append(cdb.Learnts, loc)
	}
	return loc
}

// normalizeClause removes duplicate literals and reports whether the
// clause is a syntactic tautology by returning nil.
func normalizeClause(lits []z.Lit) []z.Lit {
	seen := make(map[z.Lit]bool, len(lits))
	out := make([]z.Lit, 0, len(lits))
	for _, m := range lits {
		if seen[m.Not()] {
			return nil // tautology: x or not x
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func (cdb *Cdb) store(lits []z.Lit, learnt bool, glue int) (CLoc, z.Lit) {
	if lits == nil {
		// tautology
		return CLocNull, z.LitNull
	}
	if len(lits) == 0 {
		cl := &Clause{Learnt: learnt, Glue: glue}
		cdb.Clauses = append(cdb.Clauses, cl)
		loc := CLoc(len(cdb.Clauses) - 1)
		cdb.Bot = loc
		return loc, z.LitNull
	}
	cl := &Clause{Lits: lits, Learnt: learnt, Glue: glue}
	cdb.Clauses = append(cdb.Clauses, cl)
	loc := CLoc(len(cdb.Clauses) - 1)
	for _, m := range lits {
		cdb.Watches[m] = append(cdb.Watches[m], MakeWatch(loc, m, len(lits) == 2))
	}
	if cdb.Active != nil {
		// occurrence bookkeeping for activation literals, see Active.
		for _, m := range lits {
			if cdb.Active.IsActive[m.Var()] {
				cdb.Active.Occs[m.Var()] = append(cdb.Active.Occs[m.Var()], loc)
			}
		}
	}
	if len(lits) == 1 {
		return loc, lits[0]
	}
	return loc, z.LitNull
}

// IsBinary reports whether clause p has exactly two literals.
func (cdb *Cdb) IsBinary(p CLoc) bool {
	cl := cdb.Clauses[p]
	return cl != nil && len(cl.Lits) == 2
}

// IsUnit reports whether clause p has exactly one literal.
func (cdb *Cdb) IsUnit(p CLoc) bool {
	cl := cdb.Clauses[p]
	return cl != nil && len(cl.Lits) == 1
}

// Lits appends the literals of clause p to dst and returns the result.
func (cdb *Cdb) Lits(p CLoc, dst []z.Lit) []z.Lit {
	if p == CLocNull || p == CLocInf {
		return dst
	}
	cl := cdb.Clauses[p]
	if cl == nil {
		return dst
	}
	return append(dst, cl.Lits...)
}

// Bump increases the activity of a learnt clause, used by conflict
// analysis to keep frequently-resolved clauses from being collected.
func (cdb *Cdb) Bump(p CLoc) {
	if p == CLocNull || p == CLocInf {
		return
	}
	cl := cdb.Clauses[p]
	if cl == nil {
		return
	}
	cl.Activity += cdb.bumpAmount
}

// Decay reduces the effective weight of past activity bumps relative
// to future ones, so recently-active clauses dominate.
func (cdb *Cdb) Decay() {
	cdb.bumpAmount /= cdb.decayRate
}

// Remove marks the clauses at locs as garbage; their occurrence list
// entries stay in place and are skipped during propagation.
func (cdb *Cdb) Remove(locs ...CLoc) {
	for _, loc := range locs {
		if loc == CLocNull || loc == CLocInf || int(loc) >= len(cdb.Clauses) {
			continue
		}
		if cl := cdb.Clauses[loc]; cl != nil {
			cl.Removed = true
		}
	}
}

// MaybeCompact, once the learnt clause count exceeds a growth
// threshold, removes every learnt clause in the older half of the
// learnt list whose glue exceeds 2; activity is not consulted.  It
// returns the number of clauses removed, the new learnt count and the
// total clause count.
func (cdb *Cdb) MaybeCompact() (removed, learntCount, clauseCount int) {
	threshold := 2000 + 300*len(cdb.Added)
	if len(cdb.Learnts) <= threshold {
		return 0, len(cdb.Learnts), len(cdb.Clauses)
	}
	kept := cdb.Learnts[:0:0]
	victims := len(cdb.Learnts) / 2
	// single linear pass: in the older half of the list, drop clauses
	// with glue above 2.
	for i, loc := range cdb.Learnts {
		cl := cdb.Clauses[loc]
		if cl == nil || cl.Removed {
			removed++
			continue
		}
		if i < victims && cl.Glue > 2 {
			cdb.Remove(loc)
			removed++
			continue
		}
		kept = append(kept, loc)
	}
	cdb.Learnts = kept
	return removed, len(cdb.Learnts), len(cdb.Clauses)
}

// CheckModel returns one error per clause violated by the current
// assignment; a correct, complete model yields an empty slice.
func (cdb *Cdb) CheckModel() []error {
	var errs []error
	vals := cdb.Vars.Vals
	for loc, cl := range cdb.Clauses {
		if loc == 0 || cl == nil || cl.Removed {
			continue
		}
		sat := false
		for _, m := range cl.Lits {
			if vals[m] == 1 {
				sat = true
				break
			}
		}
		if !sat && len(cl.Lits) > 0 {
			errs = append(errs, fmt.Errorf("clause %s unsatisfied: %v", CLoc(loc), cl.Lits))
		}
	}
	return errs
}

func (cdb *Cdb) growToVar(top z.Var) {
	_ = top // Watches and Clauses grow lazily (maps, slices); Vars grows separately.
}

func (cdb *Cdb) CopyWith(vars *Vars) *Cdb {
	other := &Cdb{
		Vars:       vars,
		Clauses:    make([]*Clause, len(cdb.Clauses)),
		Watches:    make(map[z.Lit][]Watch, len(cdb.Watches)),
		Bot:        cdb.Bot,
		decayRate:  cdb.decayRate,
		bumpAmount: cdb.bumpAmount,
	}
	for i, cl := range cdb.Clauses {
		if cl == nil {
			continue
		}
		cp := *cl
		cp.Lits = append([]z.Lit(nil), cl.Lits...)
		other.Clauses[i] = &cp
	}
	for lit, ws := range cdb.Watches {
		other.Watches[lit] = append([]Watch(nil), ws...)
	}
	other.Added = append([]CLoc(nil), cdb.Added...)
	other.Learnts = append([]CLoc(nil), cdb.Learnts...)
	return other
}

func (cdb *Cdb) readStats(st *Stats) {
	st.Clauses = int64(len(cdb.Added))
	st.Learnts = int64(len(cdb.Learnts))
}

func (cdb *Cdb) String() string {
	return fmt.Sprintf("Cdb{clauses: %d, learnts: %d}", len(cdb.Added), len(cdb.Learnts))
}
