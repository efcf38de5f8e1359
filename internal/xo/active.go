// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import "github.com/matthewsot/bitwuzla/z"

// Active manages activation literals: fresh variables attached to
// groups of clauses so the groups can be switched off (deactivated)
// and their storage reclaimed without touching unrelated clauses.
//
// A variable marked active has every clause containing it recorded in
// Occs (see Cdb.store), so Deactivate can remove the whole group.
type Active struct {
	Free     []z.Lit
	Occs     [][]CLoc
	IsActive []bool
}

func newActive(vcap int) *Active {
	return &Active{
		Occs:     make([][]CLoc, vcap),
		IsActive: make([]bool, vcap)}
}

// Lit returns an activation literal, reusing a freed one if possible.
func (a *Active) Lit(s *S) z.Lit {
	n := len(a.Free)
	if n != 0 {
		m := a.Free[n-1]
		a.Free = a.Free[:n-1]
		return m
	}
	return s.Lit()
}

// ActivateWith marks act as an activation literal and closes the
// currently open clause with act.Not(), so the clause holds only
// while act is assumed.
func (a *Active) ActivateWith(act z.Lit, s *S) {
	v := act.Var()
	if int(v) >= len(a.IsActive) {
		a.growToVar(v)
	}
	a.IsActive[v] = true
	s.Add(act.Not())
	s.Add(z.LitNull)
}

// Deactivate removes every clause guarded by m's variable and frees
// the variable for reuse.
func (a *Active) Deactivate(cdb *Cdb, m z.Lit) {
	mv := m.Var()
	m = mv.Pos()
	sl := a.Occs[mv]
	a.Occs[mv] = nil
	cdb.Remove(sl...)
	a.Free = append(a.Free, m)
	a.IsActive[mv] = false
}

func (a *Active) growToVar(u z.Var) {
	w := u + 1
	oc := make([][]CLoc, w)
	copy(oc, a.Occs)
	a.Occs = oc

	ia := make([]bool, w)
	copy(ia, a.IsActive)
	a.IsActive = ia
}

func (a *Active) Copy() *Active {
	res := &Active{
		Occs:     make([][]CLoc, len(a.Occs), cap(a.Occs)),
		IsActive: make([]bool, len(a.IsActive), cap(a.IsActive))}
	copy(res.IsActive, a.IsActive)
	res.Free = append([]z.Lit(nil), a.Free...)
	for i, asl := range a.Occs {
		if asl == nil {
			continue
		}
		res.Occs[i] = append([]CLoc(nil), asl...)
	}
	return res
}
