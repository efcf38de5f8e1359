// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
)

// passVarSubst infers equalities (= x t) with x a free constant not
// occurring in t and substitutes them through the whole assertion
// set.  Discovered substitutions are kept in a map keyed by the
// constant, whose images are closed over each new substitution; a
// candidate whose right-hand side reaches back to the constant
// through earlier substitutions is dropped (acyclicity).
type passVarSubst struct {
	m  *node.Manager
	rw *rw.Rewriter

	// normalisation modes
	normEq      bool
	normBVIneq  bool
}

func (p *passVarSubst) Name() string { return "variable-substitution" }

func (p *passVarSubst) Apply(v *View) error {
	subst := make(map[node.Term]node.Term)
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		if p.normEq {
			t = p.normalizeEq(t)
		}
		if p.normBVIneq {
			t = p.normalizeBVIneq(t)
		}
		x, rhs, ok := p.candidate(t)
		if !ok {
			continue
		}
		if _, dup := subst[x]; dup {
			continue
		}
		// resolve rhs through the substitutions discovered so far and
		// reject cycles
		resolved, err := p.m.Substitute(rhs, subst)
		if err != nil {
			return err
		}
		if termOccurs(resolved, x) {
			continue
		}
		// close existing images over the new substitution
		one := map[node.Term]node.Term{x: resolved}
		for k, img := range subst {
			ni, err := p.m.Substitute(img, one)
			if err != nil {
				return err
			}
			subst[k] = ni
		}
		subst[x] = resolved
	}
	if len(subst) == 0 {
		return nil
	}
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		nt, err := p.m.Substitute(t, subst)
		if err != nil {
			return err
		}
		if !nt.Eq(t) {
			v.Replace(i, p.rw.Rewrite(nt))
		}
	}
	return nil
}

// candidate matches (= x t) with x a free constant not occurring
// in t.
func (p *passVarSubst) candidate(t node.Term) (node.Term, node.Term, bool) {
	if t.Kind() == node.KIff {
		// boolean equality
		return p.candidateSides(t.Child(0), t.Child(1))
	}
	if t.Kind() != node.KEqual {
		// a bare boolean constant asserts itself; its negation the
		// opposite
		if t.IsConst() && t.Sort().IsBool() {
			return t, p.m.True(), true
		}
		if t.Kind() == node.KNot && t.Child(0).IsConst() && t.Child(0).Sort().IsBool() {
			return t.Child(0), p.m.False(), true
		}
		return node.Term{}, node.Term{}, false
	}
	return p.candidateSides(t.Child(0), t.Child(1))
}

func (p *passVarSubst) candidateSides(a, b node.Term) (node.Term, node.Term, bool) {
	if a.IsConst() && !termOccurs(b, a) {
		return a, b, true
	}
	if b.IsConst() && !termOccurs(a, b) {
		return b, a, true
	}
	return node.Term{}, node.Term{}, false
}

// normalizeEq strips a double negation, (not (not t)) to t; every
// other term, including equalities of inequalities, is returned
// unchanged.
func (p *passVarSubst) normalizeEq(t node.Term) node.Term {
	if t.Kind() != node.KNot {
		return t
	}
	inner := t.Child(0)
	if inner.Kind() == node.KNot {
		return inner.Child(0)
	}
	return t
}

// normalizeBVIneq turns (not (bvult a b)) into (bvuge a b) and its
// signed/reflected variants so inequality chains expose equalities.
func (p *passVarSubst) normalizeBVIneq(t node.Term) node.Term {
	if t.Kind() != node.KNot {
		return t
	}
	inner := t.Child(0)
	var flipped node.Kind
	switch inner.Kind() {
	case node.KBVUlt:
		flipped = node.KBVUge
	case node.KBVUle:
		flipped = node.KBVUgt
	case node.KBVSlt:
		flipped = node.KBVSge
	case node.KBVSle:
		flipped = node.KBVSgt
	default:
		return t
	}
	n, err := p.m.MkTerm(flipped, inner.Children(), nil)
	if err != nil {
		return t
	}
	return n
}
