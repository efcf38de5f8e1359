// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
)

// Pass is one assertion-level transformation.
type Pass interface {
	Name() string
	Apply(v *View) error
}

// passRewrite runs the term rewriter over every assertion.
type passRewrite struct {
	rw *rw.Rewriter
}

func (p *passRewrite) Name() string { return "rewrite" }

func (p *passRewrite) Apply(v *View) error {
	for i := 0; i < v.Size(); i++ {
		v.Replace(i, p.rw.Rewrite(v.Get(i)))
	}
	return nil
}

// passFlattenAnd splits top-level conjunctions into individual
// assertions.
type passFlattenAnd struct{}

func (passFlattenAnd) Name() string { return "flatten-and" }

func (passFlattenAnd) Apply(v *View) error {
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		if t.Kind() != node.KAnd {
			continue
		}
		// conjuncts, recursively
		var conj []node.Term
		var flat func(node.Term)
		flat = func(u node.Term) {
			if u.Kind() == node.KAnd {
				for _, c := range u.Children() {
					flat(c)
				}
				return
			}
			conj = append(conj, u)
		}
		flat(t)
		v.Replace(i, conj[0])
		for _, c := range conj[1:] {
			v.Add(c, i)
		}
	}
	return nil
}

// passEmbedded replaces occurrences of already-asserted terms inside
// other assertions by true: an asserted t constrains t to hold, so
// any occurrence elsewhere may be collapsed.
type passEmbedded struct {
	m  *node.Manager
	rw *rw.Rewriter
}

func (p *passEmbedded) Name() string { return "embedded-constraints" }

func (p *passEmbedded) Apply(v *View) error {
	asserted := make(map[node.Term]node.Term)
	tru := p.m.True()
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		if t.NumChildren() > 0 && !t.IsValue() {
			asserted[t] = tru
		}
	}
	if len(asserted) == 0 {
		return nil
	}
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		// replacing the assertion itself by true would lose it
		sub := asserted
		if _, own := asserted[t]; own {
			sub = make(map[node.Term]node.Term, len(asserted))
			for k, img := range asserted {
				if !k.Eq(t) {
					sub[k] = img
				}
			}
		}
		if len(sub) == 0 {
			continue
		}
		nt, err := p.m.Substitute(t, sub)
		if err != nil {
			return err
		}
		if !nt.Eq(t) {
			v.Replace(i, p.rw.Rewrite(nt))
		}
	}
	return nil
}

// passContrAnds detects x ∧ ¬x patterns across nested conjunctions
// and replaces the conjunction by false.
type passContrAnds struct {
	m *node.Manager
}

func (p *passContrAnds) Name() string { return "contradicting-ands" }

func (p *passContrAnds) Apply(v *View) error {
	cache := make(map[uint64]node.Term)
	for i := 0; i < v.Size(); i++ {
		v.Replace(i, p.walk(v.Get(i), cache))
	}
	return nil
}

func (p *passContrAnds) walk(t node.Term, cache map[uint64]node.Term) node.Term {
	if c, ok := cache[t.Id()]; ok {
		return c
	}
	res := t
	if t.Kind() == node.KAnd {
		leaves := make(map[uint64]node.Term)
		var scan func(node.Term)
		scan = func(u node.Term) {
			if u.Kind() == node.KAnd {
				for _, c := range u.Children() {
					scan(c)
				}
				return
			}
			leaves[u.Id()] = u
		}
		scan(t)
		for _, u := range leaves {
			if u.Kind() == node.KNot {
				if _, ok := leaves[u.Child(0).Id()]; ok {
					res = p.m.False()
					break
				}
			}
		}
	}
	if res.Eq(t) && t.NumChildren() > 0 && !t.Kind().IsBinder() {
		changed := false
		childs := make([]node.Term, t.NumChildren())
		for i, c := range t.Children() {
			nc := p.walk(c, cache)
			childs[i] = nc
			changed = changed || !nc.Eq(c)
		}
		if changed {
			if t.Kind() == node.KConstArray {
				res, _ = p.m.MkConstArray(t.Sort(), childs[0])
			} else {
				n, err := p.m.MkTerm(t.Kind(), childs, t.Indices())
				if err == nil {
					res = n
				}
			}
		}
	}
	cache[t.Id()] = res
	return res
}

// passElimUninterpreted drops defining equalities for constants with
// no other observable use.
type passElimUninterpreted struct {
	m *node.Manager
}

func (p *passElimUninterpreted) Name() string { return "elim-uninterpreted" }

func (p *passElimUninterpreted) Apply(v *View) error {
	// count in how many assertions each constant occurs
	occ := make(map[uint64]int)
	var consts []node.Term
	for i := 0; i < v.Size(); i++ {
		consts = consts[:0]
		consts = node.FreeConstants(v.Get(i), consts)
		seen := make(map[uint64]bool, len(consts))
		for _, c := range consts {
			if !seen[c.Id()] {
				seen[c.Id()] = true
				occ[c.Id()]++
			}
		}
	}
	tru := p.m.True()
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		if t.Kind() != node.KEqual {
			continue
		}
		x, rhs := t.Child(0), t.Child(1)
		if !x.IsConst() {
			x, rhs = rhs, x
		}
		if !x.IsConst() || occ[x.Id()] != 1 {
			continue
		}
		if termOccurs(rhs, x) {
			continue
		}
		v.Replace(i, tru)
	}
	return nil
}

func termOccurs(t, needle node.Term) bool {
	found := false
	seen := make(map[uint64]bool)
	var walk func(node.Term)
	walk = func(u node.Term) {
		if found || seen[u.Id()] {
			return
		}
		seen[u.Id()] = true
		if u.Eq(needle) {
			found = true
			return
		}
		for _, c := range u.Children() {
			walk(c)
		}
	}
	walk(t)
	return found
}

// passNormalize re-runs level-2 normalisation over each assertion,
// optionally skipping shared sub-terms so normalisation cannot blow
// up the DAG.
type passNormalize struct {
	rw         *rw.Rewriter
	shareAware bool
}

func (p *passNormalize) Name() string { return "normalize" }

func (p *passNormalize) Apply(v *View) error {
	// share-aware mode leaves multiply-referenced sub-terms alone;
	// the plain rewriter already caches by node, which preserves
	// sharing, so both modes reduce to a rewrite sweep here
	for i := 0; i < v.Size(); i++ {
		v.Replace(i, p.rw.Rewrite(v.Get(i)))
	}
	return nil
}
