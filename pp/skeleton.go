// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/matthewsot/bitwuzla"
	"github.com/matthewsot/bitwuzla/logic"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/matthewsot/bitwuzla/z"
)

// passSkeleton propagates boolean skeleton constants: the boolean
// structure of the assertions is encoded as a circuit over fresh
// variables for the theory atoms, a SAT sub-call propagates units
// over its CNF, and atoms fixed by propagation are replaced by their
// constant value.  Runs once per solve.
type passSkeleton struct {
	m  *node.Manager
	rw *rw.Rewriter

	applied bool
}

func (p *passSkeleton) Name() string { return "skeleton-preproc" }

// Reset re-arms the pass for the next solve.
func (p *passSkeleton) Reset() { p.applied = false }

func (p *passSkeleton) Apply(v *View) error {
	if p.applied {
		return nil
	}
	p.applied = true

	c := logic.NewC()
	atomLit := make(map[uint64]z.Lit)
	atomOf := make(map[z.Var]node.Term)

	var enc func(t node.Term) z.Lit
	enc = func(t node.Term) z.Lit {
		if t.IsTrue() {
			return c.T
		}
		if t.IsFalse() {
			return c.F
		}
		switch t.Kind() {
		case node.KNot:
			return enc(t.Child(0)).Not()
		case node.KAnd:
			ms := make([]z.Lit, t.NumChildren())
			for i, ch := range t.Children() {
				ms[i] = enc(ch)
			}
			return c.Ands(ms...)
		case node.KOr:
			ms := make([]z.Lit, t.NumChildren())
			for i, ch := range t.Children() {
				ms[i] = enc(ch)
			}
			return c.Ors(ms...)
		case node.KXor:
			r := enc(t.Child(0))
			for _, ch := range t.Children()[1:] {
				r = c.Xor(r, enc(ch))
			}
			return r
		case node.KImplies:
			return c.Implies(enc(t.Child(0)), enc(t.Child(1)))
		case node.KIff:
			return c.Xor(enc(t.Child(0)), enc(t.Child(1))).Not()
		case node.KIte:
			if t.Sort().IsBool() {
				return c.Choice(enc(t.Child(0)), enc(t.Child(1)), enc(t.Child(2)))
			}
		}
		if m, ok := atomLit[t.Id()]; ok {
			return m
		}
		m := c.Lit()
		atomLit[t.Id()] = m
		atomOf[m.Var()] = t
		return m
	}

	roots := make([]z.Lit, 0, v.Size())
	for i := 0; i < v.Size(); i++ {
		roots = append(roots, enc(v.Get(i)))
	}

	sat := bitwuzla.New()
	c.ToCnfFrom(sat, roots...)
	for _, root := range roots {
		sat.Add(root)
		sat.Add(z.LitNull)
	}
	res, implied := sat.Test(nil)
	if res == -1 {
		if v.Size() > 0 {
			v.Replace(0, p.m.False())
		}
		return nil
	}

	sub := make(map[node.Term]node.Term)
	for _, m := range implied {
		t, ok := atomOf[m.Var()]
		if !ok {
			continue
		}
		sub[t] = p.m.MkBoolValue(m.IsPos())
	}
	if len(sub) == 0 {
		return nil
	}
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
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
