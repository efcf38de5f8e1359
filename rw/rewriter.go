// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package rw

import (
	"sort"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

// Rewriter applies the rule table to fixpoint over a term DAG.  The
// cache is owned by the rewriter; callers that want scope-bound
// caching reset it on pop.
type Rewriter struct {
	m     *node.Manager
	level int
	cache map[uint64]node.Term
}

// New creates a rewriter over m at the given level (0, 1 or 2).
func New(m *node.Manager, level int) *Rewriter {
	if level < 0 {
		level = 0
	}
	if level > 2 {
		level = 2
	}
	return &Rewriter{
		m:     m,
		level: level,
		cache: make(map[uint64]node.Term),
	}
}

// Level returns the configured rewrite level.
func (r *Rewriter) Level() int { return r.level }

// ResetCache drops all cached results, for scope-bound usage.
func (r *Rewriter) ResetCache() {
	r.cache = make(map[uint64]node.Term)
}

// Rewrite returns the normal form of t at the rewriter's level.
// Rewriting is idempotent: Rewrite(Rewrite(t)) == Rewrite(t).
func (r *Rewriter) Rewrite(t node.Term) node.Term {
	if r.level == 0 {
		return t
	}
	return r.rewrite(t)
}

func (r *Rewriter) rewrite(t node.Term) node.Term {
	if c, ok := r.cache[t.Id()]; ok {
		return c
	}
	res := t
	if t.NumChildren() > 0 && !t.Kind().IsBinder() {
		changed := false
		childs := make([]node.Term, t.NumChildren())
		for i, c := range t.Children() {
			nc := r.rewrite(c)
			childs[i] = nc
			changed = changed || !nc.Eq(c)
		}
		if changed {
			res = r.rebuild(t.Kind(), t.Sort(), childs, t.Indices())
		}
	} else if t.Kind().IsBinder() {
		body := r.rewrite(t.Child(1))
		if !body.Eq(t.Child(1)) {
			res = r.rebuild(t.Kind(), t.Sort(), []node.Term{t.Child(0), body}, nil)
		}
	}

	// apply local rules to fixpoint; rule outputs are built from
	// already-rewritten children, so one pass per output suffices
	for i := 0; i < 64; i++ {
		next := r.applyRules(res)
		if next.Eq(res) {
			break
		}
		res = r.rewrite(next)
	}
	r.cache[t.Id()] = res
	r.cache[res.Id()] = res
	return res
}

func (r *Rewriter) rebuild(k node.Kind, sort node.Sort, cs []node.Term, ix []uint32) node.Term {
	if k == node.KConstArray {
		n, err := r.m.MkConstArray(sort, cs[0])
		if err != nil {
			panic(err)
		}
		return n
	}
	n, err := r.m.MkTerm(k, cs, ix)
	if err != nil {
		panic(err)
	}
	return n
}

func (r *Rewriter) applyRules(t node.Term) node.Term {
	if t.NumChildren() == 0 {
		return t
	}
	if v, ok := EvalValue(r.m, t); ok {
		return v
	}
	if n := r.level1(t); !n.Eq(t) {
		return n
	}
	if r.level >= 2 {
		return r.level2(t)
	}
	return t
}

// level1: idempotence, identity and absorption elements, trivial ITE
// collapse and double negation.
func (r *Rewriter) level1(t node.Term) node.Term {
	m := r.m
	cs := t.Children()
	switch t.Kind() {
	case node.KNot:
		if cs[0].Kind() == node.KNot {
			return cs[0].Child(0)
		}
	case node.KAnd:
		out := make([]node.Term, 0, len(cs))
		for _, c := range cs {
			if c.IsTrue() {
				continue
			}
			if c.IsFalse() {
				return m.False()
			}
			out = append(out, c)
		}
		out = dedup(out)
		if _, ok := complementary(out); ok {
			return m.False()
		}
		return r.rebuildNary(t, node.KAnd, out, m.True())
	case node.KOr:
		out := make([]node.Term, 0, len(cs))
		for _, c := range cs {
			if c.IsFalse() {
				continue
			}
			if c.IsTrue() {
				return m.True()
			}
			out = append(out, c)
		}
		out = dedup(out)
		if _, ok := complementary(out); ok {
			return m.True()
		}
		return r.rebuildNary(t, node.KOr, out, m.False())
	case node.KImplies:
		if cs[0].IsTrue() {
			return cs[1]
		}
		if cs[0].IsFalse() || cs[1].IsTrue() {
			return m.True()
		}
		if cs[1].IsFalse() {
			return r.mkNot(cs[0])
		}
		if cs[0].Eq(cs[1]) {
			return m.True()
		}
	case node.KIff:
		if cs[0].Eq(cs[1]) {
			return m.True()
		}
		if cs[0].IsTrue() {
			return cs[1]
		}
		if cs[1].IsTrue() {
			return cs[0]
		}
		if cs[0].IsFalse() {
			return r.mkNot(cs[1])
		}
		if cs[1].IsFalse() {
			return r.mkNot(cs[0])
		}
	case node.KEqual:
		if cs[0].Eq(cs[1]) {
			return m.True()
		}
		if cs[0].IsValue() && cs[1].IsValue() {
			return m.False()
		}
	case node.KIte:
		if cs[0].IsTrue() {
			return cs[1]
		}
		if cs[0].IsFalse() {
			return cs[2]
		}
		if cs[1].Eq(cs[2]) {
			return cs[1]
		}
		// boolean ite (c true false) is c
		if cs[1].IsTrue() && cs[2].IsFalse() {
			return cs[0]
		}
		if cs[1].IsFalse() && cs[2].IsTrue() {
			return r.mkNot(cs[0])
		}
	case node.KBVNot:
		if cs[0].Kind() == node.KBVNot {
			return cs[0].Child(0)
		}
	case node.KBVNeg:
		if cs[0].Kind() == node.KBVNeg {
			return cs[0].Child(0)
		}
	case node.KBVAdd:
		out := cs[:0:0]
		for _, c := range cs {
			if v, ok := c.BVValue(); ok && v.IsZero() {
				continue
			}
			out = append(out, c)
		}
		return r.rebuildNary(t, node.KBVAdd, out, r.bvZero(t))
	case node.KBVMul:
		for _, c := range cs {
			if v, ok := c.BVValue(); ok && v.IsZero() {
				return r.bvZero(t)
			}
		}
		out := cs[:0:0]
		for _, c := range cs {
			if isOne(c) {
				continue
			}
			out = append(out, c)
		}
		return r.rebuildNary(t, node.KBVMul, out, r.bvOne(t))
	case node.KBVAnd:
		out := dedup(cs)
		for _, c := range out {
			if v, ok := c.BVValue(); ok && v.IsZero() {
				return r.bvZero(t)
			}
		}
		kept := out[:0:0]
		for _, c := range out {
			if v, ok := c.BVValue(); ok && v.RedAnd() {
				continue
			}
			kept = append(kept, c)
		}
		return r.rebuildNary(t, node.KBVAnd, kept, r.bvOnes(t))
	case node.KBVOr:
		out := dedup(cs)
		for _, c := range out {
			if v, ok := c.BVValue(); ok && v.RedAnd() {
				return r.bvOnes(t)
			}
		}
		kept := out[:0:0]
		for _, c := range out {
			if v, ok := c.BVValue(); ok && v.IsZero() {
				continue
			}
			kept = append(kept, c)
		}
		return r.rebuildNary(t, node.KBVOr, kept, r.bvZero(t))
	case node.KBVXor:
		if len(cs) == 2 && cs[0].Eq(cs[1]) {
			return r.bvZero(t)
		}
	case node.KBVSub:
		if cs[0].Eq(cs[1]) {
			return r.bvZero(t)
		}
		if v, ok := cs[1].BVValue(); ok && v.IsZero() {
			return cs[0]
		}
	case node.KBVShl, node.KBVShr, node.KBVAshr:
		if v, ok := cs[1].BVValue(); ok && v.IsZero() {
			return cs[0]
		}
	case node.KBVUdiv:
		if isOne(cs[1]) {
			return cs[0]
		}
	case node.KBVUlt:
		if cs[0].Eq(cs[1]) {
			return m.False()
		}
	case node.KBVUle, node.KBVUge, node.KBVSle, node.KBVSge:
		if cs[0].Eq(cs[1]) {
			return m.True()
		}
	case node.KBVUgt, node.KBVSlt, node.KBVSgt:
		if cs[0].Eq(cs[1]) {
			return m.False()
		}
	case node.KBVExtract:
		if t.Index(0) == cs[0].Sort().BVWidth()-1 && t.Index(1) == 0 {
			return cs[0]
		}
	case node.KSelect:
		// select over store at the same index
		a := cs[0]
		if a.Kind() == node.KStore {
			if a.Child(1).Eq(cs[1]) {
				return a.Child(2)
			}
			iv, iok := a.Child(1).BVValue()
			jv, jok := cs[1].BVValue()
			if iok && jok && !iv.Eq(jv) {
				return r.rebuild(node.KSelect, t.Sort(), []node.Term{a.Child(0), cs[1]}, nil)
			}
		}
		if a.Kind() == node.KConstArray {
			return a.Child(0)
		}
	}
	return t
}

// level2: canonical ordering of AC operands and local distribution.
func (r *Rewriter) level2(t node.Term) node.Term {
	cs := t.Children()
	k := t.Kind()
	if k.IsCommutative() && len(cs) >= 2 {
		if !sortedByID(cs) {
			out := append([]node.Term(nil), cs...)
			sort.Slice(out, func(i, j int) bool { return out[i].Id() < out[j].Id() })
			return r.rebuild(k, t.Sort(), out, t.Indices())
		}
	}
	switch k {
	case node.KBVExtract:
		// distribute extract over concat when one side covers it
		c := cs[0]
		if c.Kind() == node.KBVConcat && c.NumChildren() == 2 {
			hi, lo := t.Index(0), t.Index(1)
			loW := c.Child(1).Sort().BVWidth()
			if hi < loW {
				return r.rebuild(node.KBVExtract, t.Sort(), []node.Term{c.Child(1)}, []uint32{hi, lo})
			}
			if lo >= loW {
				return r.rebuild(node.KBVExtract, t.Sort(), []node.Term{c.Child(0)}, []uint32{hi - loW, lo - loW})
			}
		}
		// extract of extract composes
		if c.Kind() == node.KBVExtract {
			hi, lo := t.Index(0), t.Index(1)
			ilo := c.Index(1)
			return r.rebuild(node.KBVExtract, t.Sort(), []node.Term{c.Child(0)}, []uint32{hi + ilo, lo + ilo})
		}
	case node.KBVSub:
		// a - b normalises to a + (-b) so AC sorting can share
		neg := r.rebuild(node.KBVNeg, t.Sort(), []node.Term{cs[1]}, nil)
		return r.rebuild(node.KBVAdd, t.Sort(), []node.Term{cs[0], neg}, nil)
	}
	return t
}

func (r *Rewriter) mkNot(t node.Term) node.Term {
	if t.Kind() == node.KNot {
		return t.Child(0)
	}
	return r.rebuild(node.KNot, t.Sort(), []node.Term{t}, nil)
}

func (r *Rewriter) rebuildNary(t node.Term, k node.Kind, out []node.Term, empty node.Term) node.Term {
	switch len(out) {
	case 0:
		return empty
	case 1:
		return out[0]
	}
	if len(out) == t.NumChildren() && sameTerms(out, t.Children()) {
		return t
	}
	return r.rebuild(k, t.Sort(), out, nil)
}

func (r *Rewriter) bvZero(t node.Term) node.Term {
	return r.m.MkBVValue(bvZeroOf(t))
}

func (r *Rewriter) bvOne(t node.Term) node.Term {
	v := bvZeroOf(t)
	return r.m.MkBVValue(v.Inc())
}

func (r *Rewriter) bvOnes(t node.Term) node.Term {
	return r.m.MkBVValue(bvZeroOf(t).Not())
}

func dedup(cs []node.Term) []node.Term {
	seen := make(map[uint64]bool, len(cs))
	out := cs[:0:0]
	for _, c := range cs {
		if seen[c.Id()] {
			continue
		}
		seen[c.Id()] = true
		out = append(out, c)
	}
	return out
}

// complementary reports whether the list contains both x and (not x).
func complementary(cs []node.Term) (node.Term, bool) {
	ids := make(map[uint64]bool, len(cs))
	for _, c := range cs {
		ids[c.Id()] = true
	}
	for _, c := range cs {
		if c.Kind() == node.KNot && ids[c.Child(0).Id()] {
			return c, true
		}
	}
	return node.Term{}, false
}

func sortedByID(cs []node.Term) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i-1].Id() > cs[i].Id() {
			return false
		}
	}
	return true
}

func sameTerms(a, b []node.Term) bool {
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

func isOne(t node.Term) bool {
	v, ok := t.BVValue()
	if !ok {
		return false
	}
	return v.Eq(bv.Zero(v.Width()).Inc())
}

func bvZeroOf(t node.Term) bv.Value {
	return bv.Zero(t.Sort().BVWidth())
}
