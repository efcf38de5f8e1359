// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package rw

import (
	"testing"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

func setup(level int) (*node.Manager, *Rewriter, node.Sort) {
	m := node.NewManager()
	r := New(m, level)
	s, _ := m.BVSort(8)
	return m, r, s
}

func TestLevel0Identity(t *testing.T) {
	m, r, s := setup(0)
	x, _ := m.MkConst(s, "x")
	zero := m.MkBVValue(bv.Zero(8))
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{x, zero}, nil)
	if !r.Rewrite(sum).Eq(sum) {
		t.Errorf("level 0 rewrote a term")
	}
}

func TestConstantFolding(t *testing.T) {
	m, r, _ := setup(1)
	a := m.MkBVValue(bv.FromUint64(8, 3))
	b := m.MkBVValue(bv.FromUint64(8, 4))
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{a, b}, nil)
	got := r.Rewrite(sum)
	if v, ok := got.BVValue(); !ok || v.Uint64() != 7 {
		t.Errorf("3 + 4 did not fold: %s", got)
	}
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{a, b}, nil)
	if !r.Rewrite(lt).IsTrue() {
		t.Errorf("3 < 4 did not fold to true")
	}
}

func TestIdentityElements(t *testing.T) {
	m, r, s := setup(1)
	x, _ := m.MkConst(s, "x")
	zero := m.MkBVValue(bv.Zero(8))
	one := m.MkBVValue(bv.Zero(8).Inc())
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{x, zero}, nil)
	if !r.Rewrite(sum).Eq(x) {
		t.Errorf("x + 0 != x")
	}
	prod, _ := m.MkTerm(node.KBVMul, []node.Term{x, one}, nil)
	if !r.Rewrite(prod).Eq(x) {
		t.Errorf("x * 1 != x")
	}
	prod0, _ := m.MkTerm(node.KBVMul, []node.Term{x, zero}, nil)
	if v, ok := r.Rewrite(prod0).BVValue(); !ok || !v.IsZero() {
		t.Errorf("x * 0 != 0")
	}
	sub, _ := m.MkTerm(node.KBVSub, []node.Term{x, x}, nil)
	if v, ok := r.Rewrite(sub).BVValue(); !ok || !v.IsZero() {
		t.Errorf("x - x != 0")
	}
}

func TestBoolRules(t *testing.T) {
	m, r, s := setup(1)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	p, _ := m.MkTerm(node.KBVUlt, []node.Term{x, y}, nil)
	np, _ := m.MkTerm(node.KNot, []node.Term{p}, nil)
	contra, _ := m.MkTerm(node.KAnd, []node.Term{p, np}, nil)
	if !r.Rewrite(contra).IsFalse() {
		t.Errorf("p and (not p) != false")
	}
	taut, _ := m.MkTerm(node.KOr, []node.Term{p, np}, nil)
	if !r.Rewrite(taut).IsTrue() {
		t.Errorf("p or (not p) != true")
	}
	dn, _ := m.MkTerm(node.KNot, []node.Term{np}, nil)
	if !r.Rewrite(dn).Eq(r.Rewrite(p)) {
		t.Errorf("double negation not eliminated")
	}
	ite, _ := m.MkTerm(node.KIte, []node.Term{p, x, x}, nil)
	if !r.Rewrite(ite).Eq(x) {
		t.Errorf("ite c x x != x")
	}
}

func TestIdempotent(t *testing.T) {
	m, r, s := setup(2)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	zero := m.MkBVValue(bv.Zero(8))
	inner, _ := m.MkTerm(node.KBVAdd, []node.Term{y, zero}, nil)
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{inner, x}, nil)
	once := r.Rewrite(sum)
	twice := r.Rewrite(once)
	if !once.Eq(twice) {
		t.Errorf("rewrite not idempotent: %s vs %s", once, twice)
	}
}

func TestACSorting(t *testing.T) {
	m, r, s := setup(2)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	ab, _ := m.MkTerm(node.KBVAnd, []node.Term{y, x}, nil)
	ba, _ := m.MkTerm(node.KBVAnd, []node.Term{x, y}, nil)
	if !r.Rewrite(ab).Eq(r.Rewrite(ba)) {
		t.Errorf("AC operands not canonically ordered")
	}
}

func TestExtractOverConcat(t *testing.T) {
	m, r, _ := setup(2)
	s4, _ := m.BVSort(4)
	hi, _ := m.MkConst(s4, "hi")
	lo, _ := m.MkConst(s4, "lo")
	cat, _ := m.MkTerm(node.KBVConcat, []node.Term{hi, lo}, nil)
	exLo, _ := m.MkTerm(node.KBVExtract, []node.Term{cat}, []uint32{3, 0})
	if !r.Rewrite(exLo).Eq(lo) {
		t.Errorf("extract of low half did not reduce: %s", r.Rewrite(exLo))
	}
	exHi, _ := m.MkTerm(node.KBVExtract, []node.Term{cat}, []uint32{7, 4})
	if !r.Rewrite(exHi).Eq(hi) {
		t.Errorf("extract of high half did not reduce: %s", r.Rewrite(exHi))
	}
}

func TestSelectStore(t *testing.T) {
	m, r, s := setup(1)
	arrS, _ := m.ArraySort(s, s)
	a, _ := m.MkConst(arrS, "a")
	i, _ := m.MkConst(s, "i")
	v, _ := m.MkConst(s, "v")
	st, _ := m.MkTerm(node.KStore, []node.Term{a, i, v}, nil)
	sel, _ := m.MkTerm(node.KSelect, []node.Term{st, i}, nil)
	if !r.Rewrite(sel).Eq(v) {
		t.Errorf("select over store at same index did not reduce")
	}
}
