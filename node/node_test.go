// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import (
	"testing"

	"github.com/matthewsot/bitwuzla/bv"
)

func TestHashConsing(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	x, _ := m.MkConst(bv8, "x")
	y, _ := m.MkConst(bv8, "y")
	if x.Eq(y) {
		t.Fatalf("distinct constants interned together")
	}
	a, err := m.MkTerm(KBVAdd, []Term{x, y}, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.MkTerm(KBVAdd, []Term{x, y}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Eq(b) || a.Id() != b.Id() {
		t.Errorf("structurally identical terms are not identical")
	}
	c, _ := m.MkTerm(KBVAdd, []Term{y, x}, nil)
	if c.Eq(a) {
		t.Errorf("operand order must distinguish terms at construction")
	}
}

func TestSortsInterned(t *testing.T) {
	m := NewManager()
	a, _ := m.BVSort(32)
	b, _ := m.BVSort(32)
	if a != b || a.Id() != b.Id() {
		t.Errorf("equal bit-vector sorts not interned")
	}
	f1, _ := m.FPSort(8, 24)
	f2, _ := m.FPSort(8, 24)
	if f1 != f2 {
		t.Errorf("equal floating-point sorts not interned")
	}
	u1 := m.UninterpretedSort("")
	u2 := m.UninterpretedSort("")
	if u1 == u2 {
		t.Errorf("anonymous uninterpreted sorts interned together")
	}
	n1 := m.UninterpretedSort("S")
	n2 := m.UninterpretedSort("S")
	if n1 != n2 {
		t.Errorf("named uninterpreted sorts not shared")
	}
}

func TestTypeCheck(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	bv16, _ := m.BVSort(16)
	x, _ := m.MkConst(bv8, "x")
	y, _ := m.MkConst(bv16, "y")
	if _, err := m.MkTerm(KBVAdd, []Term{x, y}, nil); err == nil {
		t.Errorf("width mismatch accepted")
	}
	if _, err := m.MkTerm(KBVAdd, []Term{x}, nil); err == nil {
		t.Errorf("arity violation accepted")
	}
	if _, err := m.MkTerm(KBVExtract, []Term{x}, []uint32{9, 0}); err == nil {
		t.Errorf("out-of-range extract accepted")
	}
	if _, err := m.MkTerm(KBVExtract, []Term{x}, []uint32{1, 3}); err == nil {
		t.Errorf("inverted extract accepted")
	}
	e, err := m.MkTerm(KBVExtract, []Term{x}, []uint32{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if e.Sort().BVWidth() != 3 {
		t.Errorf("extract result width %d", e.Sort().BVWidth())
	}
	cat, _ := m.MkTerm(KBVConcat, []Term{x, y}, nil)
	if cat.Sort().BVWidth() != 24 {
		t.Errorf("concat result width %d", cat.Sort().BVWidth())
	}
}

func TestLambdaSorts(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	v, _ := m.MkVar(bv8, "v")
	body, _ := m.MkTerm(KBVAdd, []Term{v, v}, nil)
	lam, err := m.MkTerm(KLambda, []Term{v, body}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !lam.Sort().IsFun() || lam.Sort().Arity() != 1 {
		t.Errorf("lambda sort wrong: %s", lam.Sort())
	}
	x, _ := m.MkConst(bv8, "x")
	app, err := m.MkTerm(KApply, []Term{lam, x}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if app.Sort() != bv8 {
		t.Errorf("apply result sort %s", app.Sort())
	}
}

func TestSubstitute(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	x, _ := m.MkConst(bv8, "x")
	y, _ := m.MkConst(bv8, "y")
	sum, _ := m.MkTerm(KBVAdd, []Term{x, x}, nil)
	got, err := m.Substitute(sum, map[Term]Term{x: y})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := m.MkTerm(KBVAdd, []Term{y, y}, nil)
	if !got.Eq(want) {
		t.Errorf("substitution wrong: %s", got)
	}
}

func TestSubstituteBinderShadow(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	v, _ := m.MkVar(bv8, "v")
	body, _ := m.MkTerm(KEqual, []Term{v, v}, nil)
	all, _ := m.MkTerm(KForall, []Term{v, body}, nil)
	x, _ := m.MkConst(bv8, "x")
	// v is bound: the substitution must not reach under the binder
	got, err := m.Substitute(all, map[Term]Term{v: x})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Eq(all) {
		t.Errorf("bound variable substituted: %s", got)
	}
}

func TestFreeVariables(t *testing.T) {
	m := NewManager()
	bv8, _ := m.BVSort(8)
	v, _ := m.MkVar(bv8, "v")
	eq, _ := m.MkTerm(KEqual, []Term{v, v}, nil)
	if !HasFreeVariable(eq) {
		t.Errorf("free variable not detected")
	}
	all, _ := m.MkTerm(KForall, []Term{v, eq}, nil)
	if HasFreeVariable(all) {
		t.Errorf("bound variable reported free")
	}
}

func TestValues(t *testing.T) {
	m := NewManager()
	a := m.MkBVValue(bv.FromUint64(8, 5))
	b := m.MkBVValue(bv.FromUint64(8, 5))
	if !a.Eq(b) {
		t.Errorf("equal values not interned")
	}
	c := m.MkBVValue(bv.FromUint64(16, 5))
	if c.Eq(a) {
		t.Errorf("values of different widths interned together")
	}
	if !m.True().Eq(m.MkBoolValue(true)) {
		t.Errorf("true not shared")
	}
}
