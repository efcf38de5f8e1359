// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package blast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matthewsot/bitwuzla"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

func setup(t *testing.T) (*node.Manager, *Blaster, node.Sort) {
	t.Helper()
	m := node.NewManager()
	b := New(m, bitwuzla.New())
	s, err := m.BVSort(4)
	if err != nil {
		t.Fatal(err)
	}
	return m, b, s
}

func TestAssertAndModel(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	five := m.MkBVValue(bv.FromUint64(4, 5))
	eq, err := m.MkTerm(node.KEqual, []node.Term{x, five}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Assert(eq); err != nil {
		t.Fatal(err)
	}
	if r := b.Sat.Solve(); r != 1 {
		t.Fatalf("x = 5 not sat: %d", r)
	}
	v, ok := b.InputValue(x)
	if !ok {
		t.Fatalf("no bits recorded for x")
	}
	if v.Uint64() != 5 {
		t.Errorf("model value %d != 5", v.Uint64())
	}
}

func TestOddSum(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{x, x}, nil)
	three := m.MkBVValue(bv.FromUint64(4, 3))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{sum, three}, nil)
	if err := b.Assert(eq); err != nil {
		t.Fatal(err)
	}
	if r := b.Sat.Solve(); r != -1 {
		t.Fatalf("x + x = 3 not unsat: %d", r)
	}
}

func TestUdivByZero(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	zero := m.MkBVValue(bv.Zero(4))
	div, _ := m.MkTerm(node.KBVUdiv, []node.Term{x, zero}, nil)
	ones := m.MkBVValue(bv.Ones(4))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{div, ones}, nil)
	ne, _ := m.MkTerm(node.KNot, []node.Term{eq}, nil)
	if err := b.Assert(ne); err != nil {
		t.Fatal(err)
	}
	if r := b.Sat.Solve(); r != -1 {
		t.Fatalf("bvudiv by zero is not always all-ones: %d", r)
	}
}

func TestShiftSemantics(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	big := m.MkBVValue(bv.FromUint64(4, 9))
	shl, _ := m.MkTerm(node.KBVShl, []node.Term{x, big}, nil)
	zero := m.MkBVValue(bv.Zero(4))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{shl, zero}, nil)
	ne, _ := m.MkTerm(node.KNot, []node.Term{eq}, nil)
	if err := b.Assert(ne); err != nil {
		t.Fatal(err)
	}
	if r := b.Sat.Solve(); r != -1 {
		t.Fatalf("shift beyond width is not always zero: %d", r)
	}
}

func TestAssumptions(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	five := m.MkBVValue(bv.FromUint64(4, 5))
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, five}, nil)
	ge, _ := m.MkTerm(node.KBVUge, []node.Term{x, five}, nil)
	l1, err := b.AssumeLit(lt)
	if err != nil {
		t.Fatal(err)
	}
	l2, err := b.AssumeLit(ge)
	if err != nil {
		t.Fatal(err)
	}
	b.Sat.Assume(l1, l2)
	if r := b.Sat.Solve(); r != -1 {
		t.Fatalf("x < 5 and x >= 5 not unsat: %d", r)
	}
	b.Sat.Assume(l1)
	if r := b.Sat.Solve(); r != 1 {
		t.Fatalf("x < 5 alone not sat: %d", r)
	}
}

func TestWriteAiger(t *testing.T) {
	m, b, s := setup(t)
	x, _ := m.MkConst(s, "x")
	five := m.MkBVValue(bv.FromUint64(4, 5))
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, five}, nil)
	var buf bytes.Buffer
	if err := b.WriteAiger(&buf, lt); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "aag ") {
		t.Errorf("not an ascii aiger header: %q", buf.String()[:16])
	}
}

// overflow predicate circuits agree with the value semantics on every
// input pair at width 4.
func TestOverflowCircuits(t *testing.T) {
	kinds := []node.Kind{
		node.KBVUaddo, node.KBVSaddo, node.KBVUsubo, node.KBVSsubo,
		node.KBVUmulo, node.KBVSmulo, node.KBVSdivo,
	}
	for _, k := range kinds {
		m, b, s := setup(t)
		x, _ := m.MkConst(s, "x")
		y, _ := m.MkConst(s, "y")
		pred, err := m.MkTerm(k, []node.Term{x, y}, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := uint64(0); i < 16; i++ {
			for j := uint64(0); j < 16; j++ {
				xv, yv := bv.FromUint64(4, i), bv.FromUint64(4, j)
				want := false
				switch k {
				case node.KBVUaddo:
					want = xv.Uaddo(yv)
				case node.KBVSaddo:
					want = xv.Saddo(yv)
				case node.KBVUsubo:
					want = xv.Usubo(yv)
				case node.KBVSsubo:
					want = xv.Ssubo(yv)
				case node.KBVUmulo:
					want = xv.Umulo(yv)
				case node.KBVSmulo:
					want = xv.Smulo(yv)
				case node.KBVSdivo:
					want = xv.Sdivo(yv)
				}
				xV := m.MkBVValue(xv)
				yV := m.MkBVValue(yv)
				eqx, _ := m.MkTerm(node.KEqual, []node.Term{x, xV}, nil)
				eqy, _ := m.MkTerm(node.KEqual, []node.Term{y, yV}, nil)
				a1, err := b.AssumeLit(eqx)
				if err != nil {
					t.Fatal(err)
				}
				a2, err := b.AssumeLit(eqy)
				if err != nil {
					t.Fatal(err)
				}
				goal, err := b.AssumeLit(pred)
				if err != nil {
					t.Fatal(err)
				}
				if !want {
					goal = goal.Not()
				}
				b.Sat.Assume(a1, a2, goal)
				if r := b.Sat.Solve(); r != 1 {
					t.Fatalf("%s(%d, %d) circuit disagrees with value %t", k, i, j, want)
				}
			}
		}
	}
}
