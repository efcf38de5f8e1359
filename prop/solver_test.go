// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package prop

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

func solver(t *testing.T, mut func(*Options)) (*node.Manager, *Solver, node.Sort) {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = 7
	opts.NProps = 200000
	if mut != nil {
		mut(&opts)
	}
	m := node.NewManager()
	s, err := m.BVSort(8)
	if err != nil {
		t.Fatal(err)
	}
	return m, New(m, opts, logr.Discard()), s
}

func TestSolveEquality(t *testing.T) {
	m, sv, s := solver(t, nil)
	x, _ := m.MkConst(s, "x")
	v := m.MkBVValue(bv.FromUint64(8, 42))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{x, v}, nil)
	sv.Assert(eq)
	if r := sv.Solve(); r != 1 {
		t.Fatalf("x = 42 not solved: %d", r)
	}
	got, ok := sv.Value(x)
	if !ok || got.Uint64() != 42 {
		t.Errorf("assignment %v, %t", got, ok)
	}
}

func TestSolveChain(t *testing.T) {
	m, sv, s := solver(t, nil)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	ten := m.MkBVValue(bv.FromUint64(8, 10))
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{x, y}, nil)
	eq, _ := m.MkTerm(node.KEqual, []node.Term{sum, ten}, nil)
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, y}, nil)
	sv.Assert(eq)
	sv.Assert(lt)
	if r := sv.Solve(); r != 1 {
		t.Fatalf("x + y = 10, x < y not solved: %d", r)
	}
	xv, _ := sv.Value(x)
	yv, _ := sv.Value(y)
	if !xv.Add(yv).Eq(bv.FromUint64(8, 10)) || !xv.Ult(yv) {
		t.Errorf("assignment x=%v y=%v violates the assertions", xv, yv)
	}
}

func TestBudgetExhaustion(t *testing.T) {
	m, sv, s := solver(t, func(o *Options) { o.NProps = 4 })
	x, _ := m.MkConst(s, "x")
	sum, _ := m.MkTerm(node.KBVAdd, []node.Term{x, x}, nil)
	three := m.MkBVValue(bv.FromUint64(8, 3))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{sum, three}, nil)
	sv.Assert(eq)
	if r := sv.Solve(); r != 0 {
		t.Fatalf("unsatisfiable input under a tiny budget must be unknown, got %d", r)
	}
}

func TestTrivialFalse(t *testing.T) {
	m, sv, _ := solver(t, nil)
	sv.Assert(m.False())
	if r := sv.Solve(); r != -1 {
		t.Fatalf("false assertion not unsat: %d", r)
	}
}

func TestSupports(t *testing.T) {
	m, _, s := solver(t, nil)
	x, _ := m.MkConst(s, "x")
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, x}, nil)
	if !Supports(lt) {
		t.Errorf("pure BV term rejected")
	}
	arrS, _ := m.ArraySort(s, s)
	a, _ := m.MkConst(arrS, "a")
	sel, _ := m.MkTerm(node.KSelect, []node.Term{a, x}, nil)
	eq, _ := m.MkTerm(node.KEqual, []node.Term{sel, x}, nil)
	if Supports(eq) {
		t.Errorf("array term accepted")
	}
}
