// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"testing"

	"github.com/matthewsot/bitwuzla/z"
)

func add(s *S, ms ...int) {
	for _, m := range ms {
		s.Add(z.Dimacs2Lit(m))
	}
	s.Add(z.LitNull)
}

func TestSolveSat(t *testing.T) {
	s := NewS()
	add(s, 1, 2)
	add(s, -1, 2)
	add(s, 1, -2)
	if r := s.Solve(); r != 1 {
		t.Fatalf("expected sat, got %d", r)
	}
	if !s.Value(z.Dimacs2Lit(1)) || !s.Value(z.Dimacs2Lit(2)) {
		t.Errorf("model does not force 1 and 2")
	}
}

func TestSolveUnsat(t *testing.T) {
	s := NewS()
	add(s, 1, 2)
	add(s, -1, 2)
	add(s, 1, -2)
	add(s, -1, -2)
	if r := s.Solve(); r != -1 {
		t.Fatalf("expected unsat, got %d", r)
	}
}

func TestSolveAssumptions(t *testing.T) {
	s := NewS()
	add(s, 1, 2)
	s.Assume(z.Dimacs2Lit(-1))
	s.Assume(z.Dimacs2Lit(-2))
	if r := s.Solve(); r != -1 {
		t.Fatalf("expected unsat under assumptions, got %d", r)
	}
	why := s.Why(nil)
	if len(why) == 0 {
		t.Errorf("no failed assumptions reported")
	}
	// assumptions are consumed: without them the problem is sat
	if r := s.Solve(); r != 1 {
		t.Fatalf("expected sat after dropping assumptions, got %d", r)
	}
}

func TestTestUntest(t *testing.T) {
	s := NewS()
	add(s, 1, 2)
	add(s, -2, 3)
	s.Assume(z.Dimacs2Lit(2))
	r, implied := s.Test(nil)
	if r == -1 {
		t.Fatalf("unexpected unsat")
	}
	found := false
	for _, m := range implied {
		if m == z.Dimacs2Lit(3) {
			found = true
		}
	}
	if !found {
		t.Errorf("2 does not propagate 3: %v", implied)
	}
	rs := s.Reasons(nil, z.Dimacs2Lit(3))
	if len(rs) != 1 || rs[0] != z.Dimacs2Lit(2) {
		t.Errorf("wrong reasons for 3: %v", rs)
	}
	if r := s.Untest(); r != 0 {
		t.Errorf("untest reports inconsistency: %d", r)
	}
}

func TestPhaseAndRestarts(t *testing.T) {
	s := NewS()
	// a chain forcing many propagations and some conflicts
	n := 64
	for i := 1; i < n; i++ {
		add(s, -i, i+1)
	}
	add(s, 1)
	if r := s.Solve(); r != 1 {
		t.Fatalf("chain not sat: %d", r)
	}
	for i := 1; i <= n; i++ {
		if !s.Value(z.Dimacs2Lit(i)) {
			t.Fatalf("chain variable %d not forced", i)
		}
	}
}

func TestCopy(t *testing.T) {
	s := NewS()
	add(s, 1, 2)
	add(s, -1)
	c := s.Copy()
	if r := c.Solve(); r != 1 {
		t.Fatalf("copy not sat: %d", r)
	}
	if !c.Value(z.Dimacs2Lit(2)) {
		t.Errorf("copy model wrong")
	}
	// the original is unaffected by solving the copy
	if r := s.Solve(); r != 1 {
		t.Fatalf("original not sat after copy solved: %d", r)
	}
}

func TestActivation(t *testing.T) {
	s := NewS()
	s.Add(z.Dimacs2Lit(1))
	act := s.Activate()
	s.Assume(act)
	if r := s.Solve(); r != 1 {
		t.Fatalf("activated group not sat: %d", r)
	}
	if !s.Value(z.Dimacs2Lit(1)) {
		t.Errorf("activated unit not forced")
	}
	s.Deactivate(act)
	s.Add(z.Dimacs2Lit(-1))
	s.Add(z.LitNull)
	if r := s.Solve(); r != 1 {
		t.Fatalf("deactivated group still constrains: %d", r)
	}
}
