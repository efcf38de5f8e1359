// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package bitwuzla

import (
	"bytes"
	"testing"

	"github.com/matthewsot/bitwuzla/z"
)

func TestBackendBasic(t *testing.T) {
	g := New()
	g.Add(z.Dimacs2Lit(1))
	g.Add(z.Dimacs2Lit(2))
	g.Add(z.LitNull)
	g.Add(z.Dimacs2Lit(-1))
	g.Add(z.LitNull)
	if r := g.Solve(); r != 1 {
		t.Fatalf("expected sat, got %d", r)
	}
	if !g.Value(z.Dimacs2Lit(2)) {
		t.Errorf("2 not forced true")
	}
}

func TestBackendAssume(t *testing.T) {
	g := New()
	g.Add(z.Dimacs2Lit(1))
	g.Add(z.Dimacs2Lit(2))
	g.Add(z.LitNull)
	g.Assume(z.Dimacs2Lit(-1), z.Dimacs2Lit(-2))
	if r := g.Solve(); r != -1 {
		t.Fatalf("expected unsat under assumptions, got %d", r)
	}
	why := g.Why(nil)
	if len(why) == 0 {
		t.Errorf("empty failed assumption set")
	}
	if r := g.Solve(); r != 1 {
		t.Fatalf("assumptions not consumed, got %d", r)
	}
}

func TestBackendDimacs(t *testing.T) {
	cnf := "p cnf 2 2\n1 2 0\n-1 0\n"
	g, err := NewDimacs(bytes.NewBufferString(cnf))
	if err != nil {
		t.Fatal(err)
	}
	if r := g.Solve(); r != 1 {
		t.Fatalf("dimacs problem not sat: %d", r)
	}
	if !g.Value(z.Dimacs2Lit(2)) {
		t.Errorf("wrong dimacs model")
	}
}

func TestBackendGoSolve(t *testing.T) {
	g := New()
	g.Add(z.Dimacs2Lit(1))
	g.Add(z.LitNull)
	conn := g.GoSolve()
	if r := conn.Wait(); r != 1 {
		t.Fatalf("GoSolve result %d", r)
	}
}

func TestBackendCopy(t *testing.T) {
	g := New()
	g.Add(z.Dimacs2Lit(1))
	g.Add(z.LitNull)
	c := g.Copy()
	c.Add(z.Dimacs2Lit(-1))
	c.Add(z.LitNull)
	if r := c.Solve(); r != -1 {
		t.Fatalf("copy with contradiction not unsat: %d", r)
	}
	if r := g.Solve(); r != 1 {
		t.Fatalf("original affected by copy: %d", r)
	}
}
