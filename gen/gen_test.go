// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package gen

import (
	"testing"

	"github.com/matthewsot/bitwuzla/node"
)

func TestDeterministic(t *testing.T) {
	m := node.NewManager()
	g1, err := NewBV(m, 8, 3, 11)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewBV(m, 8, 3, 11)
	if err != nil {
		t.Fatal(err)
	}
	// the pools differ (fresh constants) but the shapes must match
	for i := 0; i < 16; i++ {
		a := g1.Pred(3)
		b := g2.Pred(3)
		if a.Kind() != b.Kind() {
			t.Fatalf("same seed diverged at %d: %s vs %s", i, a.Kind(), b.Kind())
		}
	}
}

func TestTermSorts(t *testing.T) {
	m := node.NewManager()
	g, err := NewBV(m, 8, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 32; i++ {
		tm := g.Term(3)
		if !tm.Sort().IsBV() || tm.Sort().BVWidth() != 8 {
			t.Fatalf("term sort %s", tm.Sort())
		}
		p := g.Pred(2)
		if !p.Sort().IsBool() {
			t.Fatalf("pred sort %s", p.Sort())
		}
	}
}

func TestPigeonholeShape(t *testing.T) {
	m := node.NewManager()
	asserts, err := Pigeonhole(m, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	// 4 range constraints plus 6 disequalities
	if len(asserts) != 4+6 {
		t.Fatalf("assertion count %d", len(asserts))
	}
	for _, a := range asserts {
		if !a.Sort().IsBool() {
			t.Fatalf("non-boolean assertion %s", a)
		}
	}
}
