// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package api

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matthewsot/bitwuzla/node"
)

func session(t *testing.T) *Bitwuzla {
	t.Helper()
	b, err := New(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestPrintSorts(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	fp32, _ := b.MkFPSort(8, 24)
	arr, _ := b.MkArraySort(bv8, bv8)
	for _, tc := range []struct {
		s    Sort
		want string
	}{
		{b.MkBoolSort(), "Bool"},
		{bv8, "(_ BitVec 8)"},
		{fp32, "(_ FloatingPoint 8 24)"},
		{b.MkRMSort(), "RoundingMode"},
		{arr, "(Array (_ BitVec 8) (_ BitVec 8))"},
	} {
		if got := PrintSort(tc.s); got != tc.want {
			t.Errorf("sort rendering: %s", cmp.Diff(tc.want, got))
		}
	}
}

func TestPrintValues(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	v, _ := b.MkBVValue(bv8, "ab", 16)
	if got := PrintValue(v, 2); got != "#b10101011" {
		t.Errorf("binary value rendering: %q", got)
	}
	if got := PrintValue(v, 16); got != "#xab" {
		t.Errorf("hex value rendering: %q", got)
	}
	if got := PrintValue(v, 10); got != "(_ bv171 8)" {
		t.Errorf("decimal value rendering: %q", got)
	}
	if got := PrintValue(b.MkTrue(), 2); got != "true" {
		t.Errorf("bool rendering: %q", got)
	}
}

func TestPrintLetBindings(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	x, _ := b.MkConst(bv8, "x")
	y, _ := b.MkConst(bv8, "y")
	sum, _ := b.MkTerm(node.KBVAdd, []Term{x, y})
	// sum is referenced twice: it must be letified exactly once
	prod, _ := b.MkTerm(node.KBVMul, []Term{sum, sum})
	got := PrintTerm(prod)
	if !strings.Contains(got, "(let ((_let0 (bvadd x y)))") {
		t.Errorf("shared sub-term not letified: %q", got)
	}
	if strings.Count(got, "bvadd") != 1 {
		t.Errorf("shared sub-term duplicated: %q", got)
	}
	if !strings.Contains(got, "(bvmul _let0 _let0)") {
		t.Errorf("binding not referenced: %q", got)
	}
}

func TestPrintBinder(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	v, _ := b.MkVar(bv8, "v")
	body, _ := b.MkTerm(node.KEqual, []Term{v, v})
	all, _ := b.MkTerm(node.KForall, []Term{v, body})
	got := PrintTerm(all)
	want := "(forall ((v (_ BitVec 8))) (= v v))"
	if got != want {
		t.Errorf("binder rendering: %s", cmp.Diff(want, got))
	}
}

func TestPrintIndexed(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	x, _ := b.MkConst(bv8, "x")
	ex, _ := b.MkTerm(node.KBVExtract, []Term{x}, 3, 0)
	if got := PrintTerm(ex); got != "((_ extract 3 0) x)" {
		t.Errorf("indexed rendering: %q", got)
	}
}

func TestPrintDeterministic(t *testing.T) {
	b := session(t)
	bv8, _ := b.MkBVSort(8)
	x, _ := b.MkConst(bv8, "x")
	y, _ := b.MkConst(bv8, "y")
	sum, _ := b.MkTerm(node.KBVAdd, []Term{x, y})
	prod, _ := b.MkTerm(node.KBVMul, []Term{sum, sum})
	if PrintTerm(prod) != PrintTerm(prod) {
		t.Errorf("printer is not deterministic")
	}
}
