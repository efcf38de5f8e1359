// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*node.Manager, *Preprocessor, *Stack, node.Sort) {
	t.Helper()
	m := node.NewManager()
	r := rw.New(m, 2)
	p := New(m, r, DefaultOptions(), logr.Discard())
	s, err := m.BVSort(8)
	require.NoError(t, err)
	return m, p, NewStack(), s
}

func TestPushPopRestores(t *testing.T) {
	m, _, st, s := setup(t)
	x, _ := m.MkConst(s, "x")
	zero := m.MkBVValue(bv.Zero(8))
	eq, _ := m.MkTerm(node.KEqual, []node.Term{x, zero}, nil)
	st.Assert(eq)
	before := st.Len()

	st.Push(2)
	ne, _ := m.MkTerm(node.KNot, []node.Term{eq}, nil)
	st.Assert(ne)
	require.Equal(t, before+1, st.Len())
	require.Equal(t, 2, st.Level())

	st.Pop(2)
	require.Equal(t, before, st.Len())
	require.Equal(t, 0, st.Level())
	require.True(t, st.Get(0).Term.Eq(eq))
}

func TestFlattenAnd(t *testing.T) {
	m, p, st, s := setup(t)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	zero := m.MkBVValue(bv.Zero(8))
	e1, _ := m.MkTerm(node.KBVUlt, []node.Term{x, y}, nil)
	e2, _ := m.MkTerm(node.KBVUlt, []node.Term{zero, x}, nil)
	conj, _ := m.MkTerm(node.KAnd, []node.Term{e1, e2}, nil)
	st.Assert(conj)

	require.NoError(t, p.Apply(st))
	for _, a := range st.Terms() {
		require.NotEqual(t, node.KAnd, a.Kind(), "conjunction survived flattening: %s", a)
	}
}

func TestVariableSubstitution(t *testing.T) {
	m, p, st, s := setup(t)
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	three := m.MkBVValue(bv.FromUint64(8, 3))
	def, _ := m.MkTerm(node.KEqual, []node.Term{x, three}, nil)
	use, _ := m.MkTerm(node.KBVUlt, []node.Term{x, y}, nil)
	st.Assert(def)
	st.Assert(use)

	require.NoError(t, p.Apply(st))
	// after substitution no assertion mentions x
	for _, a := range st.Terms() {
		for _, c := range node.FreeConstants(a, nil) {
			require.False(t, c.Eq(x), "x not substituted away in %s", a)
		}
	}
}

func TestElimLambda(t *testing.T) {
	m, p, st, s := setup(t)
	v, _ := m.MkVar(s, "v")
	body, _ := m.MkTerm(node.KBVAdd, []node.Term{v, v}, nil)
	lam, _ := m.MkTerm(node.KLambda, []node.Term{v, body}, nil)
	x, _ := m.MkConst(s, "x")
	app, _ := m.MkTerm(node.KApply, []node.Term{lam, x}, nil)
	dbl, _ := m.MkTerm(node.KBVAdd, []node.Term{x, x}, nil)
	eq, _ := m.MkTerm(node.KEqual, []node.Term{app, dbl}, nil)
	st.Assert(eq)

	require.NoError(t, p.Apply(st))
	for _, a := range st.Terms() {
		requireNoApplyLambda(t, a)
	}
	// (lambda v. v+v)(x) = x+x reduces to true
	require.True(t, st.Get(0).Term.IsTrue(), "beta reduction did not close the equality: %s", st.Get(0).Term)
}

func requireNoApplyLambda(t *testing.T, u node.Term) {
	t.Helper()
	if u.Kind() == node.KApply && u.Child(0).Kind() == node.KLambda {
		t.Fatalf("APPLY(LAMBDA, ...) remains: %s", u)
	}
	for _, c := range u.Children() {
		requireNoApplyLambda(t, c)
	}
}

func TestContradictingAnds(t *testing.T) {
	m, _, st, s := setup(t)
	r := rw.New(m, 0) // keep the rewriter from folding first
	opts := DefaultOptions()
	opts.FlattenAnd = false // keep the conjunction intact for the pass
	p := New(m, r, opts, logr.Discard())
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, y}, nil)
	nlt, _ := m.MkTerm(node.KNot, []node.Term{lt}, nil)
	ge, _ := m.MkTerm(node.KBVUge, []node.Term{x, y}, nil)
	inner, _ := m.MkTerm(node.KAnd, []node.Term{lt, ge}, nil)
	conj, _ := m.MkTerm(node.KAnd, []node.Term{inner, nlt}, nil)
	st.Assert(conj)

	require.NoError(t, p.Apply(st))
	found := false
	for _, a := range st.Terms() {
		if a.IsFalse() {
			found = true
		}
	}
	require.True(t, found, "x and (not x) pattern not replaced by false")
}

func TestProvenanceSurvivesRewrites(t *testing.T) {
	m, p, st, s := setup(t)
	x, _ := m.MkConst(s, "x")
	zero := m.MkBVValue(bv.Zero(8))
	orig, _ := m.MkTerm(node.KBVUle, []node.Term{zero, x}, nil)
	st.Assert(orig)
	require.NoError(t, p.Apply(st))
	require.True(t, st.Get(0).Original.Eq(orig))
}
