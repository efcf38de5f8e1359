// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"testing"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/gen"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/stretchr/testify/require"
)

func newCtx(t *testing.T, mut func(*Options)) *SolvingContext {
	t.Helper()
	opts := DefaultOptions()
	if mut != nil {
		mut(&opts)
	}
	ctx, err := NewContext(opts)
	require.NoError(t, err)
	return ctx
}

func bv4Const(t *testing.T, ctx *SolvingContext, name string) node.Term {
	t.Helper()
	s, err := ctx.Manager().BVSort(4)
	require.NoError(t, err)
	c, err := ctx.Manager().MkConst(s, name)
	require.NoError(t, err)
	return c
}

// assert(x + x = 3) over BitVec(4) is unsat: the sum is even, 3 odd.
func TestOddSumUnsatBitblast(t *testing.T) {
	testOddSumUnsat(t, BVSolverBitblast)
}

func TestOddSumUnsatProp(t *testing.T) {
	testOddSumUnsat(t, BVSolverProp)
}

func testOddSumUnsat(t *testing.T, solver string) {
	ctx := newCtx(t, func(o *Options) {
		o.BVSolver = solver
		o.PropNProps = 100000
	})
	m := ctx.Manager()
	x := bv4Const(t, ctx, "x")
	three := m.MkBVValue(bv.FromUint64(4, 3))
	sum, err := m.MkTerm(node.KBVAdd, []node.Term{x, x}, nil)
	require.NoError(t, err)
	eq, err := m.MkTerm(node.KEqual, []node.Term{sum, three}, nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Assert(eq))

	res, err := ctx.CheckSat()
	require.NoError(t, err)
	if solver == BVSolverProp {
		// the local search cannot conclude unsat by itself; it must
		// not claim sat
		require.NotEqual(t, Sat, res)
	} else {
		require.Equal(t, Unsat, res)
	}
}

// x * (y * z) != (x * y) * z over BitVec(4) is unsat by
// associativity.
func TestMulAssociativityUnsat(t *testing.T) {
	ctx := newCtx(t, nil)
	m := ctx.Manager()
	x := bv4Const(t, ctx, "x")
	y := bv4Const(t, ctx, "y")
	zc := bv4Const(t, ctx, "z")
	yz, _ := m.MkTerm(node.KBVMul, []node.Term{y, zc}, nil)
	l, _ := m.MkTerm(node.KBVMul, []node.Term{x, yz}, nil)
	xy, _ := m.MkTerm(node.KBVMul, []node.Term{x, y}, nil)
	r, _ := m.MkTerm(node.KBVMul, []node.Term{xy, zc}, nil)
	eq, _ := m.MkTerm(node.KEqual, []node.Term{l, r}, nil)
	ne, err := m.MkTerm(node.KNot, []node.Term{eq}, nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Assert(ne))

	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Unsat, res)
}

func TestSatWithModel(t *testing.T) {
	ctx := newCtx(t, func(o *Options) { o.ProduceModels = true })
	m := ctx.Manager()
	x := bv4Const(t, ctx, "x")
	five := m.MkBVValue(bv.FromUint64(4, 5))
	lt, _ := m.MkTerm(node.KBVUlt, []node.Term{x, five}, nil)
	require.NoError(t, ctx.Assert(lt))

	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res)

	v, err := ctx.GetValue(x)
	require.NoError(t, err)
	xv, ok := v.BVValue()
	require.True(t, ok)
	require.True(t, xv.Ult(bv.FromUint64(4, 5)), "model value %s violates the assertion", xv)

	// invariant 7: every assertion evaluates to true under the model
	lv, err := ctx.GetValue(lt)
	require.NoError(t, err)
	require.True(t, lv.IsTrue())
}

func TestUnsatCorePushPop(t *testing.T) {
	ctx := newCtx(t, func(o *Options) {
		o.Incremental = true
		o.ProduceUnsatCores = true
	})
	m := ctx.Manager()
	a, err := m.MkConst(m.BoolSort(), "a")
	require.NoError(t, err)
	na, _ := m.MkTerm(node.KNot, []node.Term{a}, nil)

	require.NoError(t, ctx.Push(1))
	require.NoError(t, ctx.Assert(a))
	require.NoError(t, ctx.Assert(na))
	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Unsat, res)

	core, err := ctx.GetUnsatCore()
	require.NoError(t, err)
	require.Len(t, core, 2)
	ids := map[uint64]bool{core[0].Id(): true, core[1].Id(): true}
	require.True(t, ids[a.Id()] && ids[na.Id()], "core is not {a, not a}")

	require.NoError(t, ctx.Pop(1))
	res, err = ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res)
}

// exists x . 0 = x * c is sat: x = 0 always witnesses.
func TestExistsZeroProduct(t *testing.T) {
	ctx := newCtx(t, nil)
	m := ctx.Manager()
	s, _ := m.BVSort(8)
	c := m.MkBVValue(bv.FromUint64(8, 37))
	x, err := m.MkVar(s, "x")
	require.NoError(t, err)
	zero := m.MkBVValue(bv.Zero(8))
	prod, _ := m.MkTerm(node.KBVMul, []node.Term{x, c}, nil)
	eq, _ := m.MkTerm(node.KEqual, []node.Term{zero, prod}, nil)
	ex, err := m.MkTerm(node.KExists, []node.Term{x, eq}, nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Assert(ex))

	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res)
}

func TestAssumptions(t *testing.T) {
	ctx := newCtx(t, func(o *Options) { o.Incremental = true })
	m := ctx.Manager()
	a, _ := m.MkConst(m.BoolSort(), "a")
	b, _ := m.MkConst(m.BoolSort(), "b")
	na, _ := m.MkTerm(node.KNot, []node.Term{a}, nil)
	imp, _ := m.MkTerm(node.KImplies, []node.Term{b, na}, nil)
	require.NoError(t, ctx.Assert(imp))

	res, err := ctx.CheckSat(a, b)
	require.NoError(t, err)
	require.Equal(t, Unsat, res)

	failed, err := ctx.GetUnsatAssumptions()
	require.NoError(t, err)
	require.NotEmpty(t, failed)

	// assumptions are single shot: the next call is unconstrained
	res, err = ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res)
}

func TestNonIncrementalDoubleSolveFails(t *testing.T) {
	ctx := newCtx(t, nil)
	m := ctx.Manager()
	a, _ := m.MkConst(m.BoolSort(), "a")
	require.NoError(t, ctx.Assert(a))
	_, err := ctx.CheckSat()
	require.NoError(t, err)
	_, err = ctx.CheckSat()
	require.Error(t, err)
	ex, ok := err.(*Exception)
	require.True(t, ok)
	require.Equal(t, "InvalidUsage", ex.Kind)
}

func TestPushWithoutIncrementalFails(t *testing.T) {
	ctx := newCtx(t, nil)
	err := ctx.Push(1)
	require.Error(t, err)
	require.Equal(t, "InvalidUsage", err.(*Exception).Kind)
}

func TestPigeonholeFamily(t *testing.T) {
	ctx := newCtx(t, nil)
	asserts, err := gen.Pigeonhole(ctx.Manager(), 4, 3)
	require.NoError(t, err)
	for _, a := range asserts {
		require.NoError(t, ctx.Assert(a))
	}
	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Unsat, res, "4 pigeons do not fit 3 holes")

	ctx = newCtx(t, nil)
	asserts, err = gen.Pigeonhole(ctx.Manager(), 3, 3)
	require.NoError(t, err)
	for _, a := range asserts {
		require.NoError(t, ctx.Assert(a))
	}
	res, err = ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res, "3 pigeons fit 3 holes")
}

// the rewriter must preserve equivalence on random formulas: the
// disagreement t xor rewrite(t) is always unsatisfiable.
func TestRewriteEquivalenceFuzz(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		ctx := newCtx(t, nil)
		m := ctx.Manager()
		g, err := gen.NewBV(m, 4, 3, seed)
		require.NoError(t, err)
		r := rw.New(m, 2)
		p := g.Pred(3)
		rp := r.Rewrite(p)
		iff, err := m.MkTerm(node.KIff, []node.Term{p, rp}, nil)
		require.NoError(t, err)
		ne, err := m.MkTerm(node.KNot, []node.Term{iff}, nil)
		require.NoError(t, err)
		require.NoError(t, ctx.Assert(ne))
		res, err := ctx.CheckSat()
		require.NoError(t, err)
		require.Equal(t, Unsat, res, "seed %d: rewrite changed the formula", seed)
	}
}

func TestTerminator(t *testing.T) {
	ctx := newCtx(t, nil)
	ctx.SetTerminate(func() bool { return true })
	m := ctx.Manager()
	a, _ := m.MkConst(m.BoolSort(), "a")
	require.NoError(t, ctx.Assert(a))
	res, err := ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Unknown, res)
}
