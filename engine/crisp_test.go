// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"os"
	"testing"
	"time"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/crisp"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/stretchr/testify/require"
)

const crispSock = "@crisp-engine0"

func startCrisp(t *testing.T) {
	t.Helper()
	os.Remove("crisp-engine0")
	go func() {
		crisp.ListenAndServe(crispSock)
	}()
	time.Sleep(50 * time.Millisecond)
}

// the remote backend must agree with the built-in one end to end.
func TestCrispBackend(t *testing.T) {
	startCrisp(t)
	ctx := newCtx(t, func(o *Options) {
		o.SatSolver = "crisp"
		o.CrispAddress = crispSock
		o.ProduceModels = true
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
	require.Equal(t, Unsat, res)

	ctx = newCtx(t, func(o *Options) {
		o.SatSolver = "crisp"
		o.CrispAddress = crispSock
		o.ProduceModels = true
	})
	m = ctx.Manager()
	y := bv4Const(t, ctx, "y")
	five := m.MkBVValue(bv.FromUint64(4, 5))
	lt, err := m.MkTerm(node.KBVUlt, []node.Term{y, five}, nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Assert(lt))

	res, err = ctx.CheckSat()
	require.NoError(t, err)
	require.Equal(t, Sat, res)

	v, err := ctx.GetValue(y)
	require.NoError(t, err)
	yv, ok := v.BVValue()
	require.True(t, ok)
	require.True(t, yv.Ult(bv.FromUint64(4, 5)), "remote model value %s", yv)
}

func TestCrispBackendNeedsAddress(t *testing.T) {
	opts := DefaultOptions()
	opts.SatSolver = "crisp"
	_, err := NewContext(opts)
	require.Error(t, err)
	require.Equal(t, "InvalidOption", err.(*Exception).Kind)
}
