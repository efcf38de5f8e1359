// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package theory

import (
	"testing"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/stretchr/testify/require"
)

// mapModel is a fixed assignment for terms by id.
type mapModel map[uint64]node.Term

func (m mapModel) Value(t node.Term) (node.Term, bool) {
	if t.IsValue() {
		return t, true
	}
	v, ok := m[t.Id()]
	return v, ok
}

func TestArrayReadOverWriteLemma(t *testing.T) {
	m := node.NewManager()
	s, _ := m.BVSort(4)
	arrS, _ := m.ArraySort(s, s)
	a, _ := m.MkConst(arrS, "a")
	i, _ := m.MkConst(s, "i")
	j, _ := m.MkConst(s, "j")
	v, _ := m.MkConst(s, "v")
	st, _ := m.MkTerm(node.KStore, []node.Term{a, j, v}, nil)
	sel, _ := m.MkTerm(node.KSelect, []node.Term{st, i}, nil)

	as := NewArraySolver(m)
	as.RegisterTerm(sel)

	// model: i = j = 1 but select != v: the write must be read back
	one := m.MkBVValue(bv.FromUint64(4, 1))
	two := m.MkBVValue(bv.FromUint64(4, 2))
	three := m.MkBVValue(bv.FromUint64(4, 3))
	model := mapModel{
		i.Id():   one,
		j.Id():   one,
		v.Id():   two,
		sel.Id(): three,
	}
	lemmas, err := as.Check(model)
	require.NoError(t, err)
	require.Len(t, lemmas, 1)
	require.Equal(t, node.KImplies, lemmas[0].Kind())

	// the same violation does not produce the lemma twice
	lemmas, err = as.Check(model)
	require.NoError(t, err)
	require.Empty(t, lemmas)
}

func TestArrayConsistentModelQuiet(t *testing.T) {
	m := node.NewManager()
	s, _ := m.BVSort(4)
	arrS, _ := m.ArraySort(s, s)
	a, _ := m.MkConst(arrS, "a")
	i, _ := m.MkConst(s, "i")
	v, _ := m.MkConst(s, "v")
	st, _ := m.MkTerm(node.KStore, []node.Term{a, i, v}, nil)
	sel, _ := m.MkTerm(node.KSelect, []node.Term{st, i}, nil)

	as := NewArraySolver(m)
	as.RegisterTerm(sel)

	one := m.MkBVValue(bv.FromUint64(4, 1))
	two := m.MkBVValue(bv.FromUint64(4, 2))
	model := mapModel{
		i.Id():   one,
		v.Id():   two,
		sel.Id(): two,
	}
	lemmas, err := as.Check(model)
	require.NoError(t, err)
	require.Empty(t, lemmas)
}

func TestFunCongruenceLemma(t *testing.T) {
	m := node.NewManager()
	s, _ := m.BVSort(4)
	fnS, _ := m.FunSort([]node.Sort{s}, s)
	f, _ := m.MkConst(fnS, "f")
	x, _ := m.MkConst(s, "x")
	y, _ := m.MkConst(s, "y")
	fx, _ := m.MkTerm(node.KApply, []node.Term{f, x}, nil)
	fy, _ := m.MkTerm(node.KApply, []node.Term{f, y}, nil)

	fs := NewFunSolver(m)
	fs.RegisterTerm(fx)
	fs.RegisterTerm(fy)
	fs.RegisterTerm(fx) // duplicate registration is ignored

	one := m.MkBVValue(bv.FromUint64(4, 1))
	two := m.MkBVValue(bv.FromUint64(4, 2))
	three := m.MkBVValue(bv.FromUint64(4, 3))
	model := mapModel{
		x.Id():  one,
		y.Id():  one,
		fx.Id(): two,
		fy.Id(): three,
	}
	lemmas, err := fs.Check(model)
	require.NoError(t, err)
	require.Len(t, lemmas, 1)
	require.Equal(t, node.KImplies, lemmas[0].Kind())

	// agreeing results are quiet
	model[fy.Id()] = two
	fs2 := NewFunSolver(m)
	fs2.RegisterTerm(fx)
	fs2.RegisterTerm(fy)
	lemmas, err = fs2.Check(model)
	require.NoError(t, err)
	require.Empty(t, lemmas)
}
