// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package gen

import (
	"fmt"
	"math/rand"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

// BV generates random quantifier-free bit-vector terms over a fixed
// pool of constants.  Generation is deterministic in the seed: two
// generators with the same parameters produce terms of the same
// shape, each over its own pool of fresh constants.
type BV struct {
	m      *node.Manager
	rng    *rand.Rand
	width  uint32
	consts []node.Term
}

// NewBV creates a generator of width-w terms over nconsts fresh
// constants.
func NewBV(m *node.Manager, w uint32, nconsts int, seed int64) (*BV, error) {
	sort, err := m.BVSort(w)
	if err != nil {
		return nil, err
	}
	g := &BV{m: m, rng: rand.New(rand.NewSource(seed)), width: w}
	for i := 0; i < nconsts; i++ {
		c, err := m.MkConst(sort, fmt.Sprintf("g%d", i))
		if err != nil {
			return nil, err
		}
		g.consts = append(g.consts, c)
	}
	return g, nil
}

// Consts returns the generator's constant pool.
func (g *BV) Consts() []node.Term { return g.consts }

var bvBinOps = []node.Kind{
	node.KBVAdd, node.KBVSub, node.KBVMul,
	node.KBVAnd, node.KBVOr, node.KBVXor,
	node.KBVShl, node.KBVShr, node.KBVAshr,
	node.KBVUdiv, node.KBVUrem,
}

var bvCmpOps = []node.Kind{
	node.KBVUlt, node.KBVUle, node.KBVSlt, node.KBVSle, node.KEqual,
}

func (g *BV) mk(k node.Kind, cs ...node.Term) node.Term {
	t, err := g.m.MkTerm(k, cs, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Term returns a random width-w term of the given depth.
func (g *BV) Term(depth int) node.Term {
	if depth <= 0 {
		if g.rng.Intn(3) == 0 || len(g.consts) == 0 {
			return g.m.MkBVValue(bv.FromUint64(g.width, g.rng.Uint64()))
		}
		return g.consts[g.rng.Intn(len(g.consts))]
	}
	switch g.rng.Intn(8) {
	case 0:
		return g.mk(node.KBVNot, g.Term(depth-1))
	case 1:
		return g.mk(node.KBVNeg, g.Term(depth-1))
	case 2:
		return g.mk(node.KIte, g.Pred(depth-1), g.Term(depth-1), g.Term(depth-1))
	default:
		op := bvBinOps[g.rng.Intn(len(bvBinOps))]
		return g.mk(op, g.Term(depth-1), g.Term(depth-1))
	}
}

// Pred returns a random boolean term of the given depth.
func (g *BV) Pred(depth int) node.Term {
	if depth <= 0 || g.rng.Intn(4) == 0 {
		op := bvCmpOps[g.rng.Intn(len(bvCmpOps))]
		return g.mk(op, g.Term(depth), g.Term(depth))
	}
	switch g.rng.Intn(4) {
	case 0:
		return g.mk(node.KNot, g.Pred(depth-1))
	case 1:
		return g.mk(node.KAnd, g.Pred(depth-1), g.Pred(depth-1))
	case 2:
		return g.mk(node.KOr, g.Pred(depth-1), g.Pred(depth-1))
	default:
		return g.mk(node.KImplies, g.Pred(depth-1), g.Pred(depth-1))
	}
}

// Formula returns a conjunction of n random predicates of the given
// depth, as individual assertions.
func (g *BV) Formula(n, depth int) []node.Term {
	out := make([]node.Term, n)
	for i := range out {
		out[i] = g.Pred(depth)
	}
	return out
}

// Pigeonhole builds the bit-vector pigeonhole family: one constant
// per pigeon, each constrained into [0, holes), all pairwise
// distinct.  The instance is unsatisfiable iff pigeons > holes.
func Pigeonhole(m *node.Manager, pigeons, holes int) ([]node.Term, error) {
	// the limit value itself must be representable at width w
	w := uint32(1)
	for 1<<w <= holes {
		w++
	}
	sort, err := m.BVSort(w)
	if err != nil {
		return nil, err
	}
	limit := m.MkBVValue(bv.FromUint64(w, uint64(holes)))
	var out []node.Term
	hole := make([]node.Term, pigeons)
	for i := range hole {
		c, err := m.MkConst(sort, fmt.Sprintf("p%d", i))
		if err != nil {
			return nil, err
		}
		hole[i] = c
		lt, err := m.MkTerm(node.KBVUlt, []node.Term{c, limit}, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, lt)
	}
	for i := 0; i < pigeons; i++ {
		for j := i + 1; j < pigeons; j++ {
			eq, err := m.MkTerm(node.KEqual, []node.Term{hole[i], hole[j]}, nil)
			if err != nil {
				return nil, err
			}
			ne, err := m.MkTerm(node.KNot, []node.Term{eq}, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
	}
	return out, nil
}
