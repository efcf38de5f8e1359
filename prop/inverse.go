// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package prop

import (
	"math/big"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
)

// inverseValue computes a value for child ci that would make t equal
// target under the current values of the other children, or the nil
// term when no such value exists (or none is computed for the kind).
func (s *Solver) inverseValue(t node.Term, ci int, target node.Term) node.Term {
	m := s.m
	k := t.Kind()

	if tb, ok := target.BoolValue(); ok {
		switch k {
		case node.KNot:
			return m.MkBoolValue(!tb)
		case node.KAnd:
			if tb {
				return m.True()
			}
			// falsifying one conjunct suffices only if the others
			// could stay true; the chosen child goes false
			return m.False()
		case node.KOr:
			if !tb {
				return m.False()
			}
			return m.True()
		case node.KImplies:
			if ci == 0 {
				if tb {
					return m.False()
				}
				return m.True()
			}
			if tb {
				return m.True()
			}
			return m.False()
		case node.KIff:
			ob := s.evalBoolChild(t, 1-ci)
			return m.MkBoolValue(ob == tb)
		case node.KXor:
			r := tb
			for i, c := range t.Children() {
				if i == ci {
					continue
				}
				b := s.evalBool(c)
				r = r != b
			}
			return m.MkBoolValue(r)
		case node.KEqual:
			other := t.Child(1 - ci)
			ov := s.eval(other)
			if ov.IsNil() {
				return node.Term{}
			}
			if tb {
				return ov
			}
			// any different value; flip the lowest bit when BV
			if vv, ok := ov.BVValue(); ok {
				one := bv.Zero(vv.Width()).Inc()
				return m.MkBVValue(vv.Xor(one))
			}
			if bb, ok := ov.BoolValue(); ok {
				return m.MkBoolValue(!bb)
			}
			return node.Term{}
		case node.KBVUlt, node.KBVUle, node.KBVUgt, node.KBVUge,
			node.KBVSlt, node.KBVSle, node.KBVSgt, node.KBVSge:
			return s.inverseCmp(t, ci, tb)
		}
		return node.Term{}
	}

	tv, ok := target.BVValue()
	if !ok {
		return node.Term{}
	}
	w := tv.Width()
	switch k {
	case node.KBVNot:
		return m.MkBVValue(tv.Not())
	case node.KBVNeg:
		return m.MkBVValue(tv.Neg())
	case node.KBVInc:
		return m.MkBVValue(tv.Dec())
	case node.KBVDec:
		return m.MkBVValue(tv.Inc())
	case node.KBVAdd:
		acc := tv
		for i, c := range t.Children() {
			if i == ci {
				continue
			}
			v, ok := s.evalBV(c)
			if !ok {
				return node.Term{}
			}
			acc = acc.Sub(v)
		}
		return m.MkBVValue(acc)
	case node.KBVSub:
		o, ok := s.evalBV(t.Child(1 - ci))
		if !ok {
			return node.Term{}
		}
		if ci == 0 {
			return m.MkBVValue(tv.Add(o))
		}
		return m.MkBVValue(o.Sub(tv))
	case node.KBVXor:
		acc := tv
		for i, c := range t.Children() {
			if i == ci {
				continue
			}
			v, ok := s.evalBV(c)
			if !ok {
				return node.Term{}
			}
			acc = acc.Xor(v)
		}
		return m.MkBVValue(acc)
	case node.KBVMul:
		// invertible when the product of the siblings is odd
		sib := bv.Zero(w).Inc()
		for i, c := range t.Children() {
			if i == ci {
				continue
			}
			v, ok := s.evalBV(c)
			if !ok {
				return node.Term{}
			}
			sib = sib.Mul(v)
		}
		if !sib.Bit(0) {
			return node.Term{}
		}
		inv := new(big.Int).ModInverse(sib.Big(), new(big.Int).Lsh(big.NewInt(1), uint(w)))
		if inv == nil {
			return node.Term{}
		}
		return m.MkBVValue(tv.Mul(bv.FromBigInt(w, inv)))
	case node.KBVAnd:
		// bits set in the target must be settable: siblings must have
		// them set
		sib := bv.Ones(w)
		for i, c := range t.Children() {
			if i == ci {
				continue
			}
			v, ok := s.evalBV(c)
			if !ok {
				return node.Term{}
			}
			sib = sib.And(v)
		}
		if !tv.And(sib.Not()).IsZero() {
			return node.Term{}
		}
		return m.MkBVValue(tv)
	case node.KBVOr:
		sib := bv.Zero(w)
		for i, c := range t.Children() {
			if i == ci {
				continue
			}
			v, ok := s.evalBV(c)
			if !ok {
				return node.Term{}
			}
			sib = sib.Or(v)
		}
		if !sib.And(tv.Not()).IsZero() {
			return node.Term{}
		}
		return m.MkBVValue(tv)
	case node.KBVConcat:
		// slice the target at the child's position
		lo := uint32(0)
		for i := t.NumChildren() - 1; i > ci; i-- {
			lo += t.Child(i).Sort().BVWidth()
		}
		cw := t.Child(ci).Sort().BVWidth()
		return m.MkBVValue(tv.Extract(lo+cw-1, lo))
	case node.KBVShl:
		if ci != 0 {
			return node.Term{}
		}
		sh, ok := s.evalBV(t.Child(1))
		if !ok {
			return node.Term{}
		}
		// target must have zeros in the shifted-in positions
		back := tv.Shr(sh)
		if !back.Shl(sh).Eq(tv) {
			return node.Term{}
		}
		return m.MkBVValue(back)
	case node.KBVShr:
		if ci != 0 {
			return node.Term{}
		}
		sh, ok := s.evalBV(t.Child(1))
		if !ok {
			return node.Term{}
		}
		back := tv.Shl(sh)
		if !back.Shr(sh).Eq(tv) {
			return node.Term{}
		}
		return m.MkBVValue(back)
	case node.KBVZeroExtend:
		n := t.Index(0)
		if n > 0 && !tv.Extract(w-1, w-n).IsZero() {
			return node.Term{}
		}
		return m.MkBVValue(tv.Extract(w-n-1, 0))
	case node.KBVSignExtend:
		cw := t.Child(0).Sort().BVWidth()
		low := tv.Extract(cw-1, 0)
		if !low.SignExtend(t.Index(0)).Eq(tv) {
			return node.Term{}
		}
		return m.MkBVValue(low)
	case node.KBVExtract:
		// free bits outside the extraction keep their current value
		cur, ok := s.evalBV(t.Child(0))
		if !ok {
			return node.Term{}
		}
		hi, lo := t.Index(0), t.Index(1)
		cw := cur.Width()
		mask := bv.Ones(hi - lo + 1).ZeroExtend(cw - (hi - lo + 1)).Shl(bv.FromUint64(cw, uint64(lo)))
		ins := tv.ZeroExtend(cw - tv.Width()).Shl(bv.FromUint64(cw, uint64(lo)))
		return m.MkBVValue(cur.And(mask.Not()).Or(ins))
	case node.KIte:
		if ci == 0 {
			a, aok := s.evalBV(t.Child(1))
			if aok && a.Eq(tv) {
				return m.True()
			}
			return m.False()
		}
		return m.MkBVValue(tv)
	}
	return node.Term{}
}

// inverseCmp computes a child value satisfying a comparison.
func (s *Solver) inverseCmp(t node.Term, ci int, want bool) node.Term {
	m := s.m
	o, ok := s.evalBV(t.Child(1 - ci))
	if !ok {
		return node.Term{}
	}
	w := o.Width()
	k := t.Kind()
	// normalise to "child OP other" with the child on the left
	if ci == 1 {
		switch k {
		case node.KBVUlt:
			k = node.KBVUgt
		case node.KBVUgt:
			k = node.KBVUlt
		case node.KBVUle:
			k = node.KBVUge
		case node.KBVUge:
			k = node.KBVUle
		case node.KBVSlt:
			k = node.KBVSgt
		case node.KBVSgt:
			k = node.KBVSlt
		case node.KBVSle:
			k = node.KBVSge
		case node.KBVSge:
			k = node.KBVSle
		}
	}
	if !want {
		switch k {
		case node.KBVUlt:
			k = node.KBVUge
		case node.KBVUge:
			k = node.KBVUlt
		case node.KBVUle:
			k = node.KBVUgt
		case node.KBVUgt:
			k = node.KBVUle
		case node.KBVSlt:
			k = node.KBVSge
		case node.KBVSge:
			k = node.KBVSlt
		case node.KBVSle:
			k = node.KBVSgt
		case node.KBVSgt:
			k = node.KBVSle
		}
	}
	switch k {
	case node.KBVUlt:
		if o.IsZero() {
			return node.Term{}
		}
		return m.MkBVValue(s.randBelow(o))
	case node.KBVUle:
		return m.MkBVValue(s.randAtMost(o))
	case node.KBVUgt:
		if o.Eq(bv.Ones(w)) {
			return node.Term{}
		}
		return m.MkBVValue(s.randAbove(o))
	case node.KBVUge:
		return m.MkBVValue(s.randAtLeast(o))
	case node.KBVSlt:
		if o.Eq(bv.MinSigned(w)) {
			return node.Term{}
		}
		return m.MkBVValue(o.Dec())
	case node.KBVSle:
		return m.MkBVValue(o)
	case node.KBVSgt:
		if o.Eq(bv.MaxSigned(w)) {
			return node.Term{}
		}
		return m.MkBVValue(o.Inc())
	case node.KBVSge:
		return m.MkBVValue(o)
	}
	return node.Term{}
}

func (s *Solver) randBelow(o bv.Value) bv.Value {
	n := new(big.Int).Rand(s.rng, o.Big())
	return bv.FromBigInt(o.Width(), n)
}

func (s *Solver) randAtMost(o bv.Value) bv.Value {
	n := new(big.Int).Rand(s.rng, new(big.Int).Add(o.Big(), big.NewInt(1)))
	return bv.FromBigInt(o.Width(), n)
}

func (s *Solver) randAbove(o bv.Value) bv.Value {
	w := o.Width()
	span := bv.Ones(w).Sub(o)
	n := new(big.Int).Rand(s.rng, span.Big())
	return bv.FromBigInt(w, new(big.Int).Add(n, new(big.Int).Add(o.Big(), big.NewInt(1))))
}

func (s *Solver) randAtLeast(o bv.Value) bv.Value {
	w := o.Width()
	span := bv.Ones(w).Sub(o).Inc()
	n := new(big.Int).Rand(s.rng, span.Big())
	return bv.FromBigInt(w, new(big.Int).Add(n, o.Big()))
}

func (s *Solver) evalBV(t node.Term) (bv.Value, bool) {
	v := s.eval(t)
	if v.IsNil() {
		return bv.Value{}, false
	}
	return v.BVValue()
}

func (s *Solver) evalBoolChild(t node.Term, i int) bool {
	return s.evalBool(t.Child(i))
}
