// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import "github.com/matthewsot/bitwuzla/bv"

// ValueOps instantiates the word-blaster's Ops over concrete
// bv.Value lanes, giving a second, circuit-level evaluator for every
// floating-point operation that must agree with the rational-
// arithmetic one in ops.go; the tests cross-check the two.
type ValueOps struct{}

func b2v(b bool) bv.Value {
	if b {
		return bv.FromUint64(1, 1)
	}
	return bv.Zero(1)
}

func (ValueOps) Const(v bv.Value) bv.Value       { return v }
func (ValueOps) Width(a bv.Value) uint32         { return a.Width() }
func (ValueOps) Add(a, b bv.Value) bv.Value      { return a.Add(b) }
func (ValueOps) Sub(a, b bv.Value) bv.Value      { return a.Sub(b) }
func (ValueOps) Mul(a, b bv.Value) bv.Value      { return a.Mul(b) }
func (ValueOps) Udiv(a, b bv.Value) bv.Value     { return a.Udiv(b) }
func (ValueOps) Urem(a, b bv.Value) bv.Value     { return a.Urem(b) }
func (ValueOps) Not(a bv.Value) bv.Value         { return a.Not() }
func (ValueOps) And(a, b bv.Value) bv.Value      { return a.And(b) }
func (ValueOps) Or(a, b bv.Value) bv.Value       { return a.Or(b) }
func (ValueOps) Xor(a, b bv.Value) bv.Value      { return a.Xor(b) }
func (ValueOps) Shl(a, n bv.Value) bv.Value      { return a.Shl(n) }
func (ValueOps) Shr(a, n bv.Value) bv.Value      { return a.Shr(n) }
func (ValueOps) Ashr(a, n bv.Value) bv.Value     { return a.Ashr(n) }
func (ValueOps) Concat(a, b bv.Value) bv.Value   { return a.Concat(b) }
func (ValueOps) Eq(a, b bv.Value) bv.Value       { return b2v(a.Eq(b)) }
func (ValueOps) Ult(a, b bv.Value) bv.Value      { return b2v(a.Ult(b)) }
func (ValueOps) Slt(a, b bv.Value) bv.Value      { return b2v(a.Slt(b)) }
func (ValueOps) RedOr(a bv.Value) bv.Value       { return b2v(a.RedOr()) }
func (ValueOps) RedAnd(a bv.Value) bv.Value      { return b2v(a.RedAnd()) }

func (ValueOps) Extract(hi, lo uint32, a bv.Value) bv.Value { return a.Extract(hi, lo) }
func (ValueOps) ZeroExtend(n uint32, a bv.Value) bv.Value   { return a.ZeroExtend(n) }
func (ValueOps) SignExtend(n uint32, a bv.Value) bv.Value   { return a.SignExtend(n) }

func (ValueOps) Ite(c, a, b bv.Value) bv.Value {
	if c.Bit(0) {
		return a
	}
	return b
}
