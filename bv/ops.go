// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package bv

import "math/big"

func (v Value) result(x *big.Int) Value { return Value{w: v.w, mag: maskTo(x, v.w)} }

// Not returns the bitwise complement of v.
func (v Value) Not() Value {
	return v.result(new(big.Int).Xor(&v.mag, mask(v.w)))
}

// Neg returns the two's-complement negation of v.
func (v Value) Neg() Value {
	return v.result(new(big.Int).Neg(&v.mag))
}

// Inc returns v+1.
func (v Value) Inc() Value { return v.result(new(big.Int).Add(&v.mag, big.NewInt(1))) }

// Dec returns v-1.
func (v Value) Dec() Value { return v.result(new(big.Int).Sub(&v.mag, big.NewInt(1))) }

// RedAnd is the reduction-AND: true iff every bit of v is set.
func (v Value) RedAnd() bool { return v.mag.Cmp(mask(v.w)) == 0 }

// RedOr is the reduction-OR: true iff any bit of v is set.
func (v Value) RedOr() bool { return v.mag.Sign() != 0 }

// RedXor is the reduction-XOR: the parity of the bits of v.
func (v Value) RedXor() bool {
	p := 0
	for i := uint32(0); i < v.w; i++ {
		if v.Bit(i) {
			p ^= 1
		}
	}
	return p == 1
}

// Add returns v+o mod 2^w.
func (v Value) Add(o Value) Value { return v.result(new(big.Int).Add(&v.mag, &o.mag)) }

// Sub returns v-o mod 2^w.
func (v Value) Sub(o Value) Value { return v.result(new(big.Int).Sub(&v.mag, &o.mag)) }

// Mul returns v*o mod 2^w.
func (v Value) Mul(o Value) Value { return v.result(new(big.Int).Mul(&v.mag, &o.mag)) }

// Udiv implements bvudiv: unsigned division, all-ones on division by zero.
func (v Value) Udiv(o Value) Value {
	if o.IsZero() {
		return Ones(v.w)
	}
	return v.result(new(big.Int).Quo(&v.mag, &o.mag))
}

// Urem implements bvurem: unsigned remainder, dividend on division by zero.
func (v Value) Urem(o Value) Value {
	if o.IsZero() {
		return v
	}
	return v.result(new(big.Int).Rem(&v.mag, &o.mag))
}

// Sdiv implements bvsdiv: truncating signed division; division by
// zero yields all-ones for a non-negative dividend and one
// otherwise.
func (v Value) Sdiv(o Value) Value {
	if o.IsZero() {
		if !v.SignBit() {
			return Ones(v.w)
		}
		return FromUint64(v.w, 1)
	}
	q := new(big.Int).Quo(v.signedBig(), o.signedBig())
	return v.result(q)
}

// Srem implements bvsrem: truncating signed remainder, dividend on
// division by zero.
func (v Value) Srem(o Value) Value {
	if o.IsZero() {
		return v
	}
	r := new(big.Int).Rem(v.signedBig(), o.signedBig())
	return v.result(r)
}

// Smod implements bvsmod: floored signed remainder (result takes the
// sign of the divisor), dividend on division by zero.
func (v Value) Smod(o Value) Value {
	if o.IsZero() {
		return v
	}
	a, b := v.signedBig(), o.signedBig()
	m := new(big.Int).Mod(a, b)
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		m.Add(m, b)
	}
	return v.result(m)
}

// And returns the bitwise AND of v and o.
func (v Value) And(o Value) Value { return v.result(new(big.Int).And(&v.mag, &o.mag)) }

// Or returns the bitwise OR of v and o.
func (v Value) Or(o Value) Value { return v.result(new(big.Int).Or(&v.mag, &o.mag)) }

// Xor returns the bitwise XOR of v and o.
func (v Value) Xor(o Value) Value { return v.result(new(big.Int).Xor(&v.mag, &o.mag)) }

// Nand returns the bitwise NAND of v and o.
func (v Value) Nand(o Value) Value { return v.And(o).Not() }

// Nor returns the bitwise NOR of v and o.
func (v Value) Nor(o Value) Value { return v.Or(o).Not() }

// Xnor returns the bitwise XNOR of v and o.
func (v Value) Xnor(o Value) Value { return v.Xor(o).Not() }

func shiftAmount(o Value) (uint64, bool) {
	if !o.mag.IsUint64() {
		return 0, false
	}
	return o.mag.Uint64(), true
}

// Shl implements bvshl: logical left shift; zero when the shift
// amount is >= width.
func (v Value) Shl(o Value) Value {
	amt, ok := shiftAmount(o)
	if !ok || amt >= uint64(v.w) {
		return Zero(v.w)
	}
	return v.result(new(big.Int).Lsh(&v.mag, uint(amt)))
}

// Shr implements bvshr: logical right shift; zero when the shift
// amount is >= width.
func (v Value) Shr(o Value) Value {
	amt, ok := shiftAmount(o)
	if !ok || amt >= uint64(v.w) {
		return Zero(v.w)
	}
	return v.result(new(big.Int).Rsh(&v.mag, uint(amt)))
}

// Ashr implements bvashr: arithmetic (sign-extending) right shift;
// the sign bit replicated across all bits when the shift amount is
// >= width.
func (v Value) Ashr(o Value) Value {
	amt, ok := shiftAmount(o)
	if !ok || amt >= uint64(v.w) {
		if v.SignBit() {
			return Ones(v.w)
		}
		return Zero(v.w)
	}
	r := new(big.Int).Rsh(v.signedBig(), uint(amt))
	return v.result(r)
}

// Rol rotates v left by (o mod w) bits.
func (v Value) Rol(o Value) Value {
	amt, _ := shiftAmount(o)
	return v.RolI(uint32(amt % uint64(v.w)))
}

// Ror rotates v right by (o mod w) bits.
func (v Value) Ror(o Value) Value {
	amt, _ := shiftAmount(o)
	return v.RorI(uint32(amt % uint64(v.w)))
}

// RolI rotates v left by the literal amount n, taken mod w.
func (v Value) RolI(n uint32) Value {
	n %= v.w
	if n == 0 {
		return v
	}
	hi := new(big.Int).Lsh(&v.mag, uint(n))
	lo := new(big.Int).Rsh(&v.mag, uint(v.w-n))
	return v.result(new(big.Int).Or(hi, lo))
}

// RorI rotates v right by the literal amount n.
func (v Value) RorI(n uint32) Value {
	n %= v.w
	if n == 0 {
		return v
	}
	return v.RolI(v.w - n)
}

// Comp returns the one-bit equality predicate as a Value of width 1.
func (v Value) Comp(o Value) Value {
	if v.Eq(o) {
		return FromUint64(1, 1)
	}
	return Zero(1)
}

// Concat returns v:o (v as the high bits, o as the low bits).
func (v Value) Concat(o Value) Value {
	r := new(big.Int).Lsh(&v.mag, uint(o.w))
	r.Or(r, &o.mag)
	return Value{w: v.w + o.w, mag: maskTo(r, v.w+o.w)}
}

// Extract returns bits [lo, hi] of v (inclusive, 0 = LSB); callers
// must keep 0 <= lo <= hi < width(v).
func (v Value) Extract(hi, lo uint32) Value {
	r := new(big.Int).Rsh(&v.mag, uint(lo))
	w := hi - lo + 1
	return Value{w: w, mag: maskTo(r, w)}
}

// Repeat concatenates n copies of v.
func (v Value) Repeat(n uint32) Value {
	r := Value{w: 0}
	for i := uint32(0); i < n; i++ {
		r = r.Concat(v)
	}
	return r
}

// ZeroExtend extends v to width v.Width()+n with zero bits.
func (v Value) ZeroExtend(n uint32) Value {
	return Value{w: v.w + n, mag: maskTo(&v.mag, v.w+n)}
}

// SignExtend extends v to width v.Width()+n, replicating the sign bit.
func (v Value) SignExtend(n uint32) Value {
	if n == 0 {
		return v
	}
	if !v.SignBit() {
		return v.ZeroExtend(n)
	}
	ext := mask(n)
	ext.Lsh(ext, uint(v.w))
	return Value{w: v.w + n, mag: maskTo(new(big.Int).Or(&v.mag, ext), v.w+n)}
}

// Ult is unsigned <.
func (v Value) Ult(o Value) bool { return v.mag.Cmp(&o.mag) < 0 }

// Ule is unsigned <=.
func (v Value) Ule(o Value) bool { return v.mag.Cmp(&o.mag) <= 0 }

// Ugt is unsigned >.
func (v Value) Ugt(o Value) bool { return v.mag.Cmp(&o.mag) > 0 }

// Uge is unsigned >=.
func (v Value) Uge(o Value) bool { return v.mag.Cmp(&o.mag) >= 0 }

// Slt is signed <.
func (v Value) Slt(o Value) bool { return v.signedBig().Cmp(o.signedBig()) < 0 }

// Sle is signed <=.
func (v Value) Sle(o Value) bool { return v.signedBig().Cmp(o.signedBig()) <= 0 }

// Sgt is signed >.
func (v Value) Sgt(o Value) bool { return v.signedBig().Cmp(o.signedBig()) > 0 }

// Sge is signed >=.
func (v Value) Sge(o Value) bool { return v.signedBig().Cmp(o.signedBig()) >= 0 }
