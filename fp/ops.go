// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import (
	"math/big"

	"github.com/matthewsot/bitwuzla/bv"
)

// Arithmetic on concrete values.  Every operation follows IEEE-754
// with the canonical quiet NaN: any NaN input (or invalid operation)
// yields NaN(f).

// Abs clears the sign bit.
func (v Value) Abs() Value {
	if v.IsNaN() {
		return NaN(v.fmt)
	}
	return Value{fmt: v.fmt, bits: v.bits.And(bv.MaxSigned(v.fmt.Width()))}
}

// Neg flips the sign bit.
func (v Value) Neg() Value {
	if v.IsNaN() {
		return NaN(v.fmt)
	}
	return Value{fmt: v.fmt, bits: v.bits.Xor(bv.MinSigned(v.fmt.Width()))}
}

// Add returns v + o rounded with rm.
func (v Value) Add(rm RM, o Value) Value {
	f := v.fmt
	if v.IsNaN() || o.IsNaN() {
		return NaN(f)
	}
	if v.IsInf() || o.IsInf() {
		if v.IsInf() && o.IsInf() && v.IsNegative() != o.IsNegative() {
			return NaN(f)
		}
		if v.IsInf() {
			return Inf(f, v.IsNegative())
		}
		return Inf(f, o.IsNegative())
	}
	a, _ := v.rat()
	b, _ := o.rat()
	s := new(big.Rat).Add(a, b)
	if s.Sign() == 0 {
		if v.IsZero() && o.IsZero() && v.IsNegative() && o.IsNegative() {
			return Zero(f, true)
		}
		if v.IsZero() && o.IsZero() && v.IsNegative() == o.IsNegative() {
			return Zero(f, v.IsNegative())
		}
		// exact cancellation: +0, except -0 under RTN
		return Zero(f, rm == RTN)
	}
	return Round(f, rm, s, false)
}

// Sub returns v - o rounded with rm.
func (v Value) Sub(rm RM, o Value) Value {
	return v.Add(rm, o.Neg())
}

// Mul returns v * o rounded with rm.
func (v Value) Mul(rm RM, o Value) Value {
	f := v.fmt
	if v.IsNaN() || o.IsNaN() {
		return NaN(f)
	}
	neg := v.IsNegative() != o.IsNegative()
	if v.IsInf() || o.IsInf() {
		if v.IsZero() || o.IsZero() {
			return NaN(f)
		}
		return Inf(f, neg)
	}
	if v.IsZero() || o.IsZero() {
		return Zero(f, neg)
	}
	a, _ := v.rat()
	b, _ := o.rat()
	return Round(f, rm, new(big.Rat).Mul(a, b), neg)
}

// Div returns v / o rounded with rm.
func (v Value) Div(rm RM, o Value) Value {
	f := v.fmt
	if v.IsNaN() || o.IsNaN() {
		return NaN(f)
	}
	neg := v.IsNegative() != o.IsNegative()
	switch {
	case v.IsInf() && o.IsInf():
		return NaN(f)
	case v.IsInf():
		return Inf(f, neg)
	case o.IsInf():
		return Zero(f, neg)
	case o.IsZero():
		if v.IsZero() {
			return NaN(f)
		}
		return Inf(f, neg)
	case v.IsZero():
		return Zero(f, neg)
	}
	a, _ := v.rat()
	b, _ := o.rat()
	return Round(f, rm, new(big.Rat).Quo(a, b), neg)
}

// Fma returns v*o + a with a single rounding.
func (v Value) Fma(rm RM, o, a Value) Value {
	f := v.fmt
	if v.IsNaN() || o.IsNaN() || a.IsNaN() {
		return NaN(f)
	}
	pNeg := v.IsNegative() != o.IsNegative()
	if v.IsInf() || o.IsInf() {
		if v.IsZero() || o.IsZero() {
			return NaN(f)
		}
		if a.IsInf() && a.IsNegative() != pNeg {
			return NaN(f)
		}
		return Inf(f, pNeg)
	}
	if a.IsInf() {
		return Inf(f, a.IsNegative())
	}
	x, _ := v.rat()
	y, _ := o.rat()
	z, _ := a.rat()
	s := new(big.Rat).Mul(x, y)
	s.Add(s, z)
	if s.Sign() == 0 {
		prodZero := v.IsZero() || o.IsZero()
		if prodZero && a.IsZero() && pNeg == a.IsNegative() {
			return Zero(f, pNeg)
		}
		return Zero(f, rm == RTN)
	}
	return Round(f, rm, s, false)
}

// Sqrt returns the square root of v rounded with rm.
func (v Value) Sqrt(rm RM) Value {
	f := v.fmt
	if v.IsNaN() {
		return NaN(f)
	}
	if v.IsZero() {
		return Zero(f, v.IsNegative())
	}
	if v.IsNegative() {
		return NaN(f)
	}
	if v.IsInf() {
		return Inf(f, false)
	}
	r, _ := v.rat()
	// sqrt(n/d) = sqrt(n*d)/d; compute the integer root with enough
	// extra bits and force the low bit on inexactness (round to odd),
	// then the final rounding is exact.
	t := new(big.Int).Mul(r.Num(), r.Denom())
	k := uint(f.S + 8)
	t.Lsh(t, 2*k)
	q := new(big.Int).Sqrt(t)
	if new(big.Int).Mul(q, q).Cmp(t) != 0 {
		q.Or(q, big.NewInt(1))
	}
	den := new(big.Int).Lsh(r.Denom(), k)
	return Round(f, rm, new(big.Rat).SetFrac(q, den), false)
}

// Rem returns the IEEE remainder of v and o: v - o*n with n the
// integer nearest v/o (ties to even).  The rounding mode does not
// affect the result, which is always exact.
func (v Value) Rem(o Value) Value {
	f := v.fmt
	if v.IsNaN() || o.IsNaN() || v.IsInf() || o.IsZero() {
		return NaN(f)
	}
	if o.IsInf() || v.IsZero() {
		return v
	}
	a, _ := v.rat()
	b, _ := o.rat()
	q := new(big.Rat).Quo(a, b)
	n := ratToInt(q, RNE)
	rem := new(big.Rat).Sub(a, new(big.Rat).Mul(b, new(big.Rat).SetInt(n)))
	if rem.Sign() == 0 {
		return Zero(f, v.IsNegative())
	}
	return Round(f, RNE, rem, false)
}

// Rti rounds v to an integral value using rm.
func (v Value) Rti(rm RM) Value {
	f := v.fmt
	if v.IsNaN() {
		return NaN(f)
	}
	if v.IsInf() || v.IsZero() {
		return v
	}
	r, _ := v.rat()
	n := ratToInt(r, rm)
	if n.Sign() == 0 {
		return Zero(f, v.IsNegative())
	}
	return Round(f, rm, new(big.Rat).SetInt(n), false)
}

// Min returns the smaller of v and o; a single NaN input yields the
// other operand, and of the two zeros Min prefers -0.
func (v Value) Min(o Value) Value {
	switch {
	case v.IsNaN() && o.IsNaN():
		return NaN(v.fmt)
	case v.IsNaN():
		return o
	case o.IsNaN():
		return v
	}
	if v.IsZero() && o.IsZero() {
		return Zero(v.fmt, v.IsNegative() || o.IsNegative())
	}
	if v.Leq(o) {
		return v
	}
	return o
}

// Max returns the larger of v and o, preferring +0 of the two zeros.
func (v Value) Max(o Value) Value {
	switch {
	case v.IsNaN() && o.IsNaN():
		return NaN(v.fmt)
	case v.IsNaN():
		return o
	case o.IsNaN():
		return v
	}
	if v.IsZero() && o.IsZero() {
		return Zero(v.fmt, v.IsNegative() && o.IsNegative())
	}
	if v.Geq(o) {
		return v
	}
	return o
}

// IEEE comparisons: any NaN operand yields false; zeros compare equal
// regardless of sign.

func (v Value) FPEq(o Value) bool { return v.cmpOK(o) && v.cmp(o) == 0 }
func (v Value) Lt(o Value) bool   { return v.cmpOK(o) && v.cmp(o) < 0 }
func (v Value) Leq(o Value) bool  { return v.cmpOK(o) && v.cmp(o) <= 0 }
func (v Value) Gt(o Value) bool   { return v.cmpOK(o) && v.cmp(o) > 0 }
func (v Value) Geq(o Value) bool  { return v.cmpOK(o) && v.cmp(o) >= 0 }

func (v Value) cmpOK(o Value) bool { return !v.IsNaN() && !o.IsNaN() }

func (v Value) cmp(o Value) int {
	switch {
	case v.IsInf() && o.IsInf():
		vn, on := v.IsNegative(), o.IsNegative()
		if vn == on {
			return 0
		}
		if vn {
			return -1
		}
		return 1
	case v.IsInf():
		if v.IsNegative() {
			return -1
		}
		return 1
	case o.IsInf():
		if o.IsNegative() {
			return 1
		}
		return -1
	}
	a, _ := v.rat()
	b, _ := o.rat()
	return a.Cmp(b)
}
