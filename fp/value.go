// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import (
	"math/big"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/pkg/errors"
)

// Value is a concrete IEEE-754 floating-point value: a format plus
// the IEEE encoding as a bit-vector of width E + S.
//
// NaN is canonical: every operation producing NaN produces the quiet
// NaN with sign 0 and significand MSB set.
type Value struct {
	fmt  Format
	bits bv.Value
}

// FromIEEE builds a value of format f from its IEEE encoding; the
// encoding width must be f.Width().
func FromIEEE(f Format, bits bv.Value) (Value, error) {
	if bits.Width() != f.Width() {
		return Value{}, errors.Errorf("SortMismatch: encoding width %d != format width %d", bits.Width(), f.Width())
	}
	return Value{fmt: f, bits: bits}, nil
}

// FromTriple builds a value from sign (width 1), exponent (width e)
// and significand (width s-1) bit-vectors, as the SMT-LIB fp
// constructor does.
func FromTriple(sign, exp, sig bv.Value) (Value, error) {
	if sign.Width() != 1 {
		return Value{}, errors.Errorf("InvalidSize: fp sign width %d != 1", sign.Width())
	}
	f, e := NewFormat(exp.Width(), sig.Width()+1)
	if e != nil {
		return Value{}, e
	}
	return Value{fmt: f, bits: sign.Concat(exp).Concat(sig)}, nil
}

// Format returns v's format.
func (v Value) Format() Format { return v.fmt }

// Bits returns v's IEEE encoding.
func (v Value) Bits() bv.Value { return v.bits }

// Sign, Exp and Sig split the encoding into its fields; Sig omits the
// hidden bit.
func (v Value) Sign() bv.Value { return v.bits.Extract(v.fmt.Width()-1, v.fmt.Width()-1) }
func (v Value) Exp() bv.Value  { return v.bits.Extract(v.fmt.Width()-2, v.fmt.S-1) }
func (v Value) Sig() bv.Value  { return v.bits.Extract(v.fmt.S-2, 0) }

// Constructors for the special values of a format.

func Zero(f Format, neg bool) Value {
	b := bv.Zero(f.Width())
	if neg {
		b = bv.MinSigned(f.Width())
	}
	return Value{fmt: f, bits: b}
}

func Inf(f Format, neg bool) Value {
	expAll := bv.Ones(f.E).ZeroExtend(f.S - 1).Shl(bv.FromUint64(f.Width()-1, uint64(f.S-1)))
	b := expAll.ZeroExtend(1)
	if neg {
		b = b.Or(bv.MinSigned(f.Width()))
	}
	return Value{fmt: f, bits: b}
}

// NaN returns the canonical quiet NaN of format f.
func NaN(f Format) Value {
	sign := bv.Zero(1)
	exp := bv.Ones(f.E)
	sig := bv.MinSigned(f.S - 1)
	v, _ := FromTriple(sign, exp, sig)
	return v
}

// Classification predicates.

func (v Value) expAllOnes() bool { return v.Exp().RedAnd() }
func (v Value) expAllZero() bool { return v.Exp().IsZero() }

func (v Value) IsNaN() bool { return v.expAllOnes() && !v.Sig().IsZero() }
func (v Value) IsInf() bool { return v.expAllOnes() && v.Sig().IsZero() }
func (v Value) IsZero() bool {
	return v.expAllZero() && v.Sig().IsZero()
}
func (v Value) IsSubnormal() bool { return v.expAllZero() && !v.Sig().IsZero() }
func (v Value) IsNormal() bool    { return !v.expAllOnes() && !v.expAllZero() }
func (v Value) IsNegative() bool  { return !v.IsNaN() && v.Sign().Bit(0) }
func (v Value) IsPositive() bool  { return !v.IsNaN() && !v.Sign().Bit(0) }

// Eq is structural (encoding) equality, distinct from the IEEE
// comparison FPEq.
func (v Value) Eq(o Value) bool { return v.fmt == o.fmt && v.bits.Eq(o.bits) }

// rat returns v as an exact rational; ok is false for NaN and
// infinities.  Zero returns the zero rational regardless of sign.
func (v Value) rat() (*big.Rat, bool) {
	if v.expAllOnes() {
		return nil, false
	}
	f := v.fmt
	sigInt := v.Sig().Big()
	expField := v.Exp().Uint64()
	var unb int64
	if v.expAllZero() {
		unb = f.EMin()
	} else {
		unb = int64(expField) - f.Bias()
		sigInt.SetBit(sigInt, int(f.S-1), 1) // hidden bit
	}
	// value = sigInt * 2^(unb - (S-1))
	shift := unb - int64(f.S-1)
	r := new(big.Rat).SetInt(sigInt)
	if shift >= 0 {
		r.Mul(r, new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(shift))))
	} else {
		r.Quo(r, new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(-shift))))
	}
	if v.Sign().Bit(0) {
		r.Neg(r)
	}
	return r, true
}

// Round rounds the exact rational r into format f using rm.  A zero
// result carries sign negZero when r is exactly zero.
func Round(f Format, rm RM, r *big.Rat, negZero bool) Value {
	if r.Sign() == 0 {
		return Zero(f, negZero)
	}
	neg := r.Sign() < 0
	a := new(big.Rat).Abs(r)

	// exponent EU with 2^EU <= a < 2^(EU+1)
	eu := int64(a.Num().BitLen() - a.Denom().BitLen())
	for cmpPow2(a, eu) < 0 {
		eu--
	}
	for cmpPow2(a, eu+1) >= 0 {
		eu++
	}

	sub := eu < f.EMin()
	ulp := eu - int64(f.S-1)
	if sub {
		ulp = f.EMin() - int64(f.S-1)
	}

	// n = round(a / 2^ulp) per rm
	scaled := mulPow2(a, -ulp)
	n := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	frac := new(big.Rat).Sub(scaled, new(big.Rat).SetInt(n))
	n = roundInc(n, frac, rm, neg)

	// mantissa overflow after rounding
	if n.BitLen() > int(f.S) {
		n.Rsh(n, 1)
		eu++
	}
	if !sub && n.BitLen() == int(f.S) {
		// still normal at eu
	} else if sub && n.BitLen() == int(f.S) {
		// subnormal rounded up into the smallest normal
		sub = false
		eu = f.EMin()
	}

	if n.Sign() == 0 {
		return Zero(f, neg)
	}
	if !sub && eu > f.EMax() {
		return roundOverflow(f, rm, neg)
	}

	var exp, sig bv.Value
	if sub {
		exp = bv.Zero(f.E)
		sig = bv.FromBigInt(f.S-1, n)
	} else {
		exp = bv.FromInt64(f.E, eu+f.Bias())
		hidden := new(big.Int).SetBit(new(big.Int), int(f.S-1), 1)
		sig = bv.FromBigInt(f.S-1, new(big.Int).Sub(n, hidden))
	}
	sign := bv.Zero(1)
	if neg {
		sign = bv.Ones(1)
	}
	v, _ := FromTriple(sign, exp, sig)
	return v
}

func roundOverflow(f Format, rm RM, neg bool) Value {
	toInf := false
	switch rm {
	case RNE, RNA:
		toInf = true
	case RTP:
		toInf = !neg
	case RTN:
		toInf = neg
	case RTZ:
	}
	if toInf {
		return Inf(f, neg)
	}
	return maxFinite(f, neg)
}

func maxFinite(f Format, neg bool) Value {
	exp := bv.Ones(f.E).Dec()
	sig := bv.Ones(f.S - 1)
	sign := bv.Zero(1)
	if neg {
		sign = bv.Ones(1)
	}
	v, _ := FromTriple(sign, exp, sig)
	return v
}

// roundInc applies the rounding mode to the magnitude floor n with
// fractional remainder frac in [0, 1).
func roundInc(n *big.Int, frac *big.Rat, rm RM, neg bool) *big.Int {
	if frac.Sign() == 0 {
		return n
	}
	half := big.NewRat(1, 2)
	up := false
	switch rm {
	case RNE:
		switch frac.Cmp(half) {
		case 1:
			up = true
		case 0:
			up = n.Bit(0) == 1
		}
	case RNA:
		up = frac.Cmp(half) >= 0
	case RTZ:
	case RTP:
		up = !neg
	case RTN:
		up = neg
	}
	if up {
		return new(big.Int).Add(n, big.NewInt(1))
	}
	return n
}

func cmpPow2(a *big.Rat, e int64) int {
	return a.Cmp(mulPow2(new(big.Rat).SetInt64(1), e))
}

func mulPow2(a *big.Rat, e int64) *big.Rat {
	r := new(big.Rat).Set(a)
	if e >= 0 {
		return r.Mul(r, new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(e))))
	}
	return r.Quo(r, new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(-e))))
}

// FromReal rounds the decimal string real (e.g. "1.5", "-0.25e3")
// into format f using rm.
func FromReal(f Format, rm RM, real string) (Value, error) {
	r, ok := new(big.Rat).SetString(real)
	if !ok {
		return Value{}, errors.Errorf("InvalidValue: not a real literal: %q", real)
	}
	neg := len(real) > 0 && real[0] == '-'
	return Round(f, rm, r, neg), nil
}

// FromRational rounds num/den into format f using rm.
func FromRational(f Format, rm RM, num, den string) (Value, error) {
	n, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return Value{}, errors.Errorf("InvalidValue: not an integer: %q", num)
	}
	d, ok := new(big.Int).SetString(den, 10)
	if !ok || d.Sign() == 0 {
		return Value{}, errors.Errorf("InvalidValue: bad denominator: %q", den)
	}
	r := new(big.Rat).SetFrac(n, d)
	return Round(f, rm, r, r.Sign() == 0 && (n.Sign() < 0) != (d.Sign() < 0)), nil
}

// FromUbv converts an unsigned bit-vector into format f.
func FromUbv(f Format, rm RM, x bv.Value) Value {
	return Round(f, rm, new(big.Rat).SetInt(x.Big()), false)
}

// FromSbv converts a signed bit-vector into format f.
func FromSbv(f Format, rm RM, x bv.Value) Value {
	return Round(f, rm, new(big.Rat).SetInt(x.SignedBig()), false)
}

// Convert re-rounds v into format f.
func Convert(f Format, rm RM, v Value) Value {
	if v.IsNaN() {
		return NaN(f)
	}
	if v.IsInf() {
		return Inf(f, v.IsNegative())
	}
	r, _ := v.rat()
	return Round(f, rm, r, v.IsNegative())
}

// ToUbv converts v to an unsigned bit-vector of width w; the result
// is undefined per SMT-LIB for NaN, infinities and out-of-range
// values, for which the canonical choice here is zero.
func (v Value) ToUbv(w uint32, rm RM) bv.Value {
	r, ok := v.rat()
	if !ok {
		return bv.Zero(w)
	}
	n := ratToInt(r, rm)
	if n.Sign() < 0 || n.BitLen() > int(w) {
		return bv.Zero(w)
	}
	return bv.FromBigInt(w, n)
}

// ToSbv converts v to a signed bit-vector of width w, zero when
// undefined.
func (v Value) ToSbv(w uint32, rm RM) bv.Value {
	r, ok := v.rat()
	if !ok {
		return bv.Zero(w)
	}
	n := ratToInt(r, rm)
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(w-1)))
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w-1)), big.NewInt(1))
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return bv.Zero(w)
	}
	if n.Sign() < 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(w))
		n = new(big.Int).Add(n, full)
	}
	return bv.FromBigInt(w, n)
}

func ratToInt(r *big.Rat, rm RM) *big.Int {
	neg := r.Sign() < 0
	a := new(big.Rat).Abs(r)
	n := new(big.Int).Quo(a.Num(), a.Denom())
	frac := new(big.Rat).Sub(a, new(big.Rat).SetInt(n))
	n = roundInc(n, frac, rm, neg)
	if neg {
		n.Neg(n)
	}
	return n
}
