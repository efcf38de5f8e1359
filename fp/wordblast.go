// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import (
	"math/big"

	"github.com/matthewsot/bitwuzla/bv"
)

// Ops abstracts the bit-vector primitives the word-blaster is written
// against.  The lane type T is a bit-vector of some width: bv.Value
// for concrete evaluation, or a term/AIG handle for symbolic
// bit-blasting.  Boolean results are 1-bit lanes.
//
// Widths are fixed at circuit-construction time, so extension and
// extraction amounts are plain integers; the variable shifts take a
// lane amount of the same width as the operand and yield zero (or the
// sign fill, for Ashr) once the amount reaches the width.
type Ops[T any] interface {
	Const(v bv.Value) T
	Width(a T) uint32

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Udiv(a, b T) T
	Urem(a, b T) T

	Not(a T) T
	And(a, b T) T
	Or(a, b T) T
	Xor(a, b T) T

	Shl(a, amount T) T
	Shr(a, amount T) T
	Ashr(a, amount T) T

	Concat(a, b T) T
	Extract(hi, lo uint32, a T) T
	ZeroExtend(n uint32, a T) T
	SignExtend(n uint32, a T) T

	Eq(a, b T) T
	Ult(a, b T) T
	Slt(a, b T) T

	RedOr(a T) T
	RedAnd(a T) T

	// Ite selects a when the 1-bit lane c is 1, else b.
	Ite(c, a, b T) T
}

// Blaster lowers floating-point operations over packed IEEE
// encodings of format F into pure bit-vector circuits via an Ops
// implementation.  The same code computes concrete values when
// instantiated over bv.Value.
type Blaster[T any] struct {
	F Format
	o Ops[T]
}

// NewBlaster creates a word-blaster for format f over ops.
func NewBlaster[T any](f Format, ops Ops[T]) *Blaster[T] {
	return &Blaster[T]{F: f, o: ops}
}

// unpacked is the internal view of an operand: classification flags,
// sign, an unbiased signed exponent of width ew, and an s-bit
// significand with explicit hidden bit, normalized so the hidden bit
// is set for any non-zero finite operand.
type unpacked[T any] struct {
	nan, inf, zero T // 1-bit flags
	sign           T // 1-bit
	exp            T // ew-bit signed, unbiased
	sig            T // s-bit, hidden bit explicit
}

func (b *Blaster[T]) ew() uint32 { return b.F.E + 2 }

func (b *Blaster[T]) c(w uint32, u uint64) T { return b.o.Const(bv.FromUint64(w, u)) }
func (b *Blaster[T]) ci(w uint32, i int64) T { return b.o.Const(bv.FromInt64(w, i)) }
func (b *Blaster[T]) one() T                 { return b.c(1, 1) }
func (b *Blaster[T]) nil1() T                { return b.c(1, 0) }

func (b *Blaster[T]) not1(a T) T { return b.o.Xor(a, b.one()) }

func (b *Blaster[T]) and1(xs ...T) T {
	r := xs[0]
	for _, x := range xs[1:] {
		r = b.o.And(r, x)
	}
	return r
}

func (b *Blaster[T]) or1(xs ...T) T {
	r := xs[0]
	for _, x := range xs[1:] {
		r = b.o.Or(r, x)
	}
	return r
}

// shiftW adapts an ew-width amount to operand width w.
func (b *Blaster[T]) shiftW(w uint32, amount T) T {
	o := b.o
	if b.ew() >= w {
		// bound first so the truncation is safe
		bound := b.ci(b.ew(), int64(w))
		amount = o.Ite(o.Slt(bound, amount), bound, amount)
		return o.Extract(w-1, 0, amount)
	}
	return o.ZeroExtend(w-b.ew(), amount)
}

// Unpack splits a packed operand and normalizes subnormals.
func (b *Blaster[T]) Unpack(x T) unpacked[T] {
	f, o := b.F, b.o
	w := f.Width()
	s := f.S
	sign := o.Extract(w-1, w-1, x)
	expF := o.Extract(w-2, s-1, x)
	sigF := o.Extract(s-2, 0, x)

	expOnes := o.RedAnd(expF)
	expZero := b.not1(o.RedOr(expF))
	sigZero := b.not1(o.RedOr(sigF))

	u := unpacked[T]{
		nan:  o.And(expOnes, b.not1(sigZero)),
		inf:  o.And(expOnes, sigZero),
		zero: o.And(expZero, sigZero),
		sign: sign,
	}

	// significand with hidden bit: 1 for normals, 0 for subnormals
	hidden := b.not1(expZero)
	sig := o.Concat(hidden, sigF) // width s

	// unbiased exponent: expF - bias for normals, emin for subnormals
	ew := b.ew()
	expU := o.Sub(o.ZeroExtend(ew-f.E, expF), b.ci(ew, f.Bias()))
	expU = o.Ite(expZero, b.ci(ew, f.EMin()), expU)

	// normalize subnormal significands
	for i := uint32(1); i < s; i++ {
		top := o.Extract(s-1, s-1, sig)
		shiftIn := b.and1(b.not1(top), o.RedOr(sig))
		sig = o.Ite(shiftIn, o.Shl(sig, b.c(s, 1)), sig)
		expU = o.Ite(shiftIn, o.Sub(expU, b.ci(ew, 1)), expU)
	}
	u.exp = expU
	u.sig = sig
	return u
}

// pack rounds and packs an unpacked result into the IEEE encoding.
// u.sig has width s with the hidden bit at the top; grs is a 3-bit
// guard/round/sticky lane below it; u.exp is the unbiased exponent of
// the hidden-bit position.  The flags override the numeric result.
func (b *Blaster[T]) pack(rm RM, u unpacked[T], grs T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()

	sig := u.sig
	exp := u.exp

	// subnormal range: shift right by (emin - exp), folding into sticky
	den := o.Slt(exp, b.ci(ew, f.EMin()))
	shift := o.Sub(b.ci(ew, f.EMin()), exp)
	shift = o.Ite(den, shift, b.ci(ew, 0))

	wide := o.Concat(sig, grs) // width s+3
	shW := b.shiftW(s+3, shift)
	shifted := o.Shr(wide, shW)
	lost := o.RedOr(o.Sub(wide, o.Shl(shifted, shW)))
	wide = o.Ite(den, o.Or(shifted, o.ZeroExtend(s+2, lost)), wide)
	exp = o.Ite(den, b.ci(ew, f.EMin()), exp)

	sig = o.Extract(s+2, 3, wide)
	g := o.Extract(2, 2, wide)
	r := o.Extract(1, 1, wide)
	st := o.Extract(0, 0, wide)

	// round increment decision
	lsb := o.Extract(0, 0, sig)
	rest := o.Or(r, st)
	var inc T
	switch rm {
	case RNE:
		inc = o.And(g, o.Or(rest, lsb))
	case RNA:
		inc = g
	case RTZ:
		inc = b.nil1()
	case RTP:
		inc = o.And(b.not1(u.sign), b.or1(g, rest))
	case RTN:
		inc = o.And(u.sign, b.or1(g, rest))
	}
	sigExt := o.Add(o.ZeroExtend(1, sig), o.ZeroExtend(s, inc)) // width s+1
	carry := o.Extract(s, s, sigExt)
	sig = o.Ite(carry, o.Extract(s, 1, sigExt), o.Extract(s-1, 0, sigExt))
	exp = o.Ite(carry, o.Add(exp, b.ci(ew, 1)), exp)

	// re-detect zero/subnormal/overflow after rounding
	isZero := b.not1(o.RedOr(sig))
	subOut := b.not1(o.Extract(s-1, s-1, sig))
	ovf := o.Slt(b.ci(ew, f.EMax()), exp)

	biased := o.Add(exp, b.ci(ew, f.Bias()))
	expField := o.Extract(f.E-1, 0, biased)
	expField = o.Ite(o.Or(subOut, isZero), b.c(f.E, 0), expField)
	sigField := o.Extract(s-2, 0, sig)

	packed := o.Concat(o.Concat(u.sign, expField), sigField)

	// overflow: infinity or max finite depending on the mode and sign
	var ovfVal T
	switch rm {
	case RNE, RNA:
		ovfVal = b.infBits(u.sign)
	case RTZ:
		ovfVal = b.maxFinBits(u.sign)
	case RTP:
		ovfVal = o.Ite(u.sign, b.maxFinBits(u.sign), b.infBits(u.sign))
	case RTN:
		ovfVal = o.Ite(u.sign, b.infBits(u.sign), b.maxFinBits(u.sign))
	}
	packed = o.Ite(ovf, ovfVal, packed)
	packed = o.Ite(isZero, b.zeroBits(u.sign), packed)

	packed = o.Ite(u.zero, b.zeroBits(u.sign), packed)
	packed = o.Ite(u.inf, b.infBits(u.sign), packed)
	packed = o.Ite(u.nan, b.nanBits(), packed)
	return packed
}

func (b *Blaster[T]) zeroBits(sign T) T {
	f, o := b.F, b.o
	return o.Concat(o.Concat(sign, b.c(f.E, 0)), b.c(f.S-1, 0))
}

func (b *Blaster[T]) infBits(sign T) T {
	f, o := b.F, b.o
	return o.Concat(o.Concat(sign, o.Const(bv.Ones(f.E))), b.c(f.S-1, 0))
}

func (b *Blaster[T]) maxFinBits(sign T) T {
	f, o := b.F, b.o
	return o.Concat(o.Concat(sign, o.Const(bv.Ones(f.E).Dec())), o.Const(bv.Ones(f.S-1)))
}

func (b *Blaster[T]) nanBits() T {
	return b.o.Const(NaN(b.F).Bits())
}

// Classification circuits over packed operands.

func (b *Blaster[T]) IsNaN(x T) T  { return b.Unpack(x).nan }
func (b *Blaster[T]) IsInf(x T) T  { return b.Unpack(x).inf }
func (b *Blaster[T]) IsZero(x T) T { return b.Unpack(x).zero }

func (b *Blaster[T]) IsNegative(x T) T {
	u := b.Unpack(x)
	return b.o.And(b.not1(u.nan), u.sign)
}

func (b *Blaster[T]) IsPositive(x T) T {
	u := b.Unpack(x)
	return b.o.And(b.not1(u.nan), b.not1(u.sign))
}

func (b *Blaster[T]) IsSubnormal(x T) T {
	f, o := b.F, b.o
	expF := o.Extract(f.Width()-2, f.S-1, x)
	sigF := o.Extract(f.S-2, 0, x)
	return o.And(b.not1(o.RedOr(expF)), o.RedOr(sigF))
}

func (b *Blaster[T]) IsNormal(x T) T {
	f, o := b.F, b.o
	expF := o.Extract(f.Width()-2, f.S-1, x)
	return o.And(o.RedOr(expF), b.not1(o.RedAnd(expF)))
}

// Abs and Neg are sign-bit operations on the packed encoding.

func (b *Blaster[T]) Abs(x T) T {
	return b.o.And(x, b.o.Const(bv.MaxSigned(b.F.Width())))
}

func (b *Blaster[T]) Neg(x T) T {
	return b.o.Xor(x, b.o.Const(bv.MinSigned(b.F.Width())))
}

// orderKey maps a packed non-NaN operand to a key whose unsigned
// order matches the IEEE order; both zeros map to distinct keys that
// the comparisons collapse.
func (b *Blaster[T]) orderKey(x T) T {
	f, o := b.F, b.o
	w := f.Width()
	sign := o.Extract(w-1, w-1, x)
	mag := o.ZeroExtend(1, o.Extract(w-2, 0, x)) // width w, sign cleared
	bias := o.Const(bv.MinSigned(w))             // 1000...0
	posKey := o.Add(mag, bias)
	negKey := o.Sub(bias, mag)
	return o.Ite(sign, negKey, posKey)
}

// Comparisons.  NaN operands force false.

func (b *Blaster[T]) FPEq(x, y T) T {
	o := b.o
	ux, uy := b.Unpack(x), b.Unpack(y)
	bothZero := o.And(ux.zero, uy.zero)
	eq := o.Or(o.Eq(x, y), bothZero)
	return b.and1(b.not1(ux.nan), b.not1(uy.nan), eq)
}

func (b *Blaster[T]) Lt(x, y T) T {
	o := b.o
	ux, uy := b.Unpack(x), b.Unpack(y)
	lt := o.Ult(b.orderKey(x), b.orderKey(y))
	bothZero := o.And(ux.zero, uy.zero)
	lt = o.And(lt, b.not1(bothZero))
	return b.and1(b.not1(ux.nan), b.not1(uy.nan), lt)
}

func (b *Blaster[T]) Leq(x, y T) T { return b.o.Or(b.Lt(x, y), b.FPEq(x, y)) }
func (b *Blaster[T]) Gt(x, y T) T  { return b.Lt(y, x) }
func (b *Blaster[T]) Geq(x, y T) T { return b.Leq(y, x) }

// Min and Max: a single NaN yields the other operand; of two zeros
// Min prefers -0 and Max prefers +0.

func (b *Blaster[T]) Min(x, y T) T {
	o := b.o
	ux, uy := b.Unpack(x), b.Unpack(y)
	r := o.Ite(b.Lt(x, y), x, y)
	bothZero := o.And(ux.zero, uy.zero)
	anyNeg := o.Or(ux.sign, uy.sign)
	r = o.Ite(bothZero, b.zeroBits(anyNeg), r)
	r = o.Ite(ux.nan, y, r)
	r = o.Ite(uy.nan, x, r)
	r = o.Ite(o.And(ux.nan, uy.nan), b.nanBits(), r)
	return r
}

func (b *Blaster[T]) Max(x, y T) T {
	o := b.o
	ux, uy := b.Unpack(x), b.Unpack(y)
	r := o.Ite(b.Gt(x, y), x, y)
	bothZero := o.And(ux.zero, uy.zero)
	bothNeg := o.And(ux.sign, uy.sign)
	r = o.Ite(bothZero, b.zeroBits(bothNeg), r)
	r = o.Ite(ux.nan, y, r)
	r = o.Ite(uy.nan, x, r)
	r = o.Ite(o.And(ux.nan, uy.nan), b.nanBits(), r)
	return r
}

// Add returns the circuit for x + y under rm.
func (b *Blaster[T]) Add(rm RM, x, y T) T { return b.addSub(rm, x, y, false) }

// Sub returns the circuit for x - y under rm.
func (b *Blaster[T]) Sub(rm RM, x, y T) T { return b.addSub(rm, x, y, true) }

func (b *Blaster[T]) addSub(rm RM, x, y T, negY bool) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	ux, uy := b.Unpack(x), b.Unpack(y)
	if negY {
		uy.sign = b.not1(uy.sign)
	}

	// order operands so a has the larger magnitude
	expLt := o.Slt(ux.exp, uy.exp)
	expEq := o.Eq(ux.exp, uy.exp)
	sigLt := o.Ult(ux.sig, uy.sig)
	swap := o.Or(expLt, o.And(expEq, sigLt))
	aExp := o.Ite(swap, uy.exp, ux.exp)
	bExp := o.Ite(swap, ux.exp, uy.exp)
	aSig := o.Ite(swap, uy.sig, ux.sig)
	bSig := o.Ite(swap, ux.sig, uy.sig)
	aSign := o.Ite(swap, uy.sign, ux.sign)
	bSign := o.Ite(swap, ux.sign, uy.sign)
	aZero := o.Ite(swap, uy.zero, ux.zero)
	bZero := o.Ite(swap, ux.zero, uy.zero)

	// working width: carry + s significand bits + 3 grs bits
	ww := s + 4
	aw := o.Shl(o.ZeroExtend(ww-s, aSig), b.c(ww, 3))
	bw := o.Shl(o.ZeroExtend(ww-s, bSig), b.c(ww, 3))

	// align b: shift right by the exponent difference, keep sticky
	diff := o.Sub(aExp, bExp)
	shW := b.shiftW(ww, diff)
	bShifted := o.Shr(bw, shW)
	sticky := o.RedOr(o.Sub(bw, o.Shl(bShifted, shW)))
	bw = o.Or(bShifted, o.ZeroExtend(ww-1, sticky))

	sameSign := o.Eq(aSign, bSign)
	sum := o.Ite(sameSign, o.Add(aw, bw), o.Sub(aw, bw))
	sum = o.Ite(bZero, aw, sum)
	sum = o.Ite(aZero, bw, sum)

	resSign := o.Ite(aZero, bSign, aSign)

	// renormalize: carry-out first, then leading zeros
	exp := aExp
	carry := o.Extract(ww-1, ww-1, sum)
	stickyLow := o.Extract(0, 0, sum)
	shifted1 := o.Or(o.Shr(sum, b.c(ww, 1)), o.ZeroExtend(ww-1, stickyLow))
	sum = o.Ite(carry, shifted1, sum)
	exp = o.Ite(carry, o.Add(exp, b.ci(ew, 1)), exp)

	for i := uint32(0); i < s+3; i++ {
		top := o.Extract(ww-2, ww-2, sum)
		shiftIn := b.and1(b.not1(top), o.RedOr(sum))
		sum = o.Ite(shiftIn, o.Shl(sum, b.c(ww, 1)), sum)
		exp = o.Ite(shiftIn, o.Sub(exp, b.ci(ew, 1)), exp)
	}

	resZero := b.not1(o.RedOr(sum))
	// exact cancellation gives +0, except -0 under RTN; two like-signed
	// zeros keep their sign
	zSign := b.nil1()
	if rm == RTN {
		zSign = b.one()
	}
	bothZeroSame := b.and1(ux.zero, uy.zero, o.Eq(ux.sign, uy.sign))
	zSign = o.Ite(bothZeroSame, ux.sign, zSign)

	res := unpacked[T]{
		nan: b.or1(ux.nan, uy.nan,
			b.and1(ux.inf, uy.inf, b.not1(o.Eq(ux.sign, uy.sign)))),
		inf:  o.Or(ux.inf, uy.inf),
		zero: resZero,
		sign: o.Ite(resZero, zSign, resSign),
		exp:  exp,
		sig:  o.Extract(ww-2, 3, sum),
	}
	res.sign = o.Ite(uy.inf, uy.sign, res.sign)
	res.sign = o.Ite(ux.inf, ux.sign, res.sign)
	grs := o.Extract(2, 0, sum)
	return b.pack(rm, res, grs)
}

// Mul returns the circuit for x * y under rm.
func (b *Blaster[T]) Mul(rm RM, x, y T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	ux, uy := b.Unpack(x), b.Unpack(y)

	sign := o.Xor(ux.sign, uy.sign)
	exp := o.Add(ux.exp, uy.exp)

	// 2s-bit product of the significands, in [2^(2s-2), 2^(2s))
	prod := o.Mul(o.ZeroExtend(s, ux.sig), o.ZeroExtend(s, uy.sig))
	top := o.Extract(2*s-1, 2*s-1, prod)
	exp = o.Ite(top, o.Add(exp, b.ci(ew, 1)), exp)
	prod = o.Ite(top, prod, o.Shl(prod, b.c(2*s, 1)))

	sig := o.Extract(2*s-1, s, prod)
	g := o.Extract(s-1, s-1, prod)
	var r, st T
	if s >= 2 {
		r = o.Extract(s-2, s-2, prod)
	} else {
		r = b.nil1()
	}
	if s >= 3 {
		st = o.RedOr(o.Extract(s-3, 0, prod))
	} else {
		st = b.nil1()
	}
	grs := o.Concat(o.Concat(g, r), st)

	res := unpacked[T]{
		nan: b.or1(ux.nan, uy.nan,
			o.And(ux.inf, uy.zero), o.And(uy.inf, ux.zero)),
		inf:  o.Or(ux.inf, uy.inf),
		zero: o.Or(ux.zero, uy.zero),
		sign: sign,
		exp:  exp,
		sig:  sig,
	}
	return b.pack(rm, res, grs)
}

// Div returns the circuit for x / y under rm.
func (b *Blaster[T]) Div(rm RM, x, y T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	ux, uy := b.Unpack(x), b.Unpack(y)

	sign := o.Xor(ux.sign, uy.sign)
	exp := o.Sub(ux.exp, uy.exp)

	// (sigX << (s+4)) / sigY yields s+4..s+5 quotient bits
	dw := 2*s + 4
	num := o.Shl(o.ZeroExtend(dw-s, ux.sig), b.c(dw, uint64(s+4)))
	den := o.ZeroExtend(dw-s, uy.sig)
	q := o.Udiv(num, den)
	rem := o.Urem(num, den)
	sticky := o.RedOr(rem)

	top := o.Extract(s+4, s+4, q)
	exp = o.Ite(top, exp, o.Sub(exp, b.ci(ew, 1)))
	qn := o.Ite(top, q, o.Shl(q, b.c(dw, 1)))

	sig := o.Extract(s+4, 5, qn)
	g := o.Extract(4, 4, qn)
	r := o.Extract(3, 3, qn)
	st := b.or1(o.RedOr(o.Extract(2, 0, qn)), sticky)
	grs := o.Concat(o.Concat(g, r), st)

	res := unpacked[T]{
		nan: b.or1(ux.nan, uy.nan,
			o.And(ux.inf, uy.inf), o.And(ux.zero, uy.zero)),
		inf:  o.Or(ux.inf, o.And(uy.zero, b.not1(ux.zero))),
		zero: o.Or(ux.zero, uy.inf),
		sign: sign,
		exp:  exp,
		sig:  sig,
	}
	return b.pack(rm, res, grs)
}

// Sqrt returns the circuit for the square root of x under rm, by
// restoring digit recurrence over the significand.
func (b *Blaster[T]) Sqrt(rm RM, x T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	u := b.Unpack(x)

	// halve the exponent; an odd exponent doubles the radicand
	odd := o.Extract(0, 0, u.exp)
	halfExp := o.Ashr(u.exp, b.c(ew, 1))

	// radicand sig*2^(s+9) in [2^(2s+8), 2^(2s+10)) so the root has
	// its hidden bit at position s+4
	rw := 2*s + 10
	rad := o.Shl(o.ZeroExtend(rw-s, u.sig), b.c(rw, uint64(s+9)))
	rad = o.Ite(odd, o.Shl(rad, b.c(rw, 1)), rad)

	// restoring square root, one result bit per iteration
	root := b.c(rw, 0)
	remv := b.c(rw, 0)
	for i := int(s + 4); i >= 0; i-- {
		two := o.Extract(1, 0, o.Shr(rad, b.c(rw, uint64(2*i))))
		remv = o.Or(o.Shl(remv, b.c(rw, 2)), o.ZeroExtend(rw-2, two))
		trial := o.Or(o.Shl(root, b.c(rw, 2)), b.c(rw, 1))
		ge := b.not1(o.Ult(remv, trial))
		remv = o.Ite(ge, o.Sub(remv, trial), remv)
		root = o.Or(o.Shl(root, b.c(rw, 1)), o.ZeroExtend(rw-1, ge))
	}
	sticky := o.RedOr(remv)

	sig := o.Extract(s+4, 5, root)
	g := o.Extract(4, 4, root)
	r := o.Extract(3, 3, root)
	st := b.or1(o.RedOr(o.Extract(2, 0, root)), sticky)
	grs := o.Concat(o.Concat(g, r), st)

	res := unpacked[T]{
		nan:  b.or1(u.nan, b.and1(u.sign, b.not1(u.zero))),
		inf:  o.And(u.inf, b.not1(u.sign)),
		zero: u.zero,
		sign: u.sign,
		exp:  halfExp,
		sig:  sig,
	}
	return b.pack(rm, res, grs)
}

// Fma returns the circuit for x*y + z with a single rounding, by
// computing exactly in a widened format and rounding once on the way
// back.  The wide significand carries 2s+2 bits, enough that the
// intermediate rounding cannot disagree with the final one.
func (b *Blaster[T]) Fma(rm RM, x, y, z T) T {
	f := b.F
	wideF := Format{E: f.E + 2, S: 2*f.S + 2}
	wb := NewBlaster[T](wideF, b.o)
	xw := b.Convert(wideF, RNE, x)
	yw := b.Convert(wideF, RNE, y)
	zw := b.Convert(wideF, RNE, z)
	pw := wb.Mul(rm, xw, yw)
	sw := wb.Add(rm, pw, zw)
	return b.ConvertFrom(wideF, rm, sw)
}

// Rem returns the circuit for the IEEE remainder x rem y, by long
// division over the exponent span of the format.  The result is
// exact, so no rounding mode is taken.
func (b *Blaster[T]) Rem(x, y T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	ux, uy := b.Unpack(x), b.Unpack(y)

	// iteration budget: the largest possible exponent difference
	span := int(1)<<f.E + 2

	rw := s + 2
	r := o.ZeroExtend(2, ux.sig)
	d := o.ZeroExtend(2, uy.sig)

	ediff := o.Sub(ux.exp, uy.exp)
	// ediff == -1 still admits a quotient of +-1; align the divisor
	// into x's units for it.  ediff <= -2 always keeps x.
	isM1 := o.Eq(ediff, b.ci(ew, -1))
	d = o.Ite(isM1, o.Shl(d, b.c(rw, 1)), d)
	expBase := o.Ite(isM1, o.Sub(uy.exp, b.ci(ew, 1)), uy.exp)
	negDiff := o.Slt(ediff, b.ci(ew, 0))
	cnt := o.Ite(negDiff, b.ci(ew, 0), ediff)

	for i := 0; i < span; i++ {
		active := o.RedOr(cnt)
		ge := b.not1(o.Ult(r, d))
		sub := o.Ite(ge, o.Sub(r, d), r)
		r = o.Ite(active, o.Shl(sub, b.c(rw, 1)), r)
		cnt = o.Ite(active, o.Sub(cnt, b.ci(ew, 1)), cnt)
	}
	// final compare-subtract gives the quotient's low bit
	ge0 := b.not1(o.Ult(r, d))
	r = o.Ite(ge0, o.Sub(r, d), r)

	// round the quotient to nearest even: subtract one more divisor
	// when the remainder exceeds half of it
	twoR := o.Shl(r, b.c(rw, 1))
	ovf2 := o.Extract(rw-1, rw-1, r) // 2r overflowed the lane
	gtHalf := o.Or(ovf2, o.Ult(d, twoR))
	eqHalf := b.and1(o.Eq(twoR, d), b.not1(ovf2))
	extra := o.Or(gtHalf, o.And(eqHalf, ge0))
	flip := extra
	r = o.Ite(extra, o.Sub(d, r), r)

	// normalize r (exact)
	exp := expBase
	for i := uint32(0); i < s+2; i++ {
		top := o.Extract(rw-1, rw-1, r)
		shiftIn := b.and1(b.not1(top), o.RedOr(r))
		r = o.Ite(shiftIn, o.Shl(r, b.c(rw, 1)), r)
		exp = o.Ite(shiftIn, o.Sub(exp, b.ci(ew, 1)), exp)
	}
	// r's top bit is at rw-1 = s+1; the hidden bit belongs at s-1
	exp = o.Add(exp, b.ci(ew, 2))

	isZero := b.not1(o.RedOr(r))
	sign := o.Xor(ux.sign, flip)
	sign = o.Ite(isZero, ux.sign, sign)

	res := unpacked[T]{
		nan:  b.or1(ux.nan, uy.nan, ux.inf, uy.zero),
		inf:  b.nil1(),
		zero: o.Or(isZero, ux.zero),
		sign: sign,
		exp:  exp,
		sig:  o.Extract(rw-1, 2, r),
	}
	packed := b.pack(RNE, res, b.c(3, 0))
	// y infinite (x finite) or |x| < |y|/2 at ediff <= -2: keep x
	farBelow := o.Slt(ediff, b.ci(ew, -1))
	keepX := o.Or(uy.inf, farBelow)
	keepX = b.and1(keepX, b.not1(res.nan), b.not1(ux.zero))
	return o.Ite(keepX, x, packed)
}

// Rti rounds x to an integral value under rm.
func (b *Blaster[T]) Rti(rm RM, x T) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	u := b.Unpack(x)

	intAlready := o.Slt(b.ci(ew, int64(s)-2), u.exp) // exp >= s-1
	small := o.Slt(u.exp, b.ci(ew, 0))               // |x| < 1

	// clear the (s-1)-exp fraction bits of the significand, rounding
	// the dropped part per rm
	ww := s + 1
	sh := o.Sub(b.ci(ew, int64(s-1)), u.exp)
	shW := b.shiftW(ww, sh)
	wide := o.ZeroExtend(1, u.sig)
	kept := o.Shl(o.Shr(wide, shW), shW)
	dropped := o.Sub(wide, kept)

	half := o.Shl(o.ZeroExtend(ww-1, b.one()), o.Sub(shW, b.c(ww, 1)))
	someFrac := o.RedOr(dropped)
	gtHalf := o.Ult(half, dropped)
	eqHalf := b.and1(o.Eq(half, dropped), someFrac)
	intLsb := o.RedOr(o.And(kept, o.Shl(o.ZeroExtend(ww-1, b.one()), shW)))

	var inc T
	switch rm {
	case RNE:
		inc = o.Or(gtHalf, o.And(eqHalf, intLsb))
	case RNA:
		inc = o.Or(gtHalf, eqHalf)
	case RTZ:
		inc = b.nil1()
	case RTP:
		inc = o.And(b.not1(u.sign), someFrac)
	case RTN:
		inc = o.And(u.sign, someFrac)
	}
	ulp := o.Shl(o.ZeroExtend(ww-1, b.one()), shW)
	rounded := o.Add(kept, o.Ite(inc, ulp, b.c(ww, 0)))

	// rounding can carry into one extra bit
	exp := u.exp
	carry := o.Extract(ww-1, ww-1, rounded)
	exp = o.Ite(carry, o.Add(exp, b.ci(ew, 1)), exp)
	sig := o.Ite(carry, o.Extract(ww-1, 1, rounded), o.Extract(ww-2, 0, rounded))

	res := unpacked[T]{
		nan:  u.nan,
		inf:  u.inf,
		zero: u.zero,
		sign: u.sign,
		exp:  exp,
		sig:  sig,
	}
	packed := b.pack(RTZ, res, b.c(3, 0))

	// |x| < 1 rounds to 0 or ±1 wholesale
	oneV := o.Const(Round(f, RTZ, big.NewRat(1, 1), false).Bits())
	negOne := b.Neg(oneV)
	var sm T
	switch rm {
	case RTP:
		sm = o.Ite(o.Or(u.sign, u.zero), b.zeroBits(u.sign), oneV)
	case RTN:
		sm = o.Ite(b.and1(u.sign, b.not1(u.zero)), negOne, b.zeroBits(u.sign))
	case RTZ:
		sm = b.zeroBits(u.sign)
	default:
		// nearest: away from zero iff |x| > 1/2, or == 1/2 under RNA
		geHalf := o.Slt(b.ci(ew, -2), u.exp) // exp >= -1
		exactHalf := b.and1(o.Eq(u.exp, b.ci(ew, -1)),
			b.not1(o.RedOr(o.Extract(s-2, 0, u.sig))))
		var up T
		if rm == RNA {
			up = geHalf
		} else {
			up = o.And(geHalf, b.not1(exactHalf))
		}
		sm = o.Ite(up, o.Ite(u.sign, negOne, oneV), b.zeroBits(u.sign))
	}
	packed = o.Ite(small, sm, packed)
	packed = o.Ite(intAlready, x, packed)
	packed = o.Ite(u.nan, b.nanBits(), packed)
	packed = o.Ite(u.inf, b.infBits(u.sign), packed)
	packed = o.Ite(u.zero, b.zeroBits(u.sign), packed)
	return packed
}

// Convert re-rounds x (format b.F) into format g.
func (b *Blaster[T]) Convert(g Format, rm RM, x T) T {
	f, o := b.F, b.o
	u := b.Unpack(x)
	gb := NewBlaster[T](g, o)

	var sig, grs T
	if g.S >= f.S {
		sig = o.Shl(o.ZeroExtend(g.S-f.S, u.sig), b.c(g.S, uint64(g.S-f.S)))
		grs = b.c(3, 0)
	} else {
		cut := f.S - g.S
		sig = o.Extract(f.S-1, cut, u.sig)
		gbit := o.Extract(cut-1, cut-1, u.sig)
		var rbit, st T
		if cut >= 2 {
			rbit = o.Extract(cut-2, cut-2, u.sig)
		} else {
			rbit = b.nil1()
		}
		if cut >= 3 {
			st = o.RedOr(o.Extract(cut-3, 0, u.sig))
		} else {
			st = b.nil1()
		}
		grs = o.Concat(o.Concat(gbit, rbit), st)
	}

	gew := gb.ew()
	var exp T
	if gew >= b.ew() {
		exp = o.SignExtend(gew-b.ew(), u.exp)
	} else {
		exp = o.Extract(gew-1, 0, u.exp)
	}

	res := unpacked[T]{
		nan:  u.nan,
		inf:  u.inf,
		zero: u.zero,
		sign: u.sign,
		exp:  exp,
		sig:  sig,
	}
	return gb.pack(rm, res, grs)
}

// ConvertFrom converts a packed operand of format g into b.F.
func (b *Blaster[T]) ConvertFrom(g Format, rm RM, x T) T {
	gb := NewBlaster[T](g, b.o)
	return gb.Convert(b.F, rm, x)
}

// FromBits reinterprets a raw e+s-wide bit-vector lane as a packed
// operand (the fp.to_fp from-bit-vector conversion is the identity on
// the encoding).
func (b *Blaster[T]) FromBits(x T) T { return x }

// FromUbv converts an unsigned bit-vector lane into format b.F.
func (b *Blaster[T]) FromUbv(rm RM, x T) T { return b.fromInt(rm, x, false) }

// FromSbv converts a signed bit-vector lane into format b.F.
func (b *Blaster[T]) FromSbv(rm RM, x T) T { return b.fromInt(rm, x, true) }

func (b *Blaster[T]) fromInt(rm RM, x T, signed bool) T {
	f, o := b.F, b.o
	w := o.Width(x)
	s := f.S
	ew := b.ew()

	var sign T
	mag := x
	if signed {
		sign = o.Extract(w-1, w-1, x)
		mag = o.Ite(sign, o.Sub(b.c(w, 0), x), x)
	} else {
		sign = b.nil1()
	}

	ww := w
	if ww < s+3 {
		mag = o.ZeroExtend(s+3-ww, mag)
		ww = s + 3
	}
	exp := b.ci(ew, int64(ww-1))
	for i := uint32(0); i < ww; i++ {
		top := o.Extract(ww-1, ww-1, mag)
		shiftIn := b.and1(b.not1(top), o.RedOr(mag))
		mag = o.Ite(shiftIn, o.Shl(mag, b.c(ww, 1)), mag)
		exp = o.Ite(shiftIn, o.Sub(exp, b.ci(ew, 1)), exp)
	}

	sig := o.Extract(ww-1, ww-s, mag)
	gbit := o.Extract(ww-s-1, ww-s-1, mag)
	var rbit, st T
	if ww-s >= 2 {
		rbit = o.Extract(ww-s-2, ww-s-2, mag)
	} else {
		rbit = b.nil1()
	}
	if ww-s >= 3 {
		st = o.RedOr(o.Extract(ww-s-3, 0, mag))
	} else {
		st = b.nil1()
	}
	grs := o.Concat(o.Concat(gbit, rbit), st)

	res := unpacked[T]{
		nan:  b.nil1(),
		inf:  b.nil1(),
		zero: b.not1(o.RedOr(x)),
		sign: sign,
		exp:  exp,
		sig:  sig,
	}
	return b.pack(rm, res, grs)
}

// ToUbv converts x to an unsigned bit-vector of width w; NaN,
// infinities and out-of-range values yield zero, matching
// Value.ToUbv.
func (b *Blaster[T]) ToUbv(w uint32, rm RM, x T) T { return b.toInt(w, rm, x, false) }

// ToSbv converts x to a signed bit-vector of width w.
func (b *Blaster[T]) ToSbv(w uint32, rm RM, x T) T { return b.toInt(w, rm, x, true) }

func (b *Blaster[T]) toInt(w uint32, rm RM, x T, signed bool) T {
	f, o := b.F, b.o
	s, ew := f.S, b.ew()
	u := b.Unpack(x)

	// value = sig * 2^(exp-(s-1)), computed at width w+s+3
	ww := w + s + 3
	mag := o.ZeroExtend(ww-s, u.sig)

	shL := o.Sub(u.exp, b.ci(ew, int64(s-1)))
	left := b.not1(o.Slt(shL, b.ci(ew, 0)))
	amtL := o.Ite(left, shL, b.ci(ew, 0))
	amtR := o.Ite(left, b.ci(ew, 0), o.Sub(b.ci(ew, 0), shL))
	amtLW := b.shiftW(ww, amtL)
	amtRW := b.shiftW(ww, amtR)

	shiftedL := o.Shl(mag, amtLW)
	ovfL := o.RedOr(o.Sub(mag, o.Shr(shiftedL, amtLW)))
	shiftedR := o.Shr(mag, amtRW)
	lost := o.Sub(mag, o.Shl(shiftedR, amtRW))

	n := o.Ite(left, shiftedL, shiftedR)

	half := o.Ite(left, b.c(ww, 0),
		o.Shl(o.ZeroExtend(ww-1, b.one()), o.Sub(amtRW, b.c(ww, 1))))
	someFrac := o.RedOr(lost)
	gtHalf := o.Ult(half, lost)
	eqHalf := b.and1(o.Eq(half, lost), someFrac)
	lsb := o.Extract(0, 0, n)
	var inc T
	switch rm {
	case RNE:
		inc = o.Or(gtHalf, o.And(eqHalf, lsb))
	case RNA:
		inc = o.Or(gtHalf, eqHalf)
	case RTZ:
		inc = b.nil1()
	case RTP:
		inc = o.And(b.not1(u.sign), someFrac)
	case RTN:
		inc = o.And(u.sign, someFrac)
	}
	n = o.Add(n, o.ZeroExtend(ww-1, inc))

	res := o.Extract(w-1, 0, n)
	highRest := o.RedOr(o.Extract(ww-1, w, n))
	var outOfRange T
	if signed {
		neg := o.Sub(b.c(w, 0), res)
		minOK := b.and1(o.Extract(w-1, w-1, res),
			b.not1(o.RedOr(o.Extract(w-2, 0, res))))
		tooBigPos := o.Or(highRest, o.Extract(w-1, w-1, res))
		tooBigNeg := o.Or(highRest, o.And(o.Extract(w-1, w-1, res), b.not1(minOK)))
		outOfRange = o.Ite(u.sign, tooBigNeg, tooBigPos)
		res = o.Ite(u.sign, neg, res)
	} else {
		outOfRange = o.Or(highRest, o.And(u.sign, o.RedOr(res)))
	}
	bad := b.or1(u.nan, u.inf, outOfRange, ovfL)
	return o.Ite(bad, b.c(w, 0), o.Ite(u.zero, b.c(w, 0), res))
}
