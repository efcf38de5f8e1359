// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package blast

import (
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/logic"
	"github.com/matthewsot/bitwuzla/z"
)

// Lits is a bit-vector of AIG literals, least significant bit first.
type Lits []z.Lit

// LitOps implements the word-blaster's primitive set over AIG
// literal lanes; it also provides the circuits the term blaster uses
// directly for BV kinds.
type LitOps struct {
	C *logic.C
}

func (o LitOps) Const(v bv.Value) Lits {
	w := v.Width()
	out := make(Lits, w)
	for i := uint32(0); i < w; i++ {
		if v.Bit(i) {
			out[i] = o.C.T
		} else {
			out[i] = o.C.F
		}
	}
	return out
}

func (o LitOps) Width(a Lits) uint32 { return uint32(len(a)) }

// Inputs returns w fresh circuit inputs.
func (o LitOps) Inputs(w uint32) Lits {
	out := make(Lits, w)
	for i := range out {
		out[i] = o.C.Lit()
	}
	return out
}

func (o LitOps) Not(a Lits) Lits {
	out := make(Lits, len(a))
	for i, m := range a {
		out[i] = m.Not()
	}
	return out
}

func (o LitOps) And(a, b Lits) Lits {
	out := make(Lits, len(a))
	for i := range a {
		out[i] = o.C.And(a[i], b[i])
	}
	return out
}

func (o LitOps) Or(a, b Lits) Lits {
	out := make(Lits, len(a))
	for i := range a {
		out[i] = o.C.Or(a[i], b[i])
	}
	return out
}

func (o LitOps) Xor(a, b Lits) Lits {
	out := make(Lits, len(a))
	for i := range a {
		out[i] = o.C.Xor(a[i], b[i])
	}
	return out
}

// addC is a ripple-carry adder with carry-in, returning the sum and
// carry-out.
func (o LitOps) addC(a, b Lits, cin z.Lit) (Lits, z.Lit) {
	out := make(Lits, len(a))
	c := cin
	for i := range a {
		axb := o.C.Xor(a[i], b[i])
		out[i] = o.C.Xor(axb, c)
		c = o.C.Or(o.C.And(a[i], b[i]), o.C.And(axb, c))
	}
	return out, c
}

func (o LitOps) Add(a, b Lits) Lits {
	s, _ := o.addC(a, b, o.C.F)
	return s
}

func (o LitOps) Sub(a, b Lits) Lits {
	s, _ := o.addC(a, o.Not(b), o.C.T)
	return s
}

func (o LitOps) Neg(a Lits) Lits {
	return o.Sub(o.Const(bv.Zero(uint32(len(a)))), a)
}

func (o LitOps) Mul(a, b Lits) Lits {
	w := len(a)
	acc := o.Const(bv.Zero(uint32(w)))
	for i := 0; i < w; i++ {
		// partial product: (a << i) gated by b[i]
		pp := make(Lits, w)
		for j := 0; j < w; j++ {
			if j < i {
				pp[j] = o.C.F
			} else {
				pp[j] = o.C.And(a[j-i], b[i])
			}
		}
		acc = o.Add(acc, pp)
	}
	return acc
}

// divmod is a restoring divider; division by zero yields the
// SMT-LIB results (all-ones quotient, dividend remainder).
func (o LitOps) divmod(a, d Lits) (q, r Lits) {
	w := len(a)
	q = make(Lits, w)
	rem := o.Const(bv.Zero(uint32(w)))
	for i := w - 1; i >= 0; i-- {
		// rem = rem << 1 | a[i]
		rem = append(Lits{a[i]}, rem[:w-1]...)
		ge := o.Uge(rem, d)
		rem = o.iteBits(ge, o.Sub(rem, d), rem)
		q[i] = ge
	}
	dZero := o.RedOr(d)[0].Not()
	q = o.iteBits(dZero, o.Const(bv.Ones(uint32(w))), q)
	r = o.iteBits(dZero, a, rem)
	return q, r
}

func (o LitOps) Udiv(a, b Lits) Lits {
	q, _ := o.divmod(a, b)
	return q
}

func (o LitOps) Urem(a, b Lits) Lits {
	_, r := o.divmod(a, b)
	return r
}

// iteBits selects a when c is true, else b.
func (o LitOps) iteBits(c z.Lit, a, b Lits) Lits {
	out := make(Lits, len(a))
	for i := range a {
		out[i] = o.C.Choice(c, a[i], b[i])
	}
	return out
}

// Ite implements the word-blaster interface over 1-bit condition
// lanes.
func (o LitOps) Ite(c, a, b Lits) Lits {
	return o.iteBits(c[0], a, b)
}

// shift builds a logarithmic shifter.  fill provides the shifted-in
// bit; left selects the direction.  Amounts at or beyond the width
// produce all-fill.
func (o LitOps) shift(a, amount Lits, fill z.Lit, left bool) Lits {
	w := len(a)
	out := append(Lits(nil), a...)
	for k := 0; (1 << k) < 2*w && k < len(amount); k++ {
		sh := 1 << k
		next := make(Lits, w)
		for i := 0; i < w; i++ {
			var from z.Lit
			if left {
				if i-sh >= 0 {
					from = out[i-sh]
				} else {
					from = fill
				}
			} else {
				if i+sh < w {
					from = out[i+sh]
				} else {
					from = fill
				}
			}
			next[i] = o.C.Choice(amount[k], from, out[i])
		}
		out = next
	}
	// amount bits beyond the shifter stages force all-fill
	oob := o.C.F
	for k := len(fitBits(w)); k < len(amount); k++ {
		oob = o.C.Or(oob, amount[k])
	}
	if oob != o.C.F {
		all := make(Lits, w)
		for i := range all {
			all[i] = fill
		}
		out = o.iteBits(oob, all, out)
	}
	return out
}

// fitBits returns the amount bits a width-w shifter consumes.
func fitBits(w int) []int {
	var ks []int
	for k := 0; (1 << k) < 2*w; k++ {
		ks = append(ks, k)
	}
	return ks
}

func (o LitOps) Shl(a, n Lits) Lits  { return o.shift(a, n, o.C.F, true) }
func (o LitOps) Shr(a, n Lits) Lits  { return o.shift(a, n, o.C.F, false) }
func (o LitOps) Ashr(a, n Lits) Lits { return o.shift(a, n, a[len(a)-1], false) }

func (o LitOps) Concat(hi, lo Lits) Lits {
	out := make(Lits, 0, len(hi)+len(lo))
	out = append(out, lo...)
	out = append(out, hi...)
	return out
}

func (o LitOps) Extract(hi, lo uint32, a Lits) Lits {
	return append(Lits(nil), a[lo:hi+1]...)
}

func (o LitOps) ZeroExtend(n uint32, a Lits) Lits {
	out := append(Lits(nil), a...)
	for i := uint32(0); i < n; i++ {
		out = append(out, o.C.F)
	}
	return out
}

func (o LitOps) SignExtend(n uint32, a Lits) Lits {
	out := append(Lits(nil), a...)
	s := a[len(a)-1]
	for i := uint32(0); i < n; i++ {
		out = append(out, s)
	}
	return out
}

// EqLit returns the single literal for bitwise equality.
func (o LitOps) EqLit(a, b Lits) z.Lit {
	r := o.C.T
	for i := range a {
		r = o.C.And(r, o.C.Xor(a[i], b[i]).Not())
	}
	return r
}

// UltLit compares unsigned via a borrow chain.
func (o LitOps) UltLit(a, b Lits) z.Lit {
	lt := o.C.F
	for i := range a {
		eq := o.C.Xor(a[i], b[i]).Not()
		lt = o.C.Or(o.C.And(a[i].Not(), b[i]), o.C.And(eq, lt))
	}
	return lt
}

// SltLit compares signed by flipping the sign bits.
func (o LitOps) SltLit(a, b Lits) z.Lit {
	w := len(a)
	af := append(append(Lits(nil), a[:w-1]...), a[w-1].Not())
	bf := append(append(Lits(nil), b[:w-1]...), b[w-1].Not())
	return o.UltLit(af, bf)
}

func (o LitOps) Eq(a, b Lits) Lits  { return Lits{o.EqLit(a, b)} }
func (o LitOps) Ult(a, b Lits) Lits { return Lits{o.UltLit(a, b)} }
func (o LitOps) Slt(a, b Lits) Lits { return Lits{o.SltLit(a, b)} }

// Uge returns the literal for unsigned greater-or-equal.
func (o LitOps) Uge(a, b Lits) z.Lit { return o.UltLit(a, b).Not() }

func (o LitOps) RedOr(a Lits) Lits  { return Lits{o.C.Ors(a...)} }
func (o LitOps) RedAnd(a Lits) Lits { return Lits{o.C.Ands(a...)} }

// RedXor folds parity.
func (o LitOps) RedXor(a Lits) z.Lit {
	r := o.C.F
	for _, m := range a {
		r = o.C.Xor(r, m)
	}
	return r
}

// rotate rotates by a constant amount.
func rotate(a Lits, n uint32, left bool) Lits {
	w := uint32(len(a))
	n %= w
	if !left {
		n = (w - n) % w
	}
	// left rotate by n: out[i] = a[(i-n) mod w]
	out := make(Lits, w)
	for i := uint32(0); i < w; i++ {
		out[i] = a[(i+w-n)%w]
	}
	return out
}
