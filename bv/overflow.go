// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package bv

import "math/big"

// Overflow predicates: each is true iff the width-w result of the
// operation differs from the true integer result.

// Uaddo reports unsigned addition overflow.
func (v Value) Uaddo(o Value) bool {
	s := new(big.Int).Add(&v.mag, &o.mag)
	return s.BitLen() > int(v.w)
}

// Saddo reports signed addition overflow.
func (v Value) Saddo(o Value) bool {
	s := new(big.Int).Add(v.signedBig(), o.signedBig())
	return !fitsSigned(s, v.w)
}

// Usubo reports unsigned subtraction overflow (borrow).
func (v Value) Usubo(o Value) bool {
	return v.mag.Cmp(&o.mag) < 0
}

// Ssubo reports signed subtraction overflow.
func (v Value) Ssubo(o Value) bool {
	d := new(big.Int).Sub(v.signedBig(), o.signedBig())
	return !fitsSigned(d, v.w)
}

// Umulo reports unsigned multiplication overflow.
func (v Value) Umulo(o Value) bool {
	p := new(big.Int).Mul(&v.mag, &o.mag)
	return p.BitLen() > int(v.w)
}

// Smulo reports signed multiplication overflow.
func (v Value) Smulo(o Value) bool {
	p := new(big.Int).Mul(v.signedBig(), o.signedBig())
	return !fitsSigned(p, v.w)
}

// Sdivo reports signed division overflow: min_signed / -1.
func (v Value) Sdivo(o Value) bool {
	return v.Eq(MinSigned(v.w)) && o.Eq(Ones(o.w))
}

// MinSigned returns the minimal signed value of width w
// (1000...0 in binary).
func MinSigned(w uint32) Value {
	var b big.Int
	b.SetBit(&b, int(w-1), 1)
	return Value{w: w, mag: b}
}

// MaxSigned returns the maximal signed value of width w
// (0111...1 in binary).
func MaxSigned(w uint32) Value {
	m := mask(w)
	m.SetBit(m, int(w-1), 0)
	return Value{w: w, mag: *m}
}

func fitsSigned(x *big.Int, w uint32) bool {
	lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(w-1)))
	hi := new(big.Int).Lsh(big.NewInt(1), uint(w-1))
	hi.Sub(hi, big.NewInt(1))
	return x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0
}
