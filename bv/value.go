// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package bv

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Value is a concrete fixed-width bit-vector: an unsigned magnitude in
// [0, 2^Width) together with its Width.
type Value struct {
	w   uint32
	mag big.Int
}

// ErrInvalidValue is returned (wrapped with context via errors.Wrap)
// when a parsed literal does not fit its target width.
var ErrInvalidValue = errors.New("InvalidValue")

func mask(w uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(w))
	return m.Sub(m, big.NewInt(1))
}

func maskTo(x *big.Int, w uint32) big.Int {
	var r big.Int
	r.And(x, mask(w))
	return r
}

// Width returns v's bit width.
func (v Value) Width() uint32 { return v.w }

// Zero returns the all-zeros value of width w.
func Zero(w uint32) Value { return Value{w: w} }

// Ones returns the all-ones value of width w.
func Ones(w uint32) Value { return Value{w: w, mag: *mask(w)} }

// FromUint64 builds a Value of width w from the low w bits of u.
func FromUint64(w uint32, u uint64) Value {
	var b big.Int
	b.SetUint64(u)
	return Value{w: w, mag: maskTo(&b, w)}
}

// FromInt64 builds a Value of width w from the two's-complement
// encoding of i, masked to w bits.
func FromInt64(w uint32, i int64) Value {
	var b big.Int
	b.SetInt64(i)
	if b.Sign() < 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(w))
		b.Add(&b, full)
	}
	return Value{w: w, mag: maskTo(&b, w)}
}

// FromBigInt builds a Value of width w, masking x (taken as an
// unsigned magnitude) into range.
func FromBigInt(w uint32, x *big.Int) Value {
	return Value{w: w, mag: maskTo(x, w)}
}

// Parse parses str in the given base (2, 10 or 16) as a Value of width
// w.  Decimal values outside [-2^(w-1), 2^w-1] and binary strings
// longer than w bits fail with InvalidValue.
func Parse(w uint32, str string, base int) (Value, error) {
	switch base {
	case 2:
		if uint32(len(str)) > w {
			return Value{}, errors.Wrapf(ErrInvalidValue, "binary literal %q exceeds width %d", str, w)
		}
		var b big.Int
		if _, ok := b.SetString(str, 2); !ok {
			return Value{}, errors.Wrapf(ErrInvalidValue, "not a binary literal: %q", str)
		}
		return Value{w: w, mag: maskTo(&b, w)}, nil
	case 16:
		var b big.Int
		if _, ok := b.SetString(str, 16); !ok {
			return Value{}, errors.Wrapf(ErrInvalidValue, "not a hex literal: %q", str)
		}
		if b.BitLen() > int(w) {
			return Value{}, errors.Wrapf(ErrInvalidValue, "hex literal %q exceeds width %d", str, w)
		}
		return Value{w: w, mag: maskTo(&b, w)}, nil
	case 10:
		var b big.Int
		if _, ok := b.SetString(str, 10); !ok {
			return Value{}, errors.Wrapf(ErrInvalidValue, "not a decimal literal: %q", str)
		}
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(w-1)))
		hi := mask(w)
		if b.Cmp(lo) < 0 || b.Cmp(hi) > 0 {
			return Value{}, errors.Wrapf(ErrInvalidValue, "decimal literal %s out of range for width %d", b.String(), w)
		}
		if b.Sign() < 0 {
			full := new(big.Int).Lsh(big.NewInt(1), uint(w))
			b.Add(&b, full)
		}
		return Value{w: w, mag: maskTo(&b, w)}, nil
	default:
		return Value{}, errors.Wrapf(ErrInvalidValue, "unsupported base %d", base)
	}
}

// Uint64 returns v's magnitude as an unsigned integer, truncated if
// Width > 64.
func (v Value) Uint64() uint64 { return v.mag.Uint64() }

// Int64 returns v's magnitude reinterpreted as a two's-complement
// signed integer, truncated if Width > 64.
func (v Value) Int64() int64 {
	return v.signedBig().Int64()
}

func (v Value) signedBig() *big.Int {
	r := new(big.Int).Set(&v.mag)
	half := new(big.Int).Lsh(big.NewInt(1), uint(v.w-1))
	if r.Cmp(half) >= 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(v.w))
		r.Sub(r, full)
	}
	return r
}

// Big returns v's unsigned magnitude as a big.Int.
func (v Value) Big() *big.Int { return new(big.Int).Set(&v.mag) }

// SignedBig returns v's magnitude reinterpreted as two's-complement.
func (v Value) SignedBig() *big.Int { return v.signedBig() }

// Bit returns the i'th bit (0 = LSB).
func (v Value) Bit(i uint32) bool { return v.mag.Bit(int(i)) == 1 }

// SignBit returns the most significant bit.
func (v Value) SignBit() bool { return v.Bit(v.w - 1) }

// IsZero reports whether v is the all-zeros value.
func (v Value) IsZero() bool { return v.mag.Sign() == 0 }

// Eq reports bit-for-bit equality (widths must match, enforced by the
// node layer's type checking before this is ever called).
func (v Value) Eq(o Value) bool { return v.w == o.w && v.mag.Cmp(&o.mag) == 0 }

func (v Value) String() string { return "#b" + v.BinString() }

// BinString renders v as width-many binary digits, no prefix.
func (v Value) BinString() string {
	s := v.mag.Text(2)
	if uint32(len(s)) < v.w {
		s = zeros(v.w-uint32(len(s))) + s
	}
	return s
}

// HexString renders v as width/4-rounded-up hex digits (lowercase), no prefix.
func (v Value) HexString() string {
	s := v.mag.Text(16)
	want := (v.w + 3) / 4
	if uint32(len(s)) < want {
		s = zerosN(int(want)-len(s), '0') + s
	}
	return s
}

// DecString renders v's unsigned magnitude in base 10, no prefix.
func (v Value) DecString() string { return v.mag.Text(10) }

func zeros(n uint32) string { return zerosN(int(n), '0') }
func zerosN(n int, c byte) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

func (v Value) fmtDebug() string { return fmt.Sprintf("bv%d[%s]", v.w, v.BinString()) }
