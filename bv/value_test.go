// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package bv

import (
	"math/big"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		w    uint32
		str  string
		base int
	}{
		{4, "1010", 2},
		{4, "15", 10},
		{4, "-8", 10},
		{8, "ff", 16},
		{12, "0ff", 16},
		{1, "1", 2},
		{64, "18446744073709551615", 10},
	} {
		v, err := Parse(tc.w, tc.str, tc.base)
		if err != nil {
			t.Fatalf("parse %q base %d: %s", tc.str, tc.base, err)
		}
		var s string
		switch tc.base {
		case 2:
			s = v.BinString()
		case 10:
			s = v.DecString()
		case 16:
			s = v.HexString()
		}
		u, err := Parse(tc.w, s, tc.base)
		if err != nil {
			t.Fatalf("reparse %q base %d: %s", s, tc.base, err)
		}
		if !u.Eq(v) {
			t.Errorf("round trip %q base %d: %s != %s", tc.str, tc.base, u, v)
		}
	}
}

func TestParseOutOfRange(t *testing.T) {
	for _, tc := range []struct {
		w    uint32
		str  string
		base int
	}{
		{4, "10101", 2},
		{4, "16", 10},
		{4, "-9", 10},
		{4, "ff", 16},
	} {
		if _, err := Parse(tc.w, tc.str, tc.base); err == nil {
			t.Errorf("expected InvalidValue for %q base %d width %d", tc.str, tc.base, tc.w)
		}
	}
}

func TestDivRemByZero(t *testing.T) {
	x := FromUint64(8, 100)
	zero := Zero(8)
	if !x.Udiv(zero).Eq(Ones(8)) {
		t.Errorf("bvudiv by zero is not all-ones")
	}
	if !x.Urem(zero).Eq(x) {
		t.Errorf("bvurem by zero is not the dividend")
	}
	neg := FromInt64(8, -7)
	if !neg.Sdiv(zero).Eq(FromUint64(8, 1)) {
		t.Errorf("bvsdiv of negative by zero is not one")
	}
	if !x.Sdiv(zero).Eq(Ones(8)) {
		t.Errorf("bvsdiv of non-negative by zero is not all-ones")
	}
	if !neg.Srem(zero).Eq(neg) || !neg.Smod(zero).Eq(neg) {
		t.Errorf("bvsrem/bvsmod by zero is not the dividend")
	}
}

func TestShiftsBeyondWidth(t *testing.T) {
	x := FromUint64(8, 0xa5)
	big := FromUint64(8, 9)
	if !x.Shl(big).IsZero() || !x.Shr(big).IsZero() {
		t.Errorf("shl/lshr by >= width is not zero")
	}
	if !x.Ashr(big).Eq(Ones(8)) {
		t.Errorf("ashr of negative by >= width is not all-ones")
	}
	pos := FromUint64(8, 0x25)
	if !pos.Ashr(big).IsZero() {
		t.Errorf("ashr of non-negative by >= width is not zero")
	}
}

// TestOverflowExhaustive cross-checks the overflow predicates against
// plain integer arithmetic over all pairs at small widths.
func TestOverflowExhaustive(t *testing.T) {
	for w := uint32(1); w <= 4; w++ {
		n := uint64(1) << w
		for i := uint64(0); i < n; i++ {
			for j := uint64(0); j < n; j++ {
				x, y := FromUint64(w, i), FromUint64(w, j)
				lim := new(big.Int).Lsh(big.NewInt(1), uint(w))
				sum := new(big.Int).Add(x.Big(), y.Big())
				if x.Uaddo(y) != (sum.Cmp(lim) >= 0) {
					t.Fatalf("uaddo(%d, %d) width %d", i, j, w)
				}
				prod := new(big.Int).Mul(x.Big(), y.Big())
				if x.Umulo(y) != (prod.Cmp(lim) >= 0) {
					t.Fatalf("umulo(%d, %d) width %d", i, j, w)
				}
				if x.Usubo(y) != (i < j) {
					t.Fatalf("usubo(%d, %d) width %d", i, j, w)
				}
				ssum := new(big.Int).Add(x.SignedBig(), y.SignedBig())
				if x.Saddo(y) != !fitsSigned(ssum, w) {
					t.Fatalf("saddo(%d, %d) width %d", i, j, w)
				}
				sdiff := new(big.Int).Sub(x.SignedBig(), y.SignedBig())
				if x.Ssubo(y) != !fitsSigned(sdiff, w) {
					t.Fatalf("ssubo(%d, %d) width %d", i, j, w)
				}
				sprod := new(big.Int).Mul(x.SignedBig(), y.SignedBig())
				if x.Smulo(y) != !fitsSigned(sprod, w) {
					t.Fatalf("smulo(%d, %d) width %d", i, j, w)
				}
				wantSdivo := x.Eq(MinSigned(w)) && y.Eq(Ones(w))
				if x.Sdivo(y) != wantSdivo {
					t.Fatalf("sdivo(%d, %d) width %d", i, j, w)
				}
			}
		}
	}
}

func TestExtractConcat(t *testing.T) {
	x := FromUint64(8, 0xab)
	hi := x.Extract(7, 4)
	lo := x.Extract(3, 0)
	if !hi.Concat(lo).Eq(x) {
		t.Errorf("concat of extracts is not the original")
	}
	if hi.Width() != 4 || lo.Width() != 4 {
		t.Errorf("extract widths wrong")
	}
	if !x.SignExtend(4).Eq(FromUint64(12, 0xfab)) {
		t.Errorf("sign extend wrong: %s", x.SignExtend(4))
	}
	if !x.ZeroExtend(4).Eq(FromUint64(12, 0x0ab)) {
		t.Errorf("zero extend wrong")
	}
}

func TestRotate(t *testing.T) {
	x := FromUint64(8, 0x81)
	if !x.RolI(1).Eq(FromUint64(8, 0x03)) {
		t.Errorf("rol wrong: %s", x.RolI(1))
	}
	if !x.RorI(1).Eq(FromUint64(8, 0xc0)) {
		t.Errorf("ror wrong: %s", x.RorI(1))
	}
	if !x.RolI(8).Eq(x) {
		t.Errorf("full rotation is not identity")
	}
}
