// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import (
	"testing"

	"github.com/matthewsot/bitwuzla/bv"
)

func f8() Format { return Format{E: 4, S: 4} }

func mustReal(t *testing.T, f Format, rm RM, s string) Value {
	t.Helper()
	v, err := FromReal(f, rm, s)
	if err != nil {
		t.Fatalf("FromReal(%q): %s", s, err)
	}
	return v
}

func TestSpecialClassification(t *testing.T) {
	f := f8()
	if !NaN(f).IsNaN() {
		t.Errorf("NaN is not NaN")
	}
	if !Inf(f, false).IsInf() || Inf(f, true).IsPositive() {
		t.Errorf("infinity classification wrong")
	}
	if !Zero(f, true).IsZero() || !Zero(f, true).IsNegative() {
		t.Errorf("negative zero classification wrong")
	}
	one := mustReal(t, f, RNE, "1")
	if !one.IsNormal() || one.IsSubnormal() {
		t.Errorf("1.0 is not normal")
	}
}

func TestNaNBehaviours(t *testing.T) {
	f := f8()
	nan := NaN(f)
	one := mustReal(t, f, RNE, "1")
	for _, r := range []Value{
		nan.Add(RNE, one), one.Add(RNE, nan), nan.Mul(RNE, nan),
		nan.Div(RNE, one), nan.Sqrt(RNE), nan.Rem(one), nan.Neg(), nan.Abs(),
	} {
		if !r.IsNaN() {
			t.Errorf("operation on NaN did not return NaN")
		}
	}
	if nan.FPEq(nan) || nan.Lt(one) || nan.Leq(one) || one.Gt(nan) || one.Geq(nan) {
		t.Errorf("comparison against NaN is not false")
	}
	if !nan.IsNaN() {
		t.Errorf("isNaN(NaN) is not true")
	}
}

func TestRounding(t *testing.T) {
	f := f8()
	// 1.0625 needs 5 significand bits; at S=4 it rounds to 1.0 (RNE,
	// ties to even) or 1.125 (RTP)
	down := mustReal(t, f, RNE, "1.0625")
	up := mustReal(t, f, RTP, "1.0625")
	oneV := mustReal(t, f, RNE, "1")
	eighth := mustReal(t, f, RNE, "1.125")
	if !down.Eq(oneV) {
		t.Errorf("RNE tie did not round to even: %s", down.Bits())
	}
	if !up.Eq(eighth) {
		t.Errorf("RTP did not round up: %s", up.Bits())
	}
	neg := mustReal(t, f, RTN, "-1.0625")
	if !neg.Eq(eighth.Neg()) {
		t.Errorf("RTN on negative did not round away: %s", neg.Bits())
	}
}

func TestOverflowRounding(t *testing.T) {
	f := f8()
	huge := mustReal(t, f, RNE, "1000000")
	if !huge.IsInf() {
		t.Errorf("overflow under RNE is not infinity")
	}
	hugeZ := mustReal(t, f, RTZ, "1000000")
	if hugeZ.IsInf() || !hugeZ.Eq(maxFinite(f, false)) {
		t.Errorf("overflow under RTZ is not max finite")
	}
}

func TestZeroSigns(t *testing.T) {
	f := f8()
	one := mustReal(t, f, RNE, "1")
	cancel := one.Sub(RNE, one)
	if !cancel.IsZero() || cancel.IsNegative() {
		t.Errorf("x - x is not +0 under RNE")
	}
	cancelRTN := one.Sub(RTN, one)
	if !cancelRTN.IsZero() || !cancelRTN.IsNegative() {
		t.Errorf("x - x is not -0 under RTN")
	}
	if !Zero(f, true).Add(RNE, Zero(f, true)).IsNegative() {
		t.Errorf("(-0) + (-0) is not -0")
	}
}

func TestMinMaxZeros(t *testing.T) {
	f := f8()
	pz, nz := Zero(f, false), Zero(f, true)
	if !pz.Min(nz).IsNegative() {
		t.Errorf("min(+0, -0) is not -0")
	}
	if pz.Max(nz).IsNegative() {
		t.Errorf("max(+0, -0) is not +0")
	}
	nan := NaN(f)
	one := mustReal(t, f, RNE, "1")
	if !nan.Min(one).Eq(one) || !one.Max(nan).Eq(one) {
		t.Errorf("min/max with a single NaN does not return the other operand")
	}
}

func TestConversions(t *testing.T) {
	f := f8()
	v := FromUbv(f, RNE, bv.FromUint64(8, 6))
	six := mustReal(t, f, RNE, "6")
	if !v.Eq(six) {
		t.Errorf("FromUbv(6) != 6.0")
	}
	back := six.ToUbv(8, RNE)
	if back.Uint64() != 6 {
		t.Errorf("ToUbv(6.0) = %d", back.Uint64())
	}
	m3 := FromSbv(f, RNE, bv.FromInt64(8, -3))
	if !m3.Eq(mustReal(t, f, RNE, "-3")) {
		t.Errorf("FromSbv(-3) != -3.0")
	}
	if m3.ToSbv(8, RNE).Int64() != -3 {
		t.Errorf("ToSbv(-3.0) wrong")
	}
	if !NaN(f).ToUbv(8, RNE).IsZero() {
		t.Errorf("ToUbv(NaN) is not the canonical zero")
	}
}

// TestBlasterAgreesWithValues drives the word-blaster over concrete
// lanes and cross-checks every result against the rational-arithmetic
// path.
func TestBlasterAgreesWithValues(t *testing.T) {
	f := Format{E: 3, S: 3}
	bl := NewBlaster[bv.Value](f, ValueOps{})

	// all 64 encodings of the tiny format
	var vals []Value
	for i := uint64(0); i < 1<<f.Width(); i++ {
		v, _ := FromIEEE(f, bv.FromUint64(f.Width(), i))
		vals = append(vals, v)
	}
	norm := func(v Value) bv.Value {
		if v.IsNaN() {
			return NaN(f).Bits()
		}
		return v.Bits()
	}
	for _, rm := range []RM{RNE, RNA, RTP, RTN, RTZ} {
		for _, x := range vals {
			for _, y := range vals {
				got := bl.Add(rm, x.Bits(), y.Bits())
				want := norm(x.Add(rm, y))
				if !got.Eq(want) {
					t.Fatalf("add %s %s %s: blaster %s, values %s",
						rm, x.Bits(), y.Bits(), got, want)
				}
				got = bl.Mul(rm, x.Bits(), y.Bits())
				want = norm(x.Mul(rm, y))
				if !got.Eq(want) {
					t.Fatalf("mul %s %s %s: blaster %s, values %s",
						rm, x.Bits(), y.Bits(), got, want)
				}
				got = bl.Div(rm, x.Bits(), y.Bits())
				want = norm(x.Div(rm, y))
				if !got.Eq(want) {
					t.Fatalf("div %s %s %s: blaster %s, values %s",
						rm, x.Bits(), y.Bits(), got, want)
				}
			}
			got := bl.Sqrt(rm, x.Bits())
			want := norm(x.Sqrt(rm))
			if !got.Eq(want) {
				t.Fatalf("sqrt %s %s: blaster %s, values %s", rm, x.Bits(), got, want)
			}
			got = bl.Rti(rm, x.Bits())
			want = norm(x.Rti(rm))
			if !got.Eq(want) {
				t.Fatalf("rti %s %s: blaster %s, values %s", rm, x.Bits(), got, want)
			}
		}
	}
	// comparisons ignore the rounding mode
	for _, x := range vals {
		for _, y := range vals {
			if (bl.Lt(x.Bits(), y.Bits()).Bit(0)) != x.Lt(y) {
				t.Fatalf("lt %s %s disagrees", x.Bits(), y.Bits())
			}
			if (bl.FPEq(x.Bits(), y.Bits()).Bit(0)) != x.FPEq(y) {
				t.Fatalf("eq %s %s disagrees", x.Bits(), y.Bits())
			}
		}
	}
}
