// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import "github.com/pkg/errors"

// RM is an IEEE-754 rounding mode.
type RM uint8

const (
	// RNE rounds to nearest, ties to even.
	RNE RM = iota
	// RNA rounds to nearest, ties away from zero.
	RNA
	// RTP rounds toward positive infinity.
	RTP
	// RTN rounds toward negative infinity.
	RTN
	// RTZ rounds toward zero.
	RTZ
)

var rmNames = [...]string{"RNE", "RNA", "RTP", "RTN", "RTZ"}

func (rm RM) String() string {
	if int(rm) < len(rmNames) {
		return rmNames[rm]
	}
	return "RM?"
}

// SMTLIB returns the SMT-LIB v2 name of rm.
func (rm RM) SMTLIB() string {
	switch rm {
	case RNE:
		return "roundNearestTiesToEven"
	case RNA:
		return "roundNearestTiesToAway"
	case RTP:
		return "roundTowardPositive"
	case RTN:
		return "roundTowardNegative"
	case RTZ:
		return "roundTowardZero"
	}
	return "RM?"
}

// ParseRM parses a rounding mode from its short or SMT-LIB name.
func ParseRM(s string) (RM, error) {
	for i, n := range rmNames {
		if s == n {
			return RM(i), nil
		}
	}
	for rm := RNE; rm <= RTZ; rm++ {
		if s == rm.SMTLIB() {
			return rm, nil
		}
	}
	return RNE, errors.Errorf("InvalidValue: not a rounding mode: %q", s)
}
