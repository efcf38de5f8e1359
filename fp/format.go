// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package fp

import "github.com/pkg/errors"

// Format identifies an IEEE-754 binary format by its exponent width E
// and significand width S.  S counts the implicit leading bit, so
// binary32 is Format{8, 24}.
type Format struct {
	E uint32
	S uint32
}

// NewFormat validates and returns the format (e, s); both widths must
// be at least 2.
func NewFormat(e, s uint32) (Format, error) {
	if e < 2 || s < 2 {
		return Format{}, errors.Errorf("InvalidSize: floating-point format (%d, %d), both widths must be >= 2", e, s)
	}
	return Format{E: e, S: s}, nil
}

// Width returns the total encoding width e + s.
func (f Format) Width() uint32 { return f.E + f.S }

// Bias returns the exponent bias 2^(e-1) - 1.
func (f Format) Bias() int64 { return (1 << (f.E - 1)) - 1 }

// EMax returns the maximal unbiased exponent of a normal number.
func (f Format) EMax() int64 { return f.Bias() }

// EMin returns the minimal unbiased exponent of a normal number.
func (f Format) EMin() int64 { return 1 - f.Bias() }
