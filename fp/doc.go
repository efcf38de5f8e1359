// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package fp implements IEEE-754 floating-point values parameterised
// by exponent and significand widths, rounding of real and rational
// inputs, and a word-blaster that lowers floating-point operations to
// bit-vector circuits.
//
// The word-blaster is written once, generic over the Ops interface,
// and instantiated twice: over concrete bv.Value for evaluation and
// over symbolic terms for bit-blasting.  Both instantiations compute
// the same IEEE results bit for bit.
package fp
