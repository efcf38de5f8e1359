// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package bv implements concrete, arbitrary-width two's-complement
// bit-vector values and the SMT-LIB bit-vector operations over them —
// arithmetic, bitwise ops, comparisons, extract/concat/extend,
// rotations, signed/unsigned overflow predicates, and conversion
// to/from decimal, hex and binary strings and native integers.
//
// A Value stores its magnitude in a math/big.Int and carries its
// width explicitly; every operation re-masks (and, where the op is
// signed, sign-extends) its result back to the operand width, the way
// the AIG/CNF layers need bit-exact semantics regardless of what
// *math/big* itself would compute over unbounded integers.
package bv
