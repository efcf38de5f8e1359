// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package blast lowers bit-vector and boolean terms onto the AIG
// layer (logic.C) and from there, via polarity-aware Tseitin
// encoding, into the SAT backend.  Floating-point terms lower through
// the fp word-blaster instantiated over AIG literal lanes, so the
// same circuits serve concrete evaluation and bit-blasting.
//
// Encoding is on-demand and memoised by term id.  Terms outside the
// bit-blastable fragment (arrays, applications, quantifiers) are
// abstracted as fresh inputs; the theory solvers refine the
// abstraction with lemmas.
package blast
