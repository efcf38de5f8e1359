// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package prop implements the propagation-based local-search solver
// for quantifier-free bit-vector formulas without arrays, functions
// or floating-point: a current concrete assignment is repaired by
// walking falsified assertions down to an input and moving it to an
// inverse or consistent value, within configured move budgets.
package prop
