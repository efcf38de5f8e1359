// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package gen generates bit-vector SMT instances for tests and
// fuzzing: seeded random terms and formulas over a fixed set of
// constants, and structured families (pigeonhole) with known
// satisfiability.
package gen
