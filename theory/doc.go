// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package theory implements the lazy theory solvers running under the
// bit-level core: arrays (read-over-write lemmas), uninterpreted
// functions (congruence by abstract-then-refine) and floating-point
// (eagerly word-blasted, so its check is trivial).  Each solver
// reacts to the current SAT-level assignment by emitting lemmas that
// re-enter the assertion stack.
package theory
