// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package rw implements the term rewriter: normalising local rewrites
// dispatched by node kind through a kind-indexed rule table, with a
// per-rewriter cache.  Rewriting is a pure function of the input term
// and the rewrite level; it allocates no symbols and touches no
// assertions.
//
// Levels: 0 is the identity; 1 adds constant folding, idempotence,
// identity and absorption elements and trivial ITE collapse; 2 adds
// local normalisation (AC operand sorting by id, extract over concat,
// arithmetic simplification).
package rw
