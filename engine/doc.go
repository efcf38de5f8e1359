// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package engine ties the solver core together: the SolvingContext
// façade with its assertion stack, preprocessor, backtrack handling
// and option surface, and the SolverEngine that drives the
// configured bit-vector solver with the lazy theory-lemma loop.
package engine
