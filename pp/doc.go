// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package pp implements the assertion stack and the preprocessing
// pipeline: assertion-level transformations that run through an
// AssertionView to a fixed point, preserving satisfiability and
// recording enough provenance to map unsat cores back to the
// original assertions.
package pp
