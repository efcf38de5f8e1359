// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package dimacs implements reading of DIMACS CNF files, the
// interchange format used to feed the pure-SAT layer of the solver
// and the crisp protocol tooling.
//
// The reader is visitor based: the caller supplies a Vis and
// receives the parsed clauses as streams of literals terminated by
// z.LitNull.
package dimacs
