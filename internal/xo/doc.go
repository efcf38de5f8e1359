// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package xo is the built-in CDCL SAT engine behind the Backend in
// the root package: clause database, assignment trail with unit
// propagation, activity-based decision heuristic, first-UIP conflict
// analysis, Luby restarts, assumptions with failed-assumption
// extraction, test scopes and activation literals for incremental
// use.
//
// xo is internal; external code talks to it through the root
// package's Backend and the inter interfaces.
package xo
