// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package inter

import "time"

// Interface Solve is a connection to a Solve() running in another
// goroutine, as returned by GoSolvable.GoSolve().
//
// All results have the usual meaning: 1 SAT, -1 UNSAT, 0 unknown.
//
// Once any method other than Pause/Unpause returns a non-zero result,
// the underlying Solve() has completed and the Solve connection must
// no longer be used.
type Solve interface {

	// Test polls whether the solve has completed.  If done is true,
	// result is the result of the solve; otherwise result is 0 and the
	// solve is still running.
	Test() (result int, done bool)

	// Try waits at most d for the solve to complete.  If the solve
	// does not complete within d, it is stopped and Try returns 0.
	Try(d time.Duration) (result int)

	// Stop stops the underlying solve and returns its result: the
	// real result if it completed before Stop took effect, 0
	// otherwise.
	Stop() (result int)

	// Wait waits for the solve to complete and returns its result.
	Wait() (result int)

	// Pause suspends the solving goroutine at its next safe point.  If
	// the solve completed before the pause took effect, Pause returns
	// its result and false; otherwise Pause returns (0, true) and the
	// caller owns the solver until Unpause.
	Pause() (result int, paused bool)

	// Unpause resumes a solve suspended by a successful Pause.
	Unpause()
}
