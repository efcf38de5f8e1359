// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"
	"time"
)

// Stats is a cumulative snapshot of solver activity.  Cumulative
// counters (propagations, conflicts, restarts, ...) are added to the
// snapshot and reset in the solver on each ReadStats call; gauges
// (variable and clause counts, pin depths) are overwritten.
type Stats struct {
	Start time.Time
	Dur   time.Duration

	Restarts    int64
	Sat         int64
	Unsat       int64
	Ended       int64
	Assumptions int64
	Failed      int64

	Pinned    int
	IncPinned int

	Vars    int64
	Clauses int64
	Learnts int64

	Props     int64
	Guesses   int64
	Conflicts int64
	Learned   int64
	LitsSeen  int64
}

// NewStats creates an empty snapshot stamped with the current time.
func NewStats() *Stats {
	return &Stats{Start: time.Now()}
}

func (st *Stats) String() string {
	secs := st.Dur.Seconds()
	if secs == 0 {
		secs = 1e-9
	}
	return fmt.Sprintf(
		"c %s vars=%d cls=%d learnts=%d props=%d (%.0f/s) guesses=%d confls=%d restarts=%d sat=%d unsat=%d ended=%d",
		st.Dur, st.Vars, st.Clauses, st.Learnts, st.Props,
		float64(st.Props)/secs, st.Guesses, st.Conflicts, st.Restarts,
		st.Sat, st.Unsat, st.Ended)
}
