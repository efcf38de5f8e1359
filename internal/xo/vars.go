// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"

	"github.com/matthewsot/bitwuzla/z"
)

// Vars holds per-variable state shared by every component of the
// solver: current assignment, the decision level it was made at, and
// the clause which implied it (CLocNull for a decision or an
// assumption).
type Vars struct {
	Top    z.Var // capacity: indexable range is [0,Top]
	Max    z.Var // highest variable ever added
	Vals   []int8
	Level  []int
	Reasons []CLoc
}

// NewVars creates Vars with capacity for capHint variables.
func NewVars(capHint int) *Vars {
	if capHint < 1 {
		capHint = 1
	}
	vs := &Vars{}
	vs.growToVar(z.Var(capHint))
	return vs
}

func (vs *Vars) growToVar(top z.Var) {
	if top <= vs.Top && vs.Vals != nil {
		return
	}
	w := top + 1
	vals := make([]int8, 2*w)
	copy(vals, vs.Vals)
	vs.Vals = vals

	levels := make([]int, w)
	copy(levels, vs.Level)
	vs.Level = levels

	reasons := make([]CLoc, w)
	for i := range reasons {
		reasons[i] = CLocNull
	}
	copy(reasons, vs.Reasons)
	vs.Reasons = reasons

	vs.Top = top
}

// Set forces m's value to true without touching Level/Reasons,
// for tests and direct unit-clause bookkeeping.
func (vs *Vars) Set(m z.Lit) {
	vs.Vals[m] = 1
	vs.Vals[m.Not()] = -1
}

// Sign returns the current value of m: 1 true, -1 false, 0 unknown.
func (vs *Vars) Sign(m z.Lit) int8 {
	return vs.Vals[m]
}

// Unset clears the assignment of v.
func (vs *Vars) Unset(v z.Var) {
	vs.Vals[v.Pos()] = 0
	vs.Vals[v.Neg()] = 0
	vs.Reasons[v] = CLocNull
	vs.Level[v] = 0
}

func (vs *Vars) Copy() *Vars {
	other := &Vars{
		Top: vs.Top,
		Max: vs.Max,
	}
	other.Vals = append([]int8(nil), vs.Vals...)
	other.Level = append([]int(nil), vs.Level...)
	other.Reasons = append([]CLoc(nil), vs.Reasons...)
	return other
}

func (vs *Vars) readStats(st *Stats) {
	st.Vars = int64(vs.Max)
}

func (vs *Vars) String() string {
	return fmt.Sprintf("Vars{max: %s, top: %s}", vs.Max, vs.Top)
}
