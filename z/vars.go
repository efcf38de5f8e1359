// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package z

import "fmt"

// Vars maintains the mapping between "outer" literals (the ones a
// caller of the bit-blast solver names its terms with) and "inner"
// literals (the ones actually handed to the SAT backend), plus the
// resulting model assignment once a Solve call returns SAT.
//
// Bit-blasting allocates a fresh inner variable per AIG gate; Vars lets
// the solver free inner variables whose gates become dead after
// incremental simplification without perturbing outer numbering.
type Vars struct {
	Max  Var     // maximum variable ever issued
	Vals []int8  // Vals[lit] in {-1,0,1}: false, unknown, true

	o2i map[Lit]Lit
	i2o map[Lit]Lit
	next Var
	free []Var
}

// NewVars creates an empty outer/inner mapping.
func NewVars() *Vars {
	return &Vars{
		Vals: make([]int8, 2),
		o2i:  make(map[Lit]Lit),
		i2o:  make(map[Lit]Lit),
		next: 2,
	}
}

// Inner allocates a fresh inner-only variable, not associated with any
// outer literal, and returns its positive literal.
func (vs *Vars) Inner() Lit {
	v := vs.allocVar()
	return v.Pos()
}

// Free releases an inner literal previously returned by Inner, making
// its variable available for reuse.
func (vs *Vars) Free(m Lit) {
	v := m.Var()
	vs.free = append(vs.free, v)
	delete(vs.i2o, v.Pos())
	delete(vs.i2o, v.Neg())
}

// ToInner maps an outer literal to its inner literal, allocating one on
// first use.  The polarity of the outer literal is preserved.
func (vs *Vars) ToInner(outer Lit) Lit {
	if inner, ok := vs.o2i[outer]; ok {
		return inner
	}
	if inner, ok := vs.o2i[outer.Not()]; ok {
		negInner := inner.Not()
		vs.o2i[outer] = negInner
		return negInner
	}
	v := vs.allocVar()
	inner := v.Pos()
	vs.o2i[outer] = inner
	vs.i2o[inner] = outer
	vs.o2i[outer.Not()] = inner.Not()
	vs.i2o[inner.Not()] = outer.Not()
	return inner
}

// ToOuter maps an inner literal back to the outer literal which
// generated it, or LitNull if inner is not associated with an outer
// literal (e.g. an Inner()-allocated CNF helper variable).
func (vs *Vars) ToOuter(inner Lit) Lit {
	if outer, ok := vs.i2o[inner]; ok {
		return outer
	}
	return LitNull
}

func (vs *Vars) allocVar() Var {
	if n := len(vs.free); n > 0 {
		v := vs.free[n-1]
		vs.free = vs.free[:n-1]
		return v
	}
	v := vs.next
	vs.next++
	if v > vs.Max {
		vs.Max = v
	}
	for int(v)*2+2 > len(vs.Vals) {
		vs.Vals = append(vs.Vals, 0, 0)
	}
	return v
}

// Grow ensures the Vals table can record an assignment for every
// literal of v, growing it with unknown (0) entries if needed.
func (vs *Vars) Grow(v Var) {
	for int(v)*2+2 > len(vs.Vals) {
		vs.Vals = append(vs.Vals, 0, 0)
	}
	if v > vs.Max {
		vs.Max = v
	}
}

func (vs *Vars) String() string {
	return fmt.Sprintf("Vars{max: %s, outer: %d}", vs.Max, len(vs.o2i)/2)
}
