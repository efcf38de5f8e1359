// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package z provides the low level literal encoding shared by the AIG,
// CNF and SAT layers: a packed (variable, polarity) literal and the
// supporting bookkeeping used by bit-blasting to allocate fresh CNF
// variables for term encodings.
package z

import "fmt"

// Var is a SAT/AIG variable id.  Variable 0 is reserved and never
// issued to callers; Var 1 is reserved internally for the constant
// true/false literal pair used by the AIG layer.
type Var uint32

// VarNull is the zero value of Var, never a valid variable.
const VarNull = Var(0)

// Pos returns the positive literal of v.
func (v Var) Pos() Lit {
	return Lit(v << 1)
}

// Neg returns the negative literal of v.
func (v Var) Neg() Lit {
	return Lit(v<<1) ^ 1
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Lit is a literal: a variable together with a polarity bit in the low
// order bit.  Lits 0 and 1 belong to the reserved Var 0; Lit 0 doubles
// as the clause terminator LitNull.
type Lit uint32

// LitNull terminates a clause passed to Adder.Add.
const LitNull = Lit(0)

// Var returns the underlying variable of m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// IsPos is true iff m is a positive literal.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Sign returns 1 for a positive literal and -1 for a negative one.
func (m Lit) Sign() int {
	if m.IsPos() {
		return 1
	}
	return -1
}

// Dimacs returns the signed DIMACS integer for m.
func (m Lit) Dimacs() int {
	d := int(m.Var())
	if !m.IsPos() {
		d = -d
	}
	return d
}

// Dimacs2Lit converts a non-zero signed DIMACS integer into a Lit.
func Dimacs2Lit(d int) Lit {
	if d < 0 {
		return Var(-d).Neg()
	}
	return Var(d).Pos()
}

func (m Lit) String() string {
	if m.IsPos() {
		return fmt.Sprintf("+%s", m.Var())
	}
	return fmt.Sprintf("-%s", m.Var())
}
