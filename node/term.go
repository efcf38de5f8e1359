// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import (
	"fmt"

	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/fp"
)

// Term is a hash-consed term handle.  Structurally identical terms
// are the same handle; comparison is identity (or Id equality).
type Term struct {
	d *termData
}

type termData struct {
	id      uint64
	kind    Kind
	sort    Sort
	childs  []Term
	indices []uint32

	// payload, set for KValue (one of) and symbols for KConstant /
	// KVariable
	bvVal   *bv.Value
	fpVal   *fp.Value
	rmVal   fp.RM
	hasRM   bool
	boolVal bool
	hasBool bool
	symbol  string

	refs int64
}

// IsNil reports whether t is the zero handle.
func (t Term) IsNil() bool { return t.d == nil }

// Id returns the unique non-zero id of t.
func (t Term) Id() uint64 { return t.d.id }

// Kind returns t's operator tag.
func (t Term) Kind() Kind { return t.d.kind }

// Sort returns t's type.
func (t Term) Sort() Sort { return t.d.sort }

// NumChildren returns the number of children.
func (t Term) NumChildren() int { return len(t.d.childs) }

// Child returns the i'th child.
func (t Term) Child(i int) Term { return t.d.childs[i] }

// Children returns the children; the slice must not be mutated.
func (t Term) Children() []Term { return t.d.childs }

// NumIndices returns the number of integer indices.
func (t Term) NumIndices() int { return len(t.d.indices) }

// Index returns the i'th index.
func (t Term) Index(i int) uint32 { return t.d.indices[i] }

// Indices returns the indices; the slice must not be mutated.
func (t Term) Indices() []uint32 { return t.d.indices }

// Symbol returns the optional symbol, or "" if absent.
func (t Term) Symbol() string { return t.d.symbol }

// IsValue reports whether t is a typed literal.
func (t Term) IsValue() bool { return t.d.kind == KValue }

// IsConst reports whether t is a free first-order constant.
func (t Term) IsConst() bool { return t.d.kind == KConstant }

// IsVar reports whether t is a bound variable.
func (t Term) IsVar() bool { return t.d.kind == KVariable }

// BVValue extracts a bit-vector payload.
func (t Term) BVValue() (bv.Value, bool) {
	if t.d.bvVal == nil {
		return bv.Value{}, false
	}
	return *t.d.bvVal, true
}

// FPValue extracts a floating-point payload.
func (t Term) FPValue() (fp.Value, bool) {
	if t.d.fpVal == nil {
		return fp.Value{}, false
	}
	return *t.d.fpVal, true
}

// RMValue extracts a rounding-mode payload.
func (t Term) RMValue() (fp.RM, bool) { return t.d.rmVal, t.d.hasRM }

// BoolValue extracts a boolean payload.
func (t Term) BoolValue() (bool, bool) { return t.d.boolVal, t.d.hasBool }

// IsTrue and IsFalse match the boolean value literals.
func (t Term) IsTrue() bool  { return t.d != nil && t.d.hasBool && t.d.boolVal }
func (t Term) IsFalse() bool { return t.d != nil && t.d.hasBool && !t.d.boolVal }

// Eq is handle equality.
func (t Term) Eq(o Term) bool { return t.d == o.d }

func (t Term) String() string {
	if t.d == nil {
		return "<nil-term>"
	}
	switch t.d.kind {
	case KConstant:
		if t.d.symbol != "" {
			return t.d.symbol
		}
		return fmt.Sprintf("@bzla.const_%d", t.d.id)
	case KVariable:
		if t.d.symbol != "" {
			return t.d.symbol
		}
		return fmt.Sprintf("@bzla.var_%d", t.d.id)
	case KValue:
		switch {
		case t.d.bvVal != nil:
			return t.d.bvVal.String()
		case t.d.fpVal != nil:
			return fmt.Sprintf("(fp %s %s %s)",
				t.d.fpVal.Sign(), t.d.fpVal.Exp(), t.d.fpVal.Sig())
		case t.d.hasRM:
			return t.d.rmVal.String()
		case t.d.hasBool:
			if t.d.boolVal {
				return "true"
			}
			return "false"
		}
	}
	s := "(" + t.d.kind.String()
	for _, ix := range t.d.indices {
		s += fmt.Sprintf(" %d", ix)
	}
	for _, c := range t.d.childs {
		s += " " + c.String()
	}
	return s + ")"
}
