// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package logic

import "github.com/matthewsot/bitwuzla/z"

// SType describes the type of a node in a sequential circuit.
type SType int

const (
	SConst SType = iota
	SInput
	SLatch
	SAnd
)

// Type S represents a sequential circuit: a combinational circuit
// plus latches.  A latch node stores its initial value in the first
// input slot (z.LitNull for an uninitialized latch) and its next-state
// function in the second.
type S struct {
	C
	// Latches holds the positive literal of every latch in creation
	// order.
	Latches []z.Lit

	isLatch []bool
}

// NewS creates a new sequential circuit.
func NewS() *S {
	s := &S{}
	initC(&s.C, 128)
	return s
}

// NewSCap creates a new sequential circuit with initial capacity
// capHint.
func NewSCap(capHint int) *S {
	s := &S{}
	initC(&s.C, capHint)
	return s
}

// Latch creates a new latch with initial value init, which must be
// s.F, s.T, or z.LitNull for an unconstrained initial value.
func (s *S) Latch(init z.Lit) z.Lit {
	if init != s.F && init != s.T && init != z.LitNull {
		panic("latch init must be constant or LitNull")
	}
	n, id := s.newNode()
	n.a = init
	n.b = z.LitNull
	m := z.Var(id).Pos()
	s.Latches = append(s.Latches, m)
	s.markLatch(m.Var())
	return m
}

// SetNext sets the next-state function of latch m to nxt.
func (s *S) SetNext(m, nxt z.Lit) {
	v := m.Var()
	if !s.latchAt(v) {
		panic("SetNext on non-latch")
	}
	if !m.IsPos() {
		nxt = nxt.Not()
	}
	s.nodes[v].b = nxt
}

// Next returns the next-state function of latch m, or z.LitNull if it
// was never set.
func (s *S) Next(m z.Lit) z.Lit {
	v := m.Var()
	if !s.latchAt(v) {
		panic("Next on non-latch")
	}
	nxt := s.nodes[v].b
	if !m.IsPos() && nxt != z.LitNull {
		nxt = nxt.Not()
	}
	return nxt
}

// Init returns the initial value of latch m: s.F, s.T, or z.LitNull.
func (s *S) Init(m z.Lit) z.Lit {
	v := m.Var()
	if !s.latchAt(v) {
		panic("Init on non-latch")
	}
	ini := s.nodes[v].a
	if !m.IsPos() && ini != z.LitNull {
		ini = ini.Not()
	}
	return ini
}

// Type returns the type of m's node.
func (s *S) Type(m z.Lit) SType {
	v := m.Var()
	if v <= 1 {
		return SConst
	}
	if s.latchAt(v) {
		return SLatch
	}
	n := s.nodes[v]
	if n.a == z.LitNull && n.b == z.LitNull {
		return SInput
	}
	return SAnd
}

// Copy makes a deep copy of s.
func (s *S) Copy() *S {
	other := &S{}
	other.C.nodes = append([]node(nil), s.C.nodes...)
	other.C.strash = append([]uint32(nil), s.C.strash...)
	other.C.F = s.C.F
	other.C.T = s.C.T
	other.C.buf = append([]z.Lit(nil), s.C.buf...)
	other.C.asserts = append([]z.Lit(nil), s.C.asserts...)
	other.Latches = append([]z.Lit(nil), s.Latches...)
	other.isLatch = append([]bool(nil), s.isLatch...)
	return other
}

func (s *S) markLatch(v z.Var) {
	for int(v) >= len(s.isLatch) {
		s.isLatch = append(s.isLatch, false)
	}
	s.isLatch[v] = true
}

func (s *S) latchAt(v z.Var) bool {
	return int(v) < len(s.isLatch) && s.isLatch[v]
}
