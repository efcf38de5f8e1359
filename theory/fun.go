// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package theory

import (
	"github.com/matthewsot/bitwuzla/node"
)

// FunSolver refines the abstraction of uninterpreted function
// applications by congruence: two applications of the same function
// whose arguments agree under the current model must agree on their
// result.
type FunSolver struct {
	m       *node.Manager
	applies map[uint64][]node.Term // function id -> applications
	emitted map[uint64]bool
}

// NewFunSolver creates a UF solver over m.
func NewFunSolver(m *node.Manager) *FunSolver {
	return &FunSolver{
		m:       m,
		applies: make(map[uint64][]node.Term),
		emitted: make(map[uint64]bool),
	}
}

// RegisterTerm tracks applications.
func (s *FunSolver) RegisterTerm(t node.Term) {
	if t.Kind() != node.KApply {
		return
	}
	fn := t.Child(0)
	for _, seen := range s.applies[fn.Id()] {
		if seen.Eq(t) {
			return
		}
	}
	s.applies[fn.Id()] = append(s.applies[fn.Id()], t)
}

// Check emits congruence lemmas for violated pairs.
func (s *FunSolver) Check(mv Model) ([]node.Term, error) {
	var lemmas []node.Term
	for _, group := range s.applies {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				l, err := s.checkPair(group[i], group[j], mv)
				if err != nil {
					return nil, err
				}
				if !l.IsNil() {
					lemmas = append(lemmas, l)
				}
			}
		}
	}
	return lemmas, nil
}

func (s *FunSolver) checkPair(a, b node.Term, mv Model) (node.Term, error) {
	m := s.m
	av, aok := mv.Value(a)
	bv, bok := mv.Value(b)
	if !aok || !bok || av.Eq(bv) {
		return node.Term{}, nil
	}
	n := a.NumChildren()
	eqs := make([]node.Term, 0, n-1)
	for i := 1; i < n; i++ {
		x, xok := mv.Value(a.Child(i))
		y, yok := mv.Value(b.Child(i))
		if !xok || !yok || !x.Eq(y) {
			return node.Term{}, nil
		}
		eq, err := m.MkTerm(node.KEqual, []node.Term{a.Child(i), b.Child(i)}, nil)
		if err != nil {
			return node.Term{}, err
		}
		eqs = append(eqs, eq)
	}
	concl, err := m.MkTerm(node.KEqual, []node.Term{a, b}, nil)
	if err != nil {
		return node.Term{}, err
	}
	var l node.Term
	switch len(eqs) {
	case 0:
		l = concl
	case 1:
		l, err = m.MkTerm(node.KImplies, []node.Term{eqs[0], concl}, nil)
	default:
		conj, e := m.MkTerm(node.KAnd, eqs, nil)
		if e != nil {
			return node.Term{}, e
		}
		l, err = m.MkTerm(node.KImplies, []node.Term{conj, concl}, nil)
	}
	if err != nil {
		return node.Term{}, err
	}
	if s.emitted[l.Id()] {
		return node.Term{}, nil
	}
	s.emitted[l.Id()] = true
	return l, nil
}

// FPSolver completes the lazy combination for floating-point: every
// FP term is word-blasted eagerly by the bit-level core, so its
// check is trivial once the BV layer is sound.
type FPSolver struct {
	registered int
}

// NewFPSolver creates the (trivial) FP solver.
func NewFPSolver() *FPSolver { return &FPSolver{} }

// RegisterTerm counts FP terms for statistics.
func (s *FPSolver) RegisterTerm(t node.Term) {
	if t.Sort().IsFP() || t.Sort().IsRM() {
		s.registered++
	}
}

// Check is trivial; word-blasting happened at encoding time.
func (s *FPSolver) Check(Model) ([]node.Term, error) { return nil, nil }
