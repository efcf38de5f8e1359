// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package theory

import (
	"github.com/matthewsot/bitwuzla/node"
)

// ArraySolver tracks reads and writes and lazily instantiates
// read-over-write lemmas:
//
//	(i = j)  =>  select(store(a, j, v), i) = v
//	(i != j) =>  select(store(a, j, v), i) = select(a, i)
//
// plus read congruence over shared base arrays, whenever the current
// model violates them.
type ArraySolver struct {
	m       *node.Manager
	selects []node.Term
	emitted map[uint64]bool
}

// NewArraySolver creates an array solver over m.
func NewArraySolver(m *node.Manager) *ArraySolver {
	return &ArraySolver{m: m, emitted: make(map[uint64]bool)}
}

// RegisterTerm tracks select terms.
func (s *ArraySolver) RegisterTerm(t node.Term) {
	if t.Kind() == node.KSelect {
		s.selects = append(s.selects, t)
	}
}

// Check evaluates every registered select against its store chain.
func (s *ArraySolver) Check(mv Model) ([]node.Term, error) {
	var lemmas []node.Term
	for _, sel := range s.selects {
		ls, err := s.checkSelect(sel, mv)
		if err != nil {
			return nil, err
		}
		lemmas = append(lemmas, ls...)
	}
	ls, err := s.checkCongruence(mv)
	if err != nil {
		return nil, err
	}
	lemmas = append(lemmas, ls...)
	return lemmas, nil
}

func (s *ArraySolver) checkSelect(sel node.Term, mv Model) ([]node.Term, error) {
	m := s.m
	idx := sel.Child(1)
	iv, ok := mv.Value(idx)
	if !ok {
		return nil, nil
	}
	sv, ok := mv.Value(sel)
	if !ok {
		return nil, nil
	}

	arr := sel.Child(0)
	var guards []node.Term
	for {
		switch arr.Kind() {
		case node.KStore:
			j, v := arr.Child(1), arr.Child(2)
			jv, ok := mv.Value(j)
			if !ok {
				return nil, nil
			}
			if iv.Eq(jv) {
				vv, ok := mv.Value(v)
				if !ok {
					return nil, nil
				}
				if sv.Eq(vv) {
					return nil, nil
				}
				eqIdx, err := m.MkTerm(node.KEqual, []node.Term{idx, j}, nil)
				if err != nil {
					return nil, err
				}
				eqVal, err := m.MkTerm(node.KEqual, []node.Term{sel, v}, nil)
				if err != nil {
					return nil, err
				}
				return s.lemma(guards, eqIdx, eqVal)
			}
			// pass over this store under the current model
			neq, err := m.MkTerm(node.KEqual, []node.Term{idx, j}, nil)
			if err != nil {
				return nil, err
			}
			not, err := m.MkTerm(node.KNot, []node.Term{neq}, nil)
			if err != nil {
				return nil, err
			}
			guards = append(guards, not)
			arr = arr.Child(0)
		case node.KConstArray:
			ev, ok := mv.Value(arr.Child(0))
			if !ok {
				return nil, nil
			}
			if sv.Eq(ev) {
				return nil, nil
			}
			eqVal, err := m.MkTerm(node.KEqual, []node.Term{sel, arr.Child(0)}, nil)
			if err != nil {
				return nil, err
			}
			return s.lemma(guards, node.Term{}, eqVal)
		default:
			// base array reached: congruence handles it
			return nil, nil
		}
	}
}

// checkCongruence relates selects on the same base array with equal
// index values.
func (s *ArraySolver) checkCongruence(mv Model) ([]node.Term, error) {
	m := s.m
	var lemmas []node.Term
	byBase := make(map[uint64][]node.Term)
	for _, sel := range s.selects {
		base := sel.Child(0)
		if base.Kind() == node.KStore || base.Kind() == node.KConstArray {
			continue
		}
		byBase[base.Id()] = append(byBase[base.Id()], sel)
	}
	for _, group := range byBase {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				ai, aok := mv.Value(a.Child(1))
				bi, bok := mv.Value(b.Child(1))
				av, avok := mv.Value(a)
				bvv, bvok := mv.Value(b)
				if !aok || !bok || !avok || !bvok {
					continue
				}
				if !ai.Eq(bi) || av.Eq(bvv) {
					continue
				}
				eqIdx, err := m.MkTerm(node.KEqual, []node.Term{a.Child(1), b.Child(1)}, nil)
				if err != nil {
					return nil, err
				}
				eqVal, err := m.MkTerm(node.KEqual, []node.Term{a, b}, nil)
				if err != nil {
					return nil, err
				}
				l, err := s.lemma(nil, eqIdx, eqVal)
				if err != nil {
					return nil, err
				}
				lemmas = append(lemmas, l...)
			}
		}
	}
	return lemmas, nil
}

// lemma builds (=> (and guards... cond) concl), deduplicated.
func (s *ArraySolver) lemma(guards []node.Term, cond, concl node.Term) ([]node.Term, error) {
	m := s.m
	ante := append([]node.Term(nil), guards...)
	if !cond.IsNil() {
		ante = append(ante, cond)
	}
	var l node.Term
	var err error
	switch len(ante) {
	case 0:
		l = concl
	case 1:
		l, err = m.MkTerm(node.KImplies, []node.Term{ante[0], concl}, nil)
	default:
		conj, e := m.MkTerm(node.KAnd, ante, nil)
		if e != nil {
			return nil, e
		}
		l, err = m.MkTerm(node.KImplies, []node.Term{conj, concl}, nil)
	}
	if err != nil {
		return nil, err
	}
	if s.emitted[l.Id()] {
		return nil, nil
	}
	s.emitted[l.Id()] = true
	return []node.Term{l}, nil
}
