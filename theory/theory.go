// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package theory

import (
	"github.com/matthewsot/bitwuzla/node"
)

// Model is the view of the current SAT-level assignment the theory
// solvers evaluate terms against.
type Model interface {
	// Value returns the value term of t under the current
	// assignment, or false when t has no value yet.
	Value(t node.Term) (node.Term, bool)
}

// Solver is one theory solver in the lazy combination.
type Solver interface {
	// RegisterTerm offers a term to the solver; the solver tracks
	// the ones it owns.
	RegisterTerm(t node.Term)

	// Check inspects the current model and returns violated-instance
	// lemmas, or nil when the model is consistent with the theory.
	Check(mv Model) ([]node.Term, error)
}

// Combiner fans registration and checking out to the registered
// solvers in order.
type Combiner struct {
	Solvers []Solver
}

// NewCombiner wires the default solver set.
func NewCombiner(m *node.Manager) *Combiner {
	return &Combiner{Solvers: []Solver{
		NewArraySolver(m),
		NewFunSolver(m),
		NewFPSolver(),
	}}
}

// RegisterAll walks t and registers every sub-term with each solver.
func (c *Combiner) RegisterAll(t node.Term) {
	seen := make(map[uint64]bool)
	var walk func(node.Term)
	walk = func(u node.Term) {
		if seen[u.Id()] {
			return
		}
		seen[u.Id()] = true
		for _, s := range c.Solvers {
			s.RegisterTerm(u)
		}
		for _, ch := range u.Children() {
			walk(ch)
		}
	}
	walk(t)
}

// Check runs every solver and collects their lemmas.
func (c *Combiner) Check(mv Model) ([]node.Term, error) {
	var lemmas []node.Term
	for _, s := range c.Solvers {
		ls, err := s.Check(mv)
		if err != nil {
			return nil, err
		}
		lemmas = append(lemmas, ls...)
	}
	return lemmas, nil
}
