// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package prop

import (
	"math/big"
	"math/rand"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
)

// PathSel selects how the walk descends through a falsified
// assertion.
type PathSel int

const (
	// Essential follows a child whose change can flip the parent.
	Essential PathSel = iota
	// Random picks a child uniformly.
	Random
)

// Options bound and bias the search.
type Options struct {
	NProps              uint64
	NUpdates            uint64
	PathSel             PathSel
	ProbPickInvValue    float64
	ProbPickRandomInput float64
	ConstBits           bool
	IneqBounds          bool
	Seed                int64
}

// DefaultOptions mirrors the engine's defaults.
func DefaultOptions() Options {
	return Options{
		PathSel:          Essential,
		ProbPickInvValue: 0.99,
	}
}

// Solver is a propagation-based local-search solver over concrete
// bit-vectors.
type Solver struct {
	m    *node.Manager
	opts Options
	rng  *rand.Rand
	log  logr.Logger

	asserts []node.Term
	consts  []node.Term
	assign  map[uint64]bv.Value
	bassign map[uint64]bool

	// fixed bits inferred from top-level equalities (const_bits)
	fixedMask map[uint64]bv.Value
	fixedVal  map[uint64]bv.Value

	props   uint64
	updates uint64

	terminate func() bool
}

// New creates a solver with the given options.
func New(m *node.Manager, opts Options, log logr.Logger) *Solver {
	return &Solver{
		m:         m,
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		log:       log,
		assign:    make(map[uint64]bv.Value),
		bassign:   make(map[uint64]bool),
		fixedMask: make(map[uint64]bv.Value),
		fixedVal:  make(map[uint64]bv.Value),
	}
}

// SetTerminate installs the advisory termination hook.
func (s *Solver) SetTerminate(f func() bool) { s.terminate = f }

// Assert adds a Bool-sorted assertion.
func (s *Solver) Assert(t node.Term) {
	s.asserts = append(s.asserts, t)
	s.consts = node.FreeConstants(t, s.consts)
	s.consts = dedupTerms(s.consts)
}

// Supports reports whether t lies in the fragment the solver
// handles: quantifier-free BV and Bool.
func Supports(t node.Term) bool {
	ok := true
	seen := make(map[uint64]bool)
	var walk func(node.Term)
	walk = func(u node.Term) {
		if !ok || seen[u.Id()] {
			return
		}
		seen[u.Id()] = true
		if u.Kind().IsBinder() || u.Kind() == node.KApply ||
			u.Kind() == node.KSelect || u.Kind() == node.KStore ||
			u.Kind() == node.KConstArray {
			ok = false
			return
		}
		srt := u.Sort()
		if !srt.IsBool() && !srt.IsBV() {
			ok = false
			return
		}
		for _, c := range u.Children() {
			walk(c)
		}
	}
	walk(t)
	return ok
}

// Solve runs the search: 1 SAT, -1 UNSAT (trivially false input),
// 0 on budget exhaustion or termination.
func (s *Solver) Solve() int {
	for _, a := range s.asserts {
		if a.IsFalse() {
			return -1
		}
	}
	if s.opts.ConstBits {
		s.inferConstBits()
	}
	s.initAssign()

	for {
		if s.terminate != nil && s.terminate() {
			return 0
		}
		if s.opts.NProps > 0 && s.props >= s.opts.NProps {
			return 0
		}
		if s.opts.NUpdates > 0 && s.updates >= s.opts.NUpdates {
			return 0
		}
		falsified := s.pickFalsified()
		if falsified.IsNil() {
			return 1
		}
		s.repair(falsified)
	}
}

// Value returns the model value of a BV constant after SAT.
func (s *Solver) Value(c node.Term) (bv.Value, bool) {
	v, ok := s.assign[c.Id()]
	return v, ok
}

// BoolValue returns the model value of a Bool constant after SAT.
func (s *Solver) BoolValue(c node.Term) (bool, bool) {
	v, ok := s.bassign[c.Id()]
	return v, ok
}

func (s *Solver) initAssign() {
	for _, c := range s.consts {
		if _, done := s.assign[c.Id()]; done {
			continue
		}
		if _, done := s.bassign[c.Id()]; done {
			continue
		}
		if c.Sort().IsBool() {
			s.bassign[c.Id()] = false
			continue
		}
		w := c.Sort().BVWidth()
		v := bv.Zero(w)
		if mask, ok := s.fixedMask[c.Id()]; ok {
			v = s.fixedVal[c.Id()].And(mask)
		}
		s.assign[c.Id()] = v
	}
}

// inferConstBits fixes bits implied by top-level equalities with
// values.
func (s *Solver) inferConstBits() {
	for _, a := range s.asserts {
		if a.Kind() != node.KEqual {
			continue
		}
		x, y := a.Child(0), a.Child(1)
		if !x.IsConst() {
			x, y = y, x
		}
		v, ok := y.BVValue()
		if !x.IsConst() || !ok {
			continue
		}
		s.fixedMask[x.Id()] = bv.Ones(v.Width())
		s.fixedVal[x.Id()] = v
	}
}

func (s *Solver) pickFalsified() node.Term {
	var open []node.Term
	for _, a := range s.asserts {
		if !s.evalBool(a) {
			open = append(open, a)
		}
	}
	if len(open) == 0 {
		return node.Term{}
	}
	return open[s.rng.Intn(len(open))]
}

// repair walks one falsified assertion down to an input and moves it.
func (s *Solver) repair(root node.Term) {
	t := root
	// target value for t; the root must become true
	target := s.m.True()
	for {
		s.props++
		if t.IsConst() {
			s.move(t, target)
			return
		}
		if t.NumChildren() == 0 {
			// value leaf: nothing movable on this path
			return
		}
		ci := s.selectChild(t, target)
		if ci < 0 {
			return
		}
		child := t.Child(ci)
		var next node.Term
		if s.rng.Float64() < s.opts.ProbPickInvValue {
			next = s.inverseValue(t, ci, target)
		}
		if next.IsNil() {
			next = s.consistentValue(child)
		}
		if s.opts.ProbPickRandomInput > 0 && s.rng.Float64() < s.opts.ProbPickRandomInput {
			c := s.consts[s.rng.Intn(len(s.consts))]
			s.move(c, s.consistentValue(c))
			return
		}
		t = child
		target = next
	}
}

func (s *Solver) move(c node.Term, val node.Term) {
	if val.IsNil() {
		return
	}
	s.updates++
	if c.Sort().IsBool() {
		b, _ := val.BoolValue()
		s.bassign[c.Id()] = b
		return
	}
	v, ok := val.BVValue()
	if !ok {
		return
	}
	if mask, fixed := s.fixedMask[c.Id()]; fixed {
		v = v.And(mask.Not()).Or(s.fixedVal[c.Id()].And(mask))
	}
	s.assign[c.Id()] = v
}

// selectChild picks the child to follow.
func (s *Solver) selectChild(t node.Term, target node.Term) int {
	n := t.NumChildren()
	movable := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if hasInput(t.Child(i)) {
			movable = append(movable, i)
		}
	}
	if len(movable) == 0 {
		return -1
	}
	if s.opts.PathSel == Random {
		return movable[s.rng.Intn(len(movable))]
	}
	// essential: prefer a child for which an inverse value exists
	for _, i := range movable {
		if !s.inverseValue(t, i, target).IsNil() {
			return i
		}
	}
	return movable[s.rng.Intn(len(movable))]
}

func hasInput(t node.Term) bool {
	if t.IsConst() {
		return true
	}
	for _, c := range t.Children() {
		if hasInput(c) {
			return true
		}
	}
	return false
}

// consistentValue returns a uniformly random value of the child's
// sort; no inequality bounds are applied, whatever IneqBounds says.
func (s *Solver) consistentValue(c node.Term) node.Term {
	if c.Sort().IsBool() {
		return s.m.MkBoolValue(s.rng.Intn(2) == 1)
	}
	w := c.Sort().BVWidth()
	n := new(big.Int).Rand(s.rng, new(big.Int).Lsh(big.NewInt(1), uint(w)))
	return s.m.MkBVValue(bv.FromBigInt(w, n))
}

// eval computes the concrete value of t under the current
// assignment.
func (s *Solver) eval(t node.Term) node.Term {
	if t.IsValue() {
		return t
	}
	if t.IsConst() {
		if t.Sort().IsBool() {
			return s.m.MkBoolValue(s.bassign[t.Id()])
		}
		return s.m.MkBVValue(s.assign[t.Id()])
	}
	cs := make([]node.Term, t.NumChildren())
	for i, c := range t.Children() {
		cs[i] = s.eval(c)
	}
	built, err := s.m.MkTerm(t.Kind(), cs, t.Indices())
	if err != nil {
		return node.Term{}
	}
	v, ok := rw.EvalValue(s.m, built)
	if !ok {
		return node.Term{}
	}
	return v
}

func (s *Solver) evalBool(t node.Term) bool {
	v := s.eval(t)
	if v.IsNil() {
		return false
	}
	b, _ := v.BoolValue()
	return b
}

func dedupTerms(ts []node.Term) []node.Term {
	seen := make(map[uint64]bool, len(ts))
	out := ts[:0]
	for _, t := range ts {
		if seen[t.Id()] {
			continue
		}
		seen[t.Id()] = true
		out = append(out, t)
	}
	return out
}
