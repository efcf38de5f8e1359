// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/blast"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/inter"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/pp"
	"github.com/matthewsot/bitwuzla/prop"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/matthewsot/bitwuzla/theory"
	"github.com/matthewsot/bitwuzla/z"
)

// Result of a satisfiability check.
type Result int

const (
	Unsat   Result = -1
	Unknown Result = 0
	Sat     Result = 1
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

func bvZero(w uint32) bv.Value { return bv.Zero(w) }

// SolverEngine runs the configured BV solver over the preprocessed
// assertions, looping theory lemmas back until saturation.
type SolverEngine struct {
	m     *node.Manager
	opts  Options
	rw    *rw.Rewriter
	log   logr.Logger
	stats *Stats

	terminate func() bool

	// per-solve state
	model      *ModelAssembler
	failedLits []node.Term
	core       []node.Term
}

// NewSolverEngine creates an engine.
func NewSolverEngine(m *node.Manager, opts Options, r *rw.Rewriter, log logr.Logger, st *Stats) *SolverEngine {
	return &SolverEngine{m: m, opts: opts, rw: r, log: log, stats: st}
}

// SetTerminate installs the advisory terminator.
func (e *SolverEngine) SetTerminate(f func() bool) { e.terminate = f }

// Model returns the assembler of the last SAT result.
func (e *SolverEngine) Model() *ModelAssembler { return e.model }

// FailedAssumptions returns the failed assumptions of the last UNSAT
// result.
func (e *SolverEngine) FailedAssumptions() []node.Term { return e.failedLits }

// Core returns the unsat core (original assertion terms) of the last
// UNSAT result, when cores are enabled.
func (e *SolverEngine) Core() []node.Term { return e.core }

func (e *SolverEngine) terminated() bool {
	return e.terminate != nil && e.terminate()
}

// Solve checks the stack under the given assumptions.
func (e *SolverEngine) Solve(stack *pp.Stack, assumptions []node.Term) (Result, error) {
	e.model = nil
	e.failedLits = nil
	e.core = nil

	if e.opts.BVSolver == BVSolverProp || e.opts.BVSolver == BVSolverPreProp {
		if len(assumptions) == 0 && !e.opts.ProduceUnsatCores && propSupported(stack) {
			res := e.solveProp(stack)
			if res != Unknown || e.opts.BVSolver == BVSolverProp {
				return res, nil
			}
			// preprop falls through to bit-blasting on unknown
		} else if e.opts.BVSolver == BVSolverProp {
			return Unknown, Raise("Unsupported",
				"the propagation solver handles quantifier-free bit-vectors without assumptions or cores")
		}
	}
	return e.solveBitblast(stack, assumptions)
}

func propSupported(stack *pp.Stack) bool {
	for _, t := range stack.Terms() {
		if !prop.Supports(t) {
			return false
		}
	}
	return true
}

func (e *SolverEngine) solveProp(stack *pp.Stack) Result {
	ps := prop.New(e.m, e.opts.PropOptions(), e.log)
	ps.SetTerminate(e.terminate)
	for _, t := range stack.Terms() {
		ps.Assert(t)
	}
	e.stats.SatCalls.Inc()
	res := Result(ps.Solve())
	if res == Sat {
		e.model = newModelAssembler(e.m, nil, ps)
		for _, t := range stack.Terms() {
			e.model.observe(t)
		}
	}
	return res
}

func (e *SolverEngine) solveBitblast(stack *pp.Stack, assumptions []node.Term) (Result, error) {
	sat, release, err := e.newBackend()
	if err != nil {
		return Unknown, err
	}
	defer release()
	bl := blast.New(e.m, sat)
	comb := theory.NewCombiner(e.m)

	// track which assertions are already encoded; lemmas extend the
	// stack during the loop
	encoded := 0
	var coreLits []z.Lit
	var coreTerms []node.Term
	assumed := make([]z.Lit, 0, len(assumptions))

	quantified := false
	encode := func() error {
		for ; encoded < stack.Len(); encoded++ {
			a := stack.Get(encoded)
			comb.RegisterAll(a.Term)
			if hasBinder(a.Term) {
				quantified = true
			}
			if e.opts.ProduceUnsatCores {
				lit, err := bl.AssumeLit(a.Term)
				if err != nil {
					return err
				}
				coreLits = append(coreLits, lit)
				coreTerms = append(coreTerms, a.Original)
				continue
			}
			if err := bl.Assert(a.Term); err != nil {
				return err
			}
		}
		return nil
	}
	if err := encode(); err != nil {
		return Unknown, err
	}
	for _, t := range assumptions {
		lit, err := bl.AssumeLit(t)
		if err != nil {
			return Unknown, err
		}
		assumed = append(assumed, lit)
	}

	for round := 0; ; round++ {
		if e.terminated() {
			return Unknown, nil
		}
		sat.Assume(coreLits...)
		sat.Assume(assumed...)
		e.stats.SatCalls.Inc()
		res := e.runSat(sat)
		switch res {
		case Unknown:
			return Unknown, nil
		case Unsat:
			failed := sat.Why(nil)
			e.resolveUnsat(failed, coreLits, coreTerms, assumptions, bl)
			return Unsat, nil
		}

		// candidate model: let the theory solvers inspect it
		ma := newModelAssembler(e.m, bl, nil)
		for _, t := range stack.Terms() {
			ma.observe(t)
		}
		lemmas, err := comb.Check(theoryView{ma: ma})
		if err != nil {
			return Unknown, err
		}
		if len(lemmas) == 0 {
			if quantified {
				// quantified sub-formulas were abstracted; a
				// candidate model cannot be trusted
				return Unknown, nil
			}
			e.model = ma
			return Sat, nil
		}
		for _, l := range lemmas {
			e.stats.LemmasAdded.Inc()
			rl := e.rw.Rewrite(l)
			e.log.V(3).Info("lemma", "term", node.Debug(rl))
			stack.AssertDerived(rl, rl)
		}
		e.log.V(1).Info("theory lemmas added", "count", len(lemmas), "round", round)
		if err := encode(); err != nil {
			return Unknown, err
		}
	}
}

// runSat runs one backend call, polling the terminator when the
// backend can solve asynchronously.
func (e *SolverEngine) runSat(sat blast.Solver) Result {
	gs, ok := sat.(inter.GoSolvable)
	if e.terminate == nil || !ok {
		return Result(sat.Solve())
	}
	conn := gs.GoSolve()
	for {
		if r, done := conn.Test(); done {
			return Result(r)
		}
		if e.terminated() {
			return Result(conn.Stop())
		}
		time.Sleep(200 * time.Microsecond)
	}
}

func (e *SolverEngine) resolveUnsat(failed []z.Lit, coreLits []z.Lit, coreTerms []node.Term, assumptions []node.Term, bl *blast.Blaster) {
	failedSet := make(map[z.Lit]bool, len(failed))
	for _, m := range failed {
		failedSet[m] = true
	}
	coreSeen := make(map[uint64]bool)
	for i, m := range coreLits {
		if failedSet[m] && !coreSeen[coreTerms[i].Id()] {
			coreSeen[coreTerms[i].Id()] = true
			e.core = append(e.core, coreTerms[i])
		}
	}
	for _, t := range assumptions {
		lit, err := bl.AssumeLit(t)
		if err == nil && failedSet[lit] {
			e.failedLits = append(e.failedLits, t)
		}
	}
}

func hasBinder(t node.Term) bool {
	seen := make(map[uint64]bool)
	var walk func(node.Term) bool
	walk = func(u node.Term) bool {
		if seen[u.Id()] {
			return false
		}
		seen[u.Id()] = true
		if u.Kind() == node.KForall || u.Kind() == node.KExists {
			return true
		}
		for _, c := range u.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(t)
}
