// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla"
	"github.com/matthewsot/bitwuzla/blast"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/pp"
	"github.com/matthewsot/bitwuzla/rw"
)

// SolvingContext is the external façade of the solver core: it owns
// the environment (options, rewriter, logger, statistics), the
// backtrack-aware assertion stack, the preprocessor and the solver
// engine.
type SolvingContext struct {
	m     *node.Manager
	opts  Options
	log   logr.Logger
	stats *Stats

	rw     *rw.Rewriter
	stack  *pp.Stack
	prep   *pp.Preprocessor
	engine *SolverEngine

	terminate func() bool

	checked    bool
	lastResult Result
}

// NewContext creates a context with the given options.  A discard
// logger is used unless one is set via WithLogger.
func NewContext(opts Options) (*SolvingContext, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := node.Mgr()
	log := logr.Discard()
	r := rw.New(m, int(opts.RewriteLevel))
	st := NewStats()
	return &SolvingContext{
		m:      m,
		opts:   opts,
		log:    log,
		stats:  st,
		rw:     r,
		stack:  pp.NewStack(),
		prep:   pp.New(m, r, ppOptionsFor(opts), log),
		engine: NewSolverEngine(m, opts, r, log, st),
	}, nil
}

// ppOptionsFor projects the preprocessing toggles; cross-assertion
// passes are disabled under unsat cores so every derived assertion
// keeps a single original.
func ppOptionsFor(opts Options) pp.Options {
	po := opts.PPOptions()
	if opts.ProduceUnsatCores {
		po.VariableSubst = false
		po.EmbeddedConstraints = false
		po.SkeletonPreproc = false
	}
	return po
}

// WithLogger replaces the context logger.
func (c *SolvingContext) WithLogger(log logr.Logger) *SolvingContext {
	c.log = log
	c.prep = pp.New(c.m, c.rw, ppOptionsFor(c.opts), log)
	c.engine = NewSolverEngine(c.m, c.opts, c.rw, log, c.stats)
	return c
}

// Manager returns the term manager.
func (c *SolvingContext) Manager() *node.Manager { return c.m }

// Options returns the configured options.
func (c *SolvingContext) Options() Options { return c.opts }

// Stats returns the statistics registry.
func (c *SolvingContext) Stats() *Stats { return c.stats }

// SetTerminate installs the advisory terminator polled by long
// operations.  Termination is idempotent; a terminated context can
// be reused.
func (c *SolvingContext) SetTerminate(f func() bool) {
	c.terminate = f
	c.engine.SetTerminate(f)
}

// Push opens n scopes.
func (c *SolvingContext) Push(n int) error {
	if !c.opts.Incremental {
		return Raise("InvalidUsage", "push requires the incremental option")
	}
	c.stack.Push(n)
	return nil
}

// Pop closes n scopes, dropping their assertions and rewinding
// scope-bound caches.
func (c *SolvingContext) Pop(n int) error {
	if !c.opts.Incremental {
		return Raise("InvalidUsage", "pop requires the incremental option")
	}
	if n > c.stack.Level() {
		return Raise("InvalidUsage", "pop of %d below level 0", n)
	}
	c.stack.Pop(n)
	c.prep.OnPop()
	c.checked = false
	return nil
}

// Level returns the current scope level.
func (c *SolvingContext) Level() int { return c.stack.Level() }

// Assert adds a Bool-sorted formula at the current level.
func (c *SolvingContext) Assert(t node.Term) error {
	if t.IsNil() {
		return Raise("InvalidKind", "nil assertion")
	}
	if !t.Sort().IsBool() {
		return Raise("SortMismatch", "asserted term has sort %s, expected Bool", t.Sort())
	}
	c.stats.Asserts.Inc()
	c.stack.Assert(t)
	return nil
}

// Assertions returns the current assertion terms.
func (c *SolvingContext) Assertions() []node.Term { return c.stack.Terms() }

// Simplify preprocesses the assertion stack without solving.
func (c *SolvingContext) Simplify() error {
	return c.prep.Apply(c.stack)
}

// CheckSat solves the current stack under the given single-shot
// assumptions.  Assumptions reset on every call.
func (c *SolvingContext) CheckSat(assumptions ...node.Term) (Result, error) {
	if c.checked && !c.opts.Incremental {
		return Unknown, Raise("InvalidUsage", "repeated check-sat requires the incremental option")
	}
	if len(assumptions) > 0 && !c.opts.Incremental {
		return Unknown, Raise("InvalidUsage", "assumptions require the incremental option")
	}
	c.stats.CheckSats.Inc()
	c.checked = true

	// well-formedness: no free VARIABLE escapes its binder
	for _, t := range c.stack.Terms() {
		if node.HasFreeVariable(t) {
			return Unknown, Raise("InvalidKind", "assertion contains an unbound variable")
		}
	}
	for _, t := range assumptions {
		if !t.Sort().IsBool() {
			return Unknown, Raise("SortMismatch", "assumption has sort %s, expected Bool", t.Sort())
		}
	}

	if err := c.skolemize(); err != nil {
		return Unknown, err
	}
	c.stats.PPIterations.Inc()
	if err := c.prep.Apply(c.stack); err != nil {
		return Unknown, err
	}
	if c.terminate != nil && c.terminate() {
		c.lastResult = Unknown
		return Unknown, nil
	}

	res, err := c.engine.Solve(c.stack, assumptions)
	if err != nil {
		return Unknown, err
	}
	c.lastResult = res
	return res, nil
}

// skolemize replaces top-level existential chains by fresh
// constants.
func (c *SolvingContext) skolemize() error {
	v := c.stack.View()
	for i := 0; i < v.Size(); i++ {
		t := v.Get(i)
		changed := false
		for t.Kind() == node.KExists {
			x := t.Child(0)
			fresh, err := c.m.MkConst(x.Sort(), x.Symbol())
			if err != nil {
				return err
			}
			body, err := c.m.Substitute(t.Child(1), map[node.Term]node.Term{x: fresh})
			if err != nil {
				return err
			}
			t = body
			changed = true
		}
		if changed {
			v.Replace(i, t)
		}
	}
	return nil
}

// WriteAiger bit-blasts the current assertions and writes the
// resulting circuit as ASCII AIGER, one output per assertion.
func (c *SolvingContext) WriteAiger(w io.Writer) error {
	bl := blast.New(c.m, bitwuzla.New())
	roots := c.stack.Terms()
	for _, t := range roots {
		if !t.Sort().IsBool() {
			return Raise("SortMismatch", "assertion has sort %s, expected Bool", t.Sort())
		}
	}
	return bl.WriteAiger(w, roots...)
}

// GetValue evaluates t against the model of the last SAT result.
// Sub-terms whose value cannot be derived leave t unchanged.
func (c *SolvingContext) GetValue(t node.Term) (node.Term, error) {
	if c.lastResult != Sat {
		return node.Term{}, Raise("InvalidUsage", "get-value requires a preceding sat result")
	}
	if !c.opts.ProduceModels {
		return node.Term{}, Raise("InvalidUsage", "get-value requires the produce-models option")
	}
	ma := c.engine.Model()
	if ma == nil {
		return node.Term{}, Raise("InvalidUsage", "no model available")
	}
	v, err := ma.Value(t)
	if err != nil {
		if IsComputeValue(err) {
			return t, nil
		}
		return node.Term{}, err
	}
	return v, nil
}

// GetUnsatCore returns the subset of original assertions whose
// conjunction is unsatisfiable.
func (c *SolvingContext) GetUnsatCore() ([]node.Term, error) {
	if c.lastResult != Unsat {
		return nil, Raise("InvalidUsage", "get-unsat-core requires a preceding unsat result")
	}
	if !c.opts.ProduceUnsatCores {
		return nil, Raise("InvalidUsage", "get-unsat-core requires the produce-unsat-cores option")
	}
	return c.engine.Core(), nil
}

// GetUnsatAssumptions returns the failed assumptions of the last
// unsat result.
func (c *SolvingContext) GetUnsatAssumptions() ([]node.Term, error) {
	if !c.opts.Incremental {
		return nil, Raise("InvalidUsage", "unsat assumptions require the incremental option")
	}
	if c.lastResult != Unsat {
		return nil, Raise("InvalidUsage", "get-unsat-assumptions requires a preceding unsat result")
	}
	return c.engine.FailedAssumptions(), nil
}
