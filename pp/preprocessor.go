// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
)

// Options enables or disables individual passes.
type Options struct {
	FlattenAnd              bool
	VariableSubst           bool
	VariableSubstNormEq     bool
	VariableSubstNormBVIneq bool
	SkeletonPreproc         bool
	EmbeddedConstraints     bool
	ContrAnds               bool
	ElimBVExtracts          bool
	Normalize               bool
	NormalizeShareAware     bool
}

// DefaultOptions enables the standard pass set.
func DefaultOptions() Options {
	return Options{
		FlattenAnd:          true,
		VariableSubst:       true,
		SkeletonPreproc:     false,
		EmbeddedConstraints: true,
		ContrAnds:           true,
		Normalize:           false,
	}
}

// Preprocessor orchestrates the passes in a fixed-point loop over the
// view's modification counter.
type Preprocessor struct {
	m    *node.Manager
	rw   *rw.Rewriter
	opts Options
	log  logr.Logger

	rewrite  *passRewrite
	flatten  *passFlattenAnd
	varsubst *passVarSubst
	skeleton *passSkeleton
	embedded *passEmbedded
	contr    *passContrAnds
	elimLam  *passElimLambda
	elimUnin *passElimUninterpreted
	norm     *passNormalize
}

// New creates a preprocessor over m with the given rewriter, options
// and logger.
func New(m *node.Manager, r *rw.Rewriter, opts Options, log logr.Logger) *Preprocessor {
	return &Preprocessor{
		m:    m,
		rw:   r,
		opts: opts,
		log:  log,

		rewrite: &passRewrite{rw: r},
		flatten: &passFlattenAnd{},
		varsubst: &passVarSubst{
			m: m, rw: r,
			normEq:     opts.VariableSubstNormEq,
			normBVIneq: opts.VariableSubstNormBVIneq,
		},
		skeleton: &passSkeleton{m: m, rw: r},
		embedded: &passEmbedded{m: m, rw: r},
		contr:    &passContrAnds{m: m},
		elimLam:  &passElimLambda{m: m, rw: r},
		elimUnin: &passElimUninterpreted{m: m},
		norm:     &passNormalize{rw: r, shareAware: opts.NormalizeShareAware},
	}
}

// Apply preprocesses the stack to fixed point.  It returns an error
// only on malformed input surfaced by a pass.
func (p *Preprocessor) Apply(s *Stack) error {
	p.skeleton.Reset()
	v := s.View()
	for iter := 0; ; iter++ {
		v.ResetModified()

		if err := p.step(v, p.rewrite); err != nil {
			return err
		}
		if p.opts.FlattenAnd {
			if err := p.step(v, p.flatten); err != nil {
				return err
			}
		}
		if p.opts.VariableSubst {
			if err := p.step(v, p.varsubst); err != nil {
				return err
			}
		}
		if p.opts.SkeletonPreproc {
			if err := p.step(v, p.skeleton); err != nil {
				return err
			}
		}
		if p.opts.EmbeddedConstraints {
			if err := p.step(v, p.embedded); err != nil {
				return err
			}
		}
		if p.opts.ContrAnds {
			if err := p.step(v, p.contr); err != nil {
				return err
			}
		}
		if err := p.step(v, p.elimLam); err != nil {
			return err
		}
		if err := p.step(v, p.elimUnin); err != nil {
			return err
		}
		if p.opts.Normalize {
			if err := p.step(v, p.norm); err != nil {
				return err
			}
		}

		if !v.Modified() {
			return nil
		}
		if iter > 64 {
			return nil
		}
	}
}

func (p *Preprocessor) step(v *View, pass Pass) error {
	before := v.NumModified()
	if err := pass.Apply(v); err != nil {
		return err
	}
	p.log.V(2).Info("pass applied", "pass", pass.Name(), "modified", v.NumModified()-before)
	return nil
}

// OnPop rewinds scope-bound caches after the assertion stack popped.
func (p *Preprocessor) OnPop() {
	p.rw.ResetCache()
	p.elimLam.cache = nil
	p.skeleton.Reset()
}
