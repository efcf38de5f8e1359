// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/pkg/errors"
)

// passElimLambda β-reduces every APPLY whose function is a LAMBDA,
// substituting the arguments into the body in order.  After the pass
// no APPLY(LAMBDA, ...) remains in the assertion set.
type passElimLambda struct {
	m  *node.Manager
	rw *rw.Rewriter

	cache map[uint64]node.Term
}

func (p *passElimLambda) Name() string { return "elim-lambda" }

func (p *passElimLambda) Apply(v *View) error {
	if p.cache == nil {
		p.cache = make(map[uint64]node.Term)
	}
	for i := 0; i < v.Size(); i++ {
		nt, err := p.reduce(v.Get(i))
		if err != nil {
			return err
		}
		if !nt.Eq(v.Get(i)) {
			v.Replace(i, p.rw.Rewrite(nt))
		}
	}
	return nil
}

func (p *passElimLambda) reduce(t node.Term) (node.Term, error) {
	if c, ok := p.cache[t.Id()]; ok {
		return c, nil
	}
	res := t
	if t.NumChildren() > 0 {
		changed := false
		childs := make([]node.Term, t.NumChildren())
		for i, c := range t.Children() {
			nc, err := p.reduce(c)
			if err != nil {
				return node.Term{}, err
			}
			childs[i] = nc
			changed = changed || !nc.Eq(c)
		}
		if changed {
			var err error
			if t.Kind() == node.KConstArray {
				res, err = p.m.MkConstArray(t.Sort(), childs[0])
			} else {
				res, err = p.m.MkTerm(t.Kind(), childs, t.Indices())
			}
			if err != nil {
				return node.Term{}, err
			}
		}
	}
	if res.Kind() == node.KApply && res.Child(0).Kind() == node.KLambda {
		reduced, err := p.betaReduce(res)
		if err != nil {
			return node.Term{}, err
		}
		// the body may expose nested applications
		res, err = p.reduce(reduced)
		if err != nil {
			return node.Term{}, err
		}
	}
	p.cache[res.Id()] = res
	p.cache[t.Id()] = res
	return res, nil
}

func (p *passElimLambda) betaReduce(apply node.Term) (node.Term, error) {
	fn := apply.Child(0)
	args := apply.Children()[1:]
	sub := make(map[node.Term]node.Term, len(args))
	body := fn
	for _, a := range args {
		if body.Kind() != node.KLambda {
			return node.Term{}, errors.New("ArityMismatch: apply with more arguments than lambda binders")
		}
		sub[body.Child(0)] = a
		body = body.Child(1)
	}
	return p.m.Substitute(body, sub)
}
