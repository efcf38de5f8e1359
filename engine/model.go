// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import (
	"sort"

	"github.com/matthewsot/bitwuzla/blast"
	"github.com/matthewsot/bitwuzla/fp"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/prop"
	"github.com/matthewsot/bitwuzla/rw"
	"github.com/matthewsot/bitwuzla/theory"
)

// ModelAssembler answers get-value queries after a SAT result by
// evaluating terms bottom-up against the cached leaf assignments of
// whichever solver produced the model.
type ModelAssembler struct {
	m  *node.Manager
	bl *blast.Blaster
	ps *prop.Solver

	// observed applications and selects, for function and array
	// witnesses
	applies map[uint64][]node.Term
	selects map[uint64][]node.Term

	cache map[uint64]node.Term
}

func newModelAssembler(m *node.Manager, bl *blast.Blaster, ps *prop.Solver) *ModelAssembler {
	return &ModelAssembler{
		m:       m,
		bl:      bl,
		ps:      ps,
		applies: make(map[uint64][]node.Term),
		selects: make(map[uint64][]node.Term),
		cache:   make(map[uint64]node.Term),
	}
}

// observe records applications and selects seen in the assertions so
// function and array values can witness them.
func (ma *ModelAssembler) observe(t node.Term) {
	seen := make(map[uint64]bool)
	var walk func(node.Term)
	walk = func(u node.Term) {
		if seen[u.Id()] {
			return
		}
		seen[u.Id()] = true
		switch u.Kind() {
		case node.KApply:
			ma.applies[u.Child(0).Id()] = append(ma.applies[u.Child(0).Id()], u)
		case node.KSelect:
			base := arrayBase(u.Child(0))
			ma.selects[base.Id()] = append(ma.selects[base.Id()], u)
		}
		for _, c := range u.Children() {
			walk(c)
		}
	}
	walk(t)
}

func arrayBase(a node.Term) node.Term {
	for a.Kind() == node.KStore {
		a = a.Child(0)
	}
	return a
}

// Value evaluates t bottom-up.  Uninterpreted-sort constants return
// themselves; functions return a LAMBDA over nested ITEs matching
// every observed application; quantified sub-terms surface the
// compute-value condition.
func (ma *ModelAssembler) Value(t node.Term) (node.Term, error) {
	if c, ok := ma.cache[t.Id()]; ok {
		return c, nil
	}
	v, err := ma.value(t)
	if err != nil {
		return node.Term{}, err
	}
	ma.cache[t.Id()] = v
	return v, nil
}

func (ma *ModelAssembler) value(t node.Term) (node.Term, error) {
	if t.IsValue() {
		return t, nil
	}
	if t.Kind().IsBinder() && t.Kind() != node.KLambda {
		return node.Term{}, computeValueErr("cannot evaluate quantifier %s", t)
	}
	srt := t.Sort()
	switch {
	case srt.IsUninterpreted():
		// concrete witnesses of applied terms only; constants stand
		// for themselves
		return t, nil
	case srt.IsFun():
		return ma.funValue(t)
	case srt.IsArray():
		return ma.arrayValue(t)
	}

	if t.IsConst() {
		return ma.leafValue(t)
	}

	// applications and selects are read from their SAT inputs; their
	// function or array child is not evaluated here
	switch t.Kind() {
	case node.KSelect, node.KApply:
		return ma.abstractValue(t)
	}

	// compound: children first, then fold
	cs := make([]node.Term, t.NumChildren())
	for i, c := range t.Children() {
		v, err := ma.Value(c)
		if err != nil {
			return node.Term{}, err
		}
		cs[i] = v
	}
	built, err := ma.m.MkTerm(t.Kind(), cs, t.Indices())
	if err != nil {
		return node.Term{}, err
	}
	if v, ok := rw.EvalValue(ma.m, built); ok {
		return v, nil
	}
	return ma.abstractValue(t)
}

// leafValue reads a constant's assignment from the active solver.
func (ma *ModelAssembler) leafValue(t node.Term) (node.Term, error) {
	srt := t.Sort()
	if ma.ps != nil {
		if srt.IsBool() {
			b, ok := ma.ps.BoolValue(t)
			if !ok {
				b = false
			}
			return ma.m.MkBoolValue(b), nil
		}
		if srt.IsBV() {
			v, ok := ma.ps.Value(t)
			if !ok {
				return ma.m.MkBVValue(bvZero(srt.BVWidth())), nil
			}
			return ma.m.MkBVValue(v), nil
		}
	}
	return ma.abstractValue(t)
}

// abstractValue reads a term encoded as SAT inputs.
func (ma *ModelAssembler) abstractValue(t node.Term) (node.Term, error) {
	srt := t.Sort()
	if ma.bl == nil {
		return node.Term{}, computeValueErr("no assignment for %s", t)
	}
	switch {
	case srt.IsBool():
		b, ok := ma.bl.BoolInputValue(t)
		if !ok {
			b = false
		}
		return ma.m.MkBoolValue(b), nil
	case srt.IsBV():
		v, ok := ma.bl.InputValue(t)
		if !ok {
			v = bvZero(srt.BVWidth())
		}
		return ma.m.MkBVValue(v), nil
	case srt.IsFP():
		v, ok := ma.bl.InputValue(t)
		if !ok {
			v = bvZero(srt.FPFormat().Width())
		}
		fv, err := fp.FromIEEE(srt.FPFormat(), v)
		if err != nil {
			return node.Term{}, err
		}
		return ma.m.MkFPValue(fv), nil
	case srt.IsRM():
		v, ok := ma.bl.InputValue(t)
		if !ok {
			return ma.m.MkRMValue(fp.RNE), nil
		}
		rm := fp.RM(v.Uint64())
		if rm > fp.RTZ {
			rm = fp.RNE
		}
		return ma.m.MkRMValue(rm), nil
	}
	return node.Term{}, computeValueErr("no assignment for %s", t)
}

// funValue synthesises a LAMBDA over nested ITEs from the observed
// applications of the function.
func (ma *ModelAssembler) funValue(t node.Term) (node.Term, error) {
	m := ma.m
	srt := t.Sort()
	domain := srt.Domain()
	vars := make([]node.Term, len(domain))
	for i, d := range domain {
		v, err := m.MkVar(d, "")
		if err != nil {
			return node.Term{}, err
		}
		vars[i] = v
	}
	// default: the codomain's zero-equivalent is the value of the
	// first observed application, else an arbitrary constant witness
	apps := append([]node.Term(nil), ma.applies[t.Id()]...)
	sort.Slice(apps, func(i, j int) bool { return apps[i].Id() < apps[j].Id() })

	var body node.Term
	if len(apps) == 0 {
		w, err := m.MkConst(srt.Codomain(), "")
		if err != nil {
			return node.Term{}, err
		}
		body = w
	} else {
		last, err := ma.Value(apps[len(apps)-1])
		if err != nil {
			return node.Term{}, err
		}
		body = last
		for i := len(apps) - 2; i >= 0; i-- {
			app := apps[i]
			val, err := ma.Value(app)
			if err != nil {
				return node.Term{}, err
			}
			cond := node.Term{}
			for j, v := range vars {
				argVal, err := ma.Value(app.Child(j + 1))
				if err != nil {
					return node.Term{}, err
				}
				eq, err := m.MkTerm(node.KEqual, []node.Term{v, argVal}, nil)
				if err != nil {
					return node.Term{}, err
				}
				if cond.IsNil() {
					cond = eq
				} else {
					cond, err = m.MkTerm(node.KAnd, []node.Term{cond, eq}, nil)
					if err != nil {
						return node.Term{}, err
					}
				}
			}
			body, err = m.MkTerm(node.KIte, []node.Term{cond, val, body}, nil)
			if err != nil {
				return node.Term{}, err
			}
		}
	}
	// wrap binders inside out
	for i := len(vars) - 1; i >= 0; i-- {
		var err error
		body, err = m.MkTerm(node.KLambda, []node.Term{vars[i], body}, nil)
		if err != nil {
			return node.Term{}, err
		}
	}
	return body, nil
}

// arrayValue synthesises nested stores over a constant base from the
// observed selects.
func (ma *ModelAssembler) arrayValue(t node.Term) (node.Term, error) {
	m := ma.m
	srt := t.Sort()
	base := arrayBase(t)
	sels := append([]node.Term(nil), ma.selects[base.Id()]...)
	sort.Slice(sels, func(i, j int) bool { return sels[i].Id() < sels[j].Id() })

	var def node.Term
	if base.Kind() == node.KConstArray {
		v, err := ma.Value(base.Child(0))
		if err != nil {
			return node.Term{}, err
		}
		def = v
	} else if len(sels) > 0 {
		v, err := ma.Value(sels[0])
		if err != nil {
			return node.Term{}, err
		}
		def = v
	} else {
		w, err := m.MkConst(srt.Elem(), "")
		if err != nil {
			return node.Term{}, err
		}
		def = w
	}
	acc, err := m.MkConstArray(srt, def)
	if err != nil {
		return node.Term{}, err
	}
	for _, sel := range sels {
		iv, err := ma.Value(sel.Child(1))
		if err != nil {
			return node.Term{}, err
		}
		vv, err := ma.Value(sel)
		if err != nil {
			return node.Term{}, err
		}
		acc, err = m.MkTerm(node.KStore, []node.Term{acc, iv, vv}, nil)
		if err != nil {
			return node.Term{}, err
		}
	}
	return acc, nil
}

// theoryView adapts the assembler to the theory solvers' Model
// interface.
type theoryView struct{ ma *ModelAssembler }

func (tv theoryView) Value(t node.Term) (node.Term, bool) {
	v, err := tv.ma.Value(t)
	if err != nil || v.IsNil() {
		return node.Term{}, false
	}
	return v, true
}

var _ theory.Model = theoryView{}
