// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import (
	"github.com/pkg/errors"
)

// checkTerm validates (kind, children, indices) against the kind's
// signature and returns the result sort.
func (m *Manager) checkTerm(kind Kind, cs []Term, ix []uint32) (Sort, error) {
	if kind <= KNull || kind >= kindCount || kind.IsLeaf() || kind == KValue {
		return Sort{}, errors.Errorf("InvalidKind: cannot construct %s via MkTerm", kind)
	}
	if len(cs) < kind.MinArity() || len(cs) > kind.MaxArity() {
		return Sort{}, errors.Errorf("ArityMismatch: %s expects [%d, %d] children, got %d",
			kind, kind.MinArity(), kind.MaxArity(), len(cs))
	}
	if len(ix) != kind.NumIndices() {
		return Sort{}, errors.Errorf("InvalidIndex: %s expects %d indices, got %d",
			kind, kind.NumIndices(), len(ix))
	}
	for i, c := range cs {
		if c.IsNil() {
			return Sort{}, errors.Errorf("InvalidKind: nil child %d of %s", i, kind)
		}
	}

	switch kind {
	case KNot:
		if err := wantBool(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil
	case KAnd, KOr, KXor, KImplies, KIff:
		if err := wantBool(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil
	case KEqual, KDistinct:
		if err := wantSame(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil
	case KIte:
		if err := wantBool(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantSame(cs[1], cs[2]); err != nil {
			return Sort{}, err
		}
		return cs[1].Sort(), nil

	case KExists, KForall:
		if !cs[0].IsVar() {
			return Sort{}, errors.Errorf("InvalidKind: %s binds a non-variable", kind)
		}
		if err := wantBool(cs[1]); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil
	case KLambda:
		if !cs[0].IsVar() {
			return Sort{}, errors.New("InvalidKind: lambda binds a non-variable")
		}
		var domain []Sort
		body := cs[1]
		domain = append(domain, cs[0].Sort())
		// nested lambdas chain through the body
		for body.Kind() == KLambda {
			domain = append(domain, body.Child(0).Sort())
			body = body.Child(1)
		}
		return m.FunSort(domain, body.Sort())

	case KSelect:
		if !cs[0].Sort().IsArray() {
			return Sort{}, errors.Errorf("SortMismatch: select on %s", cs[0].Sort())
		}
		if cs[1].Sort() != cs[0].Sort().Index() {
			return Sort{}, errors.Errorf("SortMismatch: select index %s != %s",
				cs[1].Sort(), cs[0].Sort().Index())
		}
		return cs[0].Sort().Elem(), nil
	case KStore:
		if !cs[0].Sort().IsArray() {
			return Sort{}, errors.Errorf("SortMismatch: store on %s", cs[0].Sort())
		}
		if cs[1].Sort() != cs[0].Sort().Index() {
			return Sort{}, errors.Errorf("SortMismatch: store index %s != %s",
				cs[1].Sort(), cs[0].Sort().Index())
		}
		if cs[2].Sort() != cs[0].Sort().Elem() {
			return Sort{}, errors.Errorf("SortMismatch: store element %s != %s",
				cs[2].Sort(), cs[0].Sort().Elem())
		}
		return cs[0].Sort(), nil

	case KApply:
		fn := cs[0].Sort()
		if !fn.IsFun() {
			return Sort{}, errors.Errorf("SortMismatch: apply on %s", fn)
		}
		if len(cs)-1 != fn.Arity() {
			return Sort{}, errors.Errorf("ArityMismatch: apply with %d args to arity-%d function",
				len(cs)-1, fn.Arity())
		}
		for i, dom := range fn.Domain() {
			if cs[i+1].Sort() != dom {
				return Sort{}, errors.Errorf("SortMismatch: argument %d has %s, expected %s",
					i, cs[i+1].Sort(), dom)
			}
		}
		return fn.Codomain(), nil

	case KBVNot, KBVNeg, KBVInc, KBVDec:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		return cs[0].Sort(), nil
	case KBVRedAnd, KBVRedOr, KBVRedXor:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		return m.BVSort(1)

	case KBVAdd, KBVSub, KBVMul, KBVUdiv, KBVUrem, KBVSdiv, KBVSrem, KBVSmod,
		KBVAnd, KBVOr, KBVXor, KBVNand, KBVNor, KBVXnor,
		KBVShl, KBVShr, KBVAshr, KBVRol, KBVRor:
		if err := wantBVSame(cs...); err != nil {
			return Sort{}, err
		}
		return cs[0].Sort(), nil
	case KBVComp:
		if err := wantBVSame(cs...); err != nil {
			return Sort{}, err
		}
		return m.BVSort(1)
	case KBVConcat:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		w := uint32(0)
		for _, c := range cs {
			w += c.Sort().BVWidth()
		}
		return m.BVSort(w)
	case KBVUlt, KBVUle, KBVUgt, KBVUge, KBVSlt, KBVSle, KBVSgt, KBVSge,
		KBVUaddo, KBVSaddo, KBVUsubo, KBVSsubo, KBVUmulo, KBVSmulo, KBVSdivo:
		if err := wantBVSame(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil

	case KBVExtract:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		hi, lo := ix[0], ix[1]
		if lo > hi || hi >= cs[0].Sort().BVWidth() {
			return Sort{}, errors.Errorf("InvalidIndex: extract [%d:%d] of width %d",
				hi, lo, cs[0].Sort().BVWidth())
		}
		return m.BVSort(hi - lo + 1)
	case KBVRepeat:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		if ix[0] < 1 {
			return Sort{}, errors.New("InvalidIndex: repeat count must be >= 1")
		}
		return m.BVSort(cs[0].Sort().BVWidth() * ix[0])
	case KBVRolI, KBVRorI:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		return cs[0].Sort(), nil
	case KBVSignExtend, KBVZeroExtend:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		return m.BVSort(cs[0].Sort().BVWidth() + ix[0])

	case KFPFP:
		if err := wantBV(cs...); err != nil {
			return Sort{}, err
		}
		if cs[0].Sort().BVWidth() != 1 {
			return Sort{}, errors.New("SortMismatch: fp sign must have width 1")
		}
		return m.FPSort(cs[1].Sort().BVWidth(), cs[2].Sort().BVWidth()+1)

	case KFPAbs, KFPNeg:
		if err := wantFPSame(cs...); err != nil {
			return Sort{}, err
		}
		return cs[0].Sort(), nil
	case KFPAdd, KFPSub, KFPMul, KFPDiv:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantFPSame(cs[1:]...); err != nil {
			return Sort{}, err
		}
		return cs[1].Sort(), nil
	case KFPFma:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantFPSame(cs[1:]...); err != nil {
			return Sort{}, err
		}
		return cs[1].Sort(), nil
	case KFPRem, KFPMin, KFPMax:
		if err := wantFPSame(cs...); err != nil {
			return Sort{}, err
		}
		return cs[0].Sort(), nil
	case KFPSqrt, KFPRti:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantFPSame(cs[1]); err != nil {
			return Sort{}, err
		}
		return cs[1].Sort(), nil
	case KFPEqual, KFPLeq, KFPLt, KFPGeq, KFPGt:
		if err := wantFPSame(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil
	case KFPIsNaN, KFPIsInf, KFPIsNeg, KFPIsPos, KFPIsZero, KFPIsNormal, KFPIsSubnormal:
		if err := wantFPSame(cs...); err != nil {
			return Sort{}, err
		}
		return m.BoolSort(), nil

	case KFPToFPFromBV:
		if err := wantBV(cs[0]); err != nil {
			return Sort{}, err
		}
		if cs[0].Sort().BVWidth() != ix[0]+ix[1] {
			return Sort{}, errors.Errorf("InvalidIndex: to_fp from width %d into (%d, %d)",
				cs[0].Sort().BVWidth(), ix[0], ix[1])
		}
		return m.FPSort(ix[0], ix[1])
	case KFPToFPFromFP:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantFPSame(cs[1]); err != nil {
			return Sort{}, err
		}
		return m.FPSort(ix[0], ix[1])
	case KFPToFPFromSBV, KFPToFPFromUBV:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantBV(cs[1]); err != nil {
			return Sort{}, err
		}
		return m.FPSort(ix[0], ix[1])
	case KFPToSBV, KFPToUBV:
		if err := wantRM(cs[0]); err != nil {
			return Sort{}, err
		}
		if err := wantFPSame(cs[1]); err != nil {
			return Sort{}, err
		}
		if ix[0] < 1 {
			return Sort{}, errors.New("InvalidIndex: conversion width must be >= 1")
		}
		return m.BVSort(ix[0])
	case KConstArray:
		return Sort{}, errors.New("InvalidKind: use MkConstArray")
	}
	return Sort{}, errors.Errorf("InvalidKind: %s", kind)
}

func wantBool(cs ...Term) error {
	for _, c := range cs {
		if !c.Sort().IsBool() {
			return errors.Errorf("SortMismatch: expected Bool, got %s", c.Sort())
		}
	}
	return nil
}

func wantSame(cs ...Term) error {
	for _, c := range cs[1:] {
		if c.Sort() != cs[0].Sort() {
			return errors.Errorf("SortMismatch: %s != %s", c.Sort(), cs[0].Sort())
		}
	}
	return nil
}

func wantBV(cs ...Term) error {
	for _, c := range cs {
		if !c.Sort().IsBV() {
			return errors.Errorf("SortMismatch: expected BitVec, got %s", c.Sort())
		}
	}
	return nil
}

func wantBVSame(cs ...Term) error {
	if err := wantBV(cs...); err != nil {
		return err
	}
	return wantSame(cs...)
}

func wantFPSame(cs ...Term) error {
	for _, c := range cs {
		if !c.Sort().IsFP() {
			return errors.Errorf("SortMismatch: expected FloatingPoint, got %s", c.Sort())
		}
	}
	return wantSame(cs...)
}

func wantRM(c Term) error {
	if !c.Sort().IsRM() {
		return errors.Errorf("SortMismatch: expected RoundingMode, got %s", c.Sort())
	}
	return nil
}
