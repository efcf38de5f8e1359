// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package rw

import (
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/fp"
	"github.com/matthewsot/bitwuzla/node"
)

// EvalValue folds a term whose children are all values into a value
// term.  The second result is false when the kind is not evaluable
// this way (binders, arrays, applications) or a child is not a value.
func EvalValue(m *node.Manager, t node.Term) (node.Term, bool) {
	k := t.Kind()
	cs := t.Children()
	for _, c := range cs {
		if !c.IsValue() {
			return node.Term{}, false
		}
	}

	// boolean structure
	switch k {
	case node.KNot:
		b, _ := cs[0].BoolValue()
		return m.MkBoolValue(!b), true
	case node.KAnd:
		r := true
		for _, c := range cs {
			b, _ := c.BoolValue()
			r = r && b
		}
		return m.MkBoolValue(r), true
	case node.KOr:
		r := false
		for _, c := range cs {
			b, _ := c.BoolValue()
			r = r || b
		}
		return m.MkBoolValue(r), true
	case node.KXor:
		r := false
		for _, c := range cs {
			b, _ := c.BoolValue()
			r = r != b
		}
		return m.MkBoolValue(r), true
	case node.KImplies:
		a, _ := cs[0].BoolValue()
		b, _ := cs[1].BoolValue()
		return m.MkBoolValue(!a || b), true
	case node.KIff:
		a, _ := cs[0].BoolValue()
		b, _ := cs[1].BoolValue()
		return m.MkBoolValue(a == b), true
	case node.KEqual:
		return m.MkBoolValue(cs[0].Eq(cs[1])), true
	case node.KDistinct:
		for i := range cs {
			for j := i + 1; j < len(cs); j++ {
				if cs[i].Eq(cs[j]) {
					return m.MkBoolValue(false), true
				}
			}
		}
		return m.MkBoolValue(true), true
	case node.KIte:
		c, _ := cs[0].BoolValue()
		if c {
			return cs[1], true
		}
		return cs[2], true
	}

	// bit-vector
	if bva, ok := cs[0].BVValue(); ok {
		switch k {
		case node.KBVNot:
			return m.MkBVValue(bva.Not()), true
		case node.KBVNeg:
			return m.MkBVValue(bva.Neg()), true
		case node.KBVInc:
			return m.MkBVValue(bva.Inc()), true
		case node.KBVDec:
			return m.MkBVValue(bva.Dec()), true
		case node.KBVRedAnd:
			return m.MkBVValue(boolBit(bva.RedAnd())), true
		case node.KBVRedOr:
			return m.MkBVValue(boolBit(bva.RedOr())), true
		case node.KBVRedXor:
			return m.MkBVValue(boolBit(bva.RedXor())), true
		case node.KBVExtract:
			return m.MkBVValue(bva.Extract(t.Index(0), t.Index(1))), true
		case node.KBVRepeat:
			return m.MkBVValue(bva.Repeat(t.Index(0))), true
		case node.KBVRolI:
			return m.MkBVValue(bva.RolI(t.Index(0))), true
		case node.KBVRorI:
			return m.MkBVValue(bva.RorI(t.Index(0))), true
		case node.KBVSignExtend:
			return m.MkBVValue(bva.SignExtend(t.Index(0))), true
		case node.KBVZeroExtend:
			return m.MkBVValue(bva.ZeroExtend(t.Index(0))), true
		case node.KFPToFPFromBV:
			f, _ := fp.NewFormat(t.Index(0), t.Index(1))
			v, _ := fp.FromIEEE(f, bva)
			return m.MkFPValue(v), true
		}
	}
	if len(cs) >= 2 {
		if a, ok := cs[0].BVValue(); ok {
			if b, ok2 := cs[1].BVValue(); ok2 {
				switch k {
				case node.KBVAdd:
					return m.MkBVValue(foldBV(cs, bv.Value.Add)), true
				case node.KBVMul:
					return m.MkBVValue(foldBV(cs, bv.Value.Mul)), true
				case node.KBVAnd:
					return m.MkBVValue(foldBV(cs, bv.Value.And)), true
				case node.KBVOr:
					return m.MkBVValue(foldBV(cs, bv.Value.Or)), true
				case node.KBVXor:
					return m.MkBVValue(foldBV(cs, bv.Value.Xor)), true
				case node.KBVConcat:
					return m.MkBVValue(foldBV(cs, bv.Value.Concat)), true
				case node.KBVSub:
					return m.MkBVValue(a.Sub(b)), true
				case node.KBVUdiv:
					return m.MkBVValue(a.Udiv(b)), true
				case node.KBVUrem:
					return m.MkBVValue(a.Urem(b)), true
				case node.KBVSdiv:
					return m.MkBVValue(a.Sdiv(b)), true
				case node.KBVSrem:
					return m.MkBVValue(a.Srem(b)), true
				case node.KBVSmod:
					return m.MkBVValue(a.Smod(b)), true
				case node.KBVNand:
					return m.MkBVValue(a.Nand(b)), true
				case node.KBVNor:
					return m.MkBVValue(a.Nor(b)), true
				case node.KBVXnor:
					return m.MkBVValue(a.Xnor(b)), true
				case node.KBVShl:
					return m.MkBVValue(a.Shl(b)), true
				case node.KBVShr:
					return m.MkBVValue(a.Shr(b)), true
				case node.KBVAshr:
					return m.MkBVValue(a.Ashr(b)), true
				case node.KBVRol:
					return m.MkBVValue(a.Rol(b)), true
				case node.KBVRor:
					return m.MkBVValue(a.Ror(b)), true
				case node.KBVComp:
					return m.MkBVValue(boolBit(a.Eq(b))), true
				case node.KBVUlt:
					return m.MkBoolValue(a.Ult(b)), true
				case node.KBVUle:
					return m.MkBoolValue(a.Ule(b)), true
				case node.KBVUgt:
					return m.MkBoolValue(a.Ugt(b)), true
				case node.KBVUge:
					return m.MkBoolValue(a.Uge(b)), true
				case node.KBVSlt:
					return m.MkBoolValue(a.Slt(b)), true
				case node.KBVSle:
					return m.MkBoolValue(a.Sle(b)), true
				case node.KBVSgt:
					return m.MkBoolValue(a.Sgt(b)), true
				case node.KBVSge:
					return m.MkBoolValue(a.Sge(b)), true
				case node.KBVUaddo:
					return m.MkBoolValue(a.Uaddo(b)), true
				case node.KBVSaddo:
					return m.MkBoolValue(a.Saddo(b)), true
				case node.KBVUsubo:
					return m.MkBoolValue(a.Usubo(b)), true
				case node.KBVSsubo:
					return m.MkBoolValue(a.Ssubo(b)), true
				case node.KBVUmulo:
					return m.MkBoolValue(a.Umulo(b)), true
				case node.KBVSmulo:
					return m.MkBoolValue(a.Smulo(b)), true
				case node.KBVSdivo:
					return m.MkBoolValue(a.Sdivo(b)), true
				}
			}
		}
	}

	// floating-point
	switch k {
	case node.KFPFP:
		s, _ := cs[0].BVValue()
		e, _ := cs[1].BVValue()
		g, _ := cs[2].BVValue()
		v, err := fp.FromTriple(s, e, g)
		if err != nil {
			return node.Term{}, false
		}
		return m.MkFPValue(v), true
	case node.KFPAbs:
		v, _ := cs[0].FPValue()
		return m.MkFPValue(v.Abs()), true
	case node.KFPNeg:
		v, _ := cs[0].FPValue()
		return m.MkFPValue(v.Neg()), true
	case node.KFPAdd, node.KFPSub, node.KFPMul, node.KFPDiv:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		b, _ := cs[2].FPValue()
		switch k {
		case node.KFPAdd:
			return m.MkFPValue(a.Add(rm, b)), true
		case node.KFPSub:
			return m.MkFPValue(a.Sub(rm, b)), true
		case node.KFPMul:
			return m.MkFPValue(a.Mul(rm, b)), true
		default:
			return m.MkFPValue(a.Div(rm, b)), true
		}
	case node.KFPFma:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		b, _ := cs[2].FPValue()
		c, _ := cs[3].FPValue()
		return m.MkFPValue(a.Fma(rm, b, c)), true
	case node.KFPRem:
		a, _ := cs[0].FPValue()
		b, _ := cs[1].FPValue()
		return m.MkFPValue(a.Rem(b)), true
	case node.KFPSqrt:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		return m.MkFPValue(a.Sqrt(rm)), true
	case node.KFPRti:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		return m.MkFPValue(a.Rti(rm)), true
	case node.KFPMin:
		a, _ := cs[0].FPValue()
		b, _ := cs[1].FPValue()
		return m.MkFPValue(a.Min(b)), true
	case node.KFPMax:
		a, _ := cs[0].FPValue()
		b, _ := cs[1].FPValue()
		return m.MkFPValue(a.Max(b)), true
	case node.KFPEqual, node.KFPLeq, node.KFPLt, node.KFPGeq, node.KFPGt:
		a, _ := cs[0].FPValue()
		b, _ := cs[1].FPValue()
		switch k {
		case node.KFPEqual:
			return m.MkBoolValue(a.FPEq(b)), true
		case node.KFPLeq:
			return m.MkBoolValue(a.Leq(b)), true
		case node.KFPLt:
			return m.MkBoolValue(a.Lt(b)), true
		case node.KFPGeq:
			return m.MkBoolValue(a.Geq(b)), true
		default:
			return m.MkBoolValue(a.Gt(b)), true
		}
	case node.KFPIsNaN, node.KFPIsInf, node.KFPIsNeg, node.KFPIsPos,
		node.KFPIsZero, node.KFPIsNormal, node.KFPIsSubnormal:
		a, _ := cs[0].FPValue()
		switch k {
		case node.KFPIsNaN:
			return m.MkBoolValue(a.IsNaN()), true
		case node.KFPIsInf:
			return m.MkBoolValue(a.IsInf()), true
		case node.KFPIsNeg:
			return m.MkBoolValue(a.IsNegative()), true
		case node.KFPIsPos:
			return m.MkBoolValue(a.IsPositive()), true
		case node.KFPIsZero:
			return m.MkBoolValue(a.IsZero()), true
		case node.KFPIsNormal:
			return m.MkBoolValue(a.IsNormal()), true
		default:
			return m.MkBoolValue(a.IsSubnormal()), true
		}
	case node.KFPToFPFromFP:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		f, _ := fp.NewFormat(t.Index(0), t.Index(1))
		return m.MkFPValue(fp.Convert(f, rm, a)), true
	case node.KFPToFPFromSBV:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].BVValue()
		f, _ := fp.NewFormat(t.Index(0), t.Index(1))
		return m.MkFPValue(fp.FromSbv(f, rm, a)), true
	case node.KFPToFPFromUBV:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].BVValue()
		f, _ := fp.NewFormat(t.Index(0), t.Index(1))
		return m.MkFPValue(fp.FromUbv(f, rm, a)), true
	case node.KFPToSBV:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		return m.MkBVValue(a.ToSbv(t.Index(0), rm)), true
	case node.KFPToUBV:
		rm, _ := cs[0].RMValue()
		a, _ := cs[1].FPValue()
		return m.MkBVValue(a.ToUbv(t.Index(0), rm)), true
	}

	return node.Term{}, false
}

func boolBit(b bool) bv.Value {
	if b {
		return bv.FromUint64(1, 1)
	}
	return bv.Zero(1)
}

func foldBV(cs []node.Term, op func(bv.Value, bv.Value) bv.Value) bv.Value {
	r, _ := cs[0].BVValue()
	for _, c := range cs[1:] {
		v, _ := c.BVValue()
		r = op(r, v)
	}
	return r
}
