// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

// Kind is a term's operator tag.  Dispatch on kinds goes through
// kind-indexed tables (see rw), never a type hierarchy.
type Kind int

const (
	KNull Kind = iota

	// leaves
	KConstant
	KVariable
	KValue
	KConstArray

	// boolean
	KNot
	KAnd
	KOr
	KXor
	KImplies
	KIff
	KDistinct
	KEqual
	KIte

	// binders
	KExists
	KForall
	KLambda

	// arrays
	KSelect
	KStore

	// applications
	KApply

	// bit-vector, unary
	KBVNot
	KBVNeg
	KBVInc
	KBVDec
	KBVRedAnd
	KBVRedOr
	KBVRedXor

	// bit-vector, binary and n-ary
	KBVAdd
	KBVSub
	KBVMul
	KBVUdiv
	KBVUrem
	KBVSdiv
	KBVSrem
	KBVSmod
	KBVAnd
	KBVOr
	KBVXor
	KBVNand
	KBVNor
	KBVXnor
	KBVShl
	KBVShr
	KBVAshr
	KBVRol
	KBVRor
	KBVComp
	KBVConcat
	KBVUlt
	KBVUle
	KBVUgt
	KBVUge
	KBVSlt
	KBVSle
	KBVSgt
	KBVSge

	// bit-vector overflow predicates
	KBVUaddo
	KBVSaddo
	KBVUsubo
	KBVSsubo
	KBVUmulo
	KBVSmulo
	KBVSdivo

	// bit-vector, indexed
	KBVExtract
	KBVRepeat
	KBVRolI
	KBVRorI
	KBVSignExtend
	KBVZeroExtend

	// floating-point
	KFPFP
	KFPAbs
	KFPNeg
	KFPAdd
	KFPSub
	KFPMul
	KFPDiv
	KFPFma
	KFPRem
	KFPSqrt
	KFPRti
	KFPMin
	KFPMax
	KFPEqual
	KFPLeq
	KFPLt
	KFPGeq
	KFPGt
	KFPIsNaN
	KFPIsInf
	KFPIsNeg
	KFPIsPos
	KFPIsZero
	KFPIsNormal
	KFPIsSubnormal

	// floating-point conversions, indexed by (e, s) or width
	KFPToFPFromBV
	KFPToFPFromFP
	KFPToFPFromSBV
	KFPToFPFromUBV
	KFPToSBV
	KFPToUBV

	kindCount
)

const maxArity = 1 << 20

// kindInfo carries the arity and index contracts of a kind.
type kindInfo struct {
	name   string
	minAr  int
	maxAr  int
	numIdx int
}

var kindTab = [kindCount]kindInfo{
	KNull:       {"null", 0, 0, 0},
	KConstant:   {"const", 0, 0, 0},
	KVariable:   {"var", 0, 0, 0},
	KValue:      {"value", 0, 0, 0},
	KConstArray: {"const-array", 1, 1, 0},

	KNot:      {"not", 1, 1, 0},
	KAnd:      {"and", 2, maxArity, 0},
	KOr:       {"or", 2, maxArity, 0},
	KXor:      {"xor", 2, maxArity, 0},
	KImplies:  {"=>", 2, 2, 0},
	KIff:      {"<=>", 2, 2, 0},
	KDistinct: {"distinct", 2, maxArity, 0},
	KEqual:    {"=", 2, 2, 0},
	KIte:      {"ite", 3, 3, 0},

	KExists: {"exists", 2, 2, 0},
	KForall: {"forall", 2, 2, 0},
	KLambda: {"lambda", 2, 2, 0},

	KSelect: {"select", 2, 2, 0},
	KStore:  {"store", 3, 3, 0},

	KApply: {"apply", 2, maxArity, 0},

	KBVNot:    {"bvnot", 1, 1, 0},
	KBVNeg:    {"bvneg", 1, 1, 0},
	KBVInc:    {"bvinc", 1, 1, 0},
	KBVDec:    {"bvdec", 1, 1, 0},
	KBVRedAnd: {"bvredand", 1, 1, 0},
	KBVRedOr:  {"bvredor", 1, 1, 0},
	KBVRedXor: {"bvredxor", 1, 1, 0},

	KBVAdd:    {"bvadd", 2, maxArity, 0},
	KBVSub:    {"bvsub", 2, 2, 0},
	KBVMul:    {"bvmul", 2, maxArity, 0},
	KBVUdiv:   {"bvudiv", 2, 2, 0},
	KBVUrem:   {"bvurem", 2, 2, 0},
	KBVSdiv:   {"bvsdiv", 2, 2, 0},
	KBVSrem:   {"bvsrem", 2, 2, 0},
	KBVSmod:   {"bvsmod", 2, 2, 0},
	KBVAnd:    {"bvand", 2, maxArity, 0},
	KBVOr:     {"bvor", 2, maxArity, 0},
	KBVXor:    {"bvxor", 2, maxArity, 0},
	KBVNand:   {"bvnand", 2, 2, 0},
	KBVNor:    {"bvnor", 2, 2, 0},
	KBVXnor:   {"bvxnor", 2, 2, 0},
	KBVShl:    {"bvshl", 2, 2, 0},
	KBVShr:    {"bvlshr", 2, 2, 0},
	KBVAshr:   {"bvashr", 2, 2, 0},
	KBVRol:    {"bvrol", 2, 2, 0},
	KBVRor:    {"bvror", 2, 2, 0},
	KBVComp:   {"bvcomp", 2, 2, 0},
	KBVConcat: {"concat", 2, maxArity, 0},
	KBVUlt:    {"bvult", 2, 2, 0},
	KBVUle:    {"bvule", 2, 2, 0},
	KBVUgt:    {"bvugt", 2, 2, 0},
	KBVUge:    {"bvuge", 2, 2, 0},
	KBVSlt:    {"bvslt", 2, 2, 0},
	KBVSle:    {"bvsle", 2, 2, 0},
	KBVSgt:    {"bvsgt", 2, 2, 0},
	KBVSge:    {"bvsge", 2, 2, 0},

	KBVUaddo: {"bvuaddo", 2, 2, 0},
	KBVSaddo: {"bvsaddo", 2, 2, 0},
	KBVUsubo: {"bvusubo", 2, 2, 0},
	KBVSsubo: {"bvssubo", 2, 2, 0},
	KBVUmulo: {"bvumulo", 2, 2, 0},
	KBVSmulo: {"bvsmulo", 2, 2, 0},
	KBVSdivo: {"bvsdivo", 2, 2, 0},

	KBVExtract:    {"extract", 1, 1, 2},
	KBVRepeat:     {"repeat", 1, 1, 1},
	KBVRolI:       {"rotate_left", 1, 1, 1},
	KBVRorI:       {"rotate_right", 1, 1, 1},
	KBVSignExtend: {"sign_extend", 1, 1, 1},
	KBVZeroExtend: {"zero_extend", 1, 1, 1},

	KFPFP:          {"fp", 3, 3, 0},
	KFPAbs:         {"fp.abs", 1, 1, 0},
	KFPNeg:         {"fp.neg", 1, 1, 0},
	KFPAdd:         {"fp.add", 3, 3, 0},
	KFPSub:         {"fp.sub", 3, 3, 0},
	KFPMul:         {"fp.mul", 3, 3, 0},
	KFPDiv:         {"fp.div", 3, 3, 0},
	KFPFma:         {"fp.fma", 4, 4, 0},
	KFPRem:         {"fp.rem", 2, 2, 0},
	KFPSqrt:        {"fp.sqrt", 2, 2, 0},
	KFPRti:         {"fp.roundToIntegral", 2, 2, 0},
	KFPMin:         {"fp.min", 2, 2, 0},
	KFPMax:         {"fp.max", 2, 2, 0},
	KFPEqual:       {"fp.eq", 2, 2, 0},
	KFPLeq:         {"fp.leq", 2, 2, 0},
	KFPLt:          {"fp.lt", 2, 2, 0},
	KFPGeq:         {"fp.geq", 2, 2, 0},
	KFPGt:          {"fp.gt", 2, 2, 0},
	KFPIsNaN:       {"fp.isNaN", 1, 1, 0},
	KFPIsInf:       {"fp.isInfinite", 1, 1, 0},
	KFPIsNeg:       {"fp.isNegative", 1, 1, 0},
	KFPIsPos:       {"fp.isPositive", 1, 1, 0},
	KFPIsZero:      {"fp.isZero", 1, 1, 0},
	KFPIsNormal:    {"fp.isNormal", 1, 1, 0},
	KFPIsSubnormal: {"fp.isSubnormal", 1, 1, 0},

	KFPToFPFromBV:  {"to_fp", 1, 1, 2},
	KFPToFPFromFP:  {"to_fp", 2, 2, 2},
	KFPToFPFromSBV: {"to_fp", 2, 2, 2},
	KFPToFPFromUBV: {"to_fp_unsigned", 2, 2, 2},
	KFPToSBV:       {"fp.to_sbv", 2, 2, 1},
	KFPToUBV:       {"fp.to_ubv", 2, 2, 1},
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindTab[k].name
	}
	return "kind?"
}

// MinArity and MaxArity bound the child count of k.
func (k Kind) MinArity() int { return kindTab[k].minAr }
func (k Kind) MaxArity() int { return kindTab[k].maxAr }

// NumIndices is the number of integer indices k carries.
func (k Kind) NumIndices() int { return kindTab[k].numIdx }

// IsLeaf reports whether k is a leaf kind.
func (k Kind) IsLeaf() bool {
	switch k {
	case KConstant, KVariable, KValue:
		return true
	}
	return false
}

// IsBinder reports whether k binds a variable.
func (k Kind) IsBinder() bool {
	switch k {
	case KExists, KForall, KLambda:
		return true
	}
	return false
}

// IsCommutative reports whether k's operands may be reordered.
func (k Kind) IsCommutative() bool {
	switch k {
	case KAnd, KOr, KXor, KIff, KEqual, KDistinct,
		KBVAdd, KBVMul, KBVAnd, KBVOr, KBVXor, KBVNand, KBVNor, KBVXnor, KBVComp,
		KFPEqual:
		return true
	}
	return false
}
