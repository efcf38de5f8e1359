// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package blast

import (
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/fp"
	"github.com/matthewsot/bitwuzla/logic"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/z"
	"github.com/pkg/errors"
)

// Solver is the incremental SAT backend contract the blaster drives:
// streamed clauses, single-shot assumptions, solving, model values
// and failed assumptions.  The built-in engine (bitwuzla.Backend)
// and the crisp remote backend both satisfy it.
type Solver interface {
	Add(m z.Lit)
	Assume(ms ...z.Lit)
	Solve() int
	Value(m z.Lit) bool
	Why(dst []z.Lit) []z.Lit
}

// Blaster maps terms onto an AIG and feeds the cone of asserted
// terms into the SAT backend.  Encodings are memoised by term id;
// terms outside the bit-blastable fragment become fresh inputs whose
// meaning the theory layer refines.
type Blaster struct {
	M   *node.Manager
	C   *logic.C
	Sat Solver
	o   LitOps

	bools map[uint64]z.Lit
	bits  map[uint64]Lits

	// abstracted records term ids encoded as fresh inputs
	abstracted map[uint64]bool

	posMark map[z.Var]bool
	negMark map[z.Var]bool
}

// New creates a blaster feeding sat.
func New(m *node.Manager, sat Solver) *Blaster {
	c := logic.NewC()
	b := &Blaster{
		M:          m,
		C:          c,
		Sat:        sat,
		o:          LitOps{C: c},
		bools:      make(map[uint64]z.Lit),
		bits:       make(map[uint64]Lits),
		abstracted: make(map[uint64]bool),
		posMark:    make(map[z.Var]bool),
		negMark:    make(map[z.Var]bool),
	}
	// pin the circuit's constant-true variable
	sat.Add(c.T)
	sat.Add(z.LitNull)
	return b
}

// Abstracted reports whether t was encoded as an opaque input.
func (b *Blaster) Abstracted(t node.Term) bool { return b.abstracted[t.Id()] }

// Assert encodes t and adds it as a unit constraint.
func (b *Blaster) Assert(t node.Term) error {
	m, err := b.Bool(t)
	if err != nil {
		return err
	}
	b.emit(m, true)
	b.Sat.Add(m)
	b.Sat.Add(z.LitNull)
	return nil
}

// AssumeLit encodes t for use as a single-shot assumption and
// returns its literal; both polarities of its cone are emitted since
// failed-assumption analysis can traverse either.
func (b *Blaster) AssumeLit(t node.Term) (z.Lit, error) {
	m, err := b.Bool(t)
	if err != nil {
		return z.LitNull, err
	}
	b.emit(m, true)
	b.emit(m, false)
	return m, nil
}

// Bool encodes a Bool-sorted term as a single AIG literal.
func (b *Blaster) Bool(t node.Term) (z.Lit, error) {
	if m, ok := b.bools[t.Id()]; ok {
		return m, nil
	}
	m, err := b.boolRaw(t)
	if err != nil {
		return z.LitNull, err
	}
	b.bools[t.Id()] = m
	return m, nil
}

func (b *Blaster) boolRaw(t node.Term) (z.Lit, error) {
	c := b.C
	if v, ok := t.BoolValue(); ok {
		if v {
			return c.T, nil
		}
		return c.F, nil
	}
	switch t.Kind() {
	case node.KConstant:
		return b.abstract1(t), nil
	case node.KNot:
		m, err := b.Bool(t.Child(0))
		if err != nil {
			return z.LitNull, err
		}
		return m.Not(), nil
	case node.KAnd, node.KOr, node.KXor:
		ms := make([]z.Lit, t.NumChildren())
		for i, ch := range t.Children() {
			m, err := b.Bool(ch)
			if err != nil {
				return z.LitNull, err
			}
			ms[i] = m
		}
		switch t.Kind() {
		case node.KAnd:
			return c.Ands(ms...), nil
		case node.KOr:
			return c.Ors(ms...), nil
		default:
			r := ms[0]
			for _, m := range ms[1:] {
				r = c.Xor(r, m)
			}
			return r, nil
		}
	case node.KImplies:
		a, err := b.Bool(t.Child(0))
		if err != nil {
			return z.LitNull, err
		}
		d, err := b.Bool(t.Child(1))
		if err != nil {
			return z.LitNull, err
		}
		return c.Implies(a, d), nil
	case node.KIff:
		a, err := b.Bool(t.Child(0))
		if err != nil {
			return z.LitNull, err
		}
		d, err := b.Bool(t.Child(1))
		if err != nil {
			return z.LitNull, err
		}
		return c.Xor(a, d).Not(), nil
	case node.KIte:
		i, err := b.Bool(t.Child(0))
		if err != nil {
			return z.LitNull, err
		}
		th, err := b.Bool(t.Child(1))
		if err != nil {
			return z.LitNull, err
		}
		el, err := b.Bool(t.Child(2))
		if err != nil {
			return z.LitNull, err
		}
		return c.Choice(i, th, el), nil
	case node.KEqual:
		return b.equal(t.Child(0), t.Child(1))
	case node.KDistinct:
		cs := t.Children()
		r := c.T
		for i := range cs {
			for j := i + 1; j < len(cs); j++ {
				eq, err := b.equal(cs[i], cs[j])
				if err != nil {
					return z.LitNull, err
				}
				r = c.And(r, eq.Not())
			}
		}
		return r, nil

	case node.KBVUlt, node.KBVUle, node.KBVUgt, node.KBVUge,
		node.KBVSlt, node.KBVSle, node.KBVSgt, node.KBVSge,
		node.KBVUaddo, node.KBVSaddo, node.KBVUsubo, node.KBVSsubo,
		node.KBVUmulo, node.KBVSmulo, node.KBVSdivo:
		return b.bvPred(t)

	case node.KFPEqual, node.KFPLeq, node.KFPLt, node.KFPGeq, node.KFPGt,
		node.KFPIsNaN, node.KFPIsInf, node.KFPIsNeg, node.KFPIsPos,
		node.KFPIsZero, node.KFPIsNormal, node.KFPIsSubnormal:
		return b.fpPred(t)
	}
	// select/apply/quantifiers and other opaque booleans
	return b.abstract1(t), nil
}

func (b *Blaster) abstract1(t node.Term) z.Lit {
	m := b.C.Lit()
	b.abstracted[t.Id()] = true
	b.bools[t.Id()] = m
	return m
}

func (b *Blaster) equal(x, y node.Term) (z.Lit, error) {
	switch {
	case x.Sort().IsBool():
		a, err := b.Bool(x)
		if err != nil {
			return z.LitNull, err
		}
		d, err := b.Bool(y)
		if err != nil {
			return z.LitNull, err
		}
		return b.C.Xor(a, d).Not(), nil
	case x.Sort().IsBV(), x.Sort().IsFP(), x.Sort().IsRM():
		ax, err := b.Lane(x)
		if err != nil {
			return z.LitNull, err
		}
		ay, err := b.Lane(y)
		if err != nil {
			return z.LitNull, err
		}
		return b.o.EqLit(ax, ay), nil
	}
	// arrays, functions, uninterpreted sorts: theory equality
	eqT, err := b.M.MkTerm(node.KEqual, []node.Term{x, y}, nil)
	if err != nil {
		return z.LitNull, err
	}
	if m, ok := b.bools[eqT.Id()]; ok {
		return m, nil
	}
	return b.abstract1(eqT), nil
}

func (b *Blaster) bvPred(t node.Term) (z.Lit, error) {
	x, err := b.Lane(t.Child(0))
	if err != nil {
		return z.LitNull, err
	}
	y, err := b.Lane(t.Child(1))
	if err != nil {
		return z.LitNull, err
	}
	o := b.o
	c := b.C
	switch t.Kind() {
	case node.KBVUlt:
		return o.UltLit(x, y), nil
	case node.KBVUle:
		return o.UltLit(y, x).Not(), nil
	case node.KBVUgt:
		return o.UltLit(y, x), nil
	case node.KBVUge:
		return o.UltLit(x, y).Not(), nil
	case node.KBVSlt:
		return o.SltLit(x, y), nil
	case node.KBVSle:
		return o.SltLit(y, x).Not(), nil
	case node.KBVSgt:
		return o.SltLit(y, x), nil
	case node.KBVSge:
		return o.SltLit(x, y).Not(), nil
	case node.KBVUaddo:
		_, cout := o.addC(x, y, c.F)
		return cout, nil
	case node.KBVUsubo:
		return o.UltLit(x, y), nil
	case node.KBVSaddo:
		w := len(x)
		s := o.Add(x, y)
		sx, sy, sr := x[w-1], y[w-1], s[w-1]
		return c.And(c.Xor(sx, sy).Not(), c.Xor(sx, sr)), nil
	case node.KBVSsubo:
		w := len(x)
		s := o.Sub(x, y)
		sx, sy, sr := x[w-1], y[w-1], s[w-1]
		return c.And(c.Xor(sx, sy), c.Xor(sx, sr)), nil
	case node.KBVUmulo:
		// overflow iff the 2w-bit product has a high bit set
		w := len(x)
		xw := o.ZeroExtend(uint32(w), x)
		yw := o.ZeroExtend(uint32(w), y)
		p := o.Mul(xw, yw)
		return b.C.Ors(p[w:]...), nil
	case node.KBVSmulo:
		w := len(x)
		xw := o.SignExtend(uint32(w), x)
		yw := o.SignExtend(uint32(w), y)
		p := o.Mul(xw, yw)
		// overflow iff the high half plus the result sign is not a
		// pure sign extension
		bad := c.F
		for i := w - 1; i < 2*w; i++ {
			bad = c.Or(bad, c.Xor(p[i], p[w-1]))
		}
		return bad, nil
	case node.KBVSdivo:
		w := uint32(len(x))
		minS := o.EqLit(x, o.Const(bv.MinSigned(w)))
		allOnes := o.EqLit(y, o.Const(bv.Ones(w)))
		return c.And(minS, allOnes), nil
	}
	return z.LitNull, errors.Errorf("InvalidKind: %s is not a BV predicate", t.Kind())
}

func (b *Blaster) fpPred(t node.Term) (z.Lit, error) {
	f := t.Child(0).Sort().FPFormat()
	fb := fp.NewBlaster[Lits](f, b.o)
	x, err := b.Lane(t.Child(0))
	if err != nil {
		return z.LitNull, err
	}
	var lane Lits
	switch t.Kind() {
	case node.KFPIsNaN:
		lane = fb.IsNaN(x)
	case node.KFPIsInf:
		lane = fb.IsInf(x)
	case node.KFPIsNeg:
		lane = fb.IsNegative(x)
	case node.KFPIsPos:
		lane = fb.IsPositive(x)
	case node.KFPIsZero:
		lane = fb.IsZero(x)
	case node.KFPIsNormal:
		lane = fb.IsNormal(x)
	case node.KFPIsSubnormal:
		lane = fb.IsSubnormal(x)
	default:
		y, err := b.Lane(t.Child(1))
		if err != nil {
			return z.LitNull, err
		}
		switch t.Kind() {
		case node.KFPEqual:
			lane = fb.FPEq(x, y)
		case node.KFPLeq:
			lane = fb.Leq(x, y)
		case node.KFPLt:
			lane = fb.Lt(x, y)
		case node.KFPGeq:
			lane = fb.Geq(x, y)
		case node.KFPGt:
			lane = fb.Gt(x, y)
		}
	}
	return lane[0], nil
}

// Lane encodes a BV, FP or RM sorted term as a lane of literals,
// least significant bit first (RM lanes are 3 bits wide).
func (b *Blaster) Lane(t node.Term) (Lits, error) {
	if ls, ok := b.bits[t.Id()]; ok {
		return ls, nil
	}
	ls, err := b.laneRaw(t)
	if err != nil {
		return nil, err
	}
	b.bits[t.Id()] = ls
	return ls, nil
}

func (b *Blaster) laneWidth(t node.Term) uint32 {
	s := t.Sort()
	switch {
	case s.IsBV():
		return s.BVWidth()
	case s.IsFP():
		return s.FPFormat().Width()
	case s.IsRM():
		return 3
	}
	return 0
}

func (b *Blaster) laneRaw(t node.Term) (Lits, error) {
	o := b.o
	if v, ok := t.BVValue(); ok {
		return o.Const(v), nil
	}
	if v, ok := t.FPValue(); ok {
		return o.Const(v.Bits()), nil
	}
	if rm, ok := t.RMValue(); ok {
		return o.Const(bv.FromUint64(3, uint64(rm))), nil
	}

	switch t.Kind() {
	case node.KConstant:
		ls := o.Inputs(b.laneWidth(t))
		b.abstracted[t.Id()] = true
		if t.Sort().IsRM() {
			// constrain the encoding to the five modes
			lt := o.UltLit(ls, o.Const(bv.FromUint64(3, 5)))
			b.emit(lt, true)
			b.Sat.Add(lt)
			b.Sat.Add(z.LitNull)
		}
		return ls, nil

	case node.KIte:
		c, err := b.Bool(t.Child(0))
		if err != nil {
			return nil, err
		}
		a, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err
		}
		d, err := b.Lane(t.Child(2))
		if err != nil {
			return nil, err
		}
		return b.o.iteBits(c, a, d), nil
	}

	if t.Sort().IsBV() {
		if ls, err, ok := b.bvLane(t); ok {
			return ls, err
		}
	}
	if t.Sort().IsFP() || fpKind(t.Kind()) {
		if ls, err, ok := b.fpLane(t); ok {
			return ls, err
		}
	}

	// select/apply/opaque terms of lane sorts
	ls := o.Inputs(b.laneWidth(t))
	b.abstracted[t.Id()] = true
	if t.Sort().IsRM() {
		lt := o.UltLit(ls, o.Const(bv.FromUint64(3, 5)))
		b.emit(lt, true)
		b.Sat.Add(lt)
		b.Sat.Add(z.LitNull)
	}
	return ls, nil
}

func fpKind(k node.Kind) bool {
	return k >= node.KFPFP && k <= node.KFPToUBV
}

func (b *Blaster) children(t node.Term) ([]Lits, error) {
	out := make([]Lits, t.NumChildren())
	for i, c := range t.Children() {
		ls, err := b.Lane(c)
		if err != nil {
			return nil, err
		}
		out[i] = ls
	}
	return out, nil
}

func (b *Blaster) bvLane(t node.Term) (Lits, error, bool) {
	o := b.o
	switch t.Kind() {
	case node.KBVNot, node.KBVNeg, node.KBVInc, node.KBVDec,
		node.KBVRedAnd, node.KBVRedOr, node.KBVRedXor,
		node.KBVExtract, node.KBVRepeat, node.KBVRolI, node.KBVRorI,
		node.KBVSignExtend, node.KBVZeroExtend:
		x, err := b.Lane(t.Child(0))
		if err != nil {
			return nil, err, true
		}
		switch t.Kind() {
		case node.KBVNot:
			return o.Not(x), nil, true
		case node.KBVNeg:
			return o.Neg(x), nil, true
		case node.KBVInc:
			one := o.Const(bv.Zero(uint32(len(x))).Inc())
			return o.Add(x, one), nil, true
		case node.KBVDec:
			one := o.Const(bv.Zero(uint32(len(x))).Inc())
			return o.Sub(x, one), nil, true
		case node.KBVRedAnd:
			return o.RedAnd(x), nil, true
		case node.KBVRedOr:
			return o.RedOr(x), nil, true
		case node.KBVRedXor:
			return Lits{o.RedXor(x)}, nil, true
		case node.KBVExtract:
			return o.Extract(t.Index(0), t.Index(1), x), nil, true
		case node.KBVRepeat:
			out := Lits{}
			for i := uint32(0); i < t.Index(0); i++ {
				out = append(out, x...)
			}
			return out, nil, true
		case node.KBVRolI:
			return rotate(x, t.Index(0), true), nil, true
		case node.KBVRorI:
			return rotate(x, t.Index(0), false), nil, true
		case node.KBVSignExtend:
			return o.SignExtend(t.Index(0), x), nil, true
		default:
			return o.ZeroExtend(t.Index(0), x), nil, true
		}

	case node.KBVAdd, node.KBVMul, node.KBVAnd, node.KBVOr, node.KBVXor,
		node.KBVConcat:
		cs, err := b.children(t)
		if err != nil {
			return nil, err, true
		}
		acc := cs[0]
		for _, x := range cs[1:] {
			switch t.Kind() {
			case node.KBVAdd:
				acc = o.Add(acc, x)
			case node.KBVMul:
				acc = o.Mul(acc, x)
			case node.KBVAnd:
				acc = o.And(acc, x)
			case node.KBVOr:
				acc = o.Or(acc, x)
			case node.KBVXor:
				acc = o.Xor(acc, x)
			case node.KBVConcat:
				acc = o.Concat(acc, x)
			}
		}
		return acc, nil, true

	case node.KBVSub, node.KBVUdiv, node.KBVUrem, node.KBVSdiv, node.KBVSrem,
		node.KBVSmod, node.KBVNand, node.KBVNor, node.KBVXnor,
		node.KBVShl, node.KBVShr, node.KBVAshr, node.KBVRol, node.KBVRor,
		node.KBVComp:
		x, err := b.Lane(t.Child(0))
		if err != nil {
			return nil, err, true
		}
		y, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		switch t.Kind() {
		case node.KBVSub:
			return o.Sub(x, y), nil, true
		case node.KBVUdiv:
			return o.Udiv(x, y), nil, true
		case node.KBVUrem:
			return o.Urem(x, y), nil, true
		case node.KBVSdiv, node.KBVSrem, node.KBVSmod:
			return b.signedDiv(t.Kind(), x, y), nil, true
		case node.KBVNand:
			return o.Not(o.And(x, y)), nil, true
		case node.KBVNor:
			return o.Not(o.Or(x, y)), nil, true
		case node.KBVXnor:
			return o.Not(o.Xor(x, y)), nil, true
		case node.KBVShl:
			return o.Shl(x, y), nil, true
		case node.KBVShr:
			return o.Shr(x, y), nil, true
		case node.KBVAshr:
			return o.Ashr(x, y), nil, true
		case node.KBVRol, node.KBVRor:
			return b.rotateVar(t.Kind() == node.KBVRol, x, y), nil, true
		default: // KBVComp
			return Lits{o.EqLit(x, y)}, nil, true
		}
	}
	return nil, nil, false
}

// signedDiv lowers sdiv/srem/smod through the unsigned divider with
// SMT-LIB sign handling.
func (b *Blaster) signedDiv(k node.Kind, x, y Lits) Lits {
	o := b.o
	c := b.C
	w := len(x)
	sx, sy := x[w-1], y[w-1]
	ax := o.iteBits(sx, o.Neg(x), x)
	ay := o.iteBits(sy, o.Neg(y), y)
	q, r := o.divmod(ax, ay)
	switch k {
	case node.KBVSdiv:
		neg := c.Xor(sx, sy)
		return o.iteBits(neg, o.Neg(q), q)
	case node.KBVSrem:
		return o.iteBits(sx, o.Neg(r), r)
	default: // KBVSmod
		rr := o.iteBits(sx, o.Neg(r), r)
		rZero := o.RedOr(rr)[0].Not()
		sameSign := c.Xor(sx, sy).Not()
		adj := o.Add(rr, y)
		out := o.iteBits(c.Or(rZero, sameSign), rr, adj)
		return out
	}
}

func (b *Blaster) rotateVar(left bool, x, y Lits) Lits {
	o := b.o
	w := uint32(len(x))
	wl := o.Const(bv.FromUint64(w, uint64(w)))
	n := o.Urem(y, wl)
	var a, d Lits
	if left {
		a = o.Shl(x, n)
		d = o.Shr(x, o.Sub(wl, n))
	} else {
		a = o.Shr(x, n)
		d = o.Shl(x, o.Sub(wl, n))
	}
	return o.Or(a, d)
}

func (b *Blaster) fpLane(t node.Term) (Lits, error, bool) {
	o := b.o
	mkFB := func(f fp.Format) *fp.Blaster[Lits] {
		return fp.NewBlaster[Lits](f, o)
	}
	rmOf := func(c node.Term) (fp.RM, Lits, bool, error) {
		if rm, ok := c.RMValue(); ok {
			return rm, nil, true, nil
		}
		ls, err := b.Lane(c)
		return fp.RNE, ls, false, err
	}
	// rmSelect builds the result for each concrete mode and muxes on
	// the symbolic rounding-mode lane
	rmSelect := func(rmC node.Term, f func(fp.RM) Lits) (Lits, error) {
		rm, lane, isVal, err := rmOf(rmC)
		if err != nil {
			return nil, err
		}
		if isVal {
			return f(rm), nil
		}
		res := f(fp.RNE)
		for _, mode := range []fp.RM{fp.RNA, fp.RTP, fp.RTN, fp.RTZ} {
			sel := o.EqLit(lane, o.Const(bv.FromUint64(3, uint64(mode))))
			res = b.o.iteBits(sel, f(mode), res)
		}
		return res, nil
	}

	switch t.Kind() {
	case node.KFPFP:
		cs, err := b.children(t)
		if err != nil {
			return nil, err, true
		}
		return o.Concat(o.Concat(cs[0], cs[1]), cs[2]), nil, true
	case node.KFPAbs, node.KFPNeg:
		x, err := b.Lane(t.Child(0))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		if t.Kind() == node.KFPAbs {
			return fb.Abs(x), nil, true
		}
		return fb.Neg(x), nil, true
	case node.KFPMin, node.KFPMax, node.KFPRem:
		x, err := b.Lane(t.Child(0))
		if err != nil {
			return nil, err, true
		}
		y, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		switch t.Kind() {
		case node.KFPMin:
			return fb.Min(x, y), nil, true
		case node.KFPMax:
			return fb.Max(x, y), nil, true
		default:
			return fb.Rem(x, y), nil, true
		}
	case node.KFPAdd, node.KFPSub, node.KFPMul, node.KFPDiv:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		y, err := b.Lane(t.Child(2))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			switch t.Kind() {
			case node.KFPAdd:
				return fb.Add(rm, x, y)
			case node.KFPSub:
				return fb.Sub(rm, x, y)
			case node.KFPMul:
				return fb.Mul(rm, x, y)
			default:
				return fb.Div(rm, x, y)
			}
		})
		return ls, err, true
	case node.KFPFma:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		y, err := b.Lane(t.Child(2))
		if err != nil {
			return nil, err, true
		}
		a, err := b.Lane(t.Child(3))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			return fb.Fma(rm, x, y, a)
		})
		return ls, err, true
	case node.KFPSqrt, node.KFPRti:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			if t.Kind() == node.KFPSqrt {
				return fb.Sqrt(rm, x)
			}
			return fb.Rti(rm, x)
		})
		return ls, err, true
	case node.KFPToFPFromBV:
		x, err := b.Lane(t.Child(0))
		if err != nil {
			return nil, err, true
		}
		return x, nil, true
	case node.KFPToFPFromFP:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		srcF := t.Child(1).Sort().FPFormat()
		dstF := t.Sort().FPFormat()
		sb := mkFB(srcF)
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			return sb.Convert(dstF, rm, x)
		})
		return ls, err, true
	case node.KFPToFPFromSBV, node.KFPToFPFromUBV:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Sort().FPFormat())
		signed := t.Kind() == node.KFPToFPFromSBV
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			if signed {
				return fb.FromSbv(rm, x)
			}
			return fb.FromUbv(rm, x)
		})
		return ls, err, true
	case node.KFPToSBV, node.KFPToUBV:
		x, err := b.Lane(t.Child(1))
		if err != nil {
			return nil, err, true
		}
		fb := mkFB(t.Child(1).Sort().FPFormat())
		w := t.Index(0)
		signed := t.Kind() == node.KFPToSBV
		ls, err := rmSelect(t.Child(0), func(rm fp.RM) Lits {
			if signed {
				return fb.ToSbv(w, rm, x)
			}
			return fb.ToUbv(w, rm, x)
		})
		return ls, err, true
	}
	return nil, nil, false
}

// emit feeds the cone of literal m into the SAT backend with
// Plaisted-Greenbaum polarity-aware Tseitin encoding: positive
// occurrences emit only the gate's forward implications, negative
// ones only the backward clause.
func (b *Blaster) emit(m z.Lit, pos bool) {
	v := m.Var()
	a, d := b.C.Ins(v.Pos())
	if a == z.LitNull || a == b.C.T || a == b.C.F {
		return
	}
	nodePos := pos == m.IsPos()
	g := v.Pos()
	sat := b.Sat
	if nodePos {
		if b.posMark[v] {
			return
		}
		b.posMark[v] = true
		// g -> a, g -> d
		sat.Add(g.Not())
		sat.Add(a)
		sat.Add(z.LitNull)
		sat.Add(g.Not())
		sat.Add(d)
		sat.Add(z.LitNull)
		b.emit(a, true)
		b.emit(d, true)
		return
	}
	if b.negMark[v] {
		return
	}
	b.negMark[v] = true
	// (a and d) -> g
	sat.Add(g)
	sat.Add(a.Not())
	sat.Add(d.Not())
	sat.Add(z.LitNull)
	b.emit(a, false)
	b.emit(d, false)
}

// InputValue reads the SAT model bits of an input-encoded term after
// a SAT result.
func (b *Blaster) InputValue(t node.Term) (bv.Value, bool) {
	ls, ok := b.bits[t.Id()]
	if !ok {
		return bv.Value{}, false
	}
	w := uint32(len(ls))
	out := bv.Zero(w)
	for i := uint32(0); i < w; i++ {
		if b.litValue(ls[i]) {
			out = out.Or(bv.FromUint64(w, 1).Shl(bv.FromUint64(w, uint64(i))))
		}
	}
	return out, true
}

// BoolInputValue reads the SAT model of a bool-encoded term.
func (b *Blaster) BoolInputValue(t node.Term) (bool, bool) {
	m, ok := b.bools[t.Id()]
	if !ok {
		return false, false
	}
	return b.litValue(m), true
}

func (b *Blaster) litValue(m z.Lit) bool {
	if m == b.C.T {
		return true
	}
	if m == b.C.F {
		return false
	}
	return b.Sat.Value(m)
}
