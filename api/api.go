// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package api

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/matthewsot/bitwuzla/bv"
	"github.com/matthewsot/bitwuzla/engine"
	"github.com/matthewsot/bitwuzla/fp"
	"github.com/matthewsot/bitwuzla/node"
)

// Sort and Term are the opaque value handles of the API; both
// compare by id.
type (
	Sort = node.Sort
	Term = node.Term
	Kind = node.Kind
)

// Result re-exports the engine's check-sat result.
type Result = engine.Result

const (
	Sat     = engine.Sat
	Unsat   = engine.Unsat
	Unknown = engine.Unknown
)

// Options re-exports the engine's option surface.
type Options = engine.Options

// DefaultOptions returns the default configuration.
func DefaultOptions() Options { return engine.DefaultOptions() }

// OptionsFromMap decodes a map of long option names.
func OptionsFromMap(in map[string]interface{}) (Options, error) {
	return engine.FromMap(in)
}

// SetAbortCallback installs the process-wide abort hook; it must be
// installed before any solving goroutines exist.
func SetAbortCallback(f func(msg string)) { engine.SetAbortCallback(f) }

// Bitwuzla is a solver session.
type Bitwuzla struct {
	ctx *engine.SolvingContext
	m   *node.Manager
}

// New creates a session with the given options.
func New(opts Options) (*Bitwuzla, error) {
	ctx, err := engine.NewContext(opts)
	if err != nil {
		return nil, err
	}
	return &Bitwuzla{ctx: ctx, m: ctx.Manager()}, nil
}

// WithLogger plugs a logger into the session.
func (b *Bitwuzla) WithLogger(log logr.Logger) *Bitwuzla {
	b.ctx.WithLogger(log)
	return b
}

// SetTerminate installs the advisory termination callback.
func (b *Bitwuzla) SetTerminate(f func() bool) { b.ctx.SetTerminate(f) }

// Context exposes the underlying solving context.
func (b *Bitwuzla) Context() *engine.SolvingContext { return b.ctx }

// Sort constructors.

func (b *Bitwuzla) MkBoolSort() Sort { return b.m.BoolSort() }
func (b *Bitwuzla) MkRMSort() Sort   { return b.m.RMSort() }

func (b *Bitwuzla) MkBVSort(w uint32) (Sort, error) { return b.m.BVSort(w) }

func (b *Bitwuzla) MkFPSort(e, s uint32) (Sort, error) { return b.m.FPSort(e, s) }

func (b *Bitwuzla) MkArraySort(index, elem Sort) (Sort, error) {
	return b.m.ArraySort(index, elem)
}

func (b *Bitwuzla) MkFunSort(domain []Sort, codomain Sort) (Sort, error) {
	return b.m.FunSort(domain, codomain)
}

func (b *Bitwuzla) MkUninterpretedSort(symbol string) Sort {
	return b.m.UninterpretedSort(symbol)
}

// Term constructors.

func (b *Bitwuzla) MkConst(sort Sort, symbol string) (Term, error) {
	return b.m.MkConst(sort, symbol)
}

func (b *Bitwuzla) MkVar(sort Sort, symbol string) (Term, error) {
	return b.m.MkVar(sort, symbol)
}

func (b *Bitwuzla) MkTerm(kind Kind, args []Term, indices ...uint32) (Term, error) {
	return b.m.MkTerm(kind, args, indices)
}

func (b *Bitwuzla) MkTrue() Term  { return b.m.True() }
func (b *Bitwuzla) MkFalse() Term { return b.m.False() }

// MkBVValue parses str in base 2, 10 or 16 into a value of the given
// bit-vector sort.
func (b *Bitwuzla) MkBVValue(sort Sort, str string, base int) (Term, error) {
	if !sort.IsBV() {
		return Term{}, engine.Raise("SortMismatch", "expected a bit-vector sort, got %s", sort)
	}
	v, err := bv.Parse(sort.BVWidth(), str, base)
	if err != nil {
		return Term{}, err
	}
	return b.m.MkBVValue(v), nil
}

// MkBVValueUint64 builds a value from the low bits of u.
func (b *Bitwuzla) MkBVValueUint64(sort Sort, u uint64) (Term, error) {
	if !sort.IsBV() {
		return Term{}, engine.Raise("SortMismatch", "expected a bit-vector sort, got %s", sort)
	}
	return b.m.MkBVValue(bv.FromUint64(sort.BVWidth(), u)), nil
}

// MkBVValueInt64 builds a value from the two's complement of i.
func (b *Bitwuzla) MkBVValueInt64(sort Sort, i int64) (Term, error) {
	if !sort.IsBV() {
		return Term{}, engine.Raise("SortMismatch", "expected a bit-vector sort, got %s", sort)
	}
	return b.m.MkBVValue(bv.FromInt64(sort.BVWidth(), i)), nil
}

// MkFPValue builds a floating-point value from three bit-vector
// value terms (sign, exponent, significand).
func (b *Bitwuzla) MkFPValue(sign, exp, sig Term) (Term, error) {
	sv, ok1 := sign.BVValue()
	ev, ok2 := exp.BVValue()
	gv, ok3 := sig.BVValue()
	if !ok1 || !ok2 || !ok3 {
		return Term{}, engine.Raise("InvalidValue", "fp value needs three bit-vector values")
	}
	v, err := fp.FromTriple(sv, ev, gv)
	if err != nil {
		return Term{}, err
	}
	return b.m.MkFPValue(v), nil
}

// MkFPValueFromReal rounds the decimal string real into the given
// floating-point sort.
func (b *Bitwuzla) MkFPValueFromReal(sort Sort, rm fp.RM, real string) (Term, error) {
	if !sort.IsFP() {
		return Term{}, engine.Raise("SortMismatch", "expected a floating-point sort, got %s", sort)
	}
	v, err := fp.FromReal(sort.FPFormat(), rm, real)
	if err != nil {
		return Term{}, err
	}
	return b.m.MkFPValue(v), nil
}

// MkFPValueFromRational rounds num/den into the given sort.
func (b *Bitwuzla) MkFPValueFromRational(sort Sort, rm fp.RM, num, den string) (Term, error) {
	if !sort.IsFP() {
		return Term{}, engine.Raise("SortMismatch", "expected a floating-point sort, got %s", sort)
	}
	v, err := fp.FromRational(sort.FPFormat(), rm, num, den)
	if err != nil {
		return Term{}, err
	}
	return b.m.MkFPValue(v), nil
}

// MkFPPosZero and friends build the special values of a sort.
func (b *Bitwuzla) MkFPPosZero(sort Sort) Term {
	return b.m.MkFPValue(fp.Zero(sort.FPFormat(), false))
}
func (b *Bitwuzla) MkFPNegZero(sort Sort) Term {
	return b.m.MkFPValue(fp.Zero(sort.FPFormat(), true))
}
func (b *Bitwuzla) MkFPPosInf(sort Sort) Term {
	return b.m.MkFPValue(fp.Inf(sort.FPFormat(), false))
}
func (b *Bitwuzla) MkFPNegInf(sort Sort) Term {
	return b.m.MkFPValue(fp.Inf(sort.FPFormat(), true))
}
func (b *Bitwuzla) MkFPNaN(sort Sort) Term {
	return b.m.MkFPValue(fp.NaN(sort.FPFormat()))
}

// MkRMValue builds a rounding-mode literal.
func (b *Bitwuzla) MkRMValue(rm fp.RM) Term { return b.m.MkRMValue(rm) }

// MkConstArray builds an array value all of whose entries equal
// elem.
func (b *Bitwuzla) MkConstArray(sort Sort, elem Term) (Term, error) {
	return b.m.MkConstArray(sort, elem)
}

// Session operations.

func (b *Bitwuzla) Push(n int) error { return b.ctx.Push(n) }
func (b *Bitwuzla) Pop(n int) error  { return b.ctx.Pop(n) }

func (b *Bitwuzla) AssertFormula(t Term) error { return b.ctx.Assert(t) }

func (b *Bitwuzla) CheckSat(assumptions ...Term) (Result, error) {
	return b.ctx.CheckSat(assumptions...)
}

func (b *Bitwuzla) Simplify() error { return b.ctx.Simplify() }

// GetValue evaluates t against the last model.
func (b *Bitwuzla) GetValue(t Term) (Term, error) { return b.ctx.GetValue(t) }

// GetBVValue returns the string rendering of a bit-vector value of t
// in the given base.
func (b *Bitwuzla) GetBVValue(t Term, base int) (string, error) {
	v, err := b.ctx.GetValue(t)
	if err != nil {
		return "", err
	}
	bvv, ok := v.BVValue()
	if !ok {
		return "", engine.Raise("SortMismatch", "%s does not evaluate to a bit-vector value", t)
	}
	switch base {
	case 2:
		return bvv.BinString(), nil
	case 10:
		return bvv.DecString(), nil
	case 16:
		return bvv.HexString(), nil
	}
	return "", engine.Raise("InvalidValue", "unsupported base %d", base)
}

// GetFPValue returns the (sign, exponent, significand) rendering of
// a floating-point value of t in the given base.
func (b *Bitwuzla) GetFPValue(t Term, base int) (sign, exp, sig string, err error) {
	v, err := b.ctx.GetValue(t)
	if err != nil {
		return "", "", "", err
	}
	fv, ok := v.FPValue()
	if !ok {
		return "", "", "", engine.Raise("SortMismatch", "%s does not evaluate to a floating-point value", t)
	}
	render := func(x bv.Value) string {
		switch base {
		case 10:
			return x.DecString()
		case 16:
			return x.HexString()
		default:
			return x.BinString()
		}
	}
	return render(fv.Sign()), render(fv.Exp()), render(fv.Sig()), nil
}

// GetRMValue returns the rounding-mode value of t.
func (b *Bitwuzla) GetRMValue(t Term) (fp.RM, error) {
	v, err := b.ctx.GetValue(t)
	if err != nil {
		return fp.RNE, err
	}
	rm, ok := v.RMValue()
	if !ok {
		return fp.RNE, engine.Raise("SortMismatch", "%s does not evaluate to a rounding mode", t)
	}
	return rm, nil
}

// WriteAiger dumps the bit-blasted circuit of the current assertions
// as ASCII AIGER.
func (b *Bitwuzla) WriteAiger(w io.Writer) error { return b.ctx.WriteAiger(w) }

// GetUnsatCore returns the unsat core in terms of the original
// assertions.
func (b *Bitwuzla) GetUnsatCore() ([]Term, error) { return b.ctx.GetUnsatCore() }

// GetUnsatAssumptions returns the failed assumptions.
func (b *Bitwuzla) GetUnsatAssumptions() ([]Term, error) {
	return b.ctx.GetUnsatAssumptions()
}
