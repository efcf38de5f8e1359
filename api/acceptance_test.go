// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package api_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/matthewsot/bitwuzla/api"
	"github.com/matthewsot/bitwuzla/node"
)

func TestAcceptance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "solver acceptance suite")
}

func newSession(mut func(*api.Options)) *api.Bitwuzla {
	opts := api.DefaultOptions()
	if mut != nil {
		mut(&opts)
	}
	b, err := api.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("check-sat", func() {
	It("refutes an odd sum of an even doubling", func() {
		b := newSession(nil)
		s, _ := b.MkBVSort(4)
		x, _ := b.MkConst(s, "x")
		three, _ := b.MkBVValue(s, "3", 10)
		sum, _ := b.MkTerm(node.KBVAdd, []api.Term{x, x})
		eq, _ := b.MkTerm(node.KEqual, []api.Term{sum, three})
		Expect(b.AssertFormula(eq)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))
	})

	It("proves multiplication associative at width 4", func() {
		b := newSession(nil)
		s, _ := b.MkBVSort(4)
		x, _ := b.MkConst(s, "x")
		y, _ := b.MkConst(s, "y")
		z, _ := b.MkConst(s, "z")
		yz, _ := b.MkTerm(node.KBVMul, []api.Term{y, z})
		l, _ := b.MkTerm(node.KBVMul, []api.Term{x, yz})
		xy, _ := b.MkTerm(node.KBVMul, []api.Term{x, y})
		r, _ := b.MkTerm(node.KBVMul, []api.Term{xy, z})
		eq, _ := b.MkTerm(node.KEqual, []api.Term{l, r})
		ne, _ := b.MkTerm(node.KNot, []api.Term{eq})
		Expect(b.AssertFormula(ne)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))
	})

	It("witnesses an existential zero product", func() {
		b := newSession(nil)
		s, _ := b.MkBVSort(8)
		c, _ := b.MkBVValue(s, "37", 10)
		x, _ := b.MkVar(s, "x")
		zero, _ := b.MkBVValue(s, "0", 10)
		prod, _ := b.MkTerm(node.KBVMul, []api.Term{x, c})
		eq, _ := b.MkTerm(node.KEqual, []api.Term{zero, prod})
		ex, _ := b.MkTerm(node.KExists, []api.Term{x, eq})
		Expect(b.AssertFormula(ex)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Sat))
	})
})

var _ = Describe("unsat cores", func() {
	It("returns {a, not a} and recovers after pop", func() {
		b := newSession(func(o *api.Options) {
			o.Incremental = true
			o.ProduceUnsatCores = true
		})
		boolS := b.MkBoolSort()
		a, _ := b.MkConst(boolS, "a")
		na, _ := b.MkTerm(node.KNot, []api.Term{a})

		Expect(b.Push(1)).To(Succeed())
		Expect(b.AssertFormula(a)).To(Succeed())
		Expect(b.AssertFormula(na)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))

		core, err := b.GetUnsatCore()
		Expect(err).NotTo(HaveOccurred())
		Expect(core).To(HaveLen(2))

		Expect(b.Pop(1)).To(Succeed())
		res, err = b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Sat))
	})
})

var _ = Describe("floating point", func() {
	It("treats NaN as unequal to itself but recognisable", func() {
		b := newSession(nil)
		fpS, _ := b.MkFPSort(8, 24)
		nan := b.MkFPNaN(fpS)

		eq, _ := b.MkTerm(node.KFPEqual, []api.Term{nan, nan})
		Expect(b.AssertFormula(eq)).To(Succeed())
		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))

		b2 := newSession(nil)
		isnan, _ := b2.MkTerm(node.KFPIsNaN, []api.Term{nan})
		Expect(b2.AssertFormula(isnan)).To(Succeed())
		res, err = b2.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Sat))
	})
})

var _ = Describe("lambda elimination", func() {
	It("beta-reduces applications away before solving", func() {
		b := newSession(nil)
		s, _ := b.MkBVSort(8)
		v, _ := b.MkVar(s, "v")
		body, _ := b.MkTerm(node.KBVAdd, []api.Term{v, v})
		lam, _ := b.MkTerm(node.KLambda, []api.Term{v, body})
		x, _ := b.MkConst(s, "x")
		app, _ := b.MkTerm(node.KApply, []api.Term{lam, x})
		dbl, _ := b.MkTerm(node.KBVAdd, []api.Term{x, x})
		eq, _ := b.MkTerm(node.KEqual, []api.Term{app, dbl})
		ne, _ := b.MkTerm(node.KNot, []api.Term{eq})
		Expect(b.AssertFormula(ne)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))
	})
})

var _ = Describe("arrays and functions", func() {
	It("propagates read-over-write", func() {
		b := newSession(nil)
		idx, _ := b.MkBVSort(4)
		arrS, _ := b.MkArraySort(idx, idx)
		a, _ := b.MkConst(arrS, "a")
		i, _ := b.MkConst(idx, "i")
		v, _ := b.MkConst(idx, "v")
		st, _ := b.MkTerm(node.KStore, []api.Term{a, i, v})
		sel, _ := b.MkTerm(node.KSelect, []api.Term{st, i})
		eq, _ := b.MkTerm(node.KEqual, []api.Term{sel, v})
		ne, _ := b.MkTerm(node.KNot, []api.Term{eq})
		Expect(b.AssertFormula(ne)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))
	})

	It("closes congruence for uninterpreted functions", func() {
		// keep the equality out of variable substitution so the
		// lemma loop itself closes the gap
		b := newSession(func(o *api.Options) { o.PPVariableSubst = false })
		s, _ := b.MkBVSort(4)
		fnS, _ := b.MkFunSort([]api.Sort{s}, s)
		f, _ := b.MkConst(fnS, "f")
		x, _ := b.MkConst(s, "x")
		y, _ := b.MkConst(s, "y")
		fx, _ := b.MkTerm(node.KApply, []api.Term{f, x})
		fy, _ := b.MkTerm(node.KApply, []api.Term{f, y})
		eqxy, _ := b.MkTerm(node.KEqual, []api.Term{x, y})
		eqf, _ := b.MkTerm(node.KEqual, []api.Term{fx, fy})
		nef, _ := b.MkTerm(node.KNot, []api.Term{eqf})
		Expect(b.AssertFormula(eqxy)).To(Succeed())
		Expect(b.AssertFormula(nef)).To(Succeed())

		res, err := b.CheckSat()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(api.Unsat))
	})
})
