// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matthewsot/bitwuzla/node"
)

// PrintSort renders a sort as SMT-LIB v2 text.
func PrintSort(s Sort) string { return s.String() }

// PrintTerm renders t as SMT-LIB v2 text, emitting let bindings for
// sub-terms referenced more than once.  Binding names are _let0,
// _let1, ... in order of first letification; the output is
// deterministic for a given DAG.
func PrintTerm(t Term) string {
	p := newPrinter()
	p.countRefs(t)
	body := p.print(t)
	// wrap bindings inside out
	for i := len(p.letOrder) - 1; i >= 0; i-- {
		id := p.letOrder[i]
		body = fmt.Sprintf("(let ((%s %s)) %s)", p.letName[id], p.letDef[id], body)
	}
	return body
}

type printer struct {
	refs     map[uint64]int
	letName  map[uint64]string
	letDef   map[uint64]string
	letOrder []uint64
}

func newPrinter() *printer {
	return &printer{
		refs:    make(map[uint64]int),
		letName: make(map[uint64]string),
		letDef:  make(map[uint64]string),
	}
}

func (p *printer) countRefs(t Term) {
	p.refs[t.Id()]++
	if p.refs[t.Id()] > 1 {
		return
	}
	for _, c := range t.Children() {
		p.countRefs(c)
	}
}

// letified reports whether t gets a binding: shared, compound, and
// not a binder (bound variables must stay in scope).
func (p *printer) letified(t Term) bool {
	return p.refs[t.Id()] > 1 && t.NumChildren() > 0 && !t.Kind().IsBinder() &&
		!containsVariable(t)
}

func containsVariable(t Term) bool {
	if t.IsVar() {
		return true
	}
	for _, c := range t.Children() {
		if containsVariable(c) {
			return true
		}
	}
	return false
}

func (p *printer) print(t Term) string {
	if p.letified(t) {
		if n, ok := p.letName[t.Id()]; ok {
			return n
		}
		n := fmt.Sprintf("_let%d", len(p.letOrder))
		p.letName[t.Id()] = n
		p.letDef[t.Id()] = p.printRaw(t)
		p.letOrder = append(p.letOrder, t.Id())
		return n
	}
	return p.printRaw(t)
}

func (p *printer) printRaw(t Term) string {
	switch t.Kind() {
	case node.KConstant:
		if t.Symbol() != "" {
			return t.Symbol()
		}
		return fmt.Sprintf("@bzla.const_%d", t.Id())
	case node.KVariable:
		if t.Symbol() != "" {
			return t.Symbol()
		}
		return fmt.Sprintf("@bzla.var_%d", t.Id())
	case node.KValue:
		return PrintValue(t, 2)
	case node.KConstArray:
		return fmt.Sprintf("((as const %s) %s)", PrintSort(t.Sort()), p.print(t.Child(0)))
	case node.KExists, node.KForall, node.KLambda:
		v := t.Child(0)
		return fmt.Sprintf("(%s ((%s %s)) %s)",
			binderName(t.Kind()), p.printRaw(v), PrintSort(v.Sort()), p.print(t.Child(1)))
	}

	var sb strings.Builder
	sb.WriteByte('(')
	if t.Kind() == node.KApply {
		sb.WriteString(p.print(t.Child(0)))
		for _, c := range t.Children()[1:] {
			sb.WriteByte(' ')
			sb.WriteString(p.print(c))
		}
		sb.WriteByte(')')
		return sb.String()
	}
	sb.WriteString(opName(t))
	for _, c := range t.Children() {
		sb.WriteByte(' ')
		sb.WriteString(p.print(c))
	}
	sb.WriteByte(')')
	return sb.String()
}

func binderName(k Kind) string {
	switch k {
	case node.KExists:
		return "exists"
	case node.KForall:
		return "forall"
	}
	return "lambda"
}

// opName renders the operator, including indexed-operator syntax.
func opName(t Term) string {
	k := t.Kind()
	if t.NumIndices() > 0 {
		parts := make([]string, 0, t.NumIndices())
		for _, ix := range t.Indices() {
			parts = append(parts, fmt.Sprintf("%d", ix))
		}
		return fmt.Sprintf("(_ %s %s)", k.String(), strings.Join(parts, " "))
	}
	if k == node.KIff {
		return "="
	}
	return k.String()
}

// PrintValue renders a value term: bit-vectors as #b/#x/(_ bvN w)
// depending on base, floating-point as (fp sign exp sig), rounding
// modes by their short name and booleans as true/false.
func PrintValue(t Term, base int) string {
	if v, ok := t.BVValue(); ok {
		switch base {
		case 10:
			return fmt.Sprintf("(_ bv%s %d)", v.DecString(), v.Width())
		case 16:
			return "#x" + v.HexString()
		default:
			return "#b" + v.BinString()
		}
	}
	if v, ok := t.FPValue(); ok {
		return fmt.Sprintf("(fp #b%s #b%s #b%s)",
			v.Sign().BinString(), v.Exp().BinString(), v.Sig().BinString())
	}
	if rm, ok := t.RMValue(); ok {
		return rm.String()
	}
	if b, ok := t.BoolValue(); ok {
		if b {
			return "true"
		}
		return "false"
	}
	return t.String()
}

// PrintModel renders (sorted by id) the values of the given terms as
// an SMT-LIB model block.
func PrintModel(b *Bitwuzla, ts []Term) (string, error) {
	ts = append([]Term(nil), ts...)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Id() < ts[j].Id() })
	var sb strings.Builder
	sb.WriteString("(\n")
	for _, t := range ts {
		v, err := b.GetValue(t)
		if err != nil {
			return "", err
		}
		name := t.Symbol()
		if name == "" {
			name = fmt.Sprintf("@bzla.const_%d", t.Id())
		}
		fmt.Fprintf(&sb, "  (define-fun %s () %s %s)\n", name, PrintSort(t.Sort()), PrintTerm(v))
	}
	sb.WriteString(")")
	return sb.String(), nil
}
