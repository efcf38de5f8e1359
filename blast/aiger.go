// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package blast

import (
	"io"

	"github.com/matthewsot/bitwuzla/logic"
	"github.com/matthewsot/bitwuzla/logic/aiger"
	"github.com/matthewsot/bitwuzla/node"
	"github.com/matthewsot/bitwuzla/z"
)

// WriteAiger dumps the bit-blasted circuit cone of the given roots
// as ASCII AIGER, one output per root.
func (b *Blaster) WriteAiger(w io.Writer, roots ...node.Term) error {
	outs := make([]z.Lit, 0, len(roots))
	for _, t := range roots {
		m, err := b.Bool(t)
		if err != nil {
			return err
		}
		outs = append(outs, m)
	}

	// replay the combinational circuit into a sequential shell the
	// aiger writer understands
	s := logic.NewSCap(b.C.Len())
	lits := make([]z.Lit, b.C.Len())
	lits[1] = s.T
	tr := func(m z.Lit) z.Lit {
		out := lits[m.Var()]
		if !m.IsPos() {
			out = out.Not()
		}
		return out
	}
	for i := 2; i < b.C.Len(); i++ {
		a, d := b.C.Ins(z.Var(uint32(i)).Pos())
		if a == z.LitNull {
			lits[i] = s.Lit()
			continue
		}
		lits[i] = s.And(tr(a), tr(d))
	}
	mapped := make([]z.Lit, len(outs))
	for i, m := range outs {
		mapped[i] = tr(m)
	}
	t := aiger.MakeFor(s, mapped...)
	return t.WriteAscii(w)
}
