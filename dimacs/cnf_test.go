// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package dimacs

import (
	"bytes"
	"testing"

	"github.com/matthewsot/bitwuzla/z"
)

type dimacsTestData struct {
	D         string
	Strict    bool
	NonStrict bool
}

var cnfs = []dimacsTestData{
	{`c this
c is a comment
c with no body
`, false, true},
	{`c
p cng 7 7
1 0
`, false, false},
	{`p cnf 6 6
-1 0
-2 0
-3 0
-4 0
-5 0
-6 0
`, true, true},
	{`p cnf 2 3
1 0
2 0`, false, true},
	{`c hello
10 11 23 44 -55 0`, false, true},
	{`1 2
3 0`, false, true},
}

type countVis struct {
	clauses int
	lits    int
	inited  bool
}

func (v *countVis) Init(nv, nc int) { v.inited = true }
func (v *countVis) Eof()            {}
func (v *countVis) Add(m z.Lit) {
	if m == z.LitNull {
		v.clauses++
		return
	}
	v.lits++
}

func TestDimacsStrict(t *testing.T) {
	for i, d := range cnfs {
		b := bytes.NewBufferString(d.D)
		e := ReadCnfStrict(b, &countVis{}, true)
		if d.Strict != (e == nil) {
			t.Errorf("case %d: strict/error mismatch %t/%t: %s", i, d.Strict, e == nil, e)
		}
	}
}

func TestDimacsNonStrict(t *testing.T) {
	for i, d := range cnfs {
		b := bytes.NewBufferString(d.D)
		e := ReadCnf(b, &countVis{})
		if d.NonStrict != (e == nil) {
			t.Errorf("case %d: non-strict/error mismatch %t/%t: %s", i, d.NonStrict, e == nil, e)
		}
	}
}

func TestDimacsCounts(t *testing.T) {
	v := &countVis{}
	if e := ReadCnf(bytes.NewBufferString("p cnf 3 2\n1 -2 0\n2 3 0\n"), v); e != nil {
		t.Fatal(e)
	}
	if !v.inited {
		t.Errorf("Init not called for problem line")
	}
	if v.clauses != 2 || v.lits != 4 {
		t.Errorf("counts %d/%d", v.clauses, v.lits)
	}
}
