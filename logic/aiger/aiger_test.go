// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package aiger

import (
	"bytes"
	"testing"

	"github.com/matthewsot/bitwuzla/logic"
)

// note this is 1.9 version: we have MILOABCJF
var expectedOutput1 = `aag 4 1 1 2 1 0 0 0 0
2
4 6 0
4
5
6 2 4
c
aiger file version 1.9 created by bitwuzla
`
var expectedOutput2 = "aig 4 1 1 2 1 0 0 0 0\n6 0\n4\n5\n\x02\x02c\naiger file version 1.9 created by bitwuzla\n"

func makeExample() *T {
	sys := logic.NewSCap(11)
	in := sys.Lit()
	m := sys.Latch(sys.F)
	sys.SetNext(m, sys.F)
	a := sys.And(in, m)
	sys.SetNext(m, a)
	return MakeFor(sys, m, m.Not())
}

func TestWriteAscii(t *testing.T) {
	sys := makeExample()
	var buf bytes.Buffer
	err := sys.WriteAscii(&buf)
	if err != nil {
		t.Errorf("unexpected error in write ascii")
	}
	if buf.String() != expectedOutput1 {
		t.Errorf("unexpected output: %s\nvs\n%s", buf.String(), expectedOutput1)
	}
}

func TestWriteBinary(t *testing.T) {
	sys := makeExample()
	var buf bytes.Buffer
	err := sys.WriteBinary(&buf)
	if err != nil {
		t.Errorf("WriteBinary gave an error")
	}
	if buf.String() != expectedOutput2 {
		t.Errorf("unexpected output got '%s' vs '%s'\n", buf.String(), expectedOutput2)
	}
}

func TestSymbolTable(t *testing.T) {
	sys := makeExample()
	if err := sys.NameInput(0, "clk"); err != nil {
		t.Fatal(err)
	}
	if err := sys.NameInput(0, "bad\nname"); err != InvalidName {
		t.Errorf("newline in name accepted")
	}
	if err := sys.NameInput(9, "oob"); err != InvalidIndex {
		t.Errorf("out of bounds name accepted")
	}
	nm, ok := sys.InputName(0)
	if !ok || nm != "clk" {
		t.Errorf("input name not stored: %q %t", nm, ok)
	}
	var buf bytes.Buffer
	if err := sys.WriteAscii(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("i0 clk")) {
		t.Errorf("symbol table entry missing: %s", buf.String())
	}
}
