// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package aiger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matthewsot/bitwuzla/logic"
	"github.com/matthewsot/bitwuzla/z"
)

// Errors related to naming and formatting
var (
	InvalidIndex = errors.New("invalid index")
	InvalidName  = errors.New("invalid symbol name")
)

// Type Aiger contains the information read from or written to
// disk in Aiger format version 1.9
type T struct {
	*logic.S    // The Boolean system backing this Aiger object
	Inputs      []z.Lit
	Outputs     []z.Lit
	Bad         []z.Lit                 // Read/Write List of Bad state literals
	Constraints []z.Lit                 // Read/Write List of Environment Constraints
	Justice     [][]z.Lit               // Read/Write List of Justice Properties
	Fair        []z.Lit                 // Read/Write List of Fairness Constraints
	symbols     map[byte]map[int]string // symbol table
}

// MakeFor makes an Aiger object from a Boolean system.  The system
// is the backing store for the Aiger object, no copy is made
func MakeFor(sys *logic.S, ms ...z.Lit) *T {
	result := &T{
		S:           sys,
		Bad:         make([]z.Lit, 0),
		Constraints: make([]z.Lit, 0),
		Justice:     make([][]z.Lit, 0),
		Fair:        make([]z.Lit, 0),
		symbols:     make(map[byte]map[int]string, 0)}
	result.symbols['i'] = make(map[int]string, 0)
	result.symbols['l'] = make(map[int]string, 0)
	result.symbols['o'] = make(map[int]string, 0)
	result.symbols['b'] = make(map[int]string, 0)
	result.symbols['c'] = make(map[int]string, 0)
	result.symbols['j'] = make(map[int]string, 0)
	result.symbols['f'] = make(map[int]string, 0)
	n := sys.Len()
	for i := 1; i < n; i++ {
		m := sys.At(i)
		ty := sys.Type(m)
		if ty == logic.SInput {
			result.Inputs = append(result.Inputs, m)
		}
	}
	result.Outputs = make([]z.Lit, len(ms))
	copy(result.Outputs, ms)
	return result
}

// Make makes an Aiger object with initial capacity hint c
// for the underlying logic.S object
func Make(c int) *T {
	return MakeFor(logic.NewSCap(c))
}

// Copy makes a copy of an aiger object.
func Copy(a *T) *T {
	if a == nil {
		return nil
	}
	result := &T{
		S:           a.S.Copy(),
		Bad:         make([]z.Lit, len(a.Bad)),
		Constraints: make([]z.Lit, len(a.Constraints)),
		Justice:     make([][]z.Lit, len(a.Justice)),
		Fair:        make([]z.Lit, len(a.Fair)),
		symbols:     make(map[byte]map[int]string, len(a.symbols))}
	copy(result.Bad, a.Bad)
	copy(result.Constraints, a.Constraints)
	copy(result.Fair, a.Fair)
	for i := 0; i < len(a.Justice); i++ {
		result.Justice[i] = make([]z.Lit, len(a.Justice[i]))
		copy(result.Justice[i], a.Justice[i])
	}
	symKeys := [...]byte{'i', 'l', 'o', 'b', 'c', 'j', 'f'}
	for _, k := range symKeys {
		result.symbols[k] = make(map[int]string, len(a.symbols[k]))
		for i, nm := range a.symbols[k] {
			result.symbols[k][i] = nm
		}
	}
	return result
}

// Return the Boolean system backing this Aiger object
func (a *T) Sys() *logic.S {
	return a.S
}

// Name index'th input with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameInput(index int, nm string) error {
	if index < 0 || index >= len(a.Inputs) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['i'][index] = nm
	return nil
}

// InputName gives the name of the index'th Input in the aiger
// system.  If no such name exists, InputName returns ("", false).
// Otherwise, InputName returns (name, true).
func (a *T) InputName(index int) (string, bool) {
	nm, found := a.symbols['i'][index]
	return nm, found
}

// Name index'th Latch with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameLatch(index int, nm string) error {
	if index < 0 || index >= len(a.Latches) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['l'][index] = nm
	return nil
}

// LatchName gives the name of the index'th Latch in the aiger
// system.  If no such name exists, LatchName returns "", false.
// Otherwise, LatchName returns name, true.
func (a *T) LatchName(index int) (string, bool) {
	nm, found := a.symbols['l'][index]
	return nm, found
}

func (a *T) SetOutput(m z.Lit) {
	a.Outputs = append(a.Outputs, m)
}

func (a *T) NewIn() z.Lit {
	m := a.S.Lit()
	a.Inputs = append(a.Inputs, m)
	return m
}

// Name index'th output with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameOutput(index int, nm string) error {
	if index < 0 || index >= len(a.Outputs) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['o'][index] = nm
	return nil
}

// OutputName gives the name of the index'th Output in the aiger
// system.  If no such name exists, OutputName returns "", false.
// Otherwise, OutputName returns name, true.
func (a *T) OutputName(index int) (string, bool) {
	nm, found := a.symbols['o'][index]
	return nm, found
}

// Name index'th Bad State property with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameBad(index int, nm string) error {
	if index < 0 || index >= len(a.Bad) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['b'][index] = nm
	return nil
}

// BadName gives the name of the index'th Bad state in the aiger
// system.  If no such name exists, BadName returns "", false.
// Otherwise, BadName returns name, true.
func (a *T) BadName(index int) (string, bool) {
	nm, found := a.symbols['b'][index]
	return nm, found
}

// Name index'th Constraint with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameConstraint(index int, nm string) error {
	if index < 0 || index >= len(a.Constraints) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['c'][index] = nm
	return nil
}

// ConstraintName gives the name of the index'th Constraint in the aiger
// system.  If no such name exists, ConstraintName returns "", false.
// Otherwise, ConstraintName returns name, true.
func (a *T) ConstraintName(index int) (string, bool) {
	nm, found := a.symbols['c'][index]
	return nm, found
}

// Name index'th justice property with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameJustice(index int, nm string) error {
	if index < 0 || index >= len(a.Justice) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['j'][index] = nm
	return nil
}

// JusticeName gives the name of the index'th Justice in the aiger
// system.  If no such name exists, JusticeName returns "", false.
// Otherwise, JusticeName returns name, true.
func (a *T) JusticeName(index int) (string, bool) {
	nm, found := a.symbols['j'][index]
	return nm, found
}

// Name the index'th fairness constraint with name nm
// return a non-nil error if index is out of bounds or nm
// contains a new line
func (a *T) NameFair(index int, nm string) error {
	if index < 0 || index >= len(a.Fair) {
		return InvalidIndex
	}
	if strings.Contains(nm, "\n") {
		return InvalidName
	}
	a.symbols['f'][index] = nm
	return nil
}

// FairName gives the name of the index'th Fair in the aiger
// system.  If no such name exists, FairName returns "", false.
// Otherwise, FairName returns name, true.
func (a *T) FairName(index int) (string, bool) {
	nm, found := a.symbols['f'][index]
	return nm, found
}

// WriteAscii writes an ASCII version of AIGER format
// for the object a to the writer w.  WriteAscii returns
// a non-nil error if there was an io error while writing.
func (a *T) WriteAscii(w io.Writer) error {
	hdr := makeHeader(a, false)
	bw := bufio.NewWriter(w)
	hdr.write(bw)
	for _, m := range a.Inputs {
		writeLit(bw, m, a.S.T)
		bw.WriteString("\n")
	}
	for _, m := range a.Latches {
		writeLit(bw, m, a.S.T)
		bw.WriteString(" ")
		writeLit(bw, a.Next(m), a.S.T)
		bw.WriteString(" ")
		ini := a.Init(m)
		switch ini {
		case a.S.F:
			bw.WriteString("0\n")
		case a.S.T:
			bw.WriteString("1\n")
		case z.LitNull:
			writeLit(bw, m, a.S.T)
			bw.WriteString("\n")
		default:
			panic("invalid initial value")
		}
	}
	for _, m := range a.Outputs {
		writeLit(bw, m, a.S.T)
		bw.WriteString("\n")
	}
	for _, m := range a.Bad {
		writeLit(bw, m, a.S.T)
		bw.WriteString("\n")
	}
	for _, m := range a.Constraints {
		writeLit(bw, m, a.S.T)
		bw.WriteString("\n")
	}
	for _, ma := range a.Justice {
		bw.WriteString(fmt.Sprintf("%d\n", len(ma)))
	}
	for _, ma := range a.Justice {
		for _, m := range ma {
			writeLit(bw, m, a.S.T)
			bw.WriteString("\n")
		}
	}
	for _, m := range a.Fair {
		writeLit(bw, m, a.S.T)
		bw.WriteString("\n")
	}
	a.writeAsciiAnds(bw)
	a.writeSymtab(bw)
	writeComment(bw)
	return bw.Flush()
}

// WriteBinary writes the object a in binary
// AIGER format (version 1.9) to the writer w.  WriteBinary
// returns an error if there was an io error while writing.
func (a *T) WriteBinary(w io.Writer) error {
	hdr := makeHeader(a, true)
	bw := bufio.NewWriter(w)
	hdr.write(bw)
	abw := &aigerBinWriter{
		trueLit:   a.S.T,
		firstPass: true,
		w:         bw,
		id:        0,
		idMap:     make([]uint, a.Len())}

	// Stage1: create a mapping that matches binary aiger
	// identifier packing requirements (
	// const ids < all input ids < all latch ids < all and ids)
	// we map constant, then input, then latches,
	// finally ands (ands with a DFS traversal)
	abw.mapLit(a.S.T)
	for _, m := range a.Inputs {
		abw.mapLit(m)
	}
	for _, m := range a.Latches {
		abw.mapLit(m)
	}
	// create mapping for and gates
	nexts := make([]z.Lit, 0, len(a.Latches))
	for _, m := range a.Latches {
		nexts = append(nexts, a.Next(m))
	}
	dfs := newsDfs(a.S, func(s *logic.S, m z.Lit) {
		if s.Type(m) == logic.SAnd {
			abw.mapLit(m)
		}
	})
	dfs.post(a.Outputs...)
	dfs.post(nexts...)
	dfs.post(a.Bad...)
	dfs.post(a.Constraints...)
	for _, ma := range a.Justice {
		dfs.post(ma...)
	}
	dfs.post(a.Fair...)
	dfs.reset()

	// Stage2: write the remaining data.  Latches
	for _, m := range a.Latches {
		var init uint
		ini := a.Init(m)
		if ini == 0 {
			init = abw.forLit(m)
		} else if ini == a.S.F {
			init = 0
		} else if ini == a.S.T {
			init = 1
		} else {
			panic("invalid init state")
		}
		bw.WriteString(fmt.Sprintf("%d %d\n", abw.forLit(a.Next(m)), init))
	}
	// followed by outputs
	for _, m := range a.Outputs {
		bw.WriteString(fmt.Sprintf("%d\n", abw.forLit(m)))
	}
	for _, m := range a.Bad {
		bw.WriteString(fmt.Sprintf("%d\n", abw.forLit(m)))
	}
	for _, m := range a.Constraints {
		bw.WriteString(fmt.Sprintf("%d\n", abw.forLit(m)))
	}
	for _, ma := range a.Justice {
		bw.WriteString(fmt.Sprintf("%d\n", len(ma)))
	}
	for _, ma := range a.Justice {
		for _, m := range ma {
			bw.WriteString(fmt.Sprintf("%d\n", abw.forLit(m)))
		}
	}
	for _, m := range a.Fair {
		bw.WriteString(fmt.Sprintf("%d\n", abw.forLit(m)))
	}
	// second pass writes the ands in binary format.
	dfs.fn = abw.writeBinAnd
	dfs.post(a.Outputs...)
	dfs.post(nexts...)
	dfs.post(a.Bad...)
	dfs.post(a.Constraints...)
	for _, ma := range a.Justice {
		dfs.post(ma...)
	}
	dfs.post(a.Fair...)
	a.writeSymtab(bw)
	// finally write comment
	writeComment(bw)
	return bw.Flush()
}

// write the symbol table
func (a *T) writeSymtab(w *bufio.Writer) error {
	for k, _ := range a.symbols {
		for i, nm := range a.symbols[k] {
			if _, err := w.WriteString(fmt.Sprintf("%c%d %s\n", k, i, nm)); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// writes a trailing comment saying that bitwuzla wrote the file
func writeComment(w *bufio.Writer) {
	w.WriteString("c\naiger file version 1.9 created by bitwuzla\n")
}

func (a *T) writeAsciiAnds(w *bufio.Writer) {
	// be nice and put them in topologic order
	dfs := newsDfs(a.S, func(s *logic.S, m z.Lit) {
		if s.Type(m) != logic.SAnd {
			return
		}
		writeLit(w, m, a.S.T)
		w.WriteString(" ")
		c0, c1 := s.Ins(m)
		writeLit(w, c0, a.S.T)
		w.WriteString(" ")
		writeLit(w, c1, a.S.T)
		w.WriteString("\n")
	})
	nexts := make([]z.Lit, 0, len(a.Latches))
	for _, m := range a.Latches {
		nexts = append(nexts, a.Next(m))
	}
	dfs.post(a.Outputs...)
	dfs.post(a.Bad...)
	dfs.post(a.Constraints...)
	for _, ma := range a.Justice {
		dfs.post(ma...)
	}
	dfs.post(a.Fair...)
	dfs.post(nexts...)
}

// state information for binary writer
type aigerBinWriter struct {
	trueLit   z.Lit
	w         *bufio.Writer
	firstPass bool
	id        uint
	idMap     []uint
}

// map literals from bitwuzla to aiger encoding for writer
func (abw *aigerBinWriter) mapLit(m z.Lit) {
	abw.idMap[int(m.Var())] = abw.id
	abw.id += 2
}

// get an aiger literal for a bitwuzla literal for writer
func (abw *aigerBinWriter) forLit(m z.Lit) uint {
	v := m.Var()
	a := abw.idMap[v]
	if a == 0 || m.IsPos() {
		return a
	}
	return a | 1
}

// implment DfsVis (2 passes, first pass maps and gates
// 2nd pass writes binary encoding using the mapping
// from the 1st pass)
func (abw *aigerBinWriter) writeBinAnd(s *logic.S, m z.Lit) {
	if s.Type(m) != logic.SAnd {
		return
	}
	// *logic.S stores c0 < c1, aiger
	// wants c0 > c1, so we swap
	// the assignment to c1, c0 :=
	c1, c0 := s.Ins(m)
	mc0 := abw.forLit(c0)
	mc1 := abw.forLit(c1)
	me := abw.forLit(m)
	delta0 := me - mc0
	delta1 := mc0 - mc1
	if delta0 <= 0 || delta1 <= 0 {
		panic(fmt.Sprintf("incorrect delta computation %s(%s,%s) d0 %d d1 %d mc0 %d mc1 %d\n", m, c1, c0, delta0, delta1, mc0, mc1))
	}
	write7(abw.w, delta0)
	write7(abw.w, delta1)
}


// header for aiger v 1.9
type aigerHeader struct {
	Binary     bool
	Max        uint
	In         uint
	Latch      uint
	Out        uint
	And        uint
	Bad        uint
	Constraint uint
	Justice    uint
	Fair       uint
}

// creates a header object from a system and an indication
// of whether or not the binary version is desired.
func makeHeader(a *T, binary bool) *aigerHeader {
	s := a.S
	N := s.Len()
	nAnd := uint(0)
	for i := 0; i < N; i++ {
		if s.Type(s.At(i)) == logic.SAnd {
			nAnd++
		}
	}
	return &aigerHeader{
		Binary:     binary,
		Max:        uint(a.Len() - 1),
		In:         uint(len(a.Inputs)),
		Latch:      uint(len(a.Latches)),
		Out:        uint(len(a.Outputs)),
		And:        nAnd,
		Bad:        uint(len(a.Bad)),
		Constraint: uint(len(a.Constraints)),
		Justice:    uint(len(a.Justice)),
		Fair:       uint(len(a.Fair))}
}

// write the header
func (h *aigerHeader) write(w *bufio.Writer) {
	if h.Binary {
		w.WriteString("aig ")
	} else {
		w.WriteString("aag ")
	}
	w.WriteString(fmt.Sprintf("%d %d %d %d %d %d %d %d %d\n",
		h.Max, h.In, h.Latch, h.Out, h.And, h.Bad, h.Constraint,
		h.Justice, h.Fair))
}

// write a literal in AIGER style (modulo 2 gives pos/neg)
func writeLit(w *bufio.Writer, m, t z.Lit) error {
	if m == t {
		_, err := w.WriteString("0")
		return err
	}
	if m == t.Not() {
		_, err := w.WriteString("1")
		return err
	}
	u := m - 2
	_, err := w.WriteString(fmt.Sprintf("%d", uint(u)))
	return err
}

// for binary aiger coding of and deltas
func write7(w *bufio.Writer, val uint) error {
	for val != 0 {
		b := byte(val & 0x7f)
		val = val >> 7
		if val != 0 {
			b |= 0x80
		}
		err := w.WriteByte(b)
		if err != nil {
			return err
		}
	}
	return nil
}
