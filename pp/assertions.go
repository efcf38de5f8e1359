// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package pp

import (
	"github.com/benbjohnson/immutable"
	"github.com/matthewsot/bitwuzla/node"
)

// Assertion is one entry of the stack: the current (possibly
// rewritten) term, the scope level it was asserted at, and the
// original user-level term it descends from, for unsat-core
// provenance.
type Assertion struct {
	Term     node.Term
	Level    int
	Original node.Term
}

// Stack is the append-only, level-tagged assertion log.  Levels are
// non-decreasing along the log.  The backing store is a persistent
// list, so the per-level snapshots taken on Push make Pop an O(1)
// pointer restore.
type Stack struct {
	list  *immutable.List[Assertion]
	level int
	snaps []*immutable.List[Assertion]
}

// NewStack creates an empty assertion stack at level 0.
func NewStack() *Stack {
	return &Stack{list: immutable.NewList[Assertion]()}
}

// Level returns the current scope level.
func (s *Stack) Level() int { return s.level }

// Len returns the number of assertions.
func (s *Stack) Len() int { return s.list.Len() }

// Get returns the i'th assertion.
func (s *Stack) Get(i int) Assertion { return s.list.Get(i) }

// Assert appends t at the current level.  The original defaults to t
// itself.
func (s *Stack) Assert(t node.Term) {
	s.list = s.list.Append(Assertion{Term: t, Level: s.level, Original: t})
}

// AssertDerived appends a derived assertion (a lemma or a flattened
// conjunct) carrying the given provenance.
func (s *Stack) AssertDerived(t, original node.Term) {
	s.list = s.list.Append(Assertion{Term: t, Level: s.level, Original: original})
}

// Push opens k new scopes, snapshotting the current log.
func (s *Stack) Push(k int) {
	for i := 0; i < k; i++ {
		s.snaps = append(s.snaps, s.list)
		s.level++
	}
}

// Pop closes k scopes, restoring the log snapshotted by the matching
// Push.  Popping below level 0 panics.
func (s *Stack) Pop(k int) {
	if k > s.level {
		panic("pop below level 0")
	}
	for i := 0; i < k; i++ {
		s.list = s.snaps[len(s.snaps)-1]
		s.snaps = s.snaps[:len(s.snaps)-1]
		s.level--
	}
}

// Terms returns the asserted terms in order.
func (s *Stack) Terms() []node.Term {
	out := make([]node.Term, 0, s.list.Len())
	itr := s.list.Iterator()
	for !itr.Done() {
		_, a := itr.Next()
		out = append(out, a.Term)
	}
	return out
}

// View is the interface preprocessing passes consume: indexed access
// with replacement and modification tracking.
type View struct {
	s        *Stack
	modified int
	replaced map[int]bool
}

// View creates a fresh view over the stack.
func (s *Stack) View() *View {
	return &View{s: s, replaced: make(map[int]bool)}
}

// Size returns the number of visible assertions.
func (v *View) Size() int { return v.s.list.Len() }

// Get returns the i'th assertion's current term.
func (v *View) Get(i int) node.Term { return v.s.list.Get(i).Term }

// Level returns the scope level of the i'th assertion.
func (v *View) Level(i int) int { return v.s.list.Get(i).Level }

// Original returns the provenance of the i'th assertion.
func (v *View) Original(i int) node.Term { return v.s.list.Get(i).Original }

// Replace substitutes the i'th assertion by t, keeping level and
// provenance.
func (v *View) Replace(i int, t node.Term) {
	a := v.s.list.Get(i)
	if a.Term.Eq(t) {
		return
	}
	a.Term = t
	v.s.list = v.s.list.Set(i, a)
	v.modified++
	v.replaced[i] = true
}

// Add appends a derived assertion at the level and with the
// provenance of the assertion at source.
func (v *View) Add(t node.Term, source int) {
	a := v.s.list.Get(source)
	v.s.list = v.s.list.Append(Assertion{Term: t, Level: a.Level, Original: a.Original})
	v.modified++
}

// NumModified returns the number of modifications since the last
// reset.
func (v *View) NumModified() int { return v.modified }

// Modified reports whether any modification happened since the last
// reset.
func (v *View) Modified() bool { return v.modified > 0 }

// ResetModified clears the modification counter.
func (v *View) ResetModified() {
	v.modified = 0
	v.replaced = make(map[int]bool)
}
