// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"

	"github.com/matthewsot/bitwuzla/z"
)

// Guess is the decision heuristic: a max-heap of unassigned variables
// ordered by a decaying activity score, with phase saving in cache.
type Guess struct {
	heap []z.Var
	pos  []int // var -> heap index + 1; 0 when absent
	act  []float64
	// cache saves the last assigned polarity of each variable: 1 for
	// positive, -1 for negative.
	cache []int8

	bump  float64
	decay float64

	stGuesses int64
}

func newGuess(capHint int) *Guess {
	g := &Guess{
		heap:  make([]z.Var, 0, capHint),
		bump:  1.0,
		decay: 0.95}
	g.growToVar(z.Var(capHint))
	return g
}

// NewGuessCdb creates a guess heuristic primed with every variable
// known to cdb.
func NewGuessCdb(cdb *Cdb) *Guess {
	g := newGuess(int(cdb.Vars.Top))
	for v := z.Var(1); v <= cdb.Vars.Max; v++ {
		g.Push(v.Pos())
	}
	return g
}

// Push inserts m's variable into the heap if absent, recording m's
// polarity as the preferred phase.
func (g *Guess) Push(m z.Lit) {
	v := m.Var()
	if v == z.VarNull {
		return
	}
	if int(v) >= len(g.pos) {
		g.growToVar(v)
	}
	if m.IsPos() {
		g.cache[v] = 1
	} else {
		g.cache[v] = -1
	}
	if g.pos[v] != 0 {
		return
	}
	g.heap = append(g.heap, v)
	g.pos[v] = len(g.heap)
	g.up(len(g.heap) - 1)
}

// Bump increases the activity of m's variable.
func (g *Guess) Bump(m z.Lit) {
	v := m.Var()
	if int(v) >= len(g.act) {
		g.growToVar(v)
	}
	g.act[v] += g.bump
	if g.act[v] > 1e100 {
		for i := range g.act {
			g.act[i] *= 1e-100
		}
		g.bump *= 1e-100
	}
	if p := g.pos[v]; p != 0 {
		g.up(p - 1)
	}
}

// Decay scales down past bumps relative to future ones.
func (g *Guess) Decay() {
	g.bump /= g.decay
}

// Guess pops variables until one unassigned under vals is found and
// returns its phase-saved literal, or LitNull if every variable is
// assigned.
func (g *Guess) Guess(vals []int8) z.Lit {
	for len(g.heap) > 0 {
		v := g.pop()
		if vals[v.Pos()] != 0 {
			continue
		}
		g.stGuesses++
		if g.cache[v] == -1 {
			return v.Neg()
		}
		return v.Pos()
	}
	return z.LitNull
}

// has reports whether any queued variable is unassigned under vals.
func (g *Guess) has(vals []int8) bool {
	for _, v := range g.heap {
		if vals[v.Pos()] == 0 {
			return true
		}
	}
	return false
}

// nextRestart tunes the decay rate to the length of the upcoming
// restart interval: short intervals favor recent activity.
func (g *Guess) nextRestart(interval int) {
	switch {
	case interval < 1024:
		g.decay = 0.90
	case interval < 8192:
		g.decay = 0.95
	default:
		g.decay = 0.99
	}
}

// SetPhase forces the preferred phase of m's variable to m's polarity.
func (g *Guess) SetPhase(m z.Lit) {
	v := m.Var()
	if int(v) >= len(g.cache) {
		g.growToVar(v)
	}
	if m.IsPos() {
		g.cache[v] = 1
	} else {
		g.cache[v] = -1
	}
}

// Len returns the number of queued variables.
func (g *Guess) Len() int {
	return len(g.heap)
}

func (g *Guess) pop() z.Var {
	v := g.heap[0]
	g.pos[v] = 0
	last := len(g.heap) - 1
	g.heap[0] = g.heap[last]
	g.heap = g.heap[:last]
	if last > 0 {
		g.pos[g.heap[0]] = 1
		g.down(0)
	}
	return v
}

func (g *Guess) up(i int) {
	v := g.heap[i]
	for i > 0 {
		p := (i - 1) / 2
		if g.act[g.heap[p]] >= g.act[v] {
			break
		}
		g.heap[i] = g.heap[p]
		g.pos[g.heap[i]] = i + 1
		i = p
	}
	g.heap[i] = v
	g.pos[v] = i + 1
}

func (g *Guess) down(i int) {
	v := g.heap[i]
	n := len(g.heap)
	for {
		c := 2*i + 1
		if c >= n {
			break
		}
		if c+1 < n && g.act[g.heap[c+1]] > g.act[g.heap[c]] {
			c++
		}
		if g.act[v] >= g.act[g.heap[c]] {
			break
		}
		g.heap[i] = g.heap[c]
		g.pos[g.heap[i]] = i + 1
		i = c
	}
	g.heap[i] = v
	g.pos[v] = i + 1
}

func (g *Guess) growToVar(top z.Var) {
	w := int(top) + 1
	if w <= len(g.pos) {
		return
	}
	pos := make([]int, w)
	copy(pos, g.pos)
	g.pos = pos

	act := make([]float64, w)
	copy(act, g.act)
	g.act = act

	cache := make([]int8, w)
	copy(cache, g.cache)
	g.cache = cache
}

func (g *Guess) Copy() *Guess {
	other := &Guess{
		bump:  g.bump,
		decay: g.decay}
	other.heap = append([]z.Var(nil), g.heap...)
	other.pos = append([]int(nil), g.pos...)
	other.act = append([]float64(nil), g.act...)
	other.cache = append([]int8(nil), g.cache...)
	return other
}

func (g *Guess) readStats(st *Stats) {
	st.Guesses += g.stGuesses
	g.stGuesses = 0
}

func (g *Guess) String() string {
	return fmt.Sprintf("Guess{queued: %d}", len(g.heap))
}
