// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"github.com/matthewsot/bitwuzla/dimacs"
	"github.com/matthewsot/bitwuzla/inter"
	"github.com/matthewsot/bitwuzla/z"
)

const (
	// for each Solve() call don't restart until this many conflicts.
	// good for incremental solving.
	RestartAfter  uint  = 1000
	RestartFactor       = 768
	PropTick      int64 = 20000
	CancelTicks   int64 = 1
)

// S implements a CDCL solver with assumptions, test scopes and
// activation literals.
type S struct {
	Vars   *Vars
	Cdb    *Cdb
	Trail  *Trail
	Guess  *Guess
	Driver *Deriver
	Active *Active
	gmu    sync.Mutex
	rmu    sync.Mutex
	luby   *Luby

	// last conflict clause
	x CLoc
	// if trivially inconsistent assumptions, first conflicting assumption
	xLit z.Lit

	// keeps level of start of each test (before assumptions)
	testLevels   []int
	endTestLevel int
	// assumptLevel can be > endTestLevel for untested assumptions
	assumptLevel int
	assumes      []z.Lit // only last set of requested assumptions before solve/test.
	failed       []z.Lit

	// clauses added mid-search are re-examined on the next solve:
	// backtracking may have unwound their propagations
	fresh []CLoc

	// Control
	control          *Ctl
	restartStopwatch int

	// Stats (each object has its own, read by ReadStats())
	stRestarts  int64
	stSat       int64
	stUnsat     int64
	stEnded     int64
	stPinned    int
	stIncPinned int
	stAssumes   int64
	stFailed    int64
}

// NewS creates a new solver with default (relatively small) capacity.
func NewS() *S {
	return NewSVc(128, 768)
}

// NewSV creates a new solver with specified capacity hint for the
// number of variables.
func NewSV(vCapHint int) *S {
	return NewSVc(vCapHint, vCapHint*8)
}

// NewSVc creates a new solver using specified capacity hints for
// number of variables (vCapHint) and number of clauses (cCapHint).
func NewSVc(vCapHint, cCapHint int) *S {
	vars := NewVars(vCapHint)
	cdb := NewCdb(vars, cCapHint)
	return NewSCdb(cdb)
}

// NewSDimacs creates a new S from a dimacs file.
func NewSDimacs(r io.Reader) (*S, error) {
	vis := &DimacsVis{}
	if e := dimacs.ReadCnf(r, vis); e != nil {
		return nil, fmt.Errorf("error reading dimacs: %s", e)
	}
	return vis.S(), nil
}

// NewSCdb creates a new solver from a Cdb.
func NewSCdb(cdb *Cdb) *S {
	vars := cdb.Vars
	guess := NewGuessCdb(cdb)
	trail := NewTrail(cdb, guess)
	drv := NewDeriver(cdb, guess, trail)
	s := &S{
		Vars:   vars,
		Cdb:    cdb,
		Trail:  trail,
		Guess:  guess,
		Driver: drv,
		luby:   NewLuby(),
		x:      CLocNull,
		xLit:   z.LitNull,

		testLevels: make([]int, 0, 128),

		assumptLevel: 0,
		assumes:      make([]z.Lit, 0, 1024),
		failed:       make([]z.Lit, 0, 3),

		restartStopwatch: 0}
	s.control = NewCtl(s)
	s.control.stFunc = func(st *Stats) *Stats {
		s.readStatsLocked(st)
		return st
	}
	return s
}

func (s *S) Copy() *S {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	other := &S{}
	other.Vars = s.Vars.Copy()
	other.Cdb = s.Cdb.CopyWith(other.Vars)
	other.Guess = s.Guess.Copy()
	other.Trail = s.Trail.CopyWith(other.Cdb, other.Guess)
	other.Driver = s.Driver.CopyWith(other.Cdb, other.Guess, other.Trail)
	if s.Active != nil {
		other.Active = s.Active.Copy()
		other.Cdb.Active = other.Active
	}
	luby := NewLuby()
	*luby = *(s.luby)
	other.luby = luby
	other.x = s.x
	other.xLit = s.xLit
	other.testLevels = append([]int(nil), s.testLevels...)
	other.endTestLevel = s.endTestLevel
	other.assumptLevel = s.assumptLevel
	other.assumes = append([]z.Lit(nil), s.assumes...)
	other.failed = append([]z.Lit(nil), s.failed...)
	other.fresh = append([]CLoc(nil), s.fresh...)
	other.restartStopwatch = s.restartStopwatch
	other.control = NewCtl(other)
	other.control.stFunc = func(st *Stats) *Stats {
		other.readStatsLocked(st)
		return st
	}
	return other
}

func (s *S) SCopy() inter.S {
	return s.Copy()
}

// GoSolve provides a connection to Solve() running in another
// goroutine.
func (s *S) GoSolve() inter.Solve {
	go func() {
		s.control.cResult <- s.Solve()
	}()
	return s.control
}

func (s *S) String() string {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	return fmt.Sprintf("<xo@%d>", s.Trail.Level)
}

// Solve solves the problem added to the solver under assumptions
// specified by Assume.
//
// Solve returns -1 if unsat, 1 if sat and 0 if cancelled.
func (s *S) Solve() int {
	s.lock()
	defer s.unlock()
	defer func() {
		s.assumptLevel = 0
		s.assumes = s.assumes[:0]
	}()
	trail := s.Trail
	if r := s.solveInit(); r != 0 {
		return r
	}
	vars := s.Vars
	guess := s.Guess
	guess.nextRestart(s.restartStopwatch)
	driver := s.Driver
	cdb := s.Cdb
	aLevel := s.assumptLevel
	var x CLoc
	nxtTick := trail.Props + PropTick
	tick := int64(0)

	for {
		x = trail.Prop()
		if x != CLocNull {
			// conflict
			if trail.Level <= aLevel {
				s.x = x
				s.stUnsat++
				return -1
			}
			drvd := driver.Derive(x)
			if drvd.TargetLevel < aLevel {
				trail.Back(aLevel)
			} else {
				trail.Back(drvd.TargetLevel)
			}
			trail.Assign(drvd.Unit, drvd.P)
			guess.Decay()
			cdb.Decay()
			if drvd.TargetLevel == 0 {
				s.stPinned = trail.Tail
			} else if drvd.TargetLevel <= aLevel {
				s.stIncPinned = trail.Tail
			}
			s.restartStopwatch--
			continue
		}

		// propagation ticker
		if trail.Props > nxtTick {
			nxtTick += PropTick
			tick++
			if tick%CancelTicks == 0 {
				if !s.control.Tick() {
					s.stEnded++
					trail.Back(s.endTestLevel)
					return 0
				}
			}
		}

		// maybe restart.
		if s.restartStopwatch <= 0 {
			nxt := s.luby.Next()
			s.restartStopwatch = int(nxt * RestartFactor)
			trail.Back(s.assumptLevel)
			s.stRestarts++
			guess.nextRestart(s.restartStopwatch)
		}

		// guess
		m := guess.Guess(vars.Vals)
		if m == z.LitNull {
			errs := cdb.CheckModel()
			if len(errs) != 0 {
				for _, e := range errs {
					log.Println(e)
				}
				log.Println(s.Vars)
				log.Println(s.Trail)
				log.Printf("%p %p internal error: sat model\n", s, s.control)
			}
			s.stSat++
			// the model is stored as regular assignments; backtrack
			// happens on the next call to solve instead.
			return 1
		}
		cdb.MaybeCompact()
		trail.Assign(m, CLocNull)
	}
}

// Value retrieves the value of the literal m.
func (s *S) Value(m z.Lit) bool {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	return s.Vars.Vals[m] == 1
}

// Test checks if the solver is consistent under unit propagation for
// the current assumptions and clauses, and opens a scope for
// subsequent assumptions.
//
// Test returns a pair (res, ns) where
//
//   - res == 1: the problem is SAT with a full model.
//   - res == 0: the problem is consistent under unit propagation but
//     otherwise unknown.
//   - res == -1: the problem is UNSAT.
//
// On res in {0,1}, ns contains all literals assigned since the last
// Test, including assumptions; on res == -1 it is nil.  ns is stored
// in ms if possible.
func (s *S) Test(ms []z.Lit) (res int, ns []z.Lit) {
	s.lock()
	defer s.unlock()
	ns = ms
	if ns != nil {
		ns = ns[:0]
	}
	s.cleanupSolve()
	res = 0
	s.testLevels = append(s.testLevels, s.Trail.Level)

	trail := s.Trail
	start := trail.Tail
	if r := s.makeAssumptions(); r == -1 {
		ns = nil
		res = -1
		return
	}
	end := trail.Tail
	s.endTestLevel = trail.Level
	for i := start; i != end; i++ {
		ns = append(ns, trail.D[i])
	}
	if !s.Guess.has(s.Vars.Vals) {
		errs := s.Cdb.CheckModel()
		if len(errs) != 0 {
			for _, e := range errs {
				log.Println(e)
			}
			log.Fatal("internal error: sat model")
		}
		s.stSat++
		return 1, ns
	}
	return 0, ns
}

// Untest removes assumptions since the last Test and returns -1 if
// the solver is inconsistent under unit propagation after removing
// them, 0 otherwise.  Untest panics without a corresponding Test.
func (s *S) Untest() int {
	s.lock()
	defer s.unlock()
	if len(s.testLevels) == 0 {
		panic("Untest without Test")
	}
	trail := s.Trail
	if s.x != CLocNull {
		drvd := s.Driver.Derive(s.x)
		trail.Assign(drvd.Unit, drvd.P)
		s.x = CLocNull
	}
	lastTestLevel := s.lastTestLevel()
	s.testLevels = s.testLevels[:len(s.testLevels)-1]
	s.endTestLevel = lastTestLevel
	trail.Back(lastTestLevel)
	if x := trail.Prop(); x != CLocNull {
		s.x = x
		return -1
	}
	s.x = CLocNull
	s.xLit = z.LitNull
	return 0
}

// Reasons returns the antecedent literals of a propagated literal m
// returned from Test, stored in dst if possible.
//
// If m is not a propagated literal returned from Test (without an
// Untest in between), the result is undefined.
func (s *S) Reasons(dst []z.Lit, m z.Lit) []z.Lit {
	s.lock()
	defer s.unlock()
	dst = dst[:0]
	p := s.Vars.Reasons[m.Var()]
	if p == CLocNull {
		return dst
	}
	for _, r := range s.Cdb.Lits(p, nil) {
		if r == m {
			continue
		}
		dst = append(dst, r.Not())
	}
	return dst
}

// ReadStats reads data from the solver into st.  Cumulative solver
// values are reset.  The duration and start time attributes of st are
// not touched.
func (s *S) ReadStats(st *Stats) {
	s.rmu.Lock()
	defer s.rmu.Unlock()
	s.readStatsLocked(st)
}

// readStatsLocked is ReadStats without locking, for use from the
// solving goroutine answering a Ctl stats request.
func (s *S) readStatsLocked(st *Stats) {
	st.Restarts += s.stRestarts
	s.stRestarts = 0
	st.Sat += s.stSat
	s.stSat = 0
	st.Unsat += s.stUnsat
	s.stUnsat = 0
	st.Ended += s.stEnded
	s.stEnded = 0
	st.Pinned = s.stPinned
	st.IncPinned = s.stIncPinned
	st.Assumptions += s.stAssumes
	s.stAssumes = 0
	st.Failed += s.stFailed
	s.stFailed = 0
	s.Vars.readStats(st)
	s.Trail.readStats(st)
	s.Guess.readStats(st)
	s.Driver.readStats(st)
	s.Cdb.readStats(st)
}

// Add implements inter.Adder.
func (s *S) Add(m z.Lit) {
	s.ensureLitCap(m)
	loc, u := s.Cdb.Add(m)
	if loc != CLocNull {
		s.fresh = append(s.fresh, loc)
	}
	if u != z.LitNull && s.Vars.Vals[u] == 0 {
		s.Trail.Assign(u, loc)
	}
}

func (s *S) ensureActive() {
	if s.Active == nil {
		s.Active = newActive(int(s.Vars.Top) + 1)
		s.Cdb.Active = s.Active
	}
}

// Activate closes the currently open clause group with a fresh
// activation literal and returns it.  Assume the literal to enable
// the group; Deactivate it to drop the group.
func (s *S) Activate() z.Lit {
	s.ensure0()
	s.ensureActive()
	m := s.Active.Lit(s)
	s.Active.ActivateWith(m, s)
	return m
}

// ActivationLit returns a fresh activation literal without attaching
// it to any clause, for use with ActivateWith.
func (s *S) ActivationLit() z.Lit {
	s.ensure0()
	s.ensureActive()
	return s.Active.Lit(s)
}

// ActivateWith attaches the open clause group to act.
func (s *S) ActivateWith(act z.Lit) {
	s.ensure0()
	s.ensureActive()
	s.Active.ActivateWith(act, s)
}

// Deactivate drops the clause group guarded by m.
func (s *S) Deactivate(m z.Lit) {
	s.ensure0()
	s.ensureActive()
	s.Active.Deactivate(s.Cdb, m)
}

func (s *S) ensure0() {
	if len(s.testLevels) != 0 {
		panic("invalid operation under test scope")
	}
	if s.Trail.Level != 0 {
		s.Trail.Back(0)
	}
	s.x = CLocNull
	s.xLit = z.LitNull
	s.failed = nil
}

// Assume causes the solver to assume the literal m to be true for the
// next call to Solve() or Test().
//
// This may be called multiple times, indicating to make multiple
// assumptions.  Afterwards, if the result is unsat, s.Why() gives a
// subset of inconsistent assumptions.
//
// Solve always forgets/consumes untested assumptions; tested
// assumptions are remembered until Untest.
func (s *S) Assume(ms ...z.Lit) {
	s.lock()
	defer s.unlock()
	for _, m := range ms {
		s.ensureLitCap(m)
	}
	s.stAssumes += int64(len(ms))
	s.assumes = append(s.assumes, ms...)
}

// Who identifies the solver and configuration.
func (s *S) Who() string {
	return fmt.Sprintf("xo.S %s/%s/%d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
}

// MaxVar returns the maximum variable added or assumed.
func (s *S) MaxVar() z.Var {
	s.lock()
	defer s.unlock()
	return s.Vars.Max
}

// Why appends to ms a minimized list of assumptions which together
// caused the previous call to be unsat.
//
// If the previous call was not unsat, Why returns ms.
func (s *S) Why(ms []z.Lit) []z.Lit {
	s.lock()
	defer s.unlock()
	s.failed = ms
	if s.xLit != z.LitNull {
		s.failed = append(s.failed, s.xLit)
		s.final([]z.Lit{s.xLit})
	} else if s.x != CLocNull {
		s.final(s.Cdb.Lits(s.x, nil))
	} else {
		return ms
	}
	return s.failed
}

// returns -1 if known to be inconsistent by BCP, 0 otherwise.
func (s *S) solveInit() int {
	s.luby = NewLuby()
	for {
		r := s.luby.Next() * RestartFactor
		if r >= RestartAfter {
			s.restartStopwatch = int(r)
			break
		}
	}
	s.cleanupSolve()

	// make any new assumptions
	if r := s.makeAssumptions(); r == -1 {
		return r
	}

	// initialize phase
	s.phaseInit()
	return 0
}

func (s *S) cleanupSolve() {
	trail := s.Trail
	for s.x != CLocNull {
		if s.Cdb.Bot != CLocNull { // always checked in makeAssumptions, true empty clause.
			s.x = CLocNull
			break
		}
		drvd := s.Driver.Derive(s.x)
		if drvd.TargetLevel < s.endTestLevel {
			trail.Back(s.endTestLevel)
			s.x = CLocNull
			break
		}
		trail.Back(drvd.TargetLevel)
		trail.Assign(drvd.Unit, drvd.P)
		s.x = trail.Prop()
	}
	trail.Back(s.endTestLevel)
	s.xLit = z.LitNull
	s.failed = nil
}

func (s *S) lastTestLevel() int {
	if len(s.testLevels) > 0 {
		return s.testLevels[len(s.testLevels)-1]
	}
	return 0
}

func (s *S) makeAssumptions() int {
	trail := s.Trail
	s.assumptLevel = trail.Level
	s.stPinned = trail.Tail
	defer func() {
		s.assumes = s.assumes[:0]
	}()
	vals := s.Vars.Vals
	// check if consistent without assumptions
	if s.Cdb.Bot != CLocNull {
		s.x = s.Cdb.Bot
		return -1
	}
	// re-examine clauses added mid-search: backtracking may have
	// unwound what they forced
	kept := s.fresh[:0]
	for i, loc := range s.fresh {
		lits := s.Cdb.Lits(loc, nil)
		unit := z.LitNull
		unknown := 0
		satAt0 := false
		for _, m := range lits {
			switch vals[m] {
			case 1:
				if s.Vars.Level[m.Var()] == 0 {
					satAt0 = true
				}
			case 0:
				unknown++
				unit = m
			}
		}
		if satAt0 {
			continue
		}
		if unknown == 0 {
			sat := false
			for _, m := range lits {
				if vals[m] == 1 {
					sat = true
				}
			}
			if !sat {
				s.x = loc
				s.fresh = append(kept, s.fresh[i:]...)
				return -1
			}
			continue
		}
		if unknown == 1 {
			trail.Assign(unit, loc)
			if trail.Level != 0 {
				// not yet pinned; look again next solve
				kept = append(kept, loc)
			}
		}
		// clauses with two or more unknowns propagate normally from
		// here on
	}
	s.fresh = kept
	if x := trail.Prop(); x != CLocNull {
		s.x = x
		return -1
	}
	for _, m := range s.assumes {
		switch vals[m] {
		case 0:
			s.assumptLevel++
			trail.Assign(m, CLocNull)
			if x := trail.Prop(); x != CLocNull {
				s.x = x
				return -1
			}
			s.stIncPinned = trail.Tail
		case 1:
			// nothing
		case -1:
			s.xLit = m
			s.stFailed++
			return -1
		default:
			panic(fmt.Sprintf("bad value %d\n", vals[m]))
		}
	}
	return 0
}

// phaseInit seeds the saved phases from literal occurrence counts in
// the added clauses, weighting short clauses more heavily.
func (s *S) phaseInit() {
	M := s.Vars.Max
	N := 2*M + 2
	L := uint64(16)
	counts := make([]uint64, N)
	for _, p := range s.Cdb.Added {
		cl := s.Cdb.Clauses[p]
		if cl == nil || cl.Removed {
			continue
		}
		sz := uint64(len(cl.Lits))
		if sz >= L {
			continue
		}
		for _, m := range cl.Lits {
			counts[m] += 1 << (L - sz)
		}
	}
	cache := s.Guess.cache
	for i := z.Var(1); i <= M; i++ {
		m, n := i.Pos(), i.Neg()
		if counts[m] > counts[n] {
			cache[i] = 1
		} else {
			cache[i] = -1
		}
	}
}

func (s *S) final(ms []z.Lit) {
	marks := make([]bool, s.Vars.Max+1)
	for _, m := range ms {
		s.finalRec(m, marks)
	}
}

// finalRec computes the assumptions which caused the problem to be
// unsat (causality here is wrt bcp) and records them in s.failed.
func (s *S) finalRec(m z.Lit, marks []bool) {
	if marks[m.Var()] {
		return
	}
	marks[m.Var()] = true

	r := s.Vars.Reasons[m.Var()]
	if r == CLocNull {
		if s.Vars.Level[m.Var()] != 0 {
			s.failed = append(s.failed, m.Not())
			s.stFailed++
		}
		return
	}
	for _, n := range s.Cdb.Lits(r, nil) {
		if n.Var() == m.Var() {
			continue
		}
		s.finalRec(n, marks)
	}
}

// Lit returns the positive literal of a fresh variable.
func (s *S) Lit() z.Lit {
	n := s.Vars.Max + 1
	m := n.Pos()
	s.ensureLitCap(m)
	return m
}

// we keep a global track of variable/literal capacity here.  when we
// need to grow, all subcomponents grow.
func (s *S) ensureLitCap(m z.Lit) {
	vars := s.Vars
	mVar := m.Var()
	top := vars.Top
	if mVar >= top {
		for top <= mVar {
			top *= 2
		}
		vars.growToVar(top)
		s.Cdb.growToVar(top)
		s.Trail.growToVar(top)
		s.Guess.growToVar(top)
		s.Driver.growToVar(top)
		if s.Active != nil {
			s.Active.growToVar(top)
		}
	}
	if mVar > vars.Max {
		for i := vars.Max + 1; i <= mVar; i++ {
			s.Guess.Push(i.Pos())
		}
		vars.Max = mVar
	}
}

func (s *S) lock() {
	s.gmu.Lock()
	s.rmu.Lock()
}

func (s *S) unlock() {
	s.rmu.Unlock()
	s.gmu.Unlock()
}
