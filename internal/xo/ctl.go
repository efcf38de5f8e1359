// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import (
	"time"
)

// Ctl is the connection to a Solve running in another goroutine.  It
// implements inter.Solve.
//
// The solving goroutine polls the control channels at its safe points
// via Tick; Ctl never touches solver state directly except through
// stFunc, which the solver goroutine itself runs when answering a
// stats request.
type Ctl struct {
	xo     *S
	stFunc func(st *Stats) *Stats

	cResult chan int
	cancel  chan struct{}
	pause   chan struct{}
	statReq chan *Stats
	statRes chan *Stats
}

// StatsResult pairs a stats snapshot with a solve result for
// monitored solving.  Result is 0 while the solve is still running.
type StatsResult struct {
	Stats  *Stats
	Result int
}

// NewCtl creates a control connection for s.
func NewCtl(s *S) *Ctl {
	return &Ctl{
		xo:      s,
		cResult: make(chan int),
		cancel:  make(chan struct{}, 1),
		pause:   make(chan struct{}),
		statReq: make(chan *Stats),
		statRes: make(chan *Stats)}
}

// Tick is called by the solving goroutine at safe points.  It returns
// false if the solve was cancelled; it services pause and stats
// requests in place.
func (c *Ctl) Tick() bool {
	for {
		select {
		case <-c.cancel:
			return false
		case <-c.pause:
			// handshake: block until Unpause drains the token.
			c.pause <- struct{}{}
		case st := <-c.statReq:
			if c.stFunc != nil {
				st = c.stFunc(st)
			}
			c.statRes <- st
		default:
			return true
		}
	}
}

// Test implements inter.Solve.
func (c *Ctl) Test() (int, bool) {
	select {
	case r := <-c.cResult:
		return r, true
	default:
		return 0, false
	}
}

// Try implements inter.Solve.  On timeout the solve is stopped.
func (c *Ctl) Try(d time.Duration) int {
	alarm := time.After(d)
	select {
	case r := <-c.cResult:
		return r
	case <-alarm:
		return c.Stop()
	}
}

// Stop implements inter.Solve.
func (c *Ctl) Stop() int {
	select {
	case r := <-c.cResult:
		return r
	case c.cancel <- struct{}{}:
		return <-c.cResult
	}
}

// Wait implements inter.Solve.
func (c *Ctl) Wait() int {
	return <-c.cResult
}

// Pause implements inter.Solve.
func (c *Ctl) Pause() (int, bool) {
	select {
	case r := <-c.cResult:
		return r, false
	case c.pause <- struct{}{}:
		return 0, true
	}
}

// Unpause implements inter.Solve.
func (c *Ctl) Unpause() {
	<-c.pause
}

// TryStats runs the solve for at most total, emitting a stats
// snapshot every tick.  The final element on the returned channel
// carries the result; the channel is then closed.
func (c *Ctl) TryStats(total, tick time.Duration) <-chan StatsResult {
	out := make(chan StatsResult)
	go func() {
		defer close(out)
		alarm := time.After(total)
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case r := <-c.cResult:
				out <- StatsResult{Result: r}
				return
			case <-alarm:
				out <- StatsResult{Result: c.Stop()}
				return
			case <-ticker.C:
				select {
				case r := <-c.cResult:
					out <- StatsResult{Result: r}
					return
				case c.statReq <- NewStats():
					st := <-c.statRes
					st.Dur = time.Since(st.Start)
					out <- StatsResult{Stats: st}
				}
			}
		}
	}()
	return out
}
