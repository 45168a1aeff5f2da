// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// time_control.go implements ITimeManager by splitting the remaining
// clock over an estimated number of moves left to play.

package engine

import (
	"math"
	"sync"
	"time"
)

const (
	defaultMovesToGo    = 30 // default number of more moves expected to play
	defaultBranchFactor = 2  // default branching factor
)

// atomicFlag is an atomic bool that can only be set.
type atomicFlag struct {
	lock sync.Mutex
	flag bool
}

func (af *atomicFlag) set() {
	af.lock.Lock()
	af.flag = true
	af.lock.Unlock()
}

func (af *atomicFlag) get() bool {
	af.lock.Lock()
	tmp := af.flag
	af.lock.Unlock()
	return tmp
}

// TimeControl splits the remaining time over MovesToGo and implements
// ITimeManager so it can drive Engine.Search directly.
type TimeControl struct {
	WTime, WInc time.Duration // time and increment for white
	BTime, BInc time.Duration // time and increment for black
	Depth       int           // maximum depth to search, inclusive
	MovesToGo   int           // number of remaining moves

	numPieces  int
	sideToMove Color
	stopped    atomicFlag

	start          time.Time
	searchTime     time.Duration
	searchDeadline time.Time
}

// NewTimeControl returns a time control with no time limit and no depth
// limit, for pos, which is used to estimate the branching factor from
// the remaining material.
func NewTimeControl(pos *Position) *TimeControl {
	inf := time.Duration(math.MaxInt64)
	return &TimeControl{
		WTime:      inf,
		WInc:       0,
		BTime:      inf,
		BInc:       0,
		Depth:      MaxHeight,
		MovesToGo:  defaultMovesToGo,
		numPieces:  (pos.ByColor[White] | pos.ByColor[Black]).Count(),
		sideToMove: pos.SideToMove,
	}
}

// NewFixedDepthTimeControl builds a time control that only limits search
// depth, never wall-clock time.
func NewFixedDepthTimeControl(pos *Position, depth int) *TimeControl {
	tc := NewTimeControl(pos)
	tc.Depth = depth
	tc.MovesToGo = 1
	return tc
}

// NewDeadlineTimeControl builds a time control whose clock is deadline
// with one move to go. Start divides that time by its branching-factor
// estimate, so the search stops well before deadline has elapsed.
func NewDeadlineTimeControl(pos *Position, deadline time.Duration) *TimeControl {
	tc := NewTimeControl(pos)
	tc.WTime = deadline
	tc.BTime = deadline
	tc.MovesToGo = 1
	return tc
}

// thinkingTime calculates how much time to think this round: t is the
// remaining time, i is the increment.
func (tc *TimeControl) thinkingTime(t, i time.Duration) time.Duration {
	tmp := time.Duration(tc.MovesToGo)
	if tt := (t + (tmp-1)*i) / tmp; tt < t {
		return tt
	}
	return t
}

// Start starts the timer. Should be called as soon as possible after a
// "go" command so the deadline reflects the true elapsed time.
func (tc *TimeControl) Start() {
	branchFactor := time.Duration(defaultBranchFactor)
	for np := tc.numPieces - 2; np > 0; np /= 6 {
		branchFactor++
	}
	for i := 4; i > 0; i /= 2 {
		if tc.MovesToGo <= i {
			branchFactor++
		}
	}

	var otime, oinc time.Duration
	if tc.sideToMove == White {
		otime, oinc = tc.WTime, tc.WInc
	} else {
		otime, oinc = tc.BTime, tc.BInc
	}

	tc.stopped = atomicFlag{}
	tc.start = time.Now()
	tc.searchTime = tc.thinkingTime(otime, oinc) / branchFactor
	tc.searchDeadline = tc.start.Add(tc.searchTime)
}

// Elapsed implements ITimeManager.
func (tc *TimeControl) Elapsed() time.Duration {
	return time.Since(tc.start)
}

// CheckTimeout implements ITimeManager: it latches and returns true once
// the deadline has passed or Stop was called.
func (tc *TimeControl) CheckTimeout() bool {
	if tc.stopped.get() {
		return true
	}
	if time.Now().After(tc.searchDeadline) {
		tc.stopped.set()
		return true
	}
	return false
}

// IterationComplete implements ITimeManager. A plain depth/time budget
// has nothing extra to react to between iterations; callers that want
// early-exit-on-stable-best-move behavior can wrap TimeControl.
func (tc *TimeControl) IterationComplete(info SearchInfo) {}

// NextDepth returns true if iterative deepening should start depth.
// Depth 1 and 2 are always allowed so a search under a near-zero
// deadline still returns a legal move.
func (tc *TimeControl) NextDepth(depth int) bool {
	return depth <= tc.Depth && (depth <= 2 || !tc.CheckTimeout())
}

// Stop marks the search as stopped; the result already computed will be
// used as the final answer.
func (tc *TimeControl) Stop() {
	tc.stopped.set()
}

// Stopped reports whether the search has stopped, without the latching
// side effect of CheckTimeout.
func (tc *TimeControl) Stopped() bool {
	return tc.stopped.get()
}
