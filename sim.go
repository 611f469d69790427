// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "strconv"

// SettleIterationLimit bounds the settle fixed-point iteration. A
// combinational network that has not converged after this many passes is
// broken by construction, not slow; Settle reports a ConvergenceError and
// the simulation cannot continue.
//
const SettleIterationLimit = 100

// A ConvergenceError is the single fatal runtime condition of the kernel:
// the settle region failed to reach a fixed point within the iteration cap.
// It is never retried; a non-converging fixed point stays non-converging.
//
type ConvergenceError struct {
	Design  string // design name
	Loc     string // circuit description location, if known
	Iters   int    // iterations performed before giving up
	Pending string // triggers still firing in the last pass
}

func (e *ConvergenceError) Error() string {
	s := e.Design
	if e.Loc != "" {
		s += " (" + e.Loc + ")"
	}
	s += ": settle region did not converge after " +
		strconv.Itoa(e.Iters) + " iterations"
	if e.Pending != "" {
		s += " (still firing: " + e.Pending + ")"
	}
	return s
}

// A Sim is a runnable simulation built from a Design. It is single-threaded:
// Settle and Step run to completion before returning, and nothing else ever
// touches the store.
//
type Sim struct {
	name       string
	loc        string
	st         *Store
	det        detector
	regions    [numRegions][]entry
	settleMask Trigs
	clk        Sig
	finish     Sig

	first   bool // next settle is the first evaluation ever
	settled bool
	steps   uint64
	cycles  uint64
}

// Store returns the simulation's signal store. Drivers write inputs and read
// outputs through it between calls to Step; values are stable and fully
// committed whenever Step is not executing.
//
func (m *Sim) Store() *Store { return m.st }

// Name returns the design name.
//
func (m *Sim) Name() string { return m.name }

// Get returns the value of signal n.
//
func (m *Sim) Get(n Sig) uint64 { return m.st.Get(n) }

// Set sets the value of signal n.
//
func (m *Sim) Set(n Sig, v uint64) { m.st.Set(n, v) }

// Steps returns the number of Step calls performed so far.
//
func (m *Sim) Steps() uint64 { return m.steps }

// Cycles returns the number of full clock cycles driven by TickTock or Run.
//
func (m *Sim) Cycles() uint64 { return m.cycles }

// Settle runs the design to its initial fixed point. On the first call it
// runs the Initial region once, unconditionally, then iterates the Settle
// region until no settle trigger fires, with the first pass marked as
// FirstPass and carrying the forced TrigFirst trigger. Subsequent calls
// re-enter the loop only: an already stable design converges in zero
// iterations and is left unchanged.
//
// Settle must be called once before Step. It is not re-entered per step;
// per-step combinational logic belongs to the Active region and must
// converge in its single ordered pass.
//
func (m *Sim) Settle() error {
	if m.first {
		dispatch(m.regions[Initial], ^Trigs(0), m.st, FirstPass)
		m.det.snapshot(m.st)
	}
	iter := 0
	for {
		trigs := m.det.compute(m.st) & m.settleMask
		ph := SteadyState
		if m.first {
			trigs |= TrigFirst
			ph = FirstPass
		}
		m.det.snapshot(m.st)
		if !trigs.Any() {
			break
		}
		iter++
		if iter > SettleIterationLimit {
			return &ConvergenceError{
				Design:  m.name,
				Loc:     m.loc,
				Iters:   SettleIterationLimit,
				Pending: m.det.label(trigs),
			}
		}
		dispatch(m.regions[Settle], trigs, m.st, ph)
		m.first = false
	}
	m.first = false
	m.settled = true
	return nil
}

// Step performs exactly one evaluation in response to one set of input
// changes (typically one clock half-period). Strictly ordered:
//
//	1. compute the trigger bitset from current vs. previous values;
//	2. run Active entries whose masks intersect it, in declaration order;
//	3. run Commit entries against the same bitset, not re-sampled after
//	   step 2's writes, so registers commit values computed from pre-step
//	   state;
//	4. snapshot previous values for the next call.
//
// Step never loops and never fails.
//
func (m *Sim) Step() {
	if !m.settled {
		panic("netsim: Step before Settle on design " + m.name)
	}
	trigs := m.det.compute(m.st)
	dispatch(m.regions[Active], trigs, m.st, SteadyState)
	dispatch(m.regions[Commit], trigs, m.st, SteadyState)
	m.det.snapshot(m.st)
	m.steps++
}

// Tick drives the rising half-period: it raises the clock input and runs one
// Step. It panics if the design has no designated clock.
//
func (m *Sim) Tick() {
	m.st.Set(m.mustClk(), 1)
	m.Step()
}

// Tock drives the falling half-period: it lowers the clock input and runs
// one Step.
//
func (m *Sim) Tock() {
	m.st.Set(m.mustClk(), 0)
	m.Step()
}

// TickTock runs one full clock cycle.
//
func (m *Sim) TickTock() {
	m.Tick()
	m.Tock()
	m.cycles++
}

// Run drives up to n full clock cycles, stopping early when the designated
// finish signal becomes non-zero. It returns the number of cycles driven.
//
func (m *Sim) Run(n uint64) uint64 {
	var i uint64
	for ; i < n; i++ {
		m.TickTock()
		if m.finish != NoSig && m.st.GetBool(m.finish) {
			i++
			break
		}
	}
	return i
}

// Finished reports whether the designated finish signal is non-zero.
//
func (m *Sim) Finished() bool {
	return m.finish != NoSig && m.st.GetBool(m.finish)
}

func (m *Sim) mustClk() Sig {
	if m.clk == NoSig {
		panic("netsim: no clock signal designated on design " + m.name)
	}
	return m.clk
}
