// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// A Region is one of the four evaluation regions of a design. Regions are
// static: their update tables are fixed at build time and dispatched in
// declaration order.
//
type Region uint8

// Evaluation regions, in the order they run.
//
//	Initial: one-time setup, run unconditionally at the start of Settle.
//	Settle:  combinational logic, iterated to a fixed point by Settle.
//	Active:  edge-triggered logic, run by Step when its triggers fire.
//	Commit:  non-blocking register commits, run by Step after Active
//	         against the same trigger snapshot.
//
const (
	Initial Region = iota
	Settle
	Active
	Commit
	numRegions
)

func (r Region) String() string {
	switch r {
	case Initial:
		return "initial"
	case Settle:
		return "settle"
	case Active:
		return "active"
	case Commit:
		return "commit"
	}
	return "invalid"
}

// Phase tells an update function whether it is running in the first settle
// pass of a freshly built design or in steady state. It replaces per-design
// first-iteration flags.
//
type Phase uint8

// Phases.
//
const (
	FirstPass Phase = iota
	SteadyState
)

// An UpdateFn is one compiled update function: it reads some signals and
// writes others, through the store it is given. Update functions run to
// completion, single-threaded, in declaration order.
//
type UpdateFn func(st *Store, ph Phase)

// An entry binds an update function to the trigger mask that activates it.
//
type entry struct {
	mask Trigs
	fn   UpdateFn
}

// dispatch runs, in order, every entry whose mask intersects trigs.
//
func dispatch(tab []entry, trigs Trigs, st *Store, ph Phase) {
	for i := range tab {
		if tab[i].mask&trigs != 0 {
			tab[i].fn(st, ph)
		}
	}
}
