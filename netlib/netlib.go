// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package netlib is a library of common synchronous parts: registers, counters,
register files, FIFOs and memories.

Parts are plain functions that wire themselves into a netsim.Design: they
declare their port signals (named "<part>.<port>" so they show up as a scope
in the name directory), register their sensitivity conditions and append
their update functions, then return the port slots in a struct. Internal
state wider than a signal (memory arrays, FIFO rings) lives in closures, not
in the store.

All parts follow register semantics: outputs are committed on the rising
clock edge from pre-edge inputs, so a part's outputs are stable between
steps and loops between parts cannot form.

Parts are limited to signals of 64 bits or less.
*/
package netlib

import (
	"github.com/konpaku-ming/netsim"
)

// A RegPort is the port set of a Reg.
//
type RegPort struct {
	D netsim.Sig // data in
	Q netsim.Sig // registered out
}

// Reg declares a width-bit register latching D into Q on the rising edge of
// clk. A rising edge of rst resets Q to rstVal, asynchronously and with
// priority over the clock; pass NoSig for an unresettable register. Both
// D and Q start at rstVal.
//
func Reg(d *netsim.Design, name string, width int, clk, rst netsim.Sig, rstVal uint64) RegPort {
	din := d.Signal(name+".d", width, netsim.Internal)
	q := d.Signal(name+".q", width, netsim.Internal)
	trigs := d.SenseSig(netsim.Posedge, clk)
	if rst != netsim.NoSig {
		trigs |= d.SenseSig(netsim.Posedge, rst)
	}
	d.On(netsim.Initial, 0, func(st *netsim.Store, ph netsim.Phase) {
		st.Set(din, rstVal)
		st.Set(q, rstVal)
	})
	d.On(netsim.Commit, trigs, func(st *netsim.Store, ph netsim.Phase) {
		if rst != netsim.NoSig && st.GetBool(rst) {
			st.Set(q, rstVal)
			return
		}
		st.Set(q, st.Get(din))
	})
	return RegPort{D: din, Q: q}
}

// A CounterPort is the port set of a Counter.
//
type CounterPort struct {
	En    netsim.Sig // count enable, preset to 1
	Count netsim.Sig // current count
}

// Counter declares a width-bit counter incrementing on every rising clock
// edge while En is high, wrapping at 2^width. A rising edge of rst clears
// it. En starts at 1.
//
func Counter(d *netsim.Design, name string, width int, clk, rst netsim.Sig) CounterPort {
	en := d.Signal(name+".en", 1, netsim.Internal)
	count := d.Signal(name+".count", width, netsim.Output)
	trigs := d.SenseSig(netsim.Posedge, clk)
	if rst != netsim.NoSig {
		trigs |= d.SenseSig(netsim.Posedge, rst)
	}
	d.On(netsim.Initial, 0, func(st *netsim.Store, ph netsim.Phase) {
		st.Set(en, 1)
	})
	d.On(netsim.Commit, trigs, func(st *netsim.Store, ph netsim.Phase) {
		if rst != netsim.NoSig && st.GetBool(rst) {
			st.Set(count, 0)
			return
		}
		if st.GetBool(en) {
			st.Set(count, st.Get(count)+1)
		}
	})
	return CounterPort{En: en, Count: count}
}
