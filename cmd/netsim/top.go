// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/konpaku-ming/netsim"
	"github.com/konpaku-ming/netsim/netlib"
	"github.com/konpaku-ming/netsim/sym"
)

// top is the built-in demo design: a self-triggering driver incrementing a
// one-word register file, paced by a pending-event counter. Each cycle the
// trigger counter gains one event; while events are pending the driver pops
// one, bumps cnt and exposes the written value.
//
type top struct {
	m *netsim.Sim

	clk, rst netsim.Sig
	rstn     netsim.Sig // active-low mirror of rst, for the trigger counter
	executed netsim.Sig // driver fired at the last clock edge
	cntRd    netsim.Sig // cnt value as of the last clock edge
	cycles   netsim.Sig // free-running cycle counter
	finish   netsim.Sig
}

func buildTop() (*top, *sym.Table, error) {
	d := netsim.NewDesign("top").Locate("cmd/netsim/top.go")
	sigs := d.Signals("clk, rst, rst_n", netsim.Input)
	t := &top{clk: sigs[0], rst: sigs[1], rstn: sigs[2]}

	cyc := netlib.Counter(d, "top.cycle", 64, t.clk, t.rst)
	tc := netlib.TriggerCounter(d, "top.driver.tc", 8, t.clk, t.rstn)
	rf := netlib.RegFile(d, "top.cnt", 1, 32, 2, t.clk)

	t.executed = d.Signal("top.driver.executed", 1, netsim.Internal)
	t.cntRd = d.Signal("top.cnt_rd", 32, netsim.Output)
	t.cycles = cyc.Count
	t.finish = d.Signal("top.finish", 1, netsim.Output)

	clkUp := d.SenseSig(netsim.Posedge, t.clk)

	// one new event per cycle
	d.On(netsim.Initial, 0, func(st *netsim.Store, ph netsim.Phase) {
		st.Set(tc.Delta, 1)
	})
	// driver: pops an event when one is pending and writes cnt+1 back
	d.On(netsim.Active, clkUp, func(st *netsim.Store, ph netsim.Phase) {
		ex := st.GetBool(tc.PopValid)
		st.SetBool(t.executed, ex)
		st.SetBool(tc.PopReady, ex)
		st.SetBool(rf.WE, ex)
		v := st.Get(rf.Read[0].Data) + 1
		st.Set(rf.WData, v)
		if ex {
			st.Set(t.cntRd, v)
		}
	})

	d.Clock(t.clk)
	d.Finish(t.finish)

	m, err := d.Build()
	if err != nil {
		return nil, nil, err
	}
	t.m = m
	return t, sym.New(m.Store()), nil
}
