// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"github.com/konpaku-ming/netsim"
)

// A TriggerCounterPort is the port set of a TriggerCounter.
//
type TriggerCounterPort struct {
	Delta      netsim.Sig // pending-event increment
	DeltaReady netsim.Sig // always high, increments are never refused
	PopReady   netsim.Sig // consumer takes one event this cycle
	PopValid   netsim.Sig // events are pending
	Count      netsim.Sig // pending-event count
}

// TriggerCounter declares a width-bit pending-event counter. On every rising
// clock edge the count gains Delta and, when both PopValid and PopReady are
// high, loses one. PopValid is registered: it reports whether events were
// pending as of the last clock edge. A falling edge of the active-low rst_n
// clears the counter asynchronously.
//
func TriggerCounter(d *netsim.Design, name string, width int, clk, rstn netsim.Sig) TriggerCounterPort {
	p := TriggerCounterPort{
		Delta:      d.Signal(name+".delta", width, netsim.Internal),
		DeltaReady: d.Signal(name+".delta_ready", 1, netsim.Internal),
		PopReady:   d.Signal(name+".pop_ready", 1, netsim.Internal),
		PopValid:   d.Signal(name+".pop_valid", 1, netsim.Internal),
		Count:      d.Signal(name+".count", width, netsim.Output),
	}
	trigs := d.SenseSig(netsim.Posedge, clk)
	if rstn != netsim.NoSig {
		trigs |= d.SenseSig(netsim.Negedge, rstn)
	}
	d.On(netsim.Initial, 0, func(st *netsim.Store, ph netsim.Phase) {
		st.Set(p.DeltaReady, 1)
	})
	d.On(netsim.Commit, trigs, func(st *netsim.Store, ph netsim.Phase) {
		if rstn != netsim.NoSig && !st.GetBool(rstn) {
			st.Set(p.Count, 0)
			st.Set(p.PopValid, 0)
			return
		}
		n := st.Get(p.Count) + st.Get(p.Delta)
		if st.GetBool(p.PopValid) && st.GetBool(p.PopReady) {
			n--
		}
		st.Set(p.Count, n)
		st.SetBool(p.PopValid, st.Get(p.Count) != 0)
	})
	return p
}
