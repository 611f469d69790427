// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"github.com/konpaku-ming/netsim"
)

// A FIFOPort is the port set of a FIFO.
//
type FIFOPort struct {
	PushValid netsim.Sig // producer has data
	PushData  netsim.Sig
	PushReady netsim.Sig // FIFO can accept it
	PopValid  netsim.Sig // FIFO has data
	PopData   netsim.Sig
	PopReady  netsim.Sig // consumer will take it
}

// FIFO declares a first-in first-out queue of depth words of width bits with
// valid/ready handshakes on both ends. A transfer happens on a rising clock
// edge when both valid and ready of a side are high; pop and push can happen
// in the same cycle. A rising edge of rst empties the queue. PushReady,
// PopValid and PopData are registered: they reflect the queue state as of
// the last clock edge.
//
func FIFO(d *netsim.Design, name string, depth, width int, clk, rst netsim.Sig) FIFOPort {
	p := FIFOPort{
		PushValid: d.Signal(name+".push_valid", 1, netsim.Internal),
		PushData:  d.Signal(name+".push_data", width, netsim.Internal),
		PushReady: d.Signal(name+".push_ready", 1, netsim.Internal),
		PopValid:  d.Signal(name+".pop_valid", 1, netsim.Internal),
		PopData:   d.Signal(name+".pop_data", width, netsim.Internal),
		PopReady:  d.Signal(name+".pop_ready", 1, netsim.Internal),
	}
	ring := make([]uint64, depth)
	var head, used int
	trigs := d.SenseSig(netsim.Posedge, clk)
	if rst != netsim.NoSig {
		trigs |= d.SenseSig(netsim.Posedge, rst)
	}
	update := func(st *netsim.Store) {
		st.SetBool(p.PushReady, used < len(ring))
		st.SetBool(p.PopValid, used > 0)
		if used > 0 {
			st.Set(p.PopData, ring[head])
		}
	}
	d.On(netsim.Initial, 0, func(st *netsim.Store, ph netsim.Phase) {
		update(st)
	})
	d.On(netsim.Commit, trigs, func(st *netsim.Store, ph netsim.Phase) {
		if rst != netsim.NoSig && st.GetBool(rst) {
			head, used = 0, 0
			update(st)
			return
		}
		if st.GetBool(p.PopValid) && st.GetBool(p.PopReady) {
			head = (head + 1) % len(ring)
			used--
		}
		if st.GetBool(p.PushValid) && st.GetBool(p.PushReady) {
			ring[(head+used)%len(ring)] = st.Get(p.PushData)
			used++
		}
		update(st)
	})
	return p
}
