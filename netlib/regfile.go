// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"strconv"

	"github.com/konpaku-ming/netsim"
)

// A ReadPort is one read port of a RegFile or SRAM.
//
type ReadPort struct {
	Addr netsim.Sig
	Data netsim.Sig
}

// A RegFilePort is the port set of a RegFile.
//
type RegFilePort struct {
	WE    netsim.Sig // write enable
	WAddr netsim.Sig // write address
	WData netsim.Sig // write data
	Read  []ReadPort
}

// RegFile declares a register file of depth words of width bits, with one
// write port and nports read ports. On the rising clock edge the write
// lands first, then the read ports latch the word at their address, so a
// read of the address being written returns the new word. Out of range
// addresses read as zero and drop writes.
//
func RegFile(d *netsim.Design, name string, depth, width, nports int, clk netsim.Sig) RegFilePort {
	abits := addrBits(depth)
	p := RegFilePort{
		WE:    d.Signal(name+".we", 1, netsim.Internal),
		WAddr: d.Signal(name+".waddr", abits, netsim.Internal),
		WData: d.Signal(name+".wdata", width, netsim.Internal),
	}
	for i := 0; i < nports; i++ {
		n := strconv.Itoa(i)
		p.Read = append(p.Read, ReadPort{
			Addr: d.Signal(name+".raddr"+n, abits, netsim.Internal),
			Data: d.Signal(name+".rdata"+n, width, netsim.Internal),
		})
	}
	mem := make([]uint64, depth)
	clkUp := d.SenseSig(netsim.Posedge, clk)
	ports := p.Read
	d.On(netsim.Commit, clkUp, func(st *netsim.Store, ph netsim.Phase) {
		if st.GetBool(p.WE) {
			if a := st.Get(p.WAddr); a < uint64(len(mem)) {
				mem[a] = st.Get(p.WData)
			}
		}
		for _, r := range ports {
			a := st.Get(r.Addr)
			if a < uint64(len(mem)) {
				st.Set(r.Data, mem[a])
			} else {
				st.Set(r.Data, 0)
			}
		}
	})
	return p
}

// addrBits returns the width of an address covering depth words. A one word
// memory still gets a 1-bit address port.
func addrBits(depth int) int {
	n := 1
	for 1<<uint(n) < depth {
		n++
	}
	return n
}
