// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlib

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/konpaku-ming/netsim"
	"github.com/pkg/errors"
)

// An SRAMPort is the port set of an SRAM.
//
type SRAMPort struct {
	WE    netsim.Sig // write enable
	WAddr netsim.Sig // write address
	WData netsim.Sig // write data
	Read  ReadPort

	load func([]uint64)
}

// Load overwrites the memory contents, for initialization from an image.
// Values are truncated to the data width; words beyond the memory size are
// ignored.
//
func (p *SRAMPort) Load(img []uint64) { p.load(img) }

// SRAM declares a synchronous memory of depth words of width bits with one
// read and one write port. Reads have one cycle of latency: on the rising
// clock edge the read port latches the word at its address, then the write
// lands, so reading the address being written returns the old word.
//
func SRAM(d *netsim.Design, name string, depth, width int, clk netsim.Sig) SRAMPort {
	abits := addrBits(depth)
	p := SRAMPort{
		WE:    d.Signal(name+".we", 1, netsim.Internal),
		WAddr: d.Signal(name+".waddr", abits, netsim.Internal),
		WData: d.Signal(name+".wdata", width, netsim.Internal),
		Read: ReadPort{
			Addr: d.Signal(name+".raddr", abits, netsim.Internal),
			Data: d.Signal(name+".rdata", width, netsim.Internal),
		},
	}
	mem := make([]uint64, depth)
	var mask uint64 = ^uint64(0)
	if width < 64 {
		mask = 1<<uint(width) - 1
	}
	p.load = func(img []uint64) {
		for i := range mem {
			mem[i] = 0
		}
		for i, v := range img {
			if i >= len(mem) {
				break
			}
			mem[i] = v & mask
		}
	}
	clkUp := d.SenseSig(netsim.Posedge, clk)
	d.On(netsim.Commit, clkUp, func(st *netsim.Store, ph netsim.Phase) {
		if a := st.Get(p.Read.Addr); a < uint64(len(mem)) {
			st.Set(p.Read.Data, mem[a])
		} else {
			st.Set(p.Read.Data, 0)
		}
		if st.GetBool(p.WE) {
			if a := st.Get(p.WAddr); a < uint64(len(mem)) {
				mem[a] = st.Get(p.WData)
			}
		}
	})
	return p
}

// ReadMemHex reads a memory image in Verilog $readmemh format: whitespace
// separated hex words, optional "@addr" directives that move the load
// address, and "//" line comments. Gaps are zero filled.
//
func ReadMemHex(r io.Reader) ([]uint64, error) {
	var img []uint64
	addr := 0
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := sc.Text()
		if i := strings.Index(s, "//"); i >= 0 {
			s = s[:i]
		}
		for _, f := range strings.Fields(s) {
			if f[0] == '@' {
				a, err := strconv.ParseUint(f[1:], 16, 32)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: bad address %q", line, f)
				}
				addr = int(a)
				continue
			}
			v, err := strconv.ParseUint(strings.ReplaceAll(f, "_", ""), 16, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad word %q", line, f)
			}
			for addr >= len(img) {
				img = append(img, 0)
			}
			img[addr] = v
			addr++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading memory image")
	}
	return img, nil
}
