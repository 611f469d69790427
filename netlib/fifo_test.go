package netlib_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/konpaku-ming/netsim"
	"github.com/konpaku-ming/netsim/netlib"
)

var _ = Describe("FIFO", func() {
	var (
		m   *netsim.Sim
		rst netsim.Sig
		f   netlib.FIFOPort
	)

	BeforeEach(func() {
		m, rst = newBench(func(d *netsim.Design, clk, rst netsim.Sig) {
			f = netlib.FIFO(d, "q", 2, 8, clk, rst)
		})
	})

	push := func(v uint64) {
		m.Set(f.PushValid, 1)
		m.Set(f.PushData, v)
		m.TickTock()
		m.Set(f.PushValid, 0)
	}

	It("should start empty and ready", func() {
		Expect(m.Get(f.PushReady)).To(Equal(uint64(1)))
		Expect(m.Get(f.PopValid)).To(BeZero())
	})

	It("should deliver words in order", func() {
		push(10)
		push(20)
		Expect(m.Get(f.PopValid)).To(Equal(uint64(1)))
		Expect(m.Get(f.PopData)).To(Equal(uint64(10)))
		m.Set(f.PopReady, 1)
		m.TickTock()
		Expect(m.Get(f.PopData)).To(Equal(uint64(20)))
		m.TickTock()
		Expect(m.Get(f.PopValid)).To(BeZero())
	})

	It("should refuse pushes while full", func() {
		push(1)
		push(2)
		Expect(m.Get(f.PushReady)).To(BeZero())
		push(3) // dropped
		m.Set(f.PopReady, 1)
		m.TickTock()
		m.TickTock()
		Expect(m.Get(f.PopValid)).To(BeZero())
	})

	It("should push and pop in the same cycle", func() {
		push(1)
		m.Set(f.PushValid, 1)
		m.Set(f.PushData, 2)
		m.Set(f.PopReady, 1)
		m.TickTock()
		Expect(m.Get(f.PopData)).To(Equal(uint64(2)))
		Expect(m.Get(f.PopValid)).To(Equal(uint64(1)))
	})

	It("should empty on reset", func() {
		push(1)
		m.Set(rst, 1)
		m.Step()
		Expect(m.Get(f.PopValid)).To(BeZero())
		Expect(m.Get(f.PushReady)).To(Equal(uint64(1)))
	})
})
