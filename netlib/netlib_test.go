package netlib_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/konpaku-ming/netsim"
	"github.com/konpaku-ming/netsim/netlib"
)

// newBench declares clk and rst inputs, hands the design to wire for parts,
// builds and settles it.
func newBench(wire func(d *netsim.Design, clk, rst netsim.Sig)) (*netsim.Sim, netsim.Sig) {
	d := netsim.NewDesign("bench")
	sigs := d.Signals("clk, rst", netsim.Input)
	clk, rst := sigs[0], sigs[1]
	wire(d, clk, rst)
	d.Clock(clk)
	m, err := d.Build()
	Expect(err).ToNot(HaveOccurred())
	Expect(m.Settle()).To(Succeed())
	return m, rst
}

var _ = Describe("Reg", func() {
	var (
		m   *netsim.Sim
		rst netsim.Sig
		r   netlib.RegPort
	)

	BeforeEach(func() {
		m, rst = newBench(func(d *netsim.Design, clk, rst netsim.Sig) {
			r = netlib.Reg(d, "r0", 8, clk, rst, 0xa5)
		})
	})

	It("should start at its reset value", func() {
		Expect(m.Get(r.Q)).To(Equal(uint64(0xa5)))
	})

	It("should latch D on the rising edge only", func() {
		m.Set(r.D, 0x42)
		Expect(m.Get(r.Q)).To(Equal(uint64(0xa5)))
		m.Tock()
		Expect(m.Get(r.Q)).To(Equal(uint64(0xa5)))
		m.Tick()
		Expect(m.Get(r.Q)).To(Equal(uint64(0x42)))
	})

	It("should reset asynchronously", func() {
		m.Set(r.D, 0x42)
		m.TickTock()
		Expect(m.Get(r.Q)).To(Equal(uint64(0x42)))
		m.Set(rst, 1)
		m.Step()
		Expect(m.Get(r.Q)).To(Equal(uint64(0xa5)))
	})

	It("should hold reset over a clock edge while rst stays high", func() {
		m.Set(r.D, 0x42)
		m.Set(rst, 1)
		m.Step()
		m.TickTock()
		Expect(m.Get(r.Q)).To(Equal(uint64(0xa5)))
	})

	It("should mask D to its width", func() {
		m.Set(r.D, 0x1ff)
		m.TickTock()
		Expect(m.Get(r.Q)).To(Equal(uint64(0xff)))
	})
})

var _ = Describe("Counter", func() {
	var (
		m   *netsim.Sim
		rst netsim.Sig
		c   netlib.CounterPort
	)

	BeforeEach(func() {
		m, rst = newBench(func(d *netsim.Design, clk, rst netsim.Sig) {
			c = netlib.Counter(d, "c0", 4, clk, rst)
		})
	})

	It("should count rising edges", func() {
		for i := 0; i < 5; i++ {
			m.TickTock()
		}
		Expect(m.Get(c.Count)).To(Equal(uint64(5)))
	})

	It("should wrap at its width", func() {
		for i := 0; i < 17; i++ {
			m.TickTock()
		}
		Expect(m.Get(c.Count)).To(Equal(uint64(1)))
	})

	It("should pause while disabled", func() {
		m.TickTock()
		m.Set(c.En, 0)
		m.TickTock()
		m.TickTock()
		m.Set(c.En, 1)
		m.TickTock()
		Expect(m.Get(c.Count)).To(Equal(uint64(2)))
	})

	It("should clear on reset", func() {
		m.TickTock()
		m.TickTock()
		m.Set(rst, 1)
		m.Step()
		Expect(m.Get(c.Count)).To(BeZero())
	})
})

var _ = Describe("RegFile", func() {
	var (
		m *netsim.Sim
		f netlib.RegFilePort
	)

	BeforeEach(func() {
		m, _ = newBench(func(d *netsim.Design, clk, rst netsim.Sig) {
			f = netlib.RegFile(d, "rf", 4, 32, 2, clk)
		})
	})

	It("should write and read back", func() {
		m.Set(f.WE, 1)
		m.Set(f.WAddr, 2)
		m.Set(f.WData, 0xdeadbeef)
		m.TickTock()
		m.Set(f.WE, 0)
		m.Set(f.Read[0].Addr, 2)
		m.TickTock()
		Expect(m.Get(f.Read[0].Data)).To(Equal(uint64(0xdeadbeef)))
	})

	It("should read the new word in the write cycle", func() {
		m.Set(f.WE, 1)
		m.Set(f.WAddr, 1)
		m.Set(f.WData, 7)
		m.Set(f.Read[0].Addr, 1)
		m.TickTock()
		Expect(m.Get(f.Read[0].Data)).To(Equal(uint64(7)))
	})

	It("should serve both read ports", func() {
		m.Set(f.WE, 1)
		m.Set(f.WAddr, 0)
		m.Set(f.WData, 11)
		m.TickTock()
		m.Set(f.WAddr, 3)
		m.Set(f.WData, 13)
		m.TickTock()
		m.Set(f.WE, 0)
		m.Set(f.Read[0].Addr, 0)
		m.Set(f.Read[1].Addr, 3)
		m.TickTock()
		Expect(m.Get(f.Read[0].Data)).To(Equal(uint64(11)))
		Expect(m.Get(f.Read[1].Data)).To(Equal(uint64(13)))
	})
})

var _ = Describe("TriggerCounter", func() {
	var (
		m    *netsim.Sim
		rstn netsim.Sig
		tc   netlib.TriggerCounterPort
	)

	BeforeEach(func() {
		d := netsim.NewDesign("bench")
		sigs := d.Signals("clk, rst_n", netsim.Input)
		tc = netlib.TriggerCounter(d, "cnt", 8, sigs[0], sigs[1])
		d.Clock(sigs[0])
		var err error
		m, err = d.Build()
		Expect(err).ToNot(HaveOccurred())
		rstn = sigs[1]
		m.Set(rstn, 1)
		Expect(m.Settle()).To(Succeed())
	})

	It("should be empty and ready after settle", func() {
		Expect(m.Get(tc.Count)).To(BeZero())
		Expect(m.Get(tc.PopValid)).To(BeZero())
		Expect(m.Get(tc.DeltaReady)).To(Equal(uint64(1)))
	})

	It("should accumulate deltas", func() {
		m.Set(tc.Delta, 3)
		m.TickTock()
		m.Set(tc.Delta, 2)
		m.TickTock()
		m.Set(tc.Delta, 0)
		Expect(m.Get(tc.Count)).To(Equal(uint64(5)))
		Expect(m.Get(tc.PopValid)).To(Equal(uint64(1)))
	})

	It("should drain one event per pop handshake", func() {
		m.Set(tc.Delta, 2)
		m.TickTock()
		m.Set(tc.Delta, 0)
		m.Set(tc.PopReady, 1)
		m.TickTock()
		Expect(m.Get(tc.Count)).To(Equal(uint64(1)))
		m.TickTock()
		Expect(m.Get(tc.Count)).To(BeZero())
		Expect(m.Get(tc.PopValid)).To(BeZero())
		// handshake with no pending events does nothing
		m.TickTock()
		Expect(m.Get(tc.Count)).To(BeZero())
	})

	It("should pop and accumulate in the same cycle", func() {
		m.Set(tc.Delta, 1)
		m.TickTock()
		m.Set(tc.PopReady, 1)
		m.TickTock()
		// +1 and -1: still one pending
		Expect(m.Get(tc.Count)).To(Equal(uint64(1)))
	})

	It("should clear on the falling edge of rst_n", func() {
		m.Set(tc.Delta, 5)
		m.TickTock()
		m.Set(tc.Delta, 0)
		m.Set(rstn, 0)
		m.Step()
		Expect(m.Get(tc.Count)).To(BeZero())
		Expect(m.Get(tc.PopValid)).To(BeZero())
	})
})
