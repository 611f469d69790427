package netlib_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/konpaku-ming/netsim"
	"github.com/konpaku-ming/netsim/netlib"
)

var _ = Describe("SRAM", func() {
	var (
		m *netsim.Sim
		s netlib.SRAMPort
	)

	BeforeEach(func() {
		m, _ = newBench(func(d *netsim.Design, clk, rst netsim.Sig) {
			s = netlib.SRAM(d, "mem", 8, 16, clk)
		})
	})

	It("should read with one cycle of latency", func() {
		s.Load([]uint64{0x1111, 0x2222, 0x3333})
		m.Set(s.Read.Addr, 1)
		Expect(m.Get(s.Read.Data)).To(BeZero())
		m.TickTock()
		Expect(m.Get(s.Read.Data)).To(Equal(uint64(0x2222)))
	})

	It("should write through the port", func() {
		m.Set(s.WE, 1)
		m.Set(s.WAddr, 5)
		m.Set(s.WData, 0xcafe)
		m.TickTock()
		m.Set(s.WE, 0)
		m.Set(s.Read.Addr, 5)
		m.TickTock()
		Expect(m.Get(s.Read.Data)).To(Equal(uint64(0xcafe)))
	})

	It("should truncate loaded words to the data width", func() {
		s.Load([]uint64{0x12345})
		m.Set(s.Read.Addr, 0)
		m.TickTock()
		Expect(m.Get(s.Read.Data)).To(Equal(uint64(0x2345)))
	})
})

var _ = Describe("ReadMemHex", func() {
	It("should read words, comments and address directives", func() {
		img, err := netlib.ReadMemHex(strings.NewReader(`
// boot block
dead beef
@4
1234_5678 // checksum
`))
		Expect(err).ToNot(HaveOccurred())
		Expect(img).To(Equal([]uint64{0xdead, 0xbeef, 0, 0, 0x12345678}))
	})

	It("should reject bad words", func() {
		_, err := netlib.ReadMemHex(strings.NewReader("xyz"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("bad word"))
	})

	It("should reject bad addresses", func() {
		_, err := netlib.ReadMemHex(strings.NewReader("@zz"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("bad address"))
	})
})
