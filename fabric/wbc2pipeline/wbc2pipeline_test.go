package wbc2pipeline

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

var _ = Describe("WBC2Pipeline", func() {
	var (
		classic   *wishbone.Bus
		pipelined *wishbone.PipelinedBus
		c         *Comp
	)

	BeforeEach(func() {
		classic = wishbone.New("Classic", 32, 30)
		pipelined = wishbone.NewPipelined("Pipelined", 32, 30)
		c = MakeBuilder().
			WithClassic(classic).
			WithPipelined(pipelined).
			Build("Conv")
	})

	settle := func() {
		for c.Update() {
		}
	}

	cycle := func() {
		settle()
		c.Commit()
	}

	It("should latch an upstream request and present it downstream", func() {
		classic.Adr = 0x80
		classic.DatW[0] = 0x5A
		classic.Sel[0] = true
		classic.We = true
		classic.Cyc = true
		classic.Stb = true
		cycle()

		settle()
		Expect(pipelined.Cyc).To(BeTrue())
		Expect(pipelined.Stb).To(BeTrue())
		Expect(pipelined.Adr).To(Equal(uint64(0x80)))
		Expect(pipelined.DatW[0]).To(Equal(byte(0x5A)))
		Expect(pipelined.Sel[0]).To(BeTrue())
		Expect(pipelined.We).To(BeTrue())
	})

	It("should hold the strobe while the downstream side stalls", func() {
		classic.Adr = 0x80
		classic.Cyc = true
		classic.Stb = true
		cycle()

		pipelined.Stall = true
		cycle()
		settle()
		Expect(pipelined.Stb).To(BeTrue())

		pipelined.Stall = false
		cycle()
		settle()
		Expect(pipelined.Stb).To(BeFalse())
		Expect(pipelined.Cyc).To(BeTrue())
	})

	It("should complete on the downstream acknowledge", func() {
		classic.Adr = 0x80
		classic.Cyc = true
		classic.Stb = true
		cycle()

		// Request accepted downstream.
		cycle()

		pipelined.DatR[1] = 0x7E
		pipelined.Ack = true
		settle()
		Expect(classic.Ack).To(BeTrue())
		Expect(classic.DatR[1]).To(Equal(byte(0x7E)))

		c.Commit()
		pipelined.Ack = false
		classic.Cyc = false
		classic.Stb = false
		cycle()

		settle()
		Expect(pipelined.Cyc).To(BeFalse())
	})

	It("should forward a downstream error", func() {
		classic.Adr = 0x80
		classic.Cyc = true
		classic.Stb = true
		cycle()
		cycle()

		pipelined.Err = true
		settle()

		Expect(classic.Err).To(BeTrue())
		Expect(classic.Ack).To(BeFalse())
	})

	It("should keep exactly one transaction in flight", func() {
		classic.Adr = 0x80
		classic.Cyc = true
		classic.Stb = true
		cycle()

		// A second request presented while the first is still in flight is
		// not latched over it.
		classic.Adr = 0x90
		cycle()

		settle()
		Expect(pipelined.Adr).To(Equal(uint64(0x80)))
	})

	It("should reject mismatched widths", func() {
		wide := wishbone.NewPipelined("Wide", 64, 30)

		Expect(func() {
			MakeBuilder().
				WithClassic(classic).
				WithPipelined(wide).
				Build("Conv")
		}).To(Panic())
	})
})
