package acceptance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busfabric/acceptance"
	"github.com/sarchlab/busfabric/bus/wishbone"
)

var _ = Describe("Agent", func() {
	var (
		bus   *wishbone.Bus
		agent *acceptance.Agent
	)

	BeforeEach(func() {
		bus = wishbone.New("Bus", 32, 30)
		agent = acceptance.MakeBuilder().
			WithBus(bus).
			WithMaxAddress(256).
			WithNumReads(20).
			WithNumWrites(20).
			WithSeed(1).
			Build("Agent")
	})

	settle := func() {
		for agent.Update() {
		}
	}

	// runAgainst drives the agent against a single-cycle slave model until all
	// accesses complete.
	runAgainst := func(respond func()) {
		for i := 0; i < 10000 && !agent.Done(); i++ {
			settle()

			if bus.Cyc && bus.Stb {
				respond()
			}

			agent.Commit()
			bus.Ack = false
			bus.Err = false
		}

		Expect(agent.Done()).To(BeTrue())
	}

	It("should complete all accesses against a well-behaved memory", func() {
		mem := make(map[uint64]uint64)

		runAgainst(func() {
			if bus.We {
				mem[bus.Adr] = wishbone.Uint(bus.DatW)
			} else {
				wishbone.PutUint(bus.DatR, mem[bus.Adr])
			}
			bus.Ack = true
		})

		Expect(agent.AccessesLeft()).To(Equal(0))
		Expect(agent.ErrCount()).To(Equal(0))
		Expect(agent.MismatchCount()).To(Equal(0))
	})

	It("should count error responses", func() {
		runAgainst(func() {
			bus.Err = true
		})

		Expect(agent.ErrCount()).To(Equal(40))
	})

	It("should detect read data mismatches", func() {
		mem := make(map[uint64]uint64)

		runAgainst(func() {
			if bus.We {
				mem[bus.Adr] = wishbone.Uint(bus.DatW)
			} else {
				wishbone.PutUint(bus.DatR, mem[bus.Adr]+1)
			}
			bus.Ack = true
		})

		Expect(agent.MismatchCount()).To(Equal(20))
	})

	It("should leave the bus idle once done", func() {
		mem := make(map[uint64]uint64)

		runAgainst(func() {
			if bus.We {
				mem[bus.Adr] = wishbone.Uint(bus.DatW)
			} else {
				wishbone.PutUint(bus.DatR, mem[bus.Adr])
			}
			bus.Ack = true
		})

		settle()
		Expect(bus.Cyc).To(BeFalse())
		Expect(bus.Stb).To(BeFalse())
	})
})
