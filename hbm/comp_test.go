package hbm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busfabric/bus/axi"
)

var _ = Describe("HBM", func() {
	var (
		c *Comp
		a *axi.Interface
	)

	BeforeEach(func() {
		c = MakeBuilder().
			WithNumChannels(1).
			WithDataWidth(64).
			WithAddrWidth(32).
			WithCapacity(1 << 20).
			WithLatency(2).
			WithMaxOps(2).
			WithInitLatency(3).
			Build("HBM")
		a = c.Channel(0)
	})

	settle := func() {
		for c.Update() {
		}
	}

	cycle := func() {
		settle()
		c.Commit()
	}

	presentWrite := func(addr, id uint64, data []byte) {
		a.AW.Valid = true
		a.AW.Addr = addr
		a.AW.Len = 0
		a.AW.Size = 3
		a.AW.Burst = axi.BurstIncr
		a.AW.ID = id

		a.W.Valid = true
		a.W.Last = true
		copy(a.W.Data, data)
		for i := range a.W.Strb {
			a.W.Strb[i] = true
		}
	}

	dropWrite := func() {
		a.AW.Valid = false
		a.W.Valid = false
	}

	It("should accept a write and respond after the latency", func() {
		presentWrite(16, 4, []byte{1, 2, 3, 4, 5, 6, 7, 8})
		cycle()
		dropWrite()

		// The operation has not matured yet.
		cycle()
		settle()
		Expect(a.B.Valid).To(BeFalse())

		c.Commit()
		settle()
		Expect(a.B.Valid).To(BeTrue())
		Expect(a.B.ID).To(Equal(uint64(4)))
		Expect(a.B.Resp).To(Equal(axi.RespOkay))

		a.B.Ready = true
		cycle()

		settle()
		Expect(a.B.Valid).To(BeFalse())
		Expect(c.Storage().MustRead(16, 8)).To(
			Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	})

	It("should honor the write strobes", func() {
		c.Storage().MustWrite(16, []byte{9, 9, 9, 9, 9, 9, 9, 9})

		presentWrite(16, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
		a.W.Strb[0] = false
		a.W.Strb[7] = false
		cycle()
		dropWrite()

		Expect(c.Storage().MustRead(16, 8)).To(
			Equal([]byte{9, 2, 3, 4, 5, 6, 7, 9}))
	})

	It("should return read data beat by beat", func() {
		c.Storage().MustWrite(16, []byte{1, 2, 3, 4, 5, 6, 7, 8})
		c.Storage().MustWrite(24, []byte{9, 10, 11, 12, 13, 14, 15, 16})

		a.AR.Valid = true
		a.AR.Addr = 16
		a.AR.Len = 1
		a.AR.Size = 3
		a.AR.Burst = axi.BurstIncr
		a.AR.ID = 7
		cycle()
		a.AR.Valid = false

		cycle()
		cycle()

		settle()
		Expect(a.R.Valid).To(BeTrue())
		Expect(a.R.ID).To(Equal(uint64(7)))
		Expect(a.R.Last).To(BeFalse())
		Expect(a.R.Data).To(Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}))

		a.R.Ready = true
		c.Commit()

		settle()
		Expect(a.R.Valid).To(BeTrue())
		Expect(a.R.Last).To(BeTrue())
		Expect(a.R.Data).To(Equal([]byte{9, 10, 11, 12, 13, 14, 15, 16}))

		c.Commit()
		settle()
		Expect(a.R.Valid).To(BeFalse())
	})

	It("should place narrow read data on its byte lane", func() {
		c.Storage().MustWrite(20, []byte{0xDE, 0xAD})

		a.AR.Valid = true
		a.AR.Addr = 20
		a.AR.Len = 0
		a.AR.Size = 1
		a.AR.Burst = axi.BurstIncr
		cycle()
		a.AR.Valid = false

		cycle()
		cycle()

		settle()
		Expect(a.R.Valid).To(BeTrue())
		Expect(a.R.Data[4:6]).To(Equal([]byte{0xDE, 0xAD}))
	})

	It("should fail accesses inside a configured error range", func() {
		c = MakeBuilder().
			WithNumChannels(1).
			WithDataWidth(64).
			WithAddrWidth(32).
			WithCapacity(1 << 20).
			WithLatency(0).
			WithErrorRange(0x1000, 0x2000).
			Build("HBM2")
		a = c.Channel(0)

		a.AR.Valid = true
		a.AR.Addr = 0x1000
		a.AR.Len = 0
		a.AR.Size = 3
		cycle()
		a.AR.Valid = false

		settle()
		Expect(a.R.Valid).To(BeTrue())
		Expect(a.R.Resp).To(Equal(axi.RespSlvErr))
		Expect(a.R.Data).To(Equal(make([]byte, 8)))
	})

	It("should fail accesses beyond the capacity", func() {
		a.AR.Valid = true
		a.AR.Addr = 1<<20 - 4
		a.AR.Len = 0
		a.AR.Size = 3
		cycle()
		a.AR.Valid = false

		cycle()
		cycle()

		settle()
		Expect(a.R.Valid).To(BeTrue())
		Expect(a.R.Resp).To(Equal(axi.RespDecErr))
	})

	It("should stop accepting commands when full", func() {
		c = MakeBuilder().
			WithNumChannels(1).
			WithDataWidth(64).
			WithAddrWidth(32).
			WithCapacity(1 << 20).
			WithLatency(100).
			WithMaxOps(1).
			Build("HBM3")
		a = c.Channel(0)

		presentWrite(16, 0, make([]byte, 8))
		cycle()
		dropWrite()

		settle()
		Expect(a.AW.Ready).To(BeFalse())
		Expect(a.AR.Ready).To(BeFalse())
	})

	It("should report power-up completion after the init latency", func() {
		Expect(c.InitDone()).To(BeFalse())

		cycle()
		cycle()
		cycle()
		Expect(c.InitDone()).To(BeFalse())

		cycle()
		Expect(c.InitDone()).To(BeTrue())
	})

	It("should expose the per-stack status bits", func() {
		Expect(c.Cattrip(0)).To(BeFalse())

		c.SetCattrip(1, true)
		Expect(c.Cattrip(1)).To(BeTrue())

		c.SetTemperature(0, 85)
		Expect(c.Temperature(0)).To(Equal(uint8(85)))
	})

	It("should report its channel count", func() {
		Expect(c.NumChannels()).To(Equal(1))
	})

	Describe("Builder", func() {
		It("should reject a channel-less endpoint", func() {
			Expect(func() {
				MakeBuilder().WithNumChannels(0).Build("Bad")
			}).To(Panic())
		})
	})
})
