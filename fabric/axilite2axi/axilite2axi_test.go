package axilite2axi

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busfabric/bus/axi"
)

var _ = Describe("AXILite2AXI", func() {
	var (
		lite *axi.LiteInterface
		full *axi.Interface
		c    *Comp
	)

	BeforeEach(func() {
		lite = axi.NewLiteInterface("Lite", 64, 32)
		full = axi.NewInterface("Full", 64, 32, 6)
		c = MakeBuilder().
			WithLite(lite).
			WithFull(full).
			Build("Adapter")
	})

	settle := func() {
		for c.Update() {
		}
	}

	It("should expand a write address into a single-beat burst", func() {
		lite.AW.Valid = true
		lite.AW.Addr = 0x1000
		full.AW.Ready = true
		settle()

		Expect(full.AW.Valid).To(BeTrue())
		Expect(full.AW.Addr).To(Equal(uint64(0x1000)))
		Expect(full.AW.Len).To(Equal(uint8(0)))
		Expect(full.AW.Size).To(Equal(uint8(3)))
		Expect(full.AW.Burst).To(Equal(axi.BurstFixed))
		Expect(full.AW.Cache).To(Equal(uint8(0b0011)))
		Expect(full.AW.ID).To(Equal(uint64(0)))

		Expect(lite.AW.Ready).To(BeTrue())
	})

	It("should pass write data through and mark it as the last beat", func() {
		lite.W.Valid = true
		copy(lite.W.Data, []byte{0xEF, 0xBE, 0xAD, 0xDE})
		lite.W.Strb[0] = true
		lite.W.Strb[3] = true
		settle()

		Expect(full.W.Valid).To(BeTrue())
		Expect(full.W.Last).To(BeTrue())
		Expect(full.W.Data[0:4]).To(Equal([]byte{0xEF, 0xBE, 0xAD, 0xDE}))
		Expect(full.W.Strb[0]).To(BeTrue())
		Expect(full.W.Strb[1]).To(BeFalse())
		Expect(full.W.Strb[3]).To(BeTrue())
	})

	It("should pass the write response upstream", func() {
		full.B.Valid = true
		full.B.Resp = axi.RespSlvErr
		lite.B.Ready = true
		settle()

		Expect(lite.B.Valid).To(BeTrue())
		Expect(lite.B.Resp).To(Equal(axi.RespSlvErr))
		Expect(full.B.Ready).To(BeTrue())
	})

	It("should expand a read address and return the read data", func() {
		lite.AR.Valid = true
		lite.AR.Addr = 0x2000
		full.R.Valid = true
		full.R.Resp = axi.RespOkay
		copy(full.R.Data, []byte{0x11, 0x22, 0x33, 0x44})
		lite.R.Ready = true
		settle()

		Expect(full.AR.Valid).To(BeTrue())
		Expect(full.AR.Addr).To(Equal(uint64(0x2000)))
		Expect(full.AR.Len).To(Equal(uint8(0)))
		Expect(full.AR.Size).To(Equal(uint8(3)))
		Expect(full.AR.Cache).To(Equal(uint8(0b0011)))

		Expect(lite.R.Valid).To(BeTrue())
		Expect(lite.R.Resp).To(Equal(axi.RespOkay))
		Expect(lite.R.Data[0:4]).To(Equal([]byte{0x11, 0x22, 0x33, 0x44}))
		Expect(full.R.Ready).To(BeTrue())
	})

	It("should tag the channels with the configured IDs", func() {
		c = MakeBuilder().
			WithLite(lite).
			WithFull(full).
			WithWriteID(5).
			WithReadID(9).
			WithBurstType(axi.BurstIncr).
			Build("Adapter2")

		lite.AW.Valid = true
		lite.AR.Valid = true
		settle()

		Expect(full.AW.ID).To(Equal(uint64(5)))
		Expect(full.AR.ID).To(Equal(uint64(9)))
		Expect(full.AW.Burst).To(Equal(axi.BurstIncr))
		Expect(full.AR.Burst).To(Equal(axi.BurstIncr))
	})

	Describe("Builder", func() {
		It("should reject a data width mismatch", func() {
			wide := axi.NewInterface("Wide", 128, 32, 6)

			Expect(func() {
				MakeBuilder().WithLite(lite).WithFull(wide).Build("Bad")
			}).To(Panic())
		})

		It("should reject an address width mismatch", func() {
			long := axi.NewInterface("Long", 64, 37, 6)

			Expect(func() {
				MakeBuilder().WithLite(lite).WithFull(long).Build("Bad")
			}).To(Panic())
		})
	})
})
