package wishbone

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bus", func() {
	It("should size the data and select lanes", func() {
		b := New("Bus", 32, 30)

		Expect(b.Bytes()).To(Equal(4))
		Expect(b.DatW).To(HaveLen(4))
		Expect(b.DatR).To(HaveLen(4))
		Expect(b.Sel).To(HaveLen(4))
	})

	It("should reject bad widths", func() {
		Expect(func() { New("Bus", 0, 30) }).To(Panic())
		Expect(func() { New("Bus", 12, 30) }).To(Panic())
		Expect(func() { New("Bus", 1024, 30) }).To(Panic())
		Expect(func() { New("Bus", 32, 0) }).To(Panic())
		Expect(func() { New("Bus", 32, 65) }).To(Panic())
	})

	It("should be idle only when cyc is low", func() {
		b := New("Bus", 32, 30)

		Expect(b.Idle()).To(BeTrue())

		b.Cyc = true
		Expect(b.Idle()).To(BeFalse())
	})

	It("should forward master-to-slave signals", func() {
		src := New("Src", 32, 30)
		dst := New("Dst", 32, 30)

		src.Adr = 0x42
		src.DatW[0] = 0xAB
		src.Sel[1] = true
		src.Cyc = true
		src.Stb = true
		src.We = true

		Expect(ConnectM2S(src, dst)).To(BeTrue())
		Expect(dst.Adr).To(Equal(uint64(0x42)))
		Expect(dst.DatW[0]).To(Equal(byte(0xAB)))
		Expect(dst.Sel[1]).To(BeTrue())
		Expect(dst.Cyc).To(BeTrue())
		Expect(dst.Stb).To(BeTrue())
		Expect(dst.We).To(BeTrue())

		Expect(ConnectM2S(src, dst)).To(BeFalse())
	})

	It("should forward slave-to-master signals", func() {
		src := New("Src", 32, 30)
		dst := New("Dst", 32, 30)

		src.DatR[2] = 0xCD
		src.Ack = true

		Expect(ConnectS2M(src, dst)).To(BeTrue())
		Expect(dst.DatR[2]).To(Equal(byte(0xCD)))
		Expect(dst.Ack).To(BeTrue())
		Expect(dst.Err).To(BeFalse())

		Expect(ConnectS2M(src, dst)).To(BeFalse())
	})

	It("should round-trip integers through the data lanes", func() {
		data := make([]byte, 4)

		PutUint(data, 0xCAFEBABE)

		Expect(data).To(Equal([]byte{0xBE, 0xBA, 0xFE, 0xCA}))
		Expect(Uint(data)).To(Equal(uint64(0xCAFEBABE)))
	})
})
