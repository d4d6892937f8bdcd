package axi

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Interface", func() {
	It("should size the data channels", func() {
		i := NewInterface("Mem", 256, 37, 6)

		Expect(i.Bytes()).To(Equal(32))
		Expect(i.W.Data).To(HaveLen(32))
		Expect(i.W.Strb).To(HaveLen(32))
		Expect(i.R.Data).To(HaveLen(32))
	})

	It("should reject bad widths", func() {
		Expect(func() { NewInterface("Mem", 7, 37, 6) }).To(Panic())
		Expect(func() { NewInterface("Mem", 256, 0, 6) }).To(Panic())
		Expect(func() { NewInterface("Mem", 256, 37, 0) }).To(Panic())
	})
})

var _ = Describe("Resp", func() {
	It("should classify error responses", func() {
		Expect(RespOkay.IsErr()).To(BeFalse())
		Expect(RespExOkay.IsErr()).To(BeFalse())
		Expect(RespSlvErr.IsErr()).To(BeTrue())
		Expect(RespDecErr.IsErr()).To(BeTrue())
	})
})

var _ = Describe("Log2", func() {
	It("should compute exact logarithms", func() {
		Expect(Log2(1)).To(Equal(0))
		Expect(Log2(8)).To(Equal(3))
		Expect(Log2(256)).To(Equal(8))
	})

	It("should panic on values that are not powers of two", func() {
		Expect(func() { Log2(0) }).To(Panic())
		Expect(func() { Log2(12) }).To(Panic())
	})
})
