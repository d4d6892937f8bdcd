package hbm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Storage", func() {
	var s *Storage

	BeforeEach(func() {
		s = NewStorage(1 << 20)
	})

	It("should read back written data", func() {
		err := s.Write(0x1000, []byte{1, 2, 3, 4})
		Expect(err).To(BeNil())

		data, err := s.Read(0x1000, 4)
		Expect(err).To(BeNil())
		Expect(data).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should return zeros for untouched addresses", func() {
		data, err := s.Read(0x8000, 4)
		Expect(err).To(BeNil())
		Expect(data).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should write across a page boundary", func() {
		s.MustWrite(pageSize-2, []byte{0xAA, 0xBB, 0xCC, 0xDD})

		Expect(s.MustRead(pageSize-2, 4)).To(
			Equal([]byte{0xAA, 0xBB, 0xCC, 0xDD}))
	})

	It("should only write the masked bytes", func() {
		s.MustWrite(0x100, []byte{1, 1, 1, 1})

		err := s.WriteMasked(0x100, []byte{2, 2, 2, 2},
			[]bool{true, false, false, true})
		Expect(err).To(BeNil())

		Expect(s.MustRead(0x100, 4)).To(Equal([]byte{2, 1, 1, 2}))
	})

	It("should reject accesses beyond the capacity", func() {
		_, err := s.Read(1<<20-2, 4)
		Expect(err).NotTo(BeNil())

		err = s.Write(1<<20-2, []byte{1, 2, 3, 4})
		Expect(err).NotTo(BeNil())
	})

	It("should report its capacity", func() {
		Expect(s.Capacity()).To(Equal(uint64(1 << 20)))
	})
})
