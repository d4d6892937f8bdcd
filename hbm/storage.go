package hbm

import (
	"fmt"
	"log"
)

const pageSize = 4096

// A Storage is a sparse byte-addressable backing store for the mock memory
// stacks.
type Storage struct {
	capacity uint64
	pages    map[uint64][]byte
}

// NewStorage creates a storage of the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		capacity: capacity,
		pages:    make(map[uint64][]byte),
	}
}

// Capacity returns the size of the storage in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) page(addr uint64) []byte {
	pageID := addr / pageSize

	p, found := s.pages[pageID]
	if !found {
		p = make([]byte, pageSize)
		s.pages[pageID] = p
	}

	return p
}

// Read returns n bytes starting at addr.
func (s *Storage) Read(addr, n uint64) ([]byte, error) {
	if addr+n > s.capacity {
		return nil, fmt.Errorf(
			"read of %d bytes at 0x%x exceeds capacity 0x%x",
			n, addr, s.capacity)
	}

	data := make([]byte, n)
	for i := uint64(0); i < n; i++ {
		a := addr + i
		data[i] = s.page(a)[a%pageSize]
	}

	return data, nil
}

// Write stores data starting at addr.
func (s *Storage) Write(addr uint64, data []byte) error {
	return s.WriteMasked(addr, data, nil)
}

// WriteMasked stores the bytes of data whose mask bit is set. A nil mask
// writes every byte.
func (s *Storage) WriteMasked(addr uint64, data []byte, mask []bool) error {
	if addr+uint64(len(data)) > s.capacity {
		return fmt.Errorf(
			"write of %d bytes at 0x%x exceeds capacity 0x%x",
			len(data), addr, s.capacity)
	}

	for i, b := range data {
		if mask != nil && !mask[i] {
			continue
		}

		a := addr + uint64(i)
		s.page(a)[a%pageSize] = b
	}

	return nil
}

// MustRead is a Read that panics on out-of-range accesses. It is intended
// for test setup code.
func (s *Storage) MustRead(addr, n uint64) []byte {
	data, err := s.Read(addr, n)
	if err != nil {
		log.Panic(err)
	}

	return data
}

// MustWrite is a Write that panics on out-of-range accesses. It is intended
// for test setup code.
func (s *Storage) MustWrite(addr uint64, data []byte) {
	if err := s.Write(addr, data); err != nil {
		log.Panic(err)
	}
}
