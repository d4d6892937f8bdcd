package cache

import (
	"log"

	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build write-back caches.
type Builder struct {
	master       *wishbone.Bus
	slave        *wishbone.Bus
	size         int
	numWays      int
	reverse      bool
	fullMemoryWE bool
}

// MakeBuilder returns a builder with a direct-mapped 8 KiB cache as the
// default configuration.
func MakeBuilder() Builder {
	return Builder{
		size:    8192,
		numWays: 1,
	}
}

// WithMaster sets the narrow bus on the master side.
func (b Builder) WithMaster(bus *wishbone.Bus) Builder {
	b.master = bus
	return b
}

// WithSlave sets the wide bus on the memory side.
func (b Builder) WithSlave(bus *wishbone.Bus) Builder {
	b.slave = bus
	return b
}

// WithSize sets the total cache capacity in bytes. The capacity is rounded
// up to the next power of two and bounded below by twice the slave bus's
// byte width.
func (b Builder) WithSize(size int) Builder {
	b.size = size
	return b
}

// WithNumWays sets the associativity.
func (b Builder) WithNumWays(numWays int) Builder {
	b.numWays = numWays
	return b
}

// WithReverseIndexBits takes the set-index bits from the high end of the
// address instead of the low end.
func (b Builder) WithReverseIndexBits(reverse bool) Builder {
	b.reverse = reverse
	return b
}

// WithFullMemoryWriteEnable makes every writeback drive all byte strobes
// instead of only the dirty ones. Use this when the downstream memory does
// not support partial-line writes.
func (b Builder) WithFullMemoryWriteEnable(full bool) Builder {
	b.fullMemoryWE = full
	return b
}

func roundUpPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}

	return p
}

// Build creates the cache.
func (b Builder) Build(name string) *Comp {
	if b.master == nil || b.slave == nil {
		log.Panicf("cache %s: both buses must be set", name)
	}

	if b.slave.DataWidth < b.master.DataWidth {
		log.Panicf("cache %s: slave bus (%d bits) must be at least as wide "+
			"as the master bus (%d bits)",
			name, b.slave.DataWidth, b.master.DataWidth)
	}

	if b.numWays < 1 {
		log.Panicf("cache %s: associativity must be at least 1", name)
	}

	lineBytes := b.slave.Bytes()
	masterBytes := b.master.Bytes()

	size := roundUpPowerOfTwo(b.size)
	if size < 2*lineBytes {
		size = 2 * lineBytes
	}

	numLines := size / lineBytes
	if numLines%b.numWays != 0 {
		log.Panicf("cache %s: %d lines cannot be split into %d ways",
			name, numLines, b.numWays)
	}

	numSets := numLines / b.numWays
	if numSets&(numSets-1) != 0 {
		log.Panicf("cache %s: set count %d is not a power of two",
			name, numSets)
	}

	wordsPerLine := lineBytes / masterBytes
	lineIDBits := b.master.AdrWidth - axi.Log2(wordsPerLine)
	setBits := axi.Log2(numSets)

	if setBits > lineIDBits {
		log.Panicf("cache %s: too many sets (%d) for a %d-bit line address",
			name, numSets, lineIDBits)
	}

	c := &Comp{
		name:         name,
		master:       b.master,
		slave:        b.slave,
		numSets:      numSets,
		numWays:      b.numWays,
		setBits:      setBits,
		lineIDBits:   lineIDBits,
		wordsPerLine: uint64(wordsPerLine),
		lineBytes:    lineBytes,
		masterBytes:  masterBytes,
		reverse:      b.reverse,
		fullMemoryWE: b.fullMemoryWE,
	}

	c.sets = make([]*set, numSets)
	for i := range c.sets {
		s := &set{}
		for w := 0; w < b.numWays; w++ {
			s.Lines = append(s.Lines, &line{
				Data:      make([]byte, lineBytes),
				DirtyMask: make([]bool, lineBytes),
			})
			s.LRUQueue = append(s.LRUQueue, w)
		}
		c.sets[i] = s
	}

	return c
}
