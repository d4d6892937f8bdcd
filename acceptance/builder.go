package acceptance

import (
	"log"
	"math/rand"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build random-access agents.
type Builder struct {
	bus       *wishbone.Bus
	maxAdr    uint64
	numReads  int
	numWrites int
	seed      int64
	seedSet   bool
}

// MakeBuilder returns an agent builder issuing 1000 reads and 1000 writes by
// default.
func MakeBuilder() Builder {
	return Builder{
		numReads:  1000,
		numWrites: 1000,
	}
}

// WithBus sets the classic bus the agent masters.
func (b Builder) WithBus(bus *wishbone.Bus) Builder {
	b.bus = bus
	return b
}

// WithMaxAddress bounds the word addresses the agent touches to [0, max).
func (b Builder) WithMaxAddress(max uint64) Builder {
	b.maxAdr = max
	return b
}

// WithNumReads sets the number of reads to issue.
func (b Builder) WithNumReads(n int) Builder {
	b.numReads = n
	return b
}

// WithNumWrites sets the number of writes to issue.
func (b Builder) WithNumWrites(n int) Builder {
	b.numWrites = n
	return b
}

// WithSeed fixes the random seed so a run can be reproduced.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	b.seedSet = true
	return b
}

// Build creates the agent.
func (b Builder) Build(name string) *Agent {
	if b.bus == nil {
		log.Panicf("agent %s: a bus must be set", name)
	}

	if b.maxAdr == 0 {
		log.Panicf("agent %s: the address bound must be positive", name)
	}

	src := rand.NewSource(b.seed)
	if !b.seedSet {
		src = rand.NewSource(rand.Int63())
	}

	dataMask := ^uint64(0)
	if b.bus.Bytes() < 8 {
		dataMask = (uint64(1) << (8 * b.bus.Bytes())) - 1
	}

	return &Agent{
		name:          name,
		bus:           b.bus,
		rng:           rand.New(src),
		maxAdr:        b.maxAdr,
		dataMask:      dataMask,
		writesLeft:    b.numWrites,
		readsLeft:     b.numReads,
		KnownMemValue: make(map[uint64]uint64),
	}
}
