package hbm

import (
	"fmt"
	"log"

	"github.com/sarchlab/busfabric/bus/axi"
)

// Builder can build mock memory endpoints.
type Builder struct {
	numChannels int
	dataWidth   int
	addrWidth   int
	idWidth     int
	capacity    uint64
	latency     uint64
	maxOps      int
	initLatency uint64
	errRanges   [][2]uint64
	storage     *Storage
}

// MakeBuilder returns a builder configured like the real IP: 32 channels,
// 256-bit data, 37-bit addresses, 6-bit IDs, 8 GiB of storage.
func MakeBuilder() Builder {
	return Builder{
		numChannels: 32,
		dataWidth:   256,
		addrWidth:   37,
		idWidth:     6,
		capacity:    8 << 30,
		latency:     16,
		maxOps:      8,
		initLatency: 100,
	}
}

// WithNumChannels sets the number of burst-bus channels.
func (b Builder) WithNumChannels(n int) Builder {
	b.numChannels = n
	return b
}

// WithDataWidth sets the per-channel data width in bits.
func (b Builder) WithDataWidth(w int) Builder {
	b.dataWidth = w
	return b
}

// WithAddrWidth sets the address width in bits.
func (b Builder) WithAddrWidth(w int) Builder {
	b.addrWidth = w
	return b
}

// WithLatency sets the response latency in cycles.
func (b Builder) WithLatency(latency uint64) Builder {
	b.latency = latency
	return b
}

// WithMaxOps bounds the number of operations in flight per channel.
func (b Builder) WithMaxOps(n int) Builder {
	b.maxOps = n
	return b
}

// WithCapacity sets the backing-store capacity in bytes.
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithStorage supplies a pre-populated backing store.
func (b Builder) WithStorage(storage *Storage) Builder {
	b.storage = storage
	return b
}

// WithErrorRange makes every access whose address falls in [lo, hi) fail
// with a slave-error response.
func (b Builder) WithErrorRange(lo, hi uint64) Builder {
	b.errRanges = append(b.errRanges, [2]uint64{lo, hi})
	return b
}

// WithInitLatency sets the number of cycles before the power-up sequence
// reports completion.
func (b Builder) WithInitLatency(latency uint64) Builder {
	b.initLatency = latency
	return b
}

// Build creates the endpoint.
func (b Builder) Build(name string) *Comp {
	if b.numChannels <= 0 {
		log.Panicf("hbm %s: need at least one channel", name)
	}

	if b.maxOps <= 0 {
		log.Panicf("hbm %s: maxOps must be positive", name)
	}

	c := &Comp{
		name:        name,
		latency:     b.latency,
		maxOps:      b.maxOps,
		initLatency: b.initLatency,
		errRanges:   b.errRanges,
		storage:     b.storage,
	}

	if c.storage == nil {
		c.storage = NewStorage(b.capacity)
	}

	for i := 0; i < b.numChannels; i++ {
		iface := axi.NewInterface(
			fmt.Sprintf("%s.Channel[%d]", name, i),
			b.dataWidth, b.addrWidth, b.idWidth)

		c.channels = append(c.channels, &channel{iface: iface})
	}

	return c
}
