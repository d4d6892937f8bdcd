package wb2axi

import (
	"log"

	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

// Builder can build pipelined-to-burst-bus converters.
type Builder struct {
	wb          *wishbone.PipelinedBus
	axi         *axi.Interface
	baseAddress uint64
	writeID     uint64
	readID      uint64
	depth       int
}

// MakeBuilder returns a builder with the defaults of the original bridge:
// write ID 0, read ID 1, 64 outstanding transactions, base address 0.
func MakeBuilder() Builder {
	return Builder{
		writeID: 0,
		readID:  1,
		depth:   64,
	}
}

// WithWishbone sets the pipelined bus on the master side.
func (b Builder) WithWishbone(bus *wishbone.PipelinedBus) Builder {
	b.wb = bus
	return b
}

// WithAXI sets the burst-bus interface on the slave side.
func (b Builder) WithAXI(iface *axi.Interface) Builder {
	b.axi = iface
	return b
}

// WithBaseAddress sets the base address subtracted from every simple-bus
// address before it is used on the burst bus.
func (b Builder) WithBaseAddress(base uint64) Builder {
	b.baseAddress = base
	return b
}

// WithWriteID sets the constant tag used on the write channels.
func (b Builder) WithWriteID(id uint64) Builder {
	b.writeID = id
	return b
}

// WithReadID sets the constant tag used on the read channels.
func (b Builder) WithReadID(id uint64) Builder {
	b.readID = id
	return b
}

// WithQueueDepth bounds the number of outstanding transactions.
func (b Builder) WithQueueDepth(depth int) Builder {
	b.depth = depth
	return b
}

// Build creates the converter. Mismatched widths between the two buses are a
// configuration error and are rejected here, never at runtime.
func (b Builder) Build(name string) *Comp {
	if b.wb == nil || b.axi == nil {
		log.Panicf("wb2axi %s: both buses must be set", name)
	}

	if b.depth <= 0 {
		log.Panicf("wb2axi %s: queue depth must be positive", name)
	}

	if b.axi.DataWidth < b.wb.DataWidth {
		log.Panicf("wb2axi %s: burst-bus data width %d narrower than "+
			"simple-bus data width %d",
			name, b.axi.DataWidth, b.wb.DataWidth)
	}

	ratio := b.axi.DataWidth / b.wb.DataWidth
	switch ratio {
	case 1, 2, 4, 8, 16, 32:
	default:
		log.Panicf("wb2axi %s: data width ratio %d is not a power of two "+
			"within 1..32", name, ratio)
	}

	wantAddrWidth := b.wb.AdrWidth + axi.Log2(b.wb.DataWidth) - 3
	if b.axi.AddrWidth != wantAddrWidth {
		log.Panicf("wb2axi %s: burst-bus address width %d, want %d "+
			"(simple-bus address width %d, data width %d)",
			name, b.axi.AddrWidth, wantAddrWidth,
			b.wb.AdrWidth, b.wb.DataWidth)
	}

	c := &Comp{
		name:        name,
		wb:          b.wb,
		axi:         b.axi,
		baseAddress: b.baseAddress,
		writeID:     b.writeID,
		readID:      b.readID,
		depth:       b.depth,
		wbBytes:     b.wb.Bytes(),
		axiBytes:    b.axi.Bytes(),
		burstSize:   uint8(axi.Log2(b.wb.DataWidth / 8)),
	}

	c.issue.data = make([]byte, c.axiBytes)
	c.issue.strb = make([]bool, c.axiBytes)
	c.outstandingWrites = sim.NewBuffer(name+".OutstandingWrites", b.depth)
	c.outstandingReads = sim.NewBuffer(name+".OutstandingReads", b.depth)

	return c
}
