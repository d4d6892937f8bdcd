package axilite2axi

import (
	"log"

	"github.com/sarchlab/busfabric/bus/axi"
)

// Builder can build lite-to-full adapters.
type Builder struct {
	lite      *axi.LiteInterface
	full      *axi.Interface
	writeID   uint64
	readID    uint64
	burstType axi.BurstType
}

// MakeBuilder returns a builder with default settings: both channel IDs 0,
// fixed-type bursts.
func MakeBuilder() Builder {
	return Builder{
		burstType: axi.BurstFixed,
	}
}

// WithLite sets the lite interface that the adapter consumes.
func (b Builder) WithLite(lite *axi.LiteInterface) Builder {
	b.lite = lite
	return b
}

// WithFull sets the full interface that the adapter produces.
func (b Builder) WithFull(full *axi.Interface) Builder {
	b.full = full
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

// WithBurstType sets the burst-type encoding placed on the address channels.
func (b Builder) WithBurstType(t axi.BurstType) Builder {
	b.burstType = t
	return b
}

// Build creates the adapter. Width mismatches between the two interfaces are
// rejected here.
func (b Builder) Build(name string) *Comp {
	if b.lite == nil || b.full == nil {
		log.Panicf("adapter %s: both interfaces must be set", name)
	}

	if b.lite.DataWidth != b.full.DataWidth {
		log.Panicf("adapter %s: data width mismatch, lite %d vs full %d",
			name, b.lite.DataWidth, b.full.DataWidth)
	}

	if b.lite.AddrWidth != b.full.AddrWidth {
		log.Panicf("adapter %s: address width mismatch, lite %d vs full %d",
			name, b.lite.AddrWidth, b.full.AddrWidth)
	}

	return &Comp{
		name:      name,
		lite:      b.lite,
		full:      b.full,
		writeID:   b.writeID,
		readID:    b.readID,
		burstType: b.burstType,
		burstSize: uint8(axi.Log2(b.full.DataWidth / 8)),
	}
}
