package wbc2pipeline

import (
	"log"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build classic-to-pipelined converters.
type Builder struct {
	classic   *wishbone.Bus
	pipelined *wishbone.PipelinedBus
}

// MakeBuilder returns a builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithClassic sets the classic bus on the master side.
func (b Builder) WithClassic(bus *wishbone.Bus) Builder {
	b.classic = bus
	return b
}

// WithPipelined sets the pipelined bus on the slave side.
func (b Builder) WithPipelined(bus *wishbone.PipelinedBus) Builder {
	b.pipelined = bus
	return b
}

// Build creates the converter.
func (b Builder) Build(name string) *Comp {
	if b.classic == nil || b.pipelined == nil {
		log.Panicf("wbc2pipeline %s: both buses must be set", name)
	}

	if b.classic.AdrWidth != b.pipelined.AdrWidth {
		log.Panicf("wbc2pipeline %s: address width mismatch, %d vs %d",
			name, b.classic.AdrWidth, b.pipelined.AdrWidth)
	}

	if b.classic.DataWidth != b.pipelined.DataWidth {
		log.Panicf("wbc2pipeline %s: data width mismatch, %d vs %d",
			name, b.classic.DataWidth, b.pipelined.DataWidth)
	}

	return &Comp{
		name:      name,
		classic:   b.classic,
		pipelined: b.pipelined,
		datW:      make([]byte, b.classic.Bytes()),
		sel:       make([]bool, b.classic.Bytes()),
	}
}
