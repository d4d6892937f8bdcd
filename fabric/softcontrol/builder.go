package softcontrol

import (
	"log"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build software bus controllers.
type Builder struct {
	bus *wishbone.Bus
}

// MakeBuilder returns a builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithBus sets the bus that the controller masters.
func (b Builder) WithBus(bus *wishbone.Bus) Builder {
	b.bus = bus
	return b
}

// Build creates the controller.
func (b Builder) Build(name string) *Comp {
	if b.bus == nil {
		log.Panicf("softcontrol %s: bus must be set", name)
	}

	if b.bus.DataWidth > 64 {
		log.Panicf("softcontrol %s: data register limited to 64 bits, "+
			"bus is %d bits wide", name, b.bus.DataWidth)
	}

	return &Comp{
		name: name,
		bus:  b.bus,
	}
}
