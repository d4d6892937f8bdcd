package injector

import (
	"log"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build injectors.
type Builder struct {
	hw          *wishbone.Bus
	soft        *wishbone.Bus
	slave       *wishbone.Bus
	softControl bool
}

// MakeBuilder returns a builder. The initial owner of the slave connection
// must be chosen explicitly with WithSoftControlEnabled; the default is the
// hardware master.
func MakeBuilder() Builder {
	return Builder{}
}

// WithHardwareMaster sets the bus driven by the normal hardware master.
func (b Builder) WithHardwareMaster(bus *wishbone.Bus) Builder {
	b.hw = bus
	return b
}

// WithSoftMaster sets the bus driven by the software-controlled master.
func (b Builder) WithSoftMaster(bus *wishbone.Bus) Builder {
	b.soft = bus
	return b
}

// WithSlave sets the shared slave connection.
func (b Builder) WithSlave(bus *wishbone.Bus) Builder {
	b.slave = bus
	return b
}

// WithSoftControlEnabled selects which master owns the slave at reset.
func (b Builder) WithSoftControlEnabled(enabled bool) Builder {
	b.softControl = enabled
	return b
}

// Build creates the injector.
func (b Builder) Build(name string) *Comp {
	if b.hw == nil || b.soft == nil || b.slave == nil {
		log.Panicf("injector %s: all three buses must be set", name)
	}

	if b.hw.DataWidth != b.slave.DataWidth ||
		b.soft.DataWidth != b.slave.DataWidth {
		log.Panicf("injector %s: bus data widths must match", name)
	}

	return &Comp{
		name:        name,
		hw:          b.hw,
		soft:        b.soft,
		slave:       b.slave,
		softControl: b.softControl,
	}
}
