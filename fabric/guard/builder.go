package guard

import (
	"log"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

// Builder can build timeout guards.
type Builder struct {
	master *wishbone.Bus
	slave  *wishbone.Bus
	limit  uint64
}

// MakeBuilder returns a builder with the default violation limit of 100.
func MakeBuilder() Builder {
	return Builder{
		limit: 100,
	}
}

// WithMaster sets the bus on the master side of the guard.
func (b Builder) WithMaster(bus *wishbone.Bus) Builder {
	b.master = bus
	return b
}

// WithSlave sets the bus on the slave side of the guard.
func (b Builder) WithSlave(bus *wishbone.Bus) Builder {
	b.slave = bus
	return b
}

// WithLimit sets the violation limit.
func (b Builder) WithLimit(limit uint64) Builder {
	b.limit = limit
	return b
}

// Build creates the guard.
func (b Builder) Build(name string) *Comp {
	if b.master == nil || b.slave == nil {
		log.Panicf("guard %s: both buses must be set", name)
	}

	if b.master.DataWidth != b.slave.DataWidth ||
		b.master.AdrWidth != b.slave.AdrWidth {
		log.Panicf("guard %s: bus widths must match", name)
	}

	return &Comp{
		name:   name,
		master: b.master,
		slave:  b.slave,
		limit:  b.limit,
	}
}
