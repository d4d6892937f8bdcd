// Package wbc2pipeline converts the classic request/acknowledge bus
// discipline into the pipelined, stall-qualified discipline. Upstream keeps
// its exactly-one-in-flight semantics; downstream is free to pipeline. The
// converter buffers exactly one request to decouple the two sides' timing
// and never reorders.
package wbc2pipeline

import (
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

// Comp is the classic-to-pipelined converter.
type Comp struct {
	name string

	classic   *wishbone.Bus
	pipelined *wishbone.PipelinedBus

	// The depth-1 request buffer.
	adr  uint64
	datW []byte
	sel  []bool
	we   bool

	busy    bool
	pending bool
}

// Name returns the name of the converter.
func (c *Comp) Name() string {
	return c.name
}

// Update presents the buffered request downstream and forwards the
// downstream response upstream.
func (c *Comp) Update() bool {
	p := c.pipelined

	changed := sim.Assign(&p.Cyc, c.busy)
	changed = sim.Assign(&p.Stb, c.pending) || changed
	changed = sim.Assign(&p.Adr, c.adr) || changed
	changed = sim.AssignBytes(p.DatW, c.datW) || changed
	changed = sim.AssignBools(p.Sel, c.sel) || changed
	changed = sim.Assign(&p.We, c.we) || changed

	changed = sim.Assign(&c.classic.Ack, c.busy && p.Ack) || changed
	changed = sim.Assign(&c.classic.Err, c.busy && p.Err) || changed
	changed = sim.AssignBytes(c.classic.DatR, p.DatR) || changed

	return changed
}

// Commit latches a new upstream request, retires the buffered request once
// the downstream side accepts it, and closes the transaction on the
// downstream acknowledge.
func (c *Comp) Commit() {
	m := c.classic

	if !c.busy && m.Cyc && m.Stb && !m.Ack && !m.Err {
		c.adr = m.Adr
		copy(c.datW, m.DatW)
		copy(c.sel, m.Sel)
		c.we = m.We
		c.busy = true
		c.pending = true

		return
	}

	if c.pending && c.pipelined.Stb && !c.pipelined.Stall {
		c.pending = false
	}

	if c.busy && !c.pending && (c.pipelined.Ack || c.pipelined.Err) {
		c.busy = false
	}
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
