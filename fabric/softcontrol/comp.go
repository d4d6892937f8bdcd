// Package softcontrol implements the software bus controller: a small state
// machine that turns discrete "issue write" / "issue read" commands into
// simple-bus cycles. Results are captured into the data register; a bus
// error during a read captures the error sentinel instead of the bus's
// read data. No retries are attempted, the caller interprets the sentinel.
package softcontrol

import (
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/fabric"
	"github.com/sarchlab/busfabric/sim"
)

type state int

const (
	stateIdle state = iota
	stateWrite
	stateRead
)

// Comp is the software bus controller.
type Comp struct {
	name string

	bus *wishbone.Bus

	state state

	// Staging registers, written by the caller.
	stagedAdr  uint64
	stagedData uint64

	// Latched copies that drive the bus cycle.
	adr  uint64
	data uint64

	issueWrite bool
	issueRead  bool
}

// Name returns the name of the controller.
func (c *Comp) Name() string {
	return c.name
}

// Update drives the bus according to the current state.
func (c *Comp) Update() bool {
	b := c.bus

	switch c.state {
	case stateWrite:
		datW := make([]byte, b.Bytes())
		wishbone.PutUint(datW, c.data)

		changed := sim.Assign(&b.Adr, c.adr)
		changed = sim.AssignBytes(b.DatW, datW) || changed
		changed = sim.FillBools(b.Sel, true) || changed
		changed = sim.Assign(&b.We, true) || changed
		changed = sim.Assign(&b.Cyc, true) || changed
		changed = sim.Assign(&b.Stb, true) || changed

		return changed
	case stateRead:
		changed := sim.Assign(&b.Adr, c.adr)
		changed = sim.FillBools(b.Sel, true) || changed
		changed = sim.Assign(&b.We, false) || changed
		changed = sim.Assign(&b.Cyc, true) || changed
		changed = sim.Assign(&b.Stb, true) || changed

		return changed
	default:
		return b.DriveIdleM2S()
	}
}

// Commit advances the state machine.
func (c *Comp) Commit() {
	switch c.state {
	case stateIdle:
		c.commitIdle()
	case stateWrite:
		if c.bus.Ack || c.bus.Err {
			c.state = stateIdle
		}
	case stateRead:
		c.commitRead()
	}
}

func (c *Comp) commitIdle() {
	if c.issueWrite {
		c.adr = c.stagedAdr
		c.data = c.stagedData
		c.state = stateWrite
	} else if c.issueRead {
		c.adr = c.stagedAdr
		c.state = stateRead
	}

	c.issueWrite = false
	c.issueRead = false
}

func (c *Comp) commitRead() {
	if !c.bus.Ack && !c.bus.Err {
		return
	}

	if c.bus.Err {
		c.data = fabric.ErrorData
	} else {
		c.data = wishbone.Uint(c.bus.DatR)
	}

	c.state = stateIdle
}

// SetAddress stages the address for the next issued cycle.
func (c *Comp) SetAddress(adr uint64) {
	c.stagedAdr = adr
}

// SetData stages the data for the next issued write.
func (c *Comp) SetData(data uint64) {
	c.stagedData = data
}

// IssueWrite pulses the write-issue control point. If both issue pulses are
// raised in the same cycle, the write takes priority and the read pulse is
// dropped.
func (c *Comp) IssueWrite() {
	c.issueWrite = true
}

// IssueRead pulses the read-issue control point.
func (c *Comp) IssueRead() {
	c.issueRead = true
}

// Data returns the data register: the last value staged by the caller, or
// the result of the last completed read.
func (c *Comp) Data() uint64 {
	return c.data
}

// Busy reports whether a bus cycle is in flight.
func (c *Comp) Busy() bool {
	return c.state != stateIdle
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
