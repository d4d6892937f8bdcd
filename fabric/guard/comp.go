// Package guard implements the timeout guard that sits between the bus
// master and the rest of the fabric. Every cycle where the master has an
// active transaction and the external timeout flag is raised counts as a
// violation. Once the violation count reaches the configured limit, the
// guard stops forwarding the master onto the slave until it is manually
// reset. A blocked bus appears to the master as a permanently stalled
// transaction; the surrounding system must treat that as a fatal condition,
// not something to retry.
package guard

import (
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

// Comp is the timeout guard.
type Comp struct {
	name string

	master *wishbone.Bus
	slave  *wishbone.Bus

	// Timeout is the externally supplied fault flag, driven by the
	// encompassing memory controller.
	Timeout bool

	violations uint64
	limit      uint64

	countThisCycle bool
	pendingReset   bool
}

// Name returns the name of the guard.
func (c *Comp) Name() string {
	return c.name
}

// Update connects the master to the slave while the gate is open, and leaves
// the slave idle once it has closed.
func (c *Comp) Update() bool {
	c.countThisCycle = c.master.Cyc && c.Timeout

	if c.violations < c.limit {
		changed := wishbone.ConnectM2S(c.master, c.slave)
		changed = wishbone.ConnectS2M(c.slave, c.master) || changed

		return changed
	}

	changed := c.slave.DriveIdleM2S()
	changed = c.master.DriveIdleS2M() || changed

	return changed
}

// Commit advances the violation counter.
func (c *Comp) Commit() {
	if c.pendingReset {
		c.violations = 0
		c.pendingReset = false

		return
	}

	if c.countThisCycle {
		c.violations++
	}
}

// ViolationCount returns the number of violations observed since the last
// reset.
func (c *Comp) ViolationCount() uint64 {
	return c.violations
}

// Limit returns the configured violation limit.
func (c *Comp) Limit() uint64 {
	return c.limit
}

// SetLimit updates the violation limit. The limit register is one of the two
// runtime-writable pieces of state in the fabric.
func (c *Comp) SetLimit(limit uint64) {
	c.limit = limit
}

// Reset clears the violation counter at the end of the current cycle,
// reopening the gate.
func (c *Comp) Reset() {
	c.pendingReset = true
}

// Open reports whether the gate currently forwards transactions.
func (c *Comp) Open() bool {
	return c.violations < c.limit
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
