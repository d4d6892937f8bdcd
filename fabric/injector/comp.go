// Package injector implements the 2:1 multiplexer that lets a
// software-driven master replace the normal hardware master on a shared
// slave connection. It is used for diagnostic register poking without
// halting the rest of the datapath.
package injector

import (
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/fabric"
	"github.com/sarchlab/busfabric/sim"
)

// Comp is the soft/hardware injector.
type Comp struct {
	name string

	hw    *wishbone.Bus
	soft  *wishbone.Bus
	slave *wishbone.Bus

	softControl bool
	pendingMode bool
	hasPending  bool
}

// Name returns the name of the injector.
func (c *Comp) Name() string {
	return c.name
}

// Update drives the slave from the selected master. The deselected hardware
// master sees the error sentinel on its read-data lines and an immediate
// acknowledge, so it never hangs waiting for a slave it is not connected to.
func (c *Comp) Update() bool {
	if c.softControl {
		changed := wishbone.ConnectM2S(c.soft, c.slave)
		changed = wishbone.ConnectS2M(c.slave, c.soft) || changed

		sentinel := make([]byte, c.hw.Bytes())
		wishbone.PutUint(sentinel, fabric.ErrorData)
		changed = sim.AssignBytes(c.hw.DatR, sentinel) || changed
		changed = sim.Assign(&c.hw.Ack, c.hw.Cyc && c.hw.Stb) || changed
		changed = sim.Assign(&c.hw.Err, false) || changed

		return changed
	}

	changed := wishbone.ConnectM2S(c.hw, c.slave)
	changed = wishbone.ConnectS2M(c.slave, c.hw) || changed
	changed = c.soft.DriveIdleS2M() || changed

	return changed
}

// Commit applies a pending mode change, but only on a bus idle boundary so a
// live transaction's request and response are not split across masters.
func (c *Comp) Commit() {
	if !c.hasPending {
		return
	}

	if !c.slave.Idle() {
		return
	}

	c.softControl = c.pendingMode
	c.hasPending = false
}

// SoftControlEnabled reports which master currently owns the slave.
func (c *Comp) SoftControlEnabled() bool {
	return c.softControl
}

// SetSoftControl requests a mode change. The change takes effect on the next
// bus idle boundary.
func (c *Comp) SetSoftControl(enabled bool) {
	c.pendingMode = enabled
	c.hasPending = true
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
