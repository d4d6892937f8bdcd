// Package axilite2axi bridges a single-outstanding-beat lite interface onto
// a full burst-capable interface. The mapping is purely combinational: burst
// length is fixed to one beat and the burst-type encoding only exists to
// satisfy the conformance requirements of the downstream IP.
package axilite2axi

import (
	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/sim"
)

// Comp maps lite transactions onto the full interface.
type Comp struct {
	name string

	lite *axi.LiteInterface
	full *axi.Interface

	writeID   uint64
	readID    uint64
	burstType axi.BurstType
	burstSize uint8
}

// Name returns the name of the adapter.
func (c *Comp) Name() string {
	return c.name
}

// Update drives the full interface from the lite interface and the lite
// response channels from the full interface.
func (c *Comp) Update() bool {
	changed := c.updateWriteChannels()
	changed = c.updateReadChannels() || changed

	return changed
}

func (c *Comp) updateWriteChannels() bool {
	lite := c.lite
	full := c.full

	changed := sim.Assign(&full.AW.Valid, lite.AW.Valid)
	changed = sim.Assign(&lite.AW.Ready, full.AW.Ready) || changed
	changed = sim.Assign(&full.AW.Addr, lite.AW.Addr) || changed
	changed = sim.Assign(&full.AW.Burst, c.burstType) || changed
	changed = sim.Assign(&full.AW.Len, 0) || changed
	changed = sim.Assign(&full.AW.Size, c.burstSize) || changed
	changed = sim.Assign(&full.AW.Lock, 0) || changed
	changed = sim.Assign(&full.AW.Prot, 0) || changed
	changed = sim.Assign(&full.AW.Cache, 0b0011) || changed
	changed = sim.Assign(&full.AW.QoS, 0) || changed
	changed = sim.Assign(&full.AW.ID, c.writeID) || changed

	changed = sim.Assign(&full.W.Valid, lite.W.Valid) || changed
	changed = sim.Assign(&lite.W.Ready, full.W.Ready) || changed
	changed = sim.AssignBytes(full.W.Data, lite.W.Data) || changed
	changed = sim.AssignBools(full.W.Strb, lite.W.Strb) || changed
	changed = sim.Assign(&full.W.Last, true) || changed

	changed = sim.Assign(&lite.B.Valid, full.B.Valid) || changed
	changed = sim.Assign(&lite.B.Resp, full.B.Resp) || changed
	changed = sim.Assign(&full.B.Ready, lite.B.Ready) || changed

	return changed
}

func (c *Comp) updateReadChannels() bool {
	lite := c.lite
	full := c.full

	changed := sim.Assign(&full.AR.Valid, lite.AR.Valid)
	changed = sim.Assign(&lite.AR.Ready, full.AR.Ready) || changed
	changed = sim.Assign(&full.AR.Addr, lite.AR.Addr) || changed
	changed = sim.Assign(&full.AR.Burst, c.burstType) || changed
	changed = sim.Assign(&full.AR.Len, 0) || changed
	changed = sim.Assign(&full.AR.Size, c.burstSize) || changed
	changed = sim.Assign(&full.AR.Lock, 0) || changed
	changed = sim.Assign(&full.AR.Prot, 0) || changed
	changed = sim.Assign(&full.AR.Cache, 0b0011) || changed
	changed = sim.Assign(&full.AR.QoS, 0) || changed
	changed = sim.Assign(&full.AR.ID, c.readID) || changed

	changed = sim.Assign(&lite.R.Valid, full.R.Valid) || changed
	changed = sim.Assign(&lite.R.Resp, full.R.Resp) || changed
	changed = sim.AssignBytes(lite.R.Data, full.R.Data) || changed
	changed = sim.Assign(&full.R.Ready, lite.R.Ready) || changed

	return changed
}
