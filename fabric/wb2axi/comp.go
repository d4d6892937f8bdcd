// Package wb2axi converts pipelined simple-bus transactions into burst-bus
// split-transaction read/write channels. It keeps a bounded FIFO of
// outstanding transactions per direction, subtracts a configurable base
// address, and propagates downstream back-pressure as an upstream stall.
// Outstanding transactions retire strictly in submission order per
// direction.
package wb2axi

import (
	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

type outstandingEntry struct {
	wbAdr   uint64
	lane    int
	isWrite bool
}

type issueReg struct {
	valid   bool
	isWrite bool
	addr    uint64
	data    []byte
	strb    []bool
	awDone  bool
	wDone   bool
}

// Comp is the pipelined-to-burst-bus converter.
type Comp struct {
	name string

	wb  *wishbone.PipelinedBus
	axi *axi.Interface

	baseAddress uint64
	writeID     uint64
	readID      uint64
	depth       int

	wbBytes   int
	axiBytes  int
	burstSize uint8

	issue issueReg

	outstandingWrites sim.Buffer
	outstandingReads  sim.Buffer
}

// Name returns the name of the converter.
func (c *Comp) Name() string {
	return c.name
}

func (c *Comp) outstandingFull() bool {
	total := c.outstandingWrites.Size() + c.outstandingReads.Size()

	return total >= c.depth
}

// Update drives the burst-bus command channels from the issue register, the
// upstream stall, and the upstream response signals.
func (c *Comp) Update() bool {
	changed := c.updateStall()
	changed = c.updateCommandChannels() || changed
	changed = c.updateResponses() || changed

	return changed
}

func (c *Comp) updateStall() bool {
	stall := c.issue.valid || c.outstandingFull()

	return sim.Assign(&c.wb.Stall, stall)
}

func (c *Comp) updateCommandChannels() bool {
	a := c.axi
	iss := &c.issue

	awValid := iss.valid && iss.isWrite && !iss.awDone
	changed := sim.Assign(&a.AW.Valid, awValid)
	changed = sim.Assign(&a.AW.Addr, iss.addr) || changed
	changed = sim.Assign(&a.AW.Len, 0) || changed
	changed = sim.Assign(&a.AW.Size, c.burstSize) || changed
	changed = sim.Assign(&a.AW.Burst, axi.BurstIncr) || changed
	changed = sim.Assign(&a.AW.ID, c.writeID) || changed
	changed = sim.Assign(&a.AW.Cache, 0b0011) || changed

	wValid := iss.valid && iss.isWrite && !iss.wDone
	changed = sim.Assign(&a.W.Valid, wValid) || changed
	changed = sim.AssignBytes(a.W.Data, iss.data) || changed
	changed = sim.AssignBools(a.W.Strb, iss.strb) || changed
	changed = sim.Assign(&a.W.Last, true) || changed

	arValid := iss.valid && !iss.isWrite
	changed = sim.Assign(&a.AR.Valid, arValid) || changed
	changed = sim.Assign(&a.AR.Addr, iss.addr) || changed
	changed = sim.Assign(&a.AR.Len, 0) || changed
	changed = sim.Assign(&a.AR.Size, c.burstSize) || changed
	changed = sim.Assign(&a.AR.Burst, axi.BurstIncr) || changed
	changed = sim.Assign(&a.AR.ID, c.readID) || changed
	changed = sim.Assign(&a.AR.Cache, 0b0011) || changed

	return changed
}

// updateResponses retires at most one outstanding transaction per cycle on
// the upstream acknowledge wire. Write responses win when both a write
// response and a read beat arrive in the same cycle.
func (c *Comp) updateResponses() bool {
	a := c.axi
	wb := c.wb

	changed := sim.Assign(&a.B.Ready, true)
	changed = sim.Assign(&a.R.Ready, !a.B.Valid) || changed

	switch {
	case a.B.Valid:
		changed = sim.Assign(&wb.Ack, !a.B.Resp.IsErr()) || changed
		changed = sim.Assign(&wb.Err, a.B.Resp.IsErr()) || changed
	case a.R.Valid && a.R.Last:
		changed = sim.Assign(&wb.Ack, !a.R.Resp.IsErr()) || changed
		changed = sim.Assign(&wb.Err, a.R.Resp.IsErr()) || changed

		if entry, ok := c.outstandingReads.Peek().(*outstandingEntry); ok {
			word := make([]byte, c.wbBytes)
			copy(word, a.R.Data[entry.lane:entry.lane+c.wbBytes])
			changed = sim.AssignBytes(wb.DatR, word) || changed
		}
	default:
		changed = sim.Assign(&wb.Ack, false) || changed
		changed = sim.Assign(&wb.Err, false) || changed
	}

	return changed
}

// Commit accepts a new upstream request, completes command handshakes, and
// retires outstanding entries whose responses arrived this cycle.
func (c *Comp) Commit() {
	c.commitHandshakes()
	c.commitRetirement()
	c.commitAccept()
}

func (c *Comp) commitHandshakes() {
	if !c.issue.valid {
		return
	}

	a := c.axi

	if c.issue.isWrite {
		if a.AW.Valid && a.AW.Ready {
			c.issue.awDone = true
		}

		if a.W.Valid && a.W.Ready {
			c.issue.wDone = true
		}

		if c.issue.awDone && c.issue.wDone {
			c.issue.valid = false
		}

		return
	}

	if a.AR.Valid && a.AR.Ready {
		c.issue.valid = false
	}
}

func (c *Comp) commitRetirement() {
	a := c.axi

	if a.B.Valid && a.B.Ready {
		c.outstandingWrites.Pop()
	}

	if a.R.Valid && a.R.Ready && a.R.Last {
		c.outstandingReads.Pop()
	}
}

func (c *Comp) commitAccept() {
	wb := c.wb

	if !wb.Cyc || !wb.Stb || wb.Stall {
		return
	}

	wbAdr := wb.Adr - c.baseAddress
	byteAddr := wbAdr << uint(c.burstSize)
	lane := int(byteAddr) % c.axiBytes

	entry := &outstandingEntry{
		wbAdr:   wb.Adr,
		lane:    lane,
		isWrite: wb.We,
	}

	c.issue.valid = true
	c.issue.isWrite = wb.We
	c.issue.addr = byteAddr
	c.issue.awDone = false
	c.issue.wDone = false

	for i := range c.issue.strb {
		c.issue.strb[i] = false
	}

	if wb.We {
		copy(c.issue.data[lane:lane+c.wbBytes], wb.DatW)

		for i := 0; i < c.wbBytes; i++ {
			c.issue.strb[lane+i] = wb.Sel[i]
		}

		c.outstandingWrites.Push(entry)

		return
	}

	c.outstandingReads.Push(entry)
}

// OutstandingCount returns the number of transactions accepted but not yet
// retired.
func (c *Comp) OutstandingCount() int {
	return c.outstandingWrites.Size() + c.outstandingReads.Size()
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
