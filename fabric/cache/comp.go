// Package cache implements the set-associative write-back cache that bridges
// the narrow master-facing bus to the wide memory-facing bus. Master
// transactions are fully serialized: a dirty victim's writeback must be
// acknowledged by the slave before the refill for the missing line is
// issued.
package cache

import (
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

type cacheState int

const (
	stateIdle cacheState = iota
	stateEvict
	stateRefill
)

// Comp is the write-back cache.
type Comp struct {
	name string

	master *wishbone.Bus
	slave  *wishbone.Bus

	sets []*set

	numSets      int
	numWays      int
	setBits      int
	lineIDBits   int
	wordsPerLine uint64
	lineBytes    int
	masterBytes  int

	reverse      bool
	fullMemoryWE bool

	state cacheState

	// Victim bookkeeping for the evict/refill sequence.
	missSetID     int
	missWay       int
	evictAdr      uint64
	pendingLineID uint64
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

func (c *Comp) request() (lineID, offsetWords uint64, active bool) {
	m := c.master
	if !m.Cyc || !m.Stb {
		return 0, 0, false
	}

	return m.Adr / c.wordsPerLine, m.Adr % c.wordsPerLine, true
}

// Update drives the master response on a hit and the slave request during an
// eviction or refill.
func (c *Comp) Update() bool {
	switch c.state {
	case stateEvict:
		return c.updateEvict()
	case stateRefill:
		return c.updateRefill()
	default:
		return c.updateIdle()
	}
}

func (c *Comp) updateIdle() bool {
	changed := c.slave.DriveIdleM2S()

	lineID, offsetWords, active := c.request()
	if !active {
		changed = c.master.DriveIdleS2M() || changed
		return changed
	}

	l, _, _ := c.lookup(lineID)
	if l == nil {
		changed = c.master.DriveIdleS2M() || changed
		return changed
	}

	word := make([]byte, c.masterBytes)
	base := int(offsetWords) * c.masterBytes
	copy(word, l.Data[base:base+c.masterBytes])

	changed = sim.AssignBytes(c.master.DatR, word) || changed
	changed = sim.Assign(&c.master.Ack, true) || changed
	changed = sim.Assign(&c.master.Err, false) || changed

	return changed
}

func (c *Comp) updateEvict() bool {
	s := c.slave
	victim := c.sets[c.missSetID].Lines[c.missWay]

	changed := sim.Assign(&s.Adr, c.evictAdr)
	changed = sim.AssignBytes(s.DatW, victim.Data) || changed

	if c.fullMemoryWE {
		changed = sim.FillBools(s.Sel, true) || changed
	} else {
		changed = sim.AssignBools(s.Sel, victim.DirtyMask) || changed
	}

	changed = sim.Assign(&s.We, true) || changed
	changed = sim.Assign(&s.Cyc, true) || changed
	changed = sim.Assign(&s.Stb, true) || changed

	changed = sim.Assign(&c.master.Ack, false) || changed
	changed = sim.Assign(&c.master.Err, s.Err) || changed

	return changed
}

func (c *Comp) updateRefill() bool {
	s := c.slave

	// The refill address was captured at miss time, so a master that drops
	// its cycle mid-miss does not corrupt the fill.
	changed := sim.Assign(&s.Adr, c.pendingLineID)
	changed = sim.FillBools(s.Sel, true) || changed
	changed = sim.Assign(&s.We, false) || changed
	changed = sim.Assign(&s.Cyc, true) || changed
	changed = sim.Assign(&s.Stb, true) || changed

	changed = sim.Assign(&c.master.Ack, false) || changed
	changed = sim.Assign(&c.master.Err, s.Err) || changed

	return changed
}

// Commit applies line mutations and advances the miss state machine.
func (c *Comp) Commit() {
	switch c.state {
	case stateIdle:
		c.commitIdle()
	case stateEvict:
		c.commitEvict()
	case stateRefill:
		c.commitRefill()
	}
}

func (c *Comp) commitIdle() {
	lineID, offsetWords, active := c.request()
	if !active {
		return
	}

	l, setID, way := c.lookup(lineID)
	if l != nil {
		if c.master.We {
			c.mergeWrite(l, offsetWords)
		}

		c.sets[setID].touch(way)

		return
	}

	c.startMiss(lineID, setID)
}

func (c *Comp) mergeWrite(l *line, offsetWords uint64) {
	base := int(offsetWords) * c.masterBytes

	for i := 0; i < c.masterBytes; i++ {
		if !c.master.Sel[i] {
			continue
		}

		l.Data[base+i] = c.master.DatW[i]
		l.DirtyMask[base+i] = true
	}

	l.IsDirty = true
}

func (c *Comp) startMiss(lineID uint64, setID int) {
	s := c.sets[setID]
	way := s.victim()
	victim := s.Lines[way]

	c.missSetID = setID
	c.missWay = way
	c.pendingLineID = lineID

	if victim.IsValid && victim.IsDirty {
		c.evictAdr = c.joinLineID(setID, victim.Tag)
		c.state = stateEvict

		return
	}

	c.state = stateRefill
}

func (c *Comp) commitEvict() {
	s := c.slave

	if s.Err {
		// The writeback failed. Surface the error and abandon the miss; the
		// victim stays dirty.
		c.state = stateIdle

		return
	}

	if s.Ack {
		victim := c.sets[c.missSetID].Lines[c.missWay]
		victim.IsDirty = false

		for i := range victim.DirtyMask {
			victim.DirtyMask[i] = false
		}

		c.state = stateRefill
	}
}

func (c *Comp) commitRefill() {
	s := c.slave

	if s.Err {
		c.state = stateIdle

		return
	}

	if !s.Ack {
		return
	}

	l := c.sets[c.missSetID].Lines[c.missWay]
	_, tag := c.splitLineID(c.pendingLineID)

	l.Tag = tag
	l.IsValid = true
	l.IsDirty = false
	copy(l.Data, s.DatR)

	for i := range l.DirtyMask {
		l.DirtyMask[i] = false
	}

	c.sets[c.missSetID].touch(c.missWay)

	c.state = stateIdle
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
