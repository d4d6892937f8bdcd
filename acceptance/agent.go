// Package acceptance provides a randomized bus master for exercising a whole
// fabric chain against a memory endpoint. The agent issues a configurable
// number of reads and writes to random addresses and checks every read
// against a shadow model of what it has written.
package acceptance

import (
	"math/rand"

	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/sim"
)

type pendingOp struct {
	adr     uint64
	data    uint64
	isWrite bool
}

// Agent is a random memory-access bus master.
type Agent struct {
	name string

	bus *wishbone.Bus
	rng *rand.Rand

	maxAdr     uint64
	dataMask   uint64
	writesLeft int
	readsLeft  int

	// KnownMemValue is the shadow model: the last value written per word
	// address.
	KnownMemValue map[uint64]uint64

	busy bool
	cur  pendingOp

	errCount      int
	mismatchCount int
}

// Name returns the name of the agent.
func (a *Agent) Name() string {
	return a.name
}

// Done reports whether all accesses have completed.
func (a *Agent) Done() bool {
	return !a.busy && a.writesLeft == 0 && a.readsLeft == 0
}

// ErrCount returns the number of bus-error responses the agent received.
func (a *Agent) ErrCount() int {
	return a.errCount
}

// MismatchCount returns the number of reads that did not match the shadow
// model.
func (a *Agent) MismatchCount() int {
	return a.mismatchCount
}

// AccessesLeft returns the number of accesses not yet issued.
func (a *Agent) AccessesLeft() int {
	return a.writesLeft + a.readsLeft
}

// Update drives the bus request for the access in flight.
func (a *Agent) Update() bool {
	m := a.bus

	if !a.busy {
		return m.DriveIdleM2S()
	}

	changed := sim.Assign(&m.Adr, a.cur.adr)
	changed = sim.FillBools(m.Sel, true) || changed
	changed = sim.Assign(&m.We, a.cur.isWrite) || changed
	changed = sim.Assign(&m.Cyc, true) || changed
	changed = sim.Assign(&m.Stb, true) || changed

	if a.cur.isWrite {
		dat := make([]byte, m.Bytes())
		wishbone.PutUint(dat, a.cur.data)
		changed = sim.AssignBytes(m.DatW, dat) || changed
	}

	return changed
}

// Commit retires a completed access and launches the next one.
func (a *Agent) Commit() {
	if a.busy {
		a.commitActive()
		return
	}

	a.launchNext()
}

func (a *Agent) commitActive() {
	m := a.bus

	if m.Err {
		a.errCount++
		a.busy = false

		return
	}

	if !m.Ack {
		return
	}

	if !a.cur.isWrite {
		got := wishbone.Uint(m.DatR) & a.dataMask
		if got != a.KnownMemValue[a.cur.adr] {
			a.mismatchCount++
		}
	}

	a.busy = false
}

func (a *Agent) launchNext() {
	if a.writesLeft == 0 && a.readsLeft == 0 {
		return
	}

	if a.shouldRead() {
		adr := a.randomKnownAddress()

		a.cur = pendingOp{adr: adr}
		a.readsLeft--
	} else {
		adr := a.rng.Uint64() % a.maxAdr
		data := a.rng.Uint64() & a.dataMask

		a.cur = pendingOp{adr: adr, data: data, isWrite: true}
		a.KnownMemValue[adr] = data
		a.writesLeft--
	}

	a.busy = true
}

func (a *Agent) shouldRead() bool {
	if len(a.KnownMemValue) == 0 || a.readsLeft == 0 {
		return false
	}

	if a.writesLeft == 0 {
		return true
	}

	return a.rng.Float64() > 0.5
}

func (a *Agent) randomKnownAddress() uint64 {
	for {
		adr := a.rng.Uint64() % a.maxAdr
		if _, written := a.KnownMemValue[adr]; written {
			return adr
		}
	}
}

var _ sim.Updater = (*Agent)(nil)
var _ sim.Clocked = (*Agent)(nil)
