// Package debug provides bus taps: free-running trigger counters that latch a
// snapshot of caller-named signals on every cycle where the trigger fires.
package debug

import (
	"fmt"
	"log"

	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/datarecording"
	"github.com/sarchlab/busfabric/sim"
)

// A Signal is a named probe into the design. The sample function must be
// side-effect free.
type Signal struct {
	Name   string
	Sample func() uint64
}

// TriggerEntry is one recorded trigger occurrence.
type TriggerEntry struct {
	Cycle  uint64
	Count  uint64
	Values string
}

// Tap counts trigger occurrences and latches the probed signal values at each
// occurrence. The latched values stay stable until the next trigger.
type Tap struct {
	name string

	trigger func() bool
	signals []Signal

	recorder  datarecording.DataRecorder
	tableName string

	cycle   uint64
	count   uint64
	latched map[string]uint64

	resetPending bool
}

// Name returns the name of the tap.
func (t *Tap) Name() string {
	return t.name
}

// Count returns the number of trigger occurrences since the last reset.
func (t *Tap) Count() uint64 {
	return t.count
}

// Value returns the latched value of a probed signal.
func (t *Tap) Value(name string) uint64 {
	v, found := t.latched[name]
	if !found {
		log.Panicf("tap %s has no signal %s", t.name, name)
	}

	return v
}

// Signals returns the names of the probed signals in declaration order.
func (t *Tap) Signals() []string {
	names := make([]string, len(t.signals))
	for i, s := range t.signals {
		names[i] = s.Name
	}

	return names
}

// Reset schedules the counter to clear at the end of the current cycle. A
// trigger in the same cycle is lost.
func (t *Tap) Reset() {
	t.resetPending = true
}

// Commit samples the trigger and, when it fires, latches the probes.
func (t *Tap) Commit() {
	if t.resetPending {
		t.count = 0
		t.resetPending = false
	} else if t.trigger() {
		t.count++

		values := ""
		for i, s := range t.signals {
			v := s.Sample()
			t.latched[s.Name] = v

			if i > 0 {
				values += " "
			}
			values += fmt.Sprintf("%s=0x%x", s.Name, v)
		}

		if t.recorder != nil {
			t.recorder.InsertData(t.tableName, TriggerEntry{
				Cycle:  t.cycle,
				Count:  t.count,
				Values: values,
			})
		}
	}

	t.cycle++
}

// WishboneSignals returns probes for every field of a classic bus.
func WishboneSignals(b *wishbone.Bus) []Signal {
	return []Signal{
		{"adr", func() uint64 { return b.Adr }},
		{"dat_w", func() uint64 { return wishbone.Uint(b.DatW) }},
		{"dat_r", func() uint64 { return wishbone.Uint(b.DatR) }},
		{"sel", func() uint64 { return packBools(b.Sel) }},
		{"cyc", func() uint64 { return boolBit(b.Cyc) }},
		{"stb", func() uint64 { return boolBit(b.Stb) }},
		{"we", func() uint64 { return boolBit(b.We) }},
		{"ack", func() uint64 { return boolBit(b.Ack) }},
		{"err", func() uint64 { return boolBit(b.Err) }},
	}
}

func packBools(bits []bool) uint64 {
	v := uint64(0)
	for i, b := range bits {
		if b {
			v |= 1 << i
		}
	}

	return v
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

var _ sim.Clocked = (*Tap)(nil)
