// Package wishbone provides signal-level records for the simple synchronous
// bus used between the master, the cache, and the protocol converters. A
// master holds a request (Cyc, Stb, and the address/data/select fields)
// stable until the slave responds with Ack or Err.
package wishbone

import (
	"log"

	"github.com/sarchlab/busfabric/sim"
)

// A Bus is one classic bus connection. The master drives the master-to-slave
// fields, the slave drives the slave-to-master fields. The address is a word
// address; data and byte selects are indexed with byte 0 as the least
// significant lane.
type Bus struct {
	name string

	DataWidth int
	AdrWidth  int

	// Master to slave.
	Adr  uint64
	DatW []byte
	Sel  []bool
	Cyc  bool
	Stb  bool
	We   bool

	// Slave to master.
	DatR []byte
	Ack  bool
	Err  bool
}

// New creates a classic bus. The data width must be a multiple of 8 and no
// wider than 512 bits.
func New(name string, dataWidth, adrWidth int) *Bus {
	sim.NameMustBeValid(name)

	if dataWidth <= 0 || dataWidth%8 != 0 || dataWidth > 512 {
		log.Panicf("bus %s: unsupported data width %d", name, dataWidth)
	}

	if adrWidth <= 0 || adrWidth > 64 {
		log.Panicf("bus %s: unsupported address width %d", name, adrWidth)
	}

	return &Bus{
		name:      name,
		DataWidth: dataWidth,
		AdrWidth:  adrWidth,
		DatW:      make([]byte, dataWidth/8),
		DatR:      make([]byte, dataWidth/8),
		Sel:       make([]bool, dataWidth/8),
	}
}

// Name returns the name of the bus.
func (b *Bus) Name() string {
	return b.name
}

// Bytes returns the number of byte lanes on the bus.
func (b *Bus) Bytes() int {
	return b.DataWidth / 8
}

// Idle reports whether no transaction is in progress on the bus.
func (b *Bus) Idle() bool {
	return !b.Cyc
}

// DriveIdleM2S clears all master-driven signals. Data lines are left as-is,
// matching hardware where the data registers are reset-less.
func (b *Bus) DriveIdleM2S() bool {
	changed := sim.Assign(&b.Cyc, false)
	changed = sim.Assign(&b.Stb, false) || changed
	changed = sim.Assign(&b.We, false) || changed

	return changed
}

// DriveIdleS2M clears the slave response signals.
func (b *Bus) DriveIdleS2M() bool {
	changed := sim.Assign(&b.Ack, false)
	changed = sim.Assign(&b.Err, false) || changed

	return changed
}

// ConnectM2S forwards the master-driven signals of src onto dst.
func ConnectM2S(src, dst *Bus) bool {
	changed := sim.Assign(&dst.Adr, src.Adr)
	changed = sim.AssignBytes(dst.DatW, src.DatW) || changed
	changed = sim.AssignBools(dst.Sel, src.Sel) || changed
	changed = sim.Assign(&dst.Cyc, src.Cyc) || changed
	changed = sim.Assign(&dst.Stb, src.Stb) || changed
	changed = sim.Assign(&dst.We, src.We) || changed

	return changed
}

// ConnectS2M forwards the slave-driven signals of src back onto dst.
func ConnectS2M(src, dst *Bus) bool {
	changed := sim.AssignBytes(dst.DatR, src.DatR)
	changed = sim.Assign(&dst.Ack, src.Ack) || changed
	changed = sim.Assign(&dst.Err, src.Err) || changed

	return changed
}

// A PipelinedBus adds the stall signal of the pipelined bus discipline. The
// slave asserts Stall to pause acceptance of further requests while earlier
// ones are still outstanding.
type PipelinedBus struct {
	Bus

	Stall bool
}

// NewPipelined creates a pipelined bus.
func NewPipelined(name string, dataWidth, adrWidth int) *PipelinedBus {
	b := New(name, dataWidth, adrWidth)

	return &PipelinedBus{Bus: *b}
}

// PutUint stores v into the low len(dst) bytes, least significant byte first.
func PutUint(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = byte(v >> (8 * i))
	}
}

// Uint reads up to 8 bytes of src, least significant byte first.
func Uint(src []byte) uint64 {
	v := uint64(0)
	n := len(src)

	if n > 8 {
		n = 8
	}

	for i := 0; i < n; i++ {
		v |= uint64(src[i]) << (8 * i)
	}

	return v
}
