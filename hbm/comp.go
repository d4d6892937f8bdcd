// Package hbm models the high-bandwidth memory IP as an opaque burst-bus
// endpoint: 32 channels of 256-bit data behind a 37-bit address space, a
// fixed response latency, address-ranged error injection, and the
// temperature/fault status bits the real stack exposes. The memory array
// itself is a plain backing store; no internal timing is modeled beyond the
// configured latency.
package hbm

import (
	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/sim"
)

type opDirection int

const (
	opWrite opDirection = iota
	opRead
)

type memOp struct {
	direction opDirection
	addr      uint64
	id        uint64
	size      uint8
	burst     axi.BurstType
	beats     int

	data [][]byte
	strb [][]bool

	resp       axi.Resp
	readyCycle uint64

	// Read-response progress.
	beatsSent int
}

type wBeat struct {
	data []byte
	strb []bool
	last bool
}

type channel struct {
	iface *axi.Interface

	awReg *axi.AWChannel
	arReg *axi.ARChannel

	wBeats []*wBeat

	ops []*memOp
}

// Comp is the mock memory endpoint.
type Comp struct {
	name string

	channels []*channel
	storage  *Storage

	latency   uint64
	maxOps    int
	errRanges [][2]uint64

	cycle uint64

	initLatency uint64
	apbComplete [2]bool
	cattrip     [2]bool
	temperature [2]uint8
}

// Name returns the name of the endpoint.
func (c *Comp) Name() string {
	return c.name
}

// Channel returns the burst-bus interface of one channel.
func (c *Comp) Channel(i int) *axi.Interface {
	return c.channels[i].iface
}

// NumChannels returns the number of channels.
func (c *Comp) NumChannels() int {
	return len(c.channels)
}

// Storage returns the backing store shared by all channels.
func (c *Comp) Storage() *Storage {
	return c.storage
}

// InitDone reports whether both stacks have finished their power-up
// sequence.
func (c *Comp) InitDone() bool {
	return c.apbComplete[0] && c.apbComplete[1]
}

// Cattrip reports the catastrophic-temperature-trip bit of one stack. The
// fabric only surfaces this bit; protective action belongs to an external
// controller.
func (c *Comp) Cattrip(stack int) bool {
	return c.cattrip[stack]
}

// SetCattrip drives the temperature-trip bit of one stack.
func (c *Comp) SetCattrip(stack int, v bool) {
	c.cattrip[stack] = v
}

// Temperature returns the reported temperature of one stack in degrees
// Celsius.
func (c *Comp) Temperature(stack int) uint8 {
	return c.temperature[stack]
}

// SetTemperature drives the reported temperature of one stack.
func (c *Comp) SetTemperature(stack int, v uint8) {
	c.temperature[stack] = v
}

func (c *Comp) addrFaulty(addr uint64) bool {
	for _, r := range c.errRanges {
		if addr >= r[0] && addr < r[1] {
			return true
		}
	}

	return false
}

// Update drives the ready signals and presents matured responses. Responses
// are presented strictly in acceptance order per channel.
func (c *Comp) Update() bool {
	changed := false

	for _, ch := range c.channels {
		changed = c.updateChannel(ch) || changed
	}

	return changed
}

func (c *Comp) updateChannel(ch *channel) bool {
	a := ch.iface

	roomForOps := len(ch.ops) < c.maxOps

	changed := sim.Assign(&a.AW.Ready, ch.awReg == nil && roomForOps)
	changed = sim.Assign(&a.W.Ready, len(ch.wBeats) < c.maxOps) || changed
	changed = sim.Assign(&a.AR.Ready, ch.arReg == nil && roomForOps) || changed

	front := c.maturedFront(ch)

	bValid := front != nil && front.direction == opWrite
	changed = sim.Assign(&a.B.Valid, bValid) || changed
	if bValid {
		changed = sim.Assign(&a.B.ID, front.id) || changed
		changed = sim.Assign(&a.B.Resp, front.resp) || changed
	}

	rValid := front != nil && front.direction == opRead
	changed = sim.Assign(&a.R.Valid, rValid) || changed
	if rValid {
		changed = sim.Assign(&a.R.ID, front.id) || changed
		changed = sim.Assign(&a.R.Resp, front.resp) || changed
		changed = sim.Assign(&a.R.Last,
			front.beatsSent == front.beats-1) || changed
		changed = sim.AssignBytes(a.R.Data,
			front.data[front.beatsSent]) || changed
	}

	return changed
}

func (c *Comp) maturedFront(ch *channel) *memOp {
	if len(ch.ops) == 0 {
		return nil
	}

	front := ch.ops[0]
	if front.readyCycle > c.cycle {
		return nil
	}

	return front
}

// Commit captures command and data handshakes, forms operations, applies
// memory effects, and retires completed responses.
func (c *Comp) Commit() {
	for _, ch := range c.channels {
		c.commitResponses(ch)
		c.commitCaptures(ch)
		c.formOps(ch)
	}

	c.commitInit()

	c.cycle++
}

func (c *Comp) commitInit() {
	if c.cycle >= c.initLatency {
		c.apbComplete[0] = true
		c.apbComplete[1] = true
	}
}

func (c *Comp) commitResponses(ch *channel) {
	a := ch.iface

	if a.B.Valid && a.B.Ready {
		ch.ops = ch.ops[1:]
	}

	if a.R.Valid && a.R.Ready {
		front := ch.ops[0]
		front.beatsSent++

		if front.beatsSent == front.beats {
			ch.ops = ch.ops[1:]
		}
	}
}

func (c *Comp) commitCaptures(ch *channel) {
	a := ch.iface

	if a.AW.Valid && a.AW.Ready {
		aw := a.AW
		ch.awReg = &aw
	}

	if a.W.Valid && a.W.Ready {
		beat := &wBeat{
			data: append([]byte(nil), a.W.Data...),
			strb: append([]bool(nil), a.W.Strb...),
			last: a.W.Last,
		}
		ch.wBeats = append(ch.wBeats, beat)
	}

	if a.AR.Valid && a.AR.Ready {
		ar := a.AR
		ch.arReg = &ar
	}
}

func (c *Comp) formOps(ch *channel) {
	if ch.awReg != nil && len(ch.wBeats) >= int(ch.awReg.Len)+1 {
		c.formWrite(ch)
	}

	if ch.arReg != nil && len(ch.ops) < c.maxOps {
		c.formRead(ch)
	}
}

func (c *Comp) formWrite(ch *channel) {
	if len(ch.ops) >= c.maxOps {
		return
	}

	aw := ch.awReg
	beats := int(aw.Len) + 1

	op := &memOp{
		direction:  opWrite,
		addr:       aw.Addr,
		id:         aw.ID,
		size:       aw.Size,
		burst:      aw.Burst,
		beats:      beats,
		resp:       axi.RespOkay,
		readyCycle: c.cycle + c.latency + 1,
	}

	if c.addrFaulty(aw.Addr) {
		op.resp = axi.RespSlvErr
	}

	beatBytes := uint64(1) << aw.Size
	addr := aw.Addr

	for i := 0; i < beats; i++ {
		beat := ch.wBeats[i]

		if op.resp == axi.RespOkay {
			c.applyWriteBeat(ch, addr, beatBytes, beat, op)
		}

		if aw.Burst != axi.BurstFixed {
			addr += beatBytes
		}
	}

	ch.wBeats = ch.wBeats[beats:]
	ch.awReg = nil
	ch.ops = append(ch.ops, op)
}

func (c *Comp) applyWriteBeat(
	ch *channel,
	addr uint64,
	beatBytes uint64,
	beat *wBeat,
	op *memOp,
) {
	lane := int(addr % uint64(ch.iface.Bytes()))

	data := beat.data[lane : lane+int(beatBytes)]
	strb := beat.strb[lane : lane+int(beatBytes)]

	err := c.storage.WriteMasked(addr, data, strb)
	if err != nil {
		op.resp = axi.RespDecErr
	}
}

func (c *Comp) formRead(ch *channel) {
	ar := ch.arReg
	beats := int(ar.Len) + 1
	beatBytes := uint64(1) << ar.Size
	ifaceBytes := ch.iface.Bytes()

	op := &memOp{
		direction:  opRead,
		addr:       ar.Addr,
		id:         ar.ID,
		size:       ar.Size,
		burst:      ar.Burst,
		beats:      beats,
		resp:       axi.RespOkay,
		readyCycle: c.cycle + c.latency + 1,
	}

	if c.addrFaulty(ar.Addr) {
		op.resp = axi.RespSlvErr
	}

	addr := ar.Addr

	for i := 0; i < beats; i++ {
		beatData := make([]byte, ifaceBytes)

		if op.resp == axi.RespOkay {
			lane := int(addr % uint64(ifaceBytes))

			word, err := c.storage.Read(addr, beatBytes)
			if err != nil {
				op.resp = axi.RespDecErr
			} else {
				copy(beatData[lane:], word)
			}
		}

		op.data = append(op.data, beatData)

		if ar.Burst != axi.BurstFixed {
			addr += beatBytes
		}
	}

	ch.arReg = nil
	ch.ops = append(ch.ops, op)
}

var _ sim.Updater = (*Comp)(nil)
var _ sim.Clocked = (*Comp)(nil)
