// Package axi provides signal-level records for the burst-capable,
// split-transaction bus that faces the memory IP. Each channel carries its
// own valid/ready handshake; a transfer happens on a cycle where both are
// high.
package axi

import (
	"log"

	"github.com/sarchlab/busfabric/sim"
)

// BurstType selects the address sequence of a multi-beat transaction.
type BurstType uint8

// The three burst-type encodings.
const (
	BurstFixed BurstType = 0b00
	BurstIncr  BurstType = 0b01
	BurstWrap  BurstType = 0b10
)

// Resp is a response code returned on the B and R channels.
type Resp uint8

// The four response encodings.
const (
	RespOkay   Resp = 0b00
	RespExOkay Resp = 0b01
	RespSlvErr Resp = 0b10
	RespDecErr Resp = 0b11
)

// IsErr reports whether the response indicates a failed transaction.
func (r Resp) IsErr() bool {
	return r == RespSlvErr || r == RespDecErr
}

// AWChannel carries write-transaction addresses and attributes.
type AWChannel struct {
	Valid bool
	Ready bool

	Addr  uint64
	Len   uint8
	Size  uint8
	Burst BurstType
	ID    uint64
	Cache uint8
	Lock  uint8
	Prot  uint8
	QoS   uint8
}

// WChannel carries write data beats.
type WChannel struct {
	Valid bool
	Ready bool

	Data []byte
	Strb []bool
	Last bool
}

// BChannel carries write responses.
type BChannel struct {
	Valid bool
	Ready bool

	ID   uint64
	Resp Resp
}

// ARChannel carries read-transaction addresses and attributes.
type ARChannel struct {
	Valid bool
	Ready bool

	Addr  uint64
	Len   uint8
	Size  uint8
	Burst BurstType
	ID    uint64
	Cache uint8
	Lock  uint8
	Prot  uint8
	QoS   uint8
}

// RChannel carries read data beats and the read response.
type RChannel struct {
	Valid bool
	Ready bool

	Data []byte
	ID   uint64
	Resp Resp
	Last bool
}

// An Interface is one full burst-bus connection.
type Interface struct {
	name string

	DataWidth int
	AddrWidth int
	IDWidth   int

	AW AWChannel
	W  WChannel
	B  BChannel
	AR ARChannel
	R  RChannel
}

// NewInterface creates a full burst-bus interface.
func NewInterface(name string, dataWidth, addrWidth, idWidth int) *Interface {
	sim.NameMustBeValid(name)

	if dataWidth <= 0 || dataWidth%8 != 0 {
		log.Panicf("axi %s: unsupported data width %d", name, dataWidth)
	}

	if addrWidth <= 0 || addrWidth > 64 {
		log.Panicf("axi %s: unsupported address width %d", name, addrWidth)
	}

	if idWidth <= 0 || idWidth > 32 {
		log.Panicf("axi %s: unsupported id width %d", name, idWidth)
	}

	i := &Interface{
		name:      name,
		DataWidth: dataWidth,
		AddrWidth: addrWidth,
		IDWidth:   idWidth,
	}

	i.W.Data = make([]byte, dataWidth/8)
	i.W.Strb = make([]bool, dataWidth/8)
	i.R.Data = make([]byte, dataWidth/8)

	return i
}

// Name returns the name of the interface.
func (i *Interface) Name() string {
	return i.name
}

// Bytes returns the number of byte lanes of the data channels.
func (i *Interface) Bytes() int {
	return i.DataWidth / 8
}

// LiteAChannel is the address channel of a lite interface.
type LiteAChannel struct {
	Valid bool
	Ready bool

	Addr uint64
}

// LiteWChannel is the write-data channel of a lite interface.
type LiteWChannel struct {
	Valid bool
	Ready bool

	Data []byte
	Strb []bool
}

// LiteBChannel is the write-response channel of a lite interface.
type LiteBChannel struct {
	Valid bool
	Ready bool

	Resp Resp
}

// LiteRChannel is the read-data channel of a lite interface.
type LiteRChannel struct {
	Valid bool
	Ready bool

	Data []byte
	Resp Resp
}

// A LiteInterface is a single-outstanding-beat connection with no burst
// fields and no transaction tags.
type LiteInterface struct {
	name string

	DataWidth int
	AddrWidth int

	AW LiteAChannel
	W  LiteWChannel
	B  LiteBChannel
	AR LiteAChannel
	R  LiteRChannel
}

// NewLiteInterface creates a lite interface.
func NewLiteInterface(name string, dataWidth, addrWidth int) *LiteInterface {
	sim.NameMustBeValid(name)

	if dataWidth <= 0 || dataWidth%8 != 0 {
		log.Panicf("axilite %s: unsupported data width %d", name, dataWidth)
	}

	i := &LiteInterface{
		name:      name,
		DataWidth: dataWidth,
		AddrWidth: addrWidth,
	}

	i.W.Data = make([]byte, dataWidth/8)
	i.W.Strb = make([]bool, dataWidth/8)
	i.R.Data = make([]byte, dataWidth/8)

	return i
}

// Name returns the name of the interface.
func (i *LiteInterface) Name() string {
	return i.name
}

// Log2 returns the base-2 logarithm of v. It panics if v is not a power of
// two, which is how width mismatches between chained adapters are rejected
// at construction time.
func Log2(v int) int {
	if v <= 0 || v&(v-1) != 0 {
		log.Panicf("%d is not a power of two", v)
	}

	n := 0
	for v > 1 {
		v >>= 1
		n++
	}

	return n
}
