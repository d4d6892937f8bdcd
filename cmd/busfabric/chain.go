package main

import (
	"github.com/sarchlab/busfabric/acceptance"
	"github.com/sarchlab/busfabric/bus/axi"
	"github.com/sarchlab/busfabric/bus/wishbone"
	"github.com/sarchlab/busfabric/datarecording"
	"github.com/sarchlab/busfabric/debug"
	"github.com/sarchlab/busfabric/fabric/cache"
	"github.com/sarchlab/busfabric/fabric/guard"
	"github.com/sarchlab/busfabric/fabric/injector"
	"github.com/sarchlab/busfabric/fabric/softcontrol"
	"github.com/sarchlab/busfabric/fabric/wb2axi"
	"github.com/sarchlab/busfabric/fabric/wbc2pipeline"
	"github.com/sarchlab/busfabric/hbm"
	"github.com/sarchlab/busfabric/monitoring"
	"github.com/sarchlab/busfabric/sim"
)

const masterDataWidth = 32

type chainConfig struct {
	cacheSize   int
	cacheWays   int
	queueDepth  int
	memLatency  uint64
	guardLimit  uint64
	softControl bool
}

// chain is the full fabric: a guarded classic master bus, the soft injector,
// the write-back cache, the classic-to-pipelined converter, the
// pipelined-to-burst bridge, and one channel of the memory endpoint.
type chain struct {
	engine *sim.Engine

	masterBus *wishbone.Bus

	guard    *guard.Comp
	injector *injector.Comp
	softCtl  *softcontrol.Comp
	cache    *cache.Comp
	conv     *wbc2pipeline.Comp
	bridge   *wb2axi.Comp
	mem      *hbm.Comp

	tap *debug.Tap
}

func buildChain(cfg chainConfig, recorder datarecording.DataRecorder) *chain {
	c := &chain{engine: sim.NewEngine()}

	c.mem = hbm.MakeBuilder().
		WithNumChannels(1).
		WithLatency(cfg.memLatency).
		Build("HBM")
	memChannel := c.mem.Channel(0)

	wideWidth := memChannel.Bytes() * 8
	pipeAdrWidth := memChannel.AddrWidth - (axi.Log2(wideWidth) - 3)
	masterAdrWidth := memChannel.AddrWidth - axi.Log2(masterDataWidth/8)

	c.masterBus = wishbone.New("MasterBus", masterDataWidth, masterAdrWidth)
	softBus := wishbone.New("SoftBus", masterDataWidth, masterAdrWidth)
	guardedBus := wishbone.New("GuardedBus", masterDataWidth, masterAdrWidth)
	cacheBus := wishbone.New("CacheBus", masterDataWidth, masterAdrWidth)
	wideBus := wishbone.New("WideBus", wideWidth, pipeAdrWidth)
	pipeBus := wishbone.NewPipelined("PipeBus", wideWidth, pipeAdrWidth)

	c.guard = guard.MakeBuilder().
		WithMaster(c.masterBus).
		WithSlave(guardedBus).
		WithLimit(cfg.guardLimit).
		Build("Guard")

	c.softCtl = softcontrol.MakeBuilder().
		WithBus(softBus).
		Build("SoftCtl")

	c.injector = injector.MakeBuilder().
		WithHardwareMaster(guardedBus).
		WithSoftMaster(softBus).
		WithSlave(cacheBus).
		WithSoftControlEnabled(cfg.softControl).
		Build("Injector")

	c.cache = cache.MakeBuilder().
		WithMaster(cacheBus).
		WithSlave(wideBus).
		WithSize(cfg.cacheSize).
		WithNumWays(cfg.cacheWays).
		Build("Cache")

	c.conv = wbc2pipeline.MakeBuilder().
		WithClassic(wideBus).
		WithPipelined(pipeBus).
		Build("Conv")

	c.bridge = wb2axi.MakeBuilder().
		WithWishbone(pipeBus).
		WithAXI(memChannel).
		WithQueueDepth(cfg.queueDepth).
		Build("Bridge")

	c.engine.Register(c.guard)
	c.engine.Register(c.softCtl)
	c.engine.Register(c.injector)
	c.engine.Register(c.cache)
	c.engine.Register(c.conv)
	c.engine.Register(c.bridge)
	c.engine.Register(c.mem)

	if recorder != nil {
		c.tap = debug.MakeBuilder().
			WithTrigger(func() bool {
				return c.masterBus.Ack || c.masterBus.Err
			}).
			WithSignals(debug.WishboneSignals(c.masterBus)).
			WithRecorder(recorder).
			Build("MasterBusTap")

		c.engine.Register(c.tap)
	}

	return c
}

// maxAgentAddress bounds the agent's address range so the working set
// produces both cache hits and evictions.
func (c *chain) maxAgentAddress() uint64 {
	return 1 << 16
}

func (c *chain) attachAgent(numReads, numWrites int, seed int64) *acceptance.Agent {
	agent := acceptance.MakeBuilder().
		WithBus(c.masterBus).
		WithMaxAddress(c.maxAgentAddress()).
		WithNumReads(numReads).
		WithNumWrites(numWrites).
		WithSeed(seed).
		Build("Agent")

	c.engine.Register(agent)

	return agent
}

func (c *chain) startMonitor(port int, dashboard bool) *monitoring.Monitor {
	m := monitoring.NewMonitor().WithPortNumber(port)

	m.RegisterEngine(c.engine)
	m.RegisterComponent(c.guard)
	m.RegisterComponent(c.injector)
	m.RegisterComponent(c.softCtl)
	m.RegisterComponent(c.cache)
	m.RegisterComponent(c.conv)
	m.RegisterComponent(c.bridge)
	m.RegisterComponent(c.mem)
	m.RegisterGuard(c.guard)

	if c.tap != nil {
		m.RegisterTap(c.tap)
	}

	actualPort := m.StartServer()
	if dashboard {
		m.OpenDashboard(actualPort)
	}

	return m
}
