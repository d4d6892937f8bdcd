package sim

import "log"

// HookPosCycleStart marks the beginning of a simulated clock cycle.
var HookPosCycleStart = &HookPos{Name: "Cycle Start"}

// HookPosCycleEnd marks the end of a simulated clock cycle, after all
// registered state has been committed.
var HookPosCycleEnd = &HookPos{Name: "Cycle End"}

// An Updater is a block of combinational logic. Update reads the current
// signal values and drives its outputs. It returns true if any driven signal
// changed. Update may run several times within one cycle until the whole
// design settles, so it must be idempotent for a fixed set of inputs.
type Updater interface {
	Named
	Update() bool
}

// A Clocked element owns registered state. Commit latches the next-state
// values staged during the Update passes. Commit runs exactly once per cycle,
// after all combinational logic has settled.
type Clocked interface {
	Named
	Commit()
}

// An Engine advances a synchronous design cycle by cycle. Within each cycle
// it evaluates all combinational logic to a fixed point and then commits all
// registered-state updates atomically.
type Engine struct {
	HookableBase

	cycle       uint64
	settleLimit int
	updaters    []Updater
	clocked     []Clocked
}

// NewEngine creates an engine with no components registered.
func NewEngine() *Engine {
	return &Engine{
		settleLimit: 64,
	}
}

// Register adds a component to the engine. The component must implement
// Updater, Clocked, or both.
func (e *Engine) Register(c Named) {
	registered := false

	if u, ok := c.(Updater); ok {
		e.updaters = append(e.updaters, u)
		registered = true
	}

	if s, ok := c.(Clocked); ok {
		e.clocked = append(e.clocked, s)
		registered = true
	}

	if !registered {
		log.Panicf("component %s is neither combinational nor clocked",
			c.Name())
	}
}

// Cycle returns the number of cycles completed so far.
func (e *Engine) Cycle() uint64 {
	return e.cycle
}

// Step advances the design by one clock cycle.
func (e *Engine) Step() {
	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosCycleStart, Item: e.cycle})

	e.settle()

	for _, c := range e.clocked {
		c.Commit()
	}

	e.InvokeHook(HookCtx{Domain: e, Pos: HookPosCycleEnd, Item: e.cycle})

	e.cycle++
}

func (e *Engine) settle() {
	for i := 0; ; i++ {
		if i >= e.settleLimit {
			log.Panicf("combinational logic did not settle after %d passes",
				e.settleLimit)
		}

		changed := false
		for _, u := range e.updaters {
			changed = u.Update() || changed
		}

		if !changed {
			return
		}
	}
}

// Run advances the design by n clock cycles.
func (e *Engine) Run(n uint64) {
	for i := uint64(0); i < n; i++ {
		e.Step()
	}
}

// RunUntil steps the design until cond returns true, or until limit cycles
// have elapsed. It returns true if cond was satisfied.
func (e *Engine) RunUntil(cond func() bool, limit uint64) bool {
	for i := uint64(0); i < limit; i++ {
		if cond() {
			return true
		}
		e.Step()
	}

	return cond()
}
