package debug

import (
	"log"
	"strings"

	"github.com/sarchlab/busfabric/datarecording"
)

// Builder can build bus taps.
type Builder struct {
	trigger  func() bool
	signals  []Signal
	recorder datarecording.DataRecorder
}

// MakeBuilder returns a tap builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithTrigger sets the trigger condition. The function is evaluated once per
// cycle after all signals have settled.
func (b Builder) WithTrigger(trigger func() bool) Builder {
	b.trigger = trigger
	return b
}

// WithSignal adds a named probe.
func (b Builder) WithSignal(name string, sample func() uint64) Builder {
	b.signals = append(b.signals, Signal{Name: name, Sample: sample})
	return b
}

// WithSignals adds a group of probes.
func (b Builder) WithSignals(signals []Signal) Builder {
	b.signals = append(b.signals, signals...)
	return b
}

// WithRecorder makes the tap insert a row for every trigger occurrence. The
// table is created at build time.
func (b Builder) WithRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// Build creates the tap.
func (b Builder) Build(name string) *Tap {
	if b.trigger == nil {
		log.Panicf("tap %s: a trigger must be set", name)
	}

	seen := make(map[string]bool)
	for _, s := range b.signals {
		if seen[s.Name] {
			log.Panicf("tap %s: duplicate signal %s", name, s.Name)
		}
		seen[s.Name] = true
	}

	t := &Tap{
		name:     name,
		trigger:  b.trigger,
		signals:  b.signals,
		recorder: b.recorder,
		latched:  make(map[string]uint64),
	}

	if t.recorder != nil {
		t.tableName = "tap_" + sanitizeTableName(name)
		t.recorder.CreateTable(t.tableName, TriggerEntry{})
	}

	return t
}

func sanitizeTableName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
