// Package ui is an immediate-mode widget runtime for the key grid.
// Every frame the whole widget tree runs once against the current
// event, painting into a frame buffer that is then reconciled with the
// device. Widgets keep their state between frames in a store keyed by
// an explicit identity string plus the key they sit on, so the same
// widget kind can appear many times in one tree.
package ui

import (
	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
)

type stateKey struct {
	id  string
	key launchpad.Key
}

type brightnessState struct {
	known bool
	value uint8
}

// store holds all retained widget state. It is only ever touched from
// the frame loop goroutine, so no locking.
type store struct {
	tabs       map[string]uint8
	toggles    map[stateKey]bool
	counters   map[stateKey]int
	held       map[stateKey]bool
	prev       map[stateKey]bool
	asleep     map[stateKey]bool
	brightness map[string]brightnessState
}

func newStore() *store {
	return &store{
		tabs:       make(map[string]uint8),
		toggles:    make(map[stateKey]bool),
		counters:   make(map[stateKey]int),
		held:       make(map[stateKey]bool),
		prev:       make(map[stateKey]bool),
		asleep:     make(map[stateKey]bool),
		brightness: make(map[string]brightnessState),
	}
}

// Context is what a widget tree runs against: the frame buffer being
// painted, the event that triggered this frame, the session for widget
// side effects, the bus for widgets that produce events, and the
// retained state store.
type Context struct {
	FB    map[launchpad.Key]launchpad.Color
	Event events.Event
	LP    *launchpad.Session
	Bus   *events.Bus

	st *store
}

// NewContext builds a context with an empty frame buffer and store.
func NewContext(lp *launchpad.Session, bus *events.Bus) *Context {
	return &Context{
		FB:  make(map[launchpad.Key]launchpad.Color, 81),
		LP:  lp,
		Bus: bus,
		st:  newStore(),
	}
}
