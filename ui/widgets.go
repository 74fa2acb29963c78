package ui

import (
	"github.com/rs/zerolog/log"

	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/theme"
)

func (c *Context) keyDown(key launchpad.Key) bool {
	return c.Event.Type == events.KeyDown && c.Event.Key == key
}

func (c *Context) keyUp(key launchpad.Key) bool {
	return c.Event.Type == events.KeyUp && c.Event.Key == key
}

// Tabs draws n adjacent tab buttons starting at start and returns the
// index of the selected one.
func (c *Context) Tabs(id string, start launchpad.Key, n uint8) uint8 {
	tab := c.st.tabs[id]
	if c.Event.Type == events.KeyDown && c.Event.Key >= start && c.Event.Key < start+launchpad.Key(n) {
		tab = uint8(c.Event.Key - start)
		c.st.tabs[id] = tab
	}
	for i := uint8(0); i < n; i++ {
		color := theme.TabIdle
		if i == tab {
			color = theme.TabActive
		}
		c.FB[start+launchpad.Key(i)] = launchpad.Static(color)
	}
	return tab
}

// StaticColor paints one key.
func (c *Context) StaticColor(key launchpad.Key, color launchpad.Color) {
	c.FB[key] = color
}

// Toggle flips between two colors on each press and returns the
// current state.
func (c *Context) Toggle(id string, key launchpad.Key, inactive, active launchpad.Color) bool {
	sk := stateKey{id, key}
	on := c.st.toggles[sk]
	if c.keyDown(key) {
		on = !on
		c.st.toggles[sk] = on
	}
	if on {
		c.FB[key] = active
	} else {
		c.FB[key] = inactive
	}
	return on
}

// Counter draws a decrement button at start and an increment button at
// start+1 and returns the counter value, wrapping within [0, max).
// The pressed half flashes brighter for the frame of its press.
func (c *Context) Counter(id string, start launchpad.Key, max int) int {
	sk := stateKey{id, start}
	n := c.st.counters[sk]
	switch {
	case c.keyDown(start):
		n--
	case c.keyDown(start + 1):
		n++
	}
	if n == max {
		n = 0
	} else if n == -1 {
		n = max - 1
	}
	c.st.counters[sk] = n
	for i := launchpad.Key(0); i < 2; i++ {
		color := theme.TabIdle
		if c.keyDown(start + i) {
			color = theme.PressFlash
		}
		c.FB[start+i] = launchpad.Static(color)
	}
	return n
}

// Info paints a key and scrolls text across the grid when it is
// pressed. A failed scroll command is logged; the frame carries on.
func (c *Context) Info(key launchpad.Key, color launchpad.Color, text string) {
	c.FB[key] = color
	if c.keyDown(key) {
		loops := false
		speed := uint8(15)
		tc := launchpad.PaletteText(theme.TransWhite)
		err := c.LP.Apply(launchpad.ScrollText{Loops: &loops, Speed: &speed, Color: &tc, Text: &text})
		if err != nil {
			log.Warn().Err(err).Str("text", text).Msg("scroll text failed")
		}
	}
}

// Impulse returns true exactly once per press. Repeated key-down
// events without an intervening key-up do not retrigger. The held
// state still drives which color is drawn.
func (c *Context) Impulse(id string, key launchpad.Key, color, pressed launchpad.Color) bool {
	sk := stateKey{id, key}
	was := c.st.held[sk]
	held := was
	switch {
	case c.keyDown(key):
		held = true
	case c.keyUp(key):
		held = false
	}
	c.st.held[sk] = held
	if held {
		c.FB[key] = pressed
	} else {
		c.FB[key] = color
	}
	return held && !was
}

// PressRelease reports presses and releases as they happen: (true,
// true) on press, (false, true) on release, ok false otherwise.
func (c *Context) PressRelease(id string, key launchpad.Key, color, pressed launchpad.Color) (down, ok bool) {
	sk := stateKey{id, key}
	held := c.st.held[sk]
	switch {
	case c.keyDown(key):
		held = true
	case c.keyUp(key):
		held = false
	}
	c.st.held[sk] = held
	if held {
		c.FB[key] = pressed
	} else {
		c.FB[key] = color
	}
	switch {
	case c.keyDown(key):
		return true, true
	case c.keyUp(key):
		return false, true
	}
	return false, false
}

// Holdable returns whether the key is currently held down.
func (c *Context) Holdable(id string, key launchpad.Key, color, pressed launchpad.Color) bool {
	sk := stateKey{id, key}
	held := c.st.held[sk]
	switch {
	case c.keyDown(key):
		held = true
	case c.keyUp(key):
		held = false
	}
	c.st.held[sk] = held
	if held {
		c.FB[key] = pressed
	} else {
		c.FB[key] = color
	}
	return held
}

// Monostable returns true exactly once each time val goes from false
// to true. key distinguishes instances sharing an id.
func (c *Context) Monostable(id string, key launchpad.Key, val bool) bool {
	sk := stateKey{id, key}
	fired := val && !c.st.prev[sk]
	c.st.prev[sk] = val
	return fired
}

// LEDSlider draws an eight-step brightness slider along the row
// starting at start. Until the device has reported its brightness the
// slider shows no active step and keeps asking; each press writes the
// step's brightness and queries it back so the active step follows the
// device's own idea of the value.
func (c *Context) LEDSlider(id string, start launchpad.Key) {
	b := c.st.brightness[id]
	if c.Event.Type == events.Brightness {
		b = brightnessState{known: true, value: c.Event.Brightness}
		c.st.brightness[id] = b
	}
	if !b.known {
		if err := c.LP.Apply(launchpad.GetBrightness{}); err != nil {
			log.Warn().Err(err).Msg("brightness query failed")
		}
	}
	for i := uint8(0); i < 8; i++ {
		color := launchpad.Static(theme.SliderOff)
		if b.known && b.value/16 == i {
			color = launchpad.Static(theme.SliderOn)
		}
		if c.Impulse(id, start+launchpad.Key(i), color, color) {
			if err := c.LP.Apply(launchpad.SetBrightness{Brightness: launchpad.SliderBrightness(i)}); err != nil {
				log.Warn().Err(err).Msg("brightness write failed")
			}
			if err := c.LP.Apply(launchpad.GetBrightness{}); err != nil {
				log.Warn().Err(err).Msg("brightness query failed")
			}
		}
	}
}

// ExitButton publishes an Exit event when pressed. The frame loop
// stops when that event comes back around.
func (c *Context) ExitButton(id string, key launchpad.Key) {
	color := launchpad.Static(theme.ExitRed)
	if c.Impulse(id, key, color, color) {
		c.Bus.Publish(events.Event{Type: events.Exit})
	}
}

// Awake is a sleep gate meant to wrap the whole tree. Pressing its key
// while awake blanks the key and should hide the rest of the UI (the
// caller skips its tree when this returns false). While asleep, any
// key press wakes the UI back up and is rewritten to a Redraw so no
// widget below reacts to it.
func (c *Context) Awake(id string, key launchpad.Key, color uint8) bool {
	sk := stateKey{id, key}
	asleep := c.st.asleep[sk]
	if asleep {
		if c.Event.Type == events.KeyDown {
			asleep = false
			c.Event = events.Event{Type: events.Redraw}
		}
	} else if c.keyDown(key) {
		asleep = true
	}
	c.st.asleep[sk] = asleep
	if asleep {
		c.FB[key] = launchpad.Color{}
	} else {
		c.FB[key] = launchpad.Static(color)
	}
	return !asleep
}
