package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sersorrel/lp/events"
	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/theme"
)

type capture struct {
	sent [][]byte
}

func (c *capture) send(data []byte) error {
	c.sent = append(c.sent, append([]byte{}, data...))
	return nil
}

func newTestContext() (*Context, *capture) {
	c := &capture{}
	ctx := NewContext(launchpad.NewSession(c.send), events.NewBus())
	ctx.Event = events.Event{Type: events.Redraw}
	return ctx, c
}

func down(key launchpad.Key) events.Event {
	return events.Event{Type: events.KeyDown, Key: key}
}

func up(key launchpad.Key) events.Event {
	return events.Event{Type: events.KeyUp, Key: key}
}

func TestTabs(t *testing.T) {
	ctx, _ := newTestContext()

	assert.Equal(t, uint8(0), ctx.Tabs("tab", 95, 4))
	assert.Equal(t, launchpad.Static(theme.TabActive), ctx.FB[95])
	assert.Equal(t, launchpad.Static(theme.TabIdle), ctx.FB[96])

	ctx.Event = down(97)
	assert.Equal(t, uint8(2), ctx.Tabs("tab", 95, 4))
	assert.Equal(t, launchpad.Static(theme.TabActive), ctx.FB[97])
	assert.Equal(t, launchpad.Static(theme.TabIdle), ctx.FB[95])

	// a press outside the strip changes nothing
	ctx.Event = down(55)
	assert.Equal(t, uint8(2), ctx.Tabs("tab", 95, 4))

	// the selection survives across frames
	ctx.Event = events.Event{Type: events.Redraw}
	assert.Equal(t, uint8(2), ctx.Tabs("tab", 95, 4))

	// a second strip with its own identity is independent
	assert.Equal(t, uint8(0), ctx.Tabs("other", 11, 2))
}

func TestToggle(t *testing.T) {
	ctx, _ := newTestContext()
	off := launchpad.Static(1)
	on := launchpad.Static(2)

	assert.False(t, ctx.Toggle("t", 55, off, on))
	assert.Equal(t, off, ctx.FB[55])

	ctx.Event = down(55)
	assert.True(t, ctx.Toggle("t", 55, off, on))
	assert.Equal(t, on, ctx.FB[55])

	ctx.Event = up(55)
	assert.True(t, ctx.Toggle("t", 55, off, on), "release does not toggle")

	ctx.Event = down(55)
	assert.False(t, ctx.Toggle("t", 55, off, on))
}

func TestCounterWraps(t *testing.T) {
	ctx, _ := newTestContext()

	assert.Equal(t, 0, ctx.Counter("c", 93, 4))

	ctx.Event = down(94)
	assert.Equal(t, 1, ctx.Counter("c", 93, 4))
	assert.Equal(t, launchpad.Static(theme.PressFlash), ctx.FB[94])
	assert.Equal(t, launchpad.Static(theme.TabIdle), ctx.FB[93])

	assert.Equal(t, 2, ctx.Counter("c", 93, 4))
	assert.Equal(t, 3, ctx.Counter("c", 93, 4))
	assert.Equal(t, 0, ctx.Counter("c", 93, 4), "wraps at max")

	ctx.Event = down(93)
	assert.Equal(t, 3, ctx.Counter("c", 93, 4), "wraps below zero")
}

func TestImpulseFiresOncePerPress(t *testing.T) {
	ctx, _ := newTestContext()
	idle := launchpad.Static(1)
	pressed := launchpad.Static(2)

	assert.False(t, ctx.Impulse("i", 55, idle, pressed))
	assert.Equal(t, idle, ctx.FB[55])

	ctx.Event = down(55)
	assert.True(t, ctx.Impulse("i", 55, idle, pressed))
	assert.Equal(t, pressed, ctx.FB[55])

	// a duplicate key-down without a release does not retrigger, but
	// the key still renders held
	assert.False(t, ctx.Impulse("i", 55, idle, pressed))
	assert.Equal(t, pressed, ctx.FB[55])

	ctx.Event = events.Event{Type: events.Redraw}
	assert.False(t, ctx.Impulse("i", 55, idle, pressed))
	assert.Equal(t, pressed, ctx.FB[55])

	ctx.Event = up(55)
	assert.False(t, ctx.Impulse("i", 55, idle, pressed))
	assert.Equal(t, idle, ctx.FB[55])

	ctx.Event = down(55)
	assert.True(t, ctx.Impulse("i", 55, idle, pressed))
}

func TestPressRelease(t *testing.T) {
	ctx, _ := newTestContext()
	idle := launchpad.Static(1)
	held := launchpad.Static(2)

	_, ok := ctx.PressRelease("p", 55, idle, held)
	assert.False(t, ok)

	ctx.Event = down(55)
	v, ok := ctx.PressRelease("p", 55, idle, held)
	assert.True(t, ok)
	assert.True(t, v)

	ctx.Event = events.Event{Type: events.Redraw}
	_, ok = ctx.PressRelease("p", 55, idle, held)
	assert.False(t, ok)
	assert.Equal(t, held, ctx.FB[55])

	ctx.Event = up(55)
	v, ok = ctx.PressRelease("p", 55, idle, held)
	assert.True(t, ok)
	assert.False(t, v)
	assert.Equal(t, idle, ctx.FB[55])
}

func TestHoldable(t *testing.T) {
	ctx, _ := newTestContext()
	idle := launchpad.Static(1)
	held := launchpad.Static(2)

	assert.False(t, ctx.Holdable("h", 55, idle, held))

	ctx.Event = down(55)
	assert.True(t, ctx.Holdable("h", 55, idle, held))

	ctx.Event = events.Event{Type: events.Redraw}
	assert.True(t, ctx.Holdable("h", 55, idle, held), "held across frames")

	ctx.Event = up(55)
	assert.False(t, ctx.Holdable("h", 55, idle, held))
}

func TestMonostable(t *testing.T) {
	ctx, _ := newTestContext()

	assert.False(t, ctx.Monostable("m", 1, false))
	assert.True(t, ctx.Monostable("m", 1, true), "the first true fires")
	assert.False(t, ctx.Monostable("m", 1, true), "a held level fires once")
	assert.False(t, ctx.Monostable("m", 1, false))
	assert.True(t, ctx.Monostable("m", 1, true))

	// instances with a different key are independent
	assert.True(t, ctx.Monostable("m", 2, true))
}

func TestAwakeGate(t *testing.T) {
	ctx, _ := newTestContext()

	assert.True(t, ctx.Awake("a", 19, theme.AwakeTeal))
	assert.Equal(t, launchpad.Static(theme.AwakeTeal), ctx.FB[19])

	// pressing the gate key puts the UI to sleep
	ctx.Event = down(19)
	assert.False(t, ctx.Awake("a", 19, theme.AwakeTeal))
	assert.Equal(t, launchpad.Color{}, ctx.FB[19])

	// the release of that press does not wake it
	ctx.Event = up(19)
	assert.False(t, ctx.Awake("a", 19, theme.AwakeTeal))

	// redraws while asleep stay asleep
	ctx.Event = events.Event{Type: events.Redraw}
	assert.False(t, ctx.Awake("a", 19, theme.AwakeTeal))

	// any key press wakes it and is rewritten so widgets below never
	// see the press
	ctx.Event = down(55)
	assert.True(t, ctx.Awake("a", 19, theme.AwakeTeal))
	assert.Equal(t, events.Event{Type: events.Redraw}, ctx.Event)
}

func TestLEDSlider(t *testing.T) {
	ctx, c := newTestContext()

	// brightness unknown: everything idle, and the device gets asked
	ctx.LEDSlider("b", 31)
	for i := launchpad.Key(31); i <= 38; i++ {
		assert.Equal(t, launchpad.Static(theme.SliderOff), ctx.FB[i])
	}
	require.Len(t, c.sent, 1)
	assert.Equal(t, []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x08, 0xf7}, c.sent[0])

	// a report lights the matching step
	c.sent = nil
	ctx.Event = events.Event{Type: events.Brightness, Brightness: 72}
	ctx.LEDSlider("b", 31)
	assert.Empty(t, c.sent, "no query once the value is known")
	assert.Equal(t, launchpad.Static(theme.SliderOn), ctx.FB[35])
	assert.Equal(t, launchpad.Static(theme.SliderOff), ctx.FB[34])

	// pressing a step writes its brightness and queries it back
	ctx.Event = down(37)
	ctx.LEDSlider("b", 31)
	require.Len(t, c.sent, 2)
	assert.Equal(t, []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x08, 109, 0xf7}, c.sent[0])
	assert.Equal(t, []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x08, 0xf7}, c.sent[1])
}

func TestExitButton(t *testing.T) {
	ctx, _ := newTestContext()

	ctx.ExitButton("x", 18)
	ctx.Event = down(18)
	ctx.ExitButton("x", 18)

	assert.Equal(t, events.Exit, ctx.Bus.Next().Type)
}

func TestInfoScrollsTextOnPress(t *testing.T) {
	ctx, c := newTestContext()

	ctx.Info(55, launchpad.Static(13), "13")
	assert.Empty(t, c.sent)
	assert.Equal(t, launchpad.Static(13), ctx.FB[55])

	ctx.Event = down(55)
	ctx.Info(55, launchpad.Static(13), "13")
	require.Len(t, c.sent, 1)
	want := []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x07, 0, 15, 0x00, theme.TransWhite, '1', '3', 0xf7}
	assert.Equal(t, want, c.sent[0])
}

func TestRunFrameLoop(t *testing.T) {
	c := &capture{}
	session := launchpad.NewSession(c.send)
	bus := events.NewBus()

	bus.Publish(down(55))
	bus.Publish(events.Event{Type: events.Exit})

	frames := 0
	Run(bus, session, func(ctx *Context) {
		frames++
		ctx.StaticColor(55, launchpad.Static(5))
	})

	assert.Equal(t, 1, frames, "the exit event ends the loop without running the tree")
	require.Len(t, c.sent, 1)
	assert.Equal(t, []byte{0x90, 55, 5}, c.sent[0])
}
