// Package sim is a virtual device: it understands the same wire bytes
// the hardware does, keeps a grid of cell states, and answers queries
// with the same reply bytes the hardware would send. Plugging its Send
// into a session runs the whole stack without a device on the desk.
package sim

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sersorrel/lp/launchpad"
)

var sysexHeader = []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d}

// Cell is the displayed state of one key.
type Cell struct {
	Mode    launchpad.ColorMode
	A, B, C uint8
}

// Snapshot is a copy of the whole visible device state.
type Snapshot struct {
	Cells      [100]Cell
	Brightness uint8
	Awake      bool
	Programmer bool
	Text       string
}

// Device is the virtual device. Send may be called from any goroutine.
type Device struct {
	mu         sync.Mutex
	cells      [100]Cell
	brightness uint8
	awake      bool
	programmer bool
	text       string
	onMessage  func(launchpad.Message)
	updates    chan struct{}
}

func NewDevice() *Device {
	return &Device{
		brightness: 127,
		awake:      true,
		updates:    make(chan struct{}, 1),
	}
}

// OnMessage registers the callback receiving decoded inbound messages,
// the same way a hardware session would deliver them.
func (d *Device) OnMessage(fn func(launchpad.Message)) {
	d.mu.Lock()
	d.onMessage = fn
	d.mu.Unlock()
}

// Updates signals whenever the visible state changes. The channel is
// never closed and holds at most one pending signal.
func (d *Device) Updates() <-chan struct{} {
	return d.updates
}

// Snapshot copies the current state for rendering.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		Cells:      d.cells,
		Brightness: d.brightness,
		Awake:      d.awake,
		Programmer: d.programmer,
		Text:       d.text,
	}
}

// Press simulates a finger landing on a key.
func (d *Device) Press(key launchpad.Key) {
	d.deliver([]byte{0x90, byte(key), 127})
}

// Release simulates the finger lifting.
func (d *Device) Release(key launchpad.Key) {
	d.deliver([]byte{0x90, byte(key), 0})
}

// deliver runs raw bytes through the real decoder before handing them
// to the session callback, exactly as the hardware path does.
func (d *Device) deliver(raw []byte) {
	msg, err := launchpad.Decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("sim produced undecodable bytes")
		return
	}
	d.mu.Lock()
	fn := d.onMessage
	d.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (d *Device) changed() {
	select {
	case d.updates <- struct{}{}:
	default:
	}
}

// Send consumes one outbound wire message. Unrecognised bytes are
// logged and ignored, like a forgiving firmware.
func (d *Device) Send(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(data) == 3 && data[0] >= 0x90 && data[0] <= 0x92 && int(data[1]) < len(d.cells) {
		cell := Cell{A: data[2]}
		switch data[0] {
		case 0x91:
			cell.Mode = launchpad.ModeFlashing
		case 0x92:
			cell.Mode = launchpad.ModePulsing
		}
		d.cells[data[1]] = cell
		d.changed()
		return nil
	}

	if bytes.Equal(data, []byte{0xf0, 0x7e, 0x7f, 0x06, 0x01, 0xf7}) {
		d.mu.Unlock()
		d.deliver([]byte{0xf0, 0x7e, 0x00, 0x06, 0x02, 0x00, 0x20, 0x29, 0x13, 0x01, 0x00, 0x00, 0x00, 0x03, 0x05, 0x00, 0xf7})
		d.deliver([]byte{0xf0, 0x7e, 0x00, 0x06, 0x02, 0x00, 0x20, 0x29, 0x13, 0x11, 0x00, 0x00, 0x00, 0x02, 0x02, 0x00, 0xf7})
		d.mu.Lock()
		return nil
	}

	if len(data) >= 8 && bytes.HasPrefix(data, sysexHeader) && data[len(data)-1] == 0xf7 {
		body := data[len(sysexHeader) : len(data)-1]
		d.handleSysex(body)
		return nil
	}

	log.Warn().Hex("data", data).Msg("sim ignoring unknown bytes")
	return nil
}

// reply releases the state lock while feeding bytes back through
// deliver, since the callback may reenter the device.
func (d *Device) reply(body ...byte) {
	raw := append(append([]byte{}, sysexHeader...), body...)
	raw = append(raw, 0xf7)
	d.mu.Unlock()
	d.deliver(raw)
	d.mu.Lock()
}

func (d *Device) handleSysex(body []byte) {
	if len(body) == 0 {
		return
	}
	switch body[0] {
	case 0x03: // batched colors
		rest := body[1:]
		for len(rest) > 0 {
			var mode launchpad.ColorMode
			var n int
			switch rest[0] {
			case 0:
				mode, n = launchpad.ModeStatic, 3
			case 1:
				mode, n = launchpad.ModeFlashing, 4
			case 2:
				mode, n = launchpad.ModePulsing, 3
			case 3:
				mode, n = launchpad.ModeRGB, 5
			default:
				log.Warn().Uint8("tag", rest[0]).Msg("sim ignoring bad batch entry")
				return
			}
			if len(rest) < n {
				log.Warn().Msg("sim ignoring truncated batch")
				return
			}
			cell := Cell{Mode: mode, A: rest[2]}
			if n > 3 {
				cell.B = rest[3]
			}
			if n > 4 {
				cell.C = rest[4]
			}
			if int(rest[1]) < len(d.cells) {
				d.cells[rest[1]] = cell
			}
			rest = rest[n:]
		}
		d.changed()
	case 0x07: // scroll text
		if len(body) >= 4 {
			rest := body[3:]
			if rest[0] == 0x01 && len(rest) >= 4 {
				rest = rest[4:]
			} else if len(rest) >= 2 {
				rest = rest[2:]
			}
			d.text = string(rest)
		} else {
			d.text = ""
		}
		d.changed()
	case 0x08: // brightness
		if len(body) == 2 {
			d.brightness = body[1]
			d.changed()
		} else {
			d.reply(0x08, d.brightness)
		}
	case 0x09: // awake
		if len(body) == 2 {
			d.awake = body[1] == 1
			d.changed()
		} else {
			d.reply(0x09, boolByte(d.awake))
		}
	case 0x0e: // programmer mode
		if len(body) == 2 {
			d.programmer = body[1] == 1
			d.changed()
		} else {
			d.reply(0x0e, boolByte(d.programmer))
		}
	case 0x00: // layout select/query
		if len(body) == 1 {
			d.reply(0x00, 0x00)
		}
	case 0x0a: // led feedback, accepted and forgotten
	default:
		log.Warn().Uint8("op", body[0]).Msg("sim ignoring unknown sysex")
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
