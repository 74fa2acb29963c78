package launchpad

import (
	"errors"
	"fmt"
)

// Layout identifies one of the device's built-in layouts.
type Layout uint8

const (
	LayoutSession    Layout = 0x00
	LayoutDrums      Layout = 0x04
	LayoutKeys       Layout = 0x05
	LayoutUser       Layout = 0x06
	LayoutProgrammer Layout = 0x7f
)

// Contract violations reported by Encode. These are programmer errors
// in the caller; the offending command is dropped whole rather than
// truncated to something the device might half-understand.
var (
	ErrBadKey        = errors.New("key outside the playable grid")
	ErrBadColorMode  = errors.New("color mode not valid for this command")
	ErrBatchTooLarge = errors.New("more than 81 colors in one batch")
	ErrFieldOrder    = errors.New("scroll text fields out of prefix order")
)

// Command is an outbound protocol operation.
type Command interface {
	appendTo(buf []byte) ([]byte, error)
}

// Encode appends the wire bytes of cmd to buf and returns the extended
// slice, so callers can reuse one send buffer across commands.
func Encode(cmd Command, buf []byte) ([]byte, error) {
	return cmd.appendTo(buf)
}

// All device-specific SysEx exchanges share this prefix.
var sysexHeader = []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d}

func checkKey(key Key) error {
	if key < 11 || key > 99 || key%10 == 0 {
		return fmt.Errorf("%w: %d", ErrBadKey, key)
	}
	return nil
}

func b01(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// GetVersions queries the application and bootloader versions.
type GetVersions struct{}

func (GetVersions) appendTo(buf []byte) ([]byte, error) {
	return append(buf, 0xf0, 0x7e, 0x7f, 0x06, 0x01, 0xf7), nil
}

// SetLayout switches the active layout.
type SetLayout struct{ Layout Layout }

func (c SetLayout) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x00, byte(c.Layout), 0xf7), nil
}

// GetLayout queries the active layout.
type GetLayout struct{}

func (GetLayout) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x00, 0xf7), nil
}

// SetProgrammerMode enters or leaves programmer mode.
type SetProgrammerMode struct{ Enabled bool }

func (c SetProgrammerMode) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x0e, b01(c.Enabled), 0xf7), nil
}

// GetProgrammerMode queries the programmer mode state.
type GetProgrammerMode struct{}

func (GetProgrammerMode) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x0e, 0xf7), nil
}

// KeyOn lights one playable key with a simple color.
type KeyOn struct {
	Key   Key
	Color SimpleColor
}

func (c KeyOn) appendTo(buf []byte) ([]byte, error) {
	if err := checkKey(c.Key); err != nil {
		return buf, err
	}
	var status byte
	switch c.Color.Mode {
	case ModeStatic:
		status = 0x90
	case ModeFlashing:
		status = 0x91
	case ModePulsing:
		status = 0x92
	default:
		return buf, fmt.Errorf("%w: simple color mode %d", ErrBadColorMode, c.Color.Mode)
	}
	return append(buf, status, byte(c.Key), c.Color.Color), nil
}

// KeyOff turns one playable key off.
type KeyOff struct{ Key Key }

func (c KeyOff) appendTo(buf []byte) ([]byte, error) {
	if err := checkKey(c.Key); err != nil {
		return buf, err
	}
	return append(buf, 0x90, byte(c.Key), 0), nil
}

// KeyColor is one entry of a SetColors batch.
type KeyColor struct {
	Key   Key
	Color ComplexColor
}

// SetColors updates up to 81 keys in a single SysEx command.
type SetColors struct{ Colors []KeyColor }

func (c SetColors) appendTo(buf []byte) ([]byte, error) {
	if len(c.Colors) > 81 {
		return buf, fmt.Errorf("%w: %d", ErrBatchTooLarge, len(c.Colors))
	}
	buf = append(buf, sysexHeader...)
	buf = append(buf, 0x03)
	for _, kc := range c.Colors {
		if err := checkKey(kc.Key); err != nil {
			return buf, err
		}
		switch kc.Color.Mode {
		case ModeStatic:
			buf = append(buf, 0, byte(kc.Key), kc.Color.A)
		case ModeFlashing:
			buf = append(buf, 1, byte(kc.Key), kc.Color.A, kc.Color.B)
		case ModePulsing:
			buf = append(buf, 2, byte(kc.Key), kc.Color.A)
		case ModeRGB:
			buf = append(buf, 3, byte(kc.Key), kc.Color.A, kc.Color.B, kc.Color.C)
		default:
			return buf, fmt.Errorf("%w: complex color mode %d", ErrBadColorMode, kc.Color.Mode)
		}
	}
	return append(buf, 0xf7), nil
}

// TextColor colors scrolled text with either a palette entry or raw
// RGB.
type TextColor struct {
	RGB     bool
	Palette uint8
	R, G, B uint8
}

// PaletteText returns a palette-indexed text color.
func PaletteText(n uint8) TextColor {
	return TextColor{Palette: n}
}

// RGBText returns a direct-RGB text color.
func RGBText(r, g, b uint8) TextColor {
	return TextColor{RGB: true, R: r, G: g, B: b}
}

// ScrollText scrolls text across the grid. The optional fields form a
// strict prefix chain matching the wire layout: speed needs loops,
// color needs speed, text needs color. An empty command (all nil)
// stops any scroll in progress.
type ScrollText struct {
	Loops *bool
	Speed *uint8
	Color *TextColor
	Text  *string
}

func (c ScrollText) appendTo(buf []byte) ([]byte, error) {
	if (c.Speed != nil && c.Loops == nil) ||
		(c.Color != nil && c.Speed == nil) ||
		(c.Text != nil && c.Color == nil) {
		return buf, ErrFieldOrder
	}
	buf = append(buf, sysexHeader...)
	buf = append(buf, 0x07)
	if c.Loops != nil {
		buf = append(buf, b01(*c.Loops))
	}
	if c.Speed != nil {
		buf = append(buf, *c.Speed)
	}
	if c.Color != nil {
		if c.Color.RGB {
			buf = append(buf, 0x01, c.Color.R, c.Color.G, c.Color.B)
		} else {
			buf = append(buf, 0x00, c.Color.Palette)
		}
	}
	if c.Text != nil {
		buf = append(buf, *c.Text...)
	}
	return append(buf, 0xf7), nil
}

// SetAwake wakes or sleeps the device's LED surface.
type SetAwake struct{ Awake bool }

func (c SetAwake) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x09, b01(c.Awake), 0xf7), nil
}

// GetAwake queries the sleep state.
type GetAwake struct{}

func (GetAwake) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x09, 0xf7), nil
}

// SetBrightness sets the global LED brightness (0-127).
type SetBrightness struct{ Brightness uint8 }

func (c SetBrightness) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x08, c.Brightness, 0xf7), nil
}

// GetBrightness queries the global LED brightness.
type GetBrightness struct{}

func (GetBrightness) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x08, 0xf7), nil
}

// SetLedFeedback controls whether keypresses echo to the device's own
// LEDs and to the external MIDI out.
type SetLedFeedback struct{ Internal, External bool }

func (c SetLedFeedback) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x0a, b01(c.Internal), b01(c.External), 0xf7), nil
}

// GetLedFeedback queries the LED feedback configuration.
type GetLedFeedback struct{}

func (GetLedFeedback) appendTo(buf []byte) ([]byte, error) {
	buf = append(buf, sysexHeader...)
	return append(buf, 0x0a, 0xf7), nil
}
