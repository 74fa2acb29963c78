package launchpad

import (
	"bytes"
	"fmt"
)

// Message is a decoded inbound event from the device.
type Message interface{ message() }

// KeyDown reports a pressed key (grid pads and control buttons alike).
type KeyDown struct{ Key Key }

// KeyUp reports a released key.
type KeyUp struct{ Key Key }

// ApplicationVersion is the reply to GetVersions.
type ApplicationVersion struct{ Version [4]uint8 }

// BootloaderVersion is the reply to GetVersions.
type BootloaderVersion struct{ Version [4]uint8 }

// LayoutReport is the reply to GetLayout.
type LayoutReport struct{ Layout uint8 }

// ProgrammerModeReport is the reply to GetProgrammerMode, also sent
// unprompted when the mode changes.
type ProgrammerModeReport struct{ Enabled bool }

// AwakeReport is the reply to GetAwake.
type AwakeReport struct{ Awake bool }

// BrightnessReport is the reply to GetBrightness.
type BrightnessReport struct{ Brightness uint8 }

// LedFeedbackReport is the reply to GetLedFeedback.
type LedFeedbackReport struct{ Internal, External bool }

func (KeyDown) message()              {}
func (KeyUp) message()                {}
func (ApplicationVersion) message()   {}
func (BootloaderVersion) message()    {}
func (LayoutReport) message()         {}
func (ProgrammerModeReport) message() {}
func (AwakeReport) message()          {}
func (BrightnessReport) message()     {}
func (LedFeedbackReport) message()    {}

// UnknownMessageError reports bytes matching no known layout. The
// device can emit these in firmware states this driver does not model;
// callers should log them and carry on rather than give up.
type UnknownMessageError struct{ Data []byte }

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("unknown message [% x]", e.Data)
}

var versionHeader = []byte{0xf0, 0x7e, 0x00, 0x06, 0x02, 0x00, 0x20, 0x29, 0x13}

// Decode matches data against the fixed inbound layouts. Key events
// arrive as note on (grid) or control change (top/side buttons) with
// velocity 127 for down and 0 for up; everything else is a fixed-shape
// SysEx reply.
func Decode(data []byte) (Message, error) {
	if len(data) == 3 && (data[0] == 0x90 || data[0] == 0xb0) {
		switch data[2] {
		case 127:
			return KeyDown{Key: Key(data[1])}, nil
		case 0:
			return KeyUp{Key: Key(data[1])}, nil
		}
	}

	if len(data) == 17 && bytes.Equal(data[:9], versionHeader) &&
		data[10] == 0x00 && data[11] == 0x00 && data[16] == 0xf7 {
		var v [4]uint8
		copy(v[:], data[12:16])
		switch data[9] {
		case 0x01:
			return ApplicationVersion{Version: v}, nil
		case 0x11:
			return BootloaderVersion{Version: v}, nil
		}
	}

	if len(data) >= 8 && bytes.HasPrefix(data, sysexHeader) && data[len(data)-1] == 0xf7 {
		body := data[len(sysexHeader) : len(data)-1]
		switch {
		case len(body) == 2 && body[0] == 0x00:
			return LayoutReport{Layout: body[1]}, nil
		case len(body) == 2 && body[0] == 0x0e:
			return ProgrammerModeReport{Enabled: body[1] == 1}, nil
		case len(body) == 2 && body[0] == 0x09:
			return AwakeReport{Awake: body[1] == 1}, nil
		case len(body) == 2 && body[0] == 0x08:
			return BrightnessReport{Brightness: body[1]}, nil
		case len(body) == 3 && body[0] == 0x0a:
			return LedFeedbackReport{Internal: body[1] == 1, External: body[2] == 1}, nil
		}
	}

	return nil, &UnknownMessageError{Data: data}
}
