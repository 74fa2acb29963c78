// Package events defines the application event vocabulary and the
// queue that carries it from every producer goroutine to the single
// consumer driving the frame loop.
package events

import "github.com/sersorrel/lp/launchpad"

// Type discriminates Event payloads.
type Type int

const (
	KeyDown Type = iota
	KeyUp
	Brightness
	Notify
	Media
	Redraw
	Exit
)

func (t Type) String() string {
	switch t {
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	case Brightness:
		return "brightness"
	case Notify:
		return "notify"
	case Media:
		return "media"
	case Redraw:
		return "redraw"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Event is one item on the bus. Key is set for KeyDown/KeyUp,
// Brightness for Brightness, Playing for Media.
type Event struct {
	Type       Type
	Key        launchpad.Key
	Brightness uint8
	Playing    bool
}
