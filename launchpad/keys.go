// Package launchpad drives a Novation Launchpad Mini MK3 in programmer
// mode: it encodes outbound commands, decodes inbound messages, and
// tracks the color of every playable key so that frame updates only
// touch cells that actually changed.
package launchpad

import "math"

// Key addresses one button. The playable 9x9 grid uses key = 10*y + x
// with x, y in [1,9], so playable keys are 11-99 and never multiples
// of 10. Control buttons outside the grid reuse the same namespace at
// other values.
type Key uint8

// CoordsToKey converts grid coordinates to a key.
func CoordsToKey(x, y uint8) Key {
	return Key(10*y + x)
}

// KeyToCoords is the exact inverse of CoordsToKey on the playable grid.
func KeyToCoords(key Key) (x, y uint8) {
	return uint8(key) % 10, uint8(key) / 10
}

// Rect returns every key in the inclusive rectangle spanned by a
// (bottom left) and b (top right), in raster order: row-major, low y
// to high y, low x to high x within a row.
func Rect(a, b Key) []Key {
	x0, y0 := KeyToCoords(a)
	x1, y1 := KeyToCoords(b)
	keys := make([]Key, 0, int(x1-x0+1)*int(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			keys = append(keys, CoordsToKey(x, y))
		}
	}
	return keys
}

// SliderBrightness maps a slider position 0-7 to the device brightness
// value. Integer division gives 90 and 108 where the device reports 91
// and 109, and plain rounding gives 73 instead of 72, so the quotient
// is biased down slightly before rounding to hit the device's observed
// sequence 0, 18, 36, 54, 72, 91, 109, 127.
func SliderBrightness(i uint8) uint8 {
	return uint8(math.Round(float64(i)*127/7 - 0.1))
}
