// Package animations plays the boot, shutdown, and alert sequences.
// All three run synchronously on the caller's goroutine and write
// through the session, so the frame loop is paused while they play.
package animations

import (
	"time"

	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/theme"
)

const tick = 50 * time.Millisecond

// sleepRest sleeps whatever remains of a tick that started at t, so a
// slow frame does not push every later frame back.
func sleepRest(t time.Time) {
	time.Sleep(tick - time.Since(t))
}

// upLeftFrom walks the up-left diagonal from start to the grid edge,
// start included.
func upLeftFrom(start launchpad.Key) []launchpad.Key {
	x, y := launchpad.KeyToCoords(start)
	var keys []launchpad.Key
	for {
		keys = append(keys, launchpad.CoordsToKey(x, y))
		if x == 1 || y == 9 {
			return keys
		}
		x, y = x-1, y+1
	}
}

func on(s *launchpad.Session, key launchpad.Key, color uint8) error {
	return s.Apply(launchpad.KeyOn{Key: key, Color: launchpad.SimpleColor{Mode: launchpad.ModeStatic, Color: color}})
}

func clear(s *launchpad.Session) error {
	for x := uint8(1); x <= 9; x++ {
		for y := uint8(1); y <= 9; y++ {
			if err := s.Apply(launchpad.KeyOff{Key: launchpad.CoordsToKey(x, y)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Startup sweeps a striped diagonal band from the top-right corner to
// the bottom-left, seeded along the bottom row and right column. The
// leading stripe enters one diagonal per tick and the trailing off
// stripe erases behind the band.
func Startup(s *launchpad.Session) error {
	stripes := []uint8{
		0,
		theme.TransBlue, theme.TransBlue,
		theme.TransPink, theme.TransPink,
		theme.TransWhite, theme.TransWhite,
		theme.TransPink, theme.TransPink,
		theme.TransBlue, theme.TransBlue,
	}

	// Seeds in sweep order, preceded by enough empty slots that the
	// band starts fully off-grid. Key 0 marks an empty slot.
	track := make([]launchpad.Key, len(stripes)-1, len(stripes)-1+17)
	for k := launchpad.Key(99); k >= 19; k -= 10 {
		track = append(track, k)
	}
	for k := launchpad.Key(18); k >= 11; k-- {
		track = append(track, k)
	}

	for t := 0; t < len(track); t++ {
		start := time.Now()
		for j, color := range stripes {
			if t+j >= len(track) {
				break
			}
			seed := track[t+j]
			if seed == 0 {
				continue
			}
			for _, key := range upLeftFrom(seed) {
				if err := on(s, key, color); err != nil {
					return err
				}
			}
		}
		sleepRest(start)
	}
	return nil
}

// rotate90 maps a cell to its position after a quarter turn about the
// grid center.
func rotate90(x, y uint8) (uint8, uint8) {
	return 10 - y, x
}

// Shutdown clears the grid, then sweeps a short striped band out of
// the top-right corner. Each drawn cell is mirrored through three
// quarter turns so the band leaves by all four corners at once.
func Shutdown(s *launchpad.Session) error {
	if err := clear(s); err != nil {
		return err
	}

	stripes := []uint8{
		0,
		theme.TransBlue,
		theme.TransPink,
		theme.TransWhite,
		theme.TransPink,
		theme.TransBlue,
	}

	type seed struct {
		n    int
		head launchpad.Key
	}
	track := make([]seed, len(stripes)-1, len(stripes)-1+9)
	track = append(track,
		seed{1, 99},
		seed{2, 89},
		seed{3, 79},
		seed{4, 69},
		seed{4, 59},
		seed{3, 58},
		seed{2, 57},
		seed{1, 56},
		seed{1, 55},
	)

	for t := 0; t < len(track); t++ {
		start := time.Now()
		for j, color := range stripes {
			if t+j >= len(track) {
				break
			}
			sd := track[t+j]
			if sd.n == 0 {
				continue
			}
			diag := upLeftFrom(sd.head)
			if len(diag) > sd.n {
				diag = diag[:sd.n]
			}
			for _, key := range diag {
				if err := on(s, key, color); err != nil {
					return err
				}
				x, y := launchpad.KeyToCoords(key)
				for i := 0; i < 3; i++ {
					x, y = rotate90(x, y)
					if err := on(s, launchpad.CoordsToKey(x, y), color); err != nil {
						return err
					}
				}
			}
		}
		sleepRest(start)
	}
	return nil
}

// Alert clears the grid, pulses the focus key, floods a rectangle
// outward from it to the edges, holds, then peels the flood back one
// ring per tick. focus 0 means no particular key; the center is used
// and extinguished again afterwards. A real focus is left pulsing for
// the caller's next frame to deal with.
func Alert(s *launchpad.Session, focus launchpad.Key) error {
	realFocus := focus != 0
	if !realFocus {
		focus = 55
	}
	fx, fy := launchpad.KeyToCoords(focus)

	if err := clear(s); err != nil {
		return err
	}
	if err := s.Apply(launchpad.KeyOn{Key: focus, Color: launchpad.SimpleColor{Mode: launchpad.ModePulsing, Color: theme.Alert}}); err != nil {
		return err
	}

	top, bottom, left, right := fy, fy, fx, fx
	for step := uint8(1); ; step++ {
		time.Sleep(tick)
		grew := false
		if fy+step <= 9 {
			top = fy + step
			grew = true
		}
		if fy > step {
			bottom = fy - step
			grew = true
		}
		if fx > step {
			left = fx - step
			grew = true
		}
		if fx+step <= 9 {
			right = fx + step
			grew = true
		}
		if !grew {
			break
		}
		for x := left; x <= right; x++ {
			for y := bottom; y <= top; y++ {
				if x == fx && y == fy {
					continue
				}
				if err := on(s, launchpad.CoordsToKey(x, y), theme.Alert); err != nil {
					return err
				}
			}
		}
	}

	time.Sleep(900 * time.Millisecond)

	type ring struct {
		up, down, left, right uint8 // 0 means the edge was already reached
	}
	var rings []ring
	for step := uint8(1); ; step++ {
		var r ring
		if fy+step <= 9 {
			r.up = fy + step
		}
		if fy > step {
			r.down = fy - step
		}
		if fx > step {
			r.left = fx - step
		}
		if fx+step <= 9 {
			r.right = fx + step
		}
		if r == (ring{}) {
			break
		}
		rings = append(rings, r)
	}
	for i := len(rings) - 1; i >= 0; i-- {
		r := rings[i]
		for n := uint8(1); n <= 9; n++ {
			if r.up != 0 {
				if err := s.Apply(launchpad.KeyOff{Key: launchpad.CoordsToKey(n, r.up)}); err != nil {
					return err
				}
			}
			if r.down != 0 {
				if err := s.Apply(launchpad.KeyOff{Key: launchpad.CoordsToKey(n, r.down)}); err != nil {
					return err
				}
			}
			if r.left != 0 {
				if err := s.Apply(launchpad.KeyOff{Key: launchpad.CoordsToKey(r.left, n)}); err != nil {
					return err
				}
			}
			if r.right != 0 {
				if err := s.Apply(launchpad.KeyOff{Key: launchpad.CoordsToKey(r.right, n)}); err != nil {
					return err
				}
			}
		}
		time.Sleep(tick)
	}

	if !realFocus {
		return s.Apply(launchpad.KeyOff{Key: focus})
	}
	return nil
}
