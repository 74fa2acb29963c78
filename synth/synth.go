// Package synth is a small polyphonic sine synth for the piano rows.
// Each voice keys to full volume while its pad is held and decays
// linearly once released.
package synth

import (
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = 44100

// Middle-octave frequencies for a row of pads: eight white notes C-C,
// and the black notes above the first seven with 0 marking the E-F
// gap.
var (
	WhiteKeys = [8]float64{261.6255, 293.6647, 329.6275, 349.2282, 391.9954, 440.0, 493.8833, 523.2511}
	BlackKeys = [6]float64{277.1826, 311.1269, 0, 369.9944, 415.3046, 466.1637}
)

type voice struct {
	input  bool
	volume float64
	clock  float64
	freq   float64
}

// Synth mixes one sample stream from all active voices. The mutex is
// shared between the audio goroutine (Stream) and the frame loop
// (SetPressed); SetPressed holds it only to flip scalars.
type Synth struct {
	mu     sync.Mutex
	voices map[int]*voice
}

func New() *Synth {
	return &Synth{voices: make(map[int]*voice)}
}

// Start initialises the speaker and begins playing the mix.
func (s *Synth) Start() error {
	if err := speaker.Init(sampleRate, sampleRate/10); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s)
	return nil
}

// SetPressed keys or releases one voice. id names the voice across
// frames; freq is fixed at the voice's first appearance.
func (s *Synth) SetPressed(id int, freq float64, pressed bool) {
	s.mu.Lock()
	v, ok := s.voices[id]
	if !ok {
		v = &voice{freq: freq}
		s.voices[id] = v
	}
	v.input = pressed
	s.mu.Unlock()
}

// Stream implements beep.Streamer.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range samples {
		var value float64
		for _, v := range s.voices {
			if v.input {
				v.volume = 1
			}
			if v.volume > 0 {
				v.clock++
				if v.clock >= sampleRate {
					v.clock = 0
				}
				period := v.clock / sampleRate
				value += math.Sin(v.freq*2*math.Pi*period*2) * 0.2 * v.volume
				v.volume -= 0.0004
			} else {
				v.clock = 0
			}
		}
		samples[i][0] = value
		samples[i][1] = value
	}
	return len(samples), true
}

func (s *Synth) Err() error { return nil }
