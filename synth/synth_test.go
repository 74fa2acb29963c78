package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stream(s *Synth, n int) [][2]float64 {
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	if !ok || got != n {
		panic("streamer stopped")
	}
	return buf
}

func peak(buf [][2]float64) float64 {
	var max float64
	for _, frame := range buf {
		v := frame[0]
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}

func TestSilentWithNoVoices(t *testing.T) {
	s := New()
	assert.Zero(t, peak(stream(s, 1024)))
}

func TestHeldVoiceSounds(t *testing.T) {
	s := New()
	s.SetPressed(1, 440, true)
	assert.Greater(t, peak(stream(s, 1024)), 0.1)
}

func TestVoiceDecaysAfterRelease(t *testing.T) {
	s := New()
	s.SetPressed(1, 440, true)
	stream(s, 1024)

	s.SetPressed(1, 440, false)
	// volume drops from 1 by 0.0004 per sample, so a second of audio
	// is more than enough to reach silence
	stream(s, sampleRate)
	assert.Zero(t, peak(stream(s, 1024)))
}

func TestVoicesMix(t *testing.T) {
	s := New()
	s.SetPressed(1, 440, true)
	one := peak(stream(s, 4096))

	s.SetPressed(2, 554.3652, true)
	two := peak(stream(s, 4096))
	assert.Greater(t, two, one)
}

func TestStereoFramesMatch(t *testing.T) {
	s := New()
	s.SetPressed(1, 440, true)
	for _, frame := range stream(s, 256) {
		require.Equal(t, frame[0], frame[1])
	}
}

func TestKeyTables(t *testing.T) {
	assert.InDelta(t, 261.63, WhiteKeys[0], 0.01)
	assert.InDelta(t, 523.25, WhiteKeys[7], 0.01)
	assert.Zero(t, BlackKeys[2], "the E-F gap has no black key")
}
