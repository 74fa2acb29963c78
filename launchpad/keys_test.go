package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordsRoundtrip(t *testing.T) {
	for y := uint8(1); y <= 9; y++ {
		for x := uint8(1); x <= 9; x++ {
			key := CoordsToKey(x, y)
			gx, gy := KeyToCoords(key)
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
		}
	}
	assert.Equal(t, Key(55), CoordsToKey(5, 5))
	assert.Equal(t, Key(19), CoordsToKey(9, 1))
	assert.Equal(t, Key(91), CoordsToKey(1, 9))
}

func TestRectRasterOrder(t *testing.T) {
	keys := Rect(11, 33)
	require.Equal(t, []Key{11, 12, 13, 21, 22, 23, 31, 32, 33}, keys)
}

func TestRectFullGrid(t *testing.T) {
	keys := Rect(11, 99)
	require.Len(t, keys, 81)
	assert.Equal(t, Key(11), keys[0])
	assert.Equal(t, Key(19), keys[8])
	assert.Equal(t, Key(21), keys[9])
	assert.Equal(t, Key(99), keys[80])
	for _, key := range keys {
		assert.NotZero(t, key%10)
	}
}

func TestRectSingleCell(t *testing.T) {
	assert.Equal(t, []Key{55}, Rect(55, 55))
}

func TestSliderBrightness(t *testing.T) {
	want := []uint8{0, 18, 36, 54, 72, 91, 109, 127}
	for i, w := range want {
		assert.Equal(t, w, SliderBrightness(uint8(i)), "step %d", i)
	}
}
