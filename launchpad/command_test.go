package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, cmd Command) []byte {
	t.Helper()
	data, err := Encode(cmd, nil)
	require.NoError(t, err)
	return data
}

func TestKeyOnLayouts(t *testing.T) {
	assert.Equal(t, []byte{0x90, 55, 13},
		encode(t, KeyOn{Key: 55, Color: SimpleColor{Mode: ModeStatic, Color: 13}}))
	assert.Equal(t, []byte{0x91, 11, 5},
		encode(t, KeyOn{Key: 11, Color: SimpleColor{Mode: ModeFlashing, Color: 5}}))
	assert.Equal(t, []byte{0x92, 99, 37},
		encode(t, KeyOn{Key: 99, Color: SimpleColor{Mode: ModePulsing, Color: 37}}))
	assert.Equal(t, []byte{0x90, 42, 0}, encode(t, KeyOff{Key: 42}))
}

func TestKeyOnRejectsBadKeys(t *testing.T) {
	for _, key := range []Key{0, 5, 10, 20, 100, 110} {
		_, err := Encode(KeyOn{Key: key, Color: SimpleColor{Mode: ModeStatic}}, nil)
		assert.ErrorIs(t, err, ErrBadKey, "key %d", key)
		_, err = Encode(KeyOff{Key: key}, nil)
		assert.ErrorIs(t, err, ErrBadKey, "key %d", key)
	}
}

func TestKeyOnRejectsComplexOnlyModes(t *testing.T) {
	_, err := Encode(KeyOn{Key: 55, Color: SimpleColor{Mode: ModeRGB}}, nil)
	assert.ErrorIs(t, err, ErrBadColorMode)
}

func TestSysexCommands(t *testing.T) {
	header := []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d}

	tests := []struct {
		name string
		cmd  Command
		body []byte
	}{
		{"set layout", SetLayout{Layout: LayoutProgrammer}, []byte{0x00, 0x7f}},
		{"get layout", GetLayout{}, []byte{0x00}},
		{"programmer on", SetProgrammerMode{Enabled: true}, []byte{0x0e, 0x01}},
		{"programmer off", SetProgrammerMode{}, []byte{0x0e, 0x00}},
		{"get programmer", GetProgrammerMode{}, []byte{0x0e}},
		{"set awake", SetAwake{Awake: true}, []byte{0x09, 0x01}},
		{"get awake", GetAwake{}, []byte{0x09}},
		{"set brightness", SetBrightness{Brightness: 72}, []byte{0x08, 72}},
		{"get brightness", GetBrightness{}, []byte{0x08}},
		{"set feedback", SetLedFeedback{Internal: true, External: false}, []byte{0x0a, 0x01, 0x00}},
		{"get feedback", GetLedFeedback{}, []byte{0x0a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := append(append(append([]byte{}, header...), tt.body...), 0xf7)
			assert.Equal(t, want, encode(t, tt.cmd))
		})
	}
}

func TestGetVersionsLayout(t *testing.T) {
	assert.Equal(t, []byte{0xf0, 0x7e, 0x7f, 0x06, 0x01, 0xf7}, encode(t, GetVersions{}))
}

func TestSetColorsLayout(t *testing.T) {
	data := encode(t, SetColors{Colors: []KeyColor{
		{Key: 11, Color: ComplexColor{Mode: ModeStatic, A: 5}},
		{Key: 12, Color: ComplexColor{Mode: ModeFlashing, A: 5, B: 13}},
		{Key: 13, Color: ComplexColor{Mode: ModePulsing, A: 37}},
		{Key: 14, Color: ComplexColor{Mode: ModeRGB, A: 127, B: 0, C: 64}},
	}})
	want := []byte{
		0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x03,
		0, 11, 5,
		1, 12, 5, 13,
		2, 13, 37,
		3, 14, 127, 0, 64,
		0xf7,
	}
	assert.Equal(t, want, data)
}

func TestSetColorsLimits(t *testing.T) {
	colors := make([]KeyColor, 0, 82)
	for _, key := range Rect(11, 99) {
		colors = append(colors, KeyColor{Key: key, Color: ComplexColor{Mode: ModeStatic, A: 1}})
	}
	_, err := Encode(SetColors{Colors: colors}, nil)
	assert.NoError(t, err, "81 entries is the maximum, not over it")

	colors = append(colors, KeyColor{Key: 11, Color: ComplexColor{Mode: ModeStatic}})
	_, err = Encode(SetColors{Colors: colors}, nil)
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	_, err = Encode(SetColors{Colors: []KeyColor{{Key: 10, Color: ComplexColor{Mode: ModeStatic}}}}, nil)
	assert.ErrorIs(t, err, ErrBadKey)
}

func TestScrollTextLayout(t *testing.T) {
	loops := true
	speed := uint8(15)
	color := PaletteText(3)
	text := "hi"
	data := encode(t, ScrollText{Loops: &loops, Speed: &speed, Color: &color, Text: &text})
	want := []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x07, 1, 15, 0x00, 3, 'h', 'i', 0xf7}
	assert.Equal(t, want, data)

	rgb := RGBText(1, 2, 3)
	data = encode(t, ScrollText{Loops: &loops, Speed: &speed, Color: &rgb, Text: &text})
	want = []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x07, 1, 15, 0x01, 1, 2, 3, 'h', 'i', 0xf7}
	assert.Equal(t, want, data)

	// empty command cancels a scroll in progress
	assert.Equal(t, []byte{0xf0, 0x00, 0x20, 0x29, 0x02, 0x0d, 0x07, 0xf7}, encode(t, ScrollText{}))
}

func TestScrollTextFieldOrder(t *testing.T) {
	speed := uint8(10)
	color := PaletteText(3)
	text := "x"

	_, err := Encode(ScrollText{Speed: &speed}, nil)
	assert.ErrorIs(t, err, ErrFieldOrder)
	_, err = Encode(ScrollText{Color: &color}, nil)
	assert.ErrorIs(t, err, ErrFieldOrder)
	_, err = Encode(ScrollText{Text: &text}, nil)
	assert.ErrorIs(t, err, ErrFieldOrder)
}

func TestEncodeAppends(t *testing.T) {
	buf := []byte{0xaa}
	data, err := Encode(KeyOff{Key: 11}, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 0x90, 11, 0}, data)
}
