// Package theme collects the palette indices the application draws
// with, plus an approximate palette-to-RGB table for rendering the
// grid off-device.
package theme

// Stripe colors used by the boot and shutdown sweeps.
const (
	TransBlue  uint8 = 37
	TransPink  uint8 = 52
	TransWhite uint8 = 3
)

// Widget colors.
const (
	Alert        uint8 = 9
	AwakeTeal    uint8 = 47
	TabActive    uint8 = 20
	TabIdle      uint8 = 1
	PressFlash   uint8 = 2
	PianoWhite   uint8 = 92
	PianoWhiteDn uint8 = 91
	PianoBlack   uint8 = 94
	PianoBlackDn uint8 = 93
	MediaPlaying uint8 = 21
	MediaPaused  uint8 = 23
	ExitRed      uint8 = 6
	SliderOn     uint8 = 113
	SliderOff    uint8 = 104
	LetterPurple uint8 = 40
	LetterYellow uint8 = 113
)

// paletteRGB maps a handful of anchor palette entries to 8-bit RGB.
// Between anchors RGBFor falls back to the nearest lower anchor, which
// is plenty for a terminal preview.
var paletteRGB = map[uint8][3]uint8{
	0:   {0, 0, 0},
	1:   {90, 90, 90},
	2:   {220, 220, 220},
	3:   {255, 255, 255},
	5:   {255, 0, 0},
	6:   {255, 60, 60},
	9:   {255, 100, 0},
	13:  {255, 200, 0},
	17:  {0, 180, 0},
	20:  {60, 255, 60},
	21:  {0, 255, 0},
	23:  {0, 110, 0},
	37:  {85, 205, 252},
	40:  {130, 60, 220},
	45:  {0, 100, 255},
	47:  {0, 190, 190},
	52:  {247, 168, 184},
	53:  {255, 80, 180},
	91:  {160, 130, 30},
	92:  {255, 210, 60},
	93:  {40, 60, 160},
	94:  {80, 110, 255},
	104: {70, 45, 10},
	113: {230, 230, 70},
}

// RGBFor returns an approximate RGB rendering of a palette entry.
func RGBFor(n uint8) [3]uint8 {
	for i := n; ; i-- {
		if rgb, ok := paletteRGB[i]; ok {
			return rgb
		}
		if i == 0 {
			return [3]uint8{128, 128, 128}
		}
	}
}
