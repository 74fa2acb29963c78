package launchpad

// ColorMode selects how a palette entry is displayed.
type ColorMode uint8

const (
	ModeStatic ColorMode = iota
	ModeFlashing
	ModePulsing
	ModeRGB // complex colors only
)

// SimpleColor is a palette color cheap enough to set one key at a time
// with a single three-byte command. Flashing alternates the palette
// index with black.
type SimpleColor struct {
	Mode  ColorMode
	Color uint8
}

// ComplexColor must be batched into a SetColors command. Flashing
// alternates A and B; RGB uses A, B, C as 7-bit red, green, blue.
type ComplexColor struct {
	Mode    ColorMode
	A, B, C uint8
}

// Color is either simple or complex. The zero value is the simple
// static black that every cell starts in.
type Color struct {
	IsComplex bool
	Simple    SimpleColor
	Complex   ComplexColor
}

// Static returns a simple static palette color.
func Static(n uint8) Color {
	return Color{Simple: SimpleColor{Mode: ModeStatic, Color: n}}
}

// Pulsing returns a simple pulsing palette color.
func Pulsing(n uint8) Color {
	return Color{Simple: SimpleColor{Mode: ModePulsing, Color: n}}
}

// Flashing returns a complex color alternating between two palette
// entries.
func Flashing(a, b uint8) Color {
	return Color{IsComplex: true, Complex: ComplexColor{Mode: ModeFlashing, A: a, B: b}}
}

// RGB returns a complex direct-RGB color. Components are 7-bit.
func RGB(r, g, b uint8) Color {
	return Color{IsComplex: true, Complex: ComplexColor{Mode: ModeRGB, A: r, B: g, C: b}}
}
