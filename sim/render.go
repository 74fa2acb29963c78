package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sersorrel/lp/launchpad"
	"github.com/sersorrel/lp/theme"
)

func cellRGB(c Cell) [3]uint8 {
	if c.Mode == launchpad.ModeRGB {
		// wire components are 7-bit
		return [3]uint8{c.A << 1, c.B << 1, c.C << 1}
	}
	return theme.RGBFor(c.A)
}

func cellGlyph(c Cell) string {
	switch c.Mode {
	case launchpad.ModeFlashing:
		return "▣"
	case launchpad.ModePulsing:
		return "◉"
	}
	return "■"
}

// RenderCell renders one key as a colored glyph.
func RenderCell(c Cell) string {
	rgb := cellRGB(c)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])))
	return style.Render(cellGlyph(c))
}

// RenderGrid draws the 9x9 key grid, top row first, with an optional
// cursor highlight.
func RenderGrid(s Snapshot, cursor launchpad.Key) string {
	cursorStyle := lipgloss.NewStyle().Background(lipgloss.Color("#333333"))
	var lines []string
	for y := uint8(9); y >= 1; y-- {
		var line strings.Builder
		for x := uint8(1); x <= 9; x++ {
			key := launchpad.CoordsToKey(x, y)
			cell := RenderCell(s.Cells[key])
			if key == cursor {
				cell = cursorStyle.Render(cell)
			}
			line.WriteString(cell)
			if x < 9 {
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
