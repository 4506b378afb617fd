// Package overlay composes a floating widget over a base view at a fixed
// position. Used to draw the variant strip above the glyph grid.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws overlay on top of base with its top-left corner at column x,
// row y. Overlay lines replace the base content underneath them; base lines
// are padded to width so the overlay can extend past short lines. This
// function is ANSI-aware and keeps styled text intact on both sides of the
// splice.
func Place(base, overlay string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}

		overlayWidth := ansi.StringWidth(overlayLine)
		if overlayWidth == 0 {
			continue
		}

		baseLine := baseLines[row]
		if baseWidth := ansi.StringWidth(baseLine); baseWidth < width {
			baseLine += strings.Repeat(" ", width-baseWidth)
		}

		result := ansi.Cut(baseLine, 0, x) + overlayLine
		if end := x + overlayWidth; end < width {
			result += ansi.Cut(baseLine, end, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
